package services

import (
	"fmt"
	"math"
	"time"

	"resort-backend/models"
	"resort-backend/utils"
)

// ExtraGuestRate is the share of the base nightly rate charged per extra
// guest per night.
const ExtraGuestRate = 0.30

type NightPrice struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	IsWeekend bool    `json:"isWeekend"`
}

type PriceBreakdown struct {
	Nights        int          `json:"nights"`
	WithMeal      bool         `json:"withMeal"`
	PerNight      []NightPrice `json:"perNight"`
	NightlyTotal  float64      `json:"nightlyTotal"`
	ExtraGuests   int          `json:"extraGuests"`
	ExtraGuestFee float64      `json:"extraGuestFee"`
	// ExtraGuestNightly is the fee for one extra guest for one night.
	ExtraGuestNightly float64 `json:"extraGuestNightly"`
	Total             float64 `json:"total"`
}

// IsWeekend treats Friday, Saturday and Sunday nights as weekend.
func IsWeekend(d time.Time) bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// PriceRoomStay prices the nights [checkIn, checkOut). A meal-inclusive rate,
// when chosen and defined, applies flat to every night. Otherwise each night
// uses the weekend or weekday rate and falls back to the base rate. Guests
// above capacity add ExtraGuestRate of the base rate per guest per night.
func PriceRoomStay(room *models.Room, checkIn, checkOut time.Time, partySize int, withMeal bool) (*PriceBreakdown, error) {
	stay, err := StayInterval(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
	}
	if err := validateRoomRates(room); err != nil {
		return nil, err
	}

	nights := stay.Nights()
	out := &PriceBreakdown{
		Nights:   nights,
		PerNight: make([]NightPrice, 0, nights),
	}
	useMeal := withMeal && room.MealPrice != nil
	out.WithMeal = useMeal

	for d := stay.Start; d.Before(stay.End); d = d.AddDate(0, 0, 1) {
		weekend := IsWeekend(d)
		price := room.BasePrice
		switch {
		case useMeal:
			price = *room.MealPrice
		case weekend && room.WeekendPrice != nil:
			price = *room.WeekendPrice
		case !weekend && room.WeekdayPrice != nil:
			price = *room.WeekdayPrice
		}
		out.PerNight = append(out.PerNight, NightPrice{
			Date:      d.Format(utils.DateLayout),
			Price:     price,
			IsWeekend: weekend,
		})
		out.NightlyTotal += price
	}

	if partySize > room.Capacity {
		out.ExtraGuests = partySize - room.Capacity
		out.ExtraGuestNightly = roundMoney(room.BasePrice * ExtraGuestRate)
		out.ExtraGuestFee = out.ExtraGuestNightly * float64(out.ExtraGuests) * float64(nights)
	}

	out.NightlyTotal = roundMoney(out.NightlyTotal)
	out.ExtraGuestFee = roundMoney(out.ExtraGuestFee)
	out.Total = roundMoney(out.NightlyTotal + out.ExtraGuestFee)
	return out, nil
}

// PriceServiceBooking returns rate × hours for hourly services and the flat
// rate otherwise. There is no overflow path: a party above MaxCapacity is
// rejected.
func PriceServiceBooking(svc *models.Service, iv Interval, partySize int) (float64, error) {
	if !iv.End.After(iv.Start) {
		return 0, fmt.Errorf("%w: service slot must end after it starts", ErrInvalidDateRange)
	}
	if partySize < 1 {
		return 0, fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
	}
	if !validRate(svc.Price) {
		return 0, fmt.Errorf("%w: service %d has invalid price %v", ErrConfiguration, svc.ID, svc.Price)
	}
	if svc.MaxCapacity != nil && partySize > *svc.MaxCapacity {
		return 0, fmt.Errorf("%w: party of %d exceeds service capacity %d",
			ErrCapacityExceeded, partySize, *svc.MaxCapacity)
	}
	if !svc.IsHourly {
		return roundMoney(svc.Price), nil
	}
	return roundMoney(svc.Price * iv.Duration().Hours()), nil
}

func validateRoomRates(room *models.Room) error {
	if room.BasePrice <= 0 || !validRate(room.BasePrice) {
		return fmt.Errorf("%w: room %d has no base rate", ErrConfiguration, room.ID)
	}
	if room.Capacity < 1 {
		return fmt.Errorf("%w: room %d has capacity %d", ErrConfiguration, room.ID, room.Capacity)
	}
	for name, rate := range map[string]*float64{
		"weekday": room.WeekdayPrice,
		"weekend": room.WeekendPrice,
		"meal":    room.MealPrice,
	} {
		if rate != nil && !validRate(*rate) {
			return fmt.Errorf("%w: room %d has invalid %s rate %v", ErrConfiguration, room.ID, name, *rate)
		}
	}
	return nil
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
