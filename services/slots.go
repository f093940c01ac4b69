package services

import (
	"fmt"
	"time"

	"resort-backend/utils"
)

// SlotWindow is a service's operating hours as offsets from midnight, cut
// into fixed Granularity slots.
type SlotWindow struct {
	DayStart    time.Duration
	DayEnd      time.Duration
	Granularity time.Duration
}

func DefaultSlotWindow() SlotWindow {
	return SlotWindow{DayStart: 9 * time.Hour, DayEnd: 21 * time.Hour, Granularity: time.Hour}
}

func (w SlotWindow) Validate() error {
	switch {
	case w.Granularity <= 0:
		return fmt.Errorf("%w: slot granularity must be positive", ErrInvalidInput)
	case w.DayStart < 0 || w.DayEnd > 24*time.Hour:
		return fmt.Errorf("%w: service window must lie within one day", ErrInvalidInput)
	case w.DayEnd <= w.DayStart:
		return fmt.Errorf("%w: service window %s-%s is empty",
			ErrInvalidDateRange, utils.FormatClock(w.DayStart), utils.FormatClock(w.DayEnd))
	}
	return nil
}

type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Label     string    `json:"label"`
	Available bool      `json:"available"`
}

// BuildSlots enumerates every whole slot [t, t+Granularity) inside the
// window on date and marks it available iff it overlaps none of booked. A
// trailing remainder shorter than Granularity is not offered.
func BuildSlots(date time.Time, w SlotWindow, booked []Interval) ([]Slot, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	var slots []Slot
	for off := w.DayStart; off+w.Granularity <= w.DayEnd; off += w.Granularity {
		iv := Interval{Start: utils.At(date, off), End: utils.At(date, off+w.Granularity)}
		slots = append(slots, Slot{
			Start:     iv.Start,
			End:       iv.End,
			Label:     utils.FormatClock(off) + "-" + utils.FormatClock(off+w.Granularity),
			Available: freeOf(iv, booked),
		})
	}
	return slots, nil
}
