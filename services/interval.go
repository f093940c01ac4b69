package services

import (
	"fmt"
	"time"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval returns [start, end) or ErrInvalidDateRange unless end is
// strictly after start.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidDateRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// StayInterval normalises check-in and check-out to calendar dates.
func StayInterval(checkIn, checkOut time.Time) (Interval, error) {
	return NewInterval(DateOnly(checkIn), DateOnly(checkOut))
}

// Overlaps reports whether a and b share any instant. Touching ends do not
// overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv, other)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Nights counts calendar days between the dates of Start and End.
func (iv Interval) Nights() int {
	return int(DateOnly(iv.End).Sub(DateOnly(iv.Start)).Hours() / 24)
}

// DateOnly drops the clock and moves t onto UTC midnight of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// freeOf reports whether candidate overlaps none of taken.
func freeOf(candidate Interval, taken []Interval) bool {
	for _, iv := range taken {
		if Overlaps(candidate, iv) {
			return false
		}
	}
	return true
}
