package reservation

import (
	"fmt"
	"strings"
	"time"
)

const MaxServicesLength = 2000

// Interval is the half-open range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end}, nil
}

func (i Interval) Start() time.Time {
	return i.start
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

// Overlaps uses half-open semantics: touching intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.end) && other.start.Before(i.end)
}

// ValidateForBooking rejects intervals starting before now.
func (i Interval) ValidateForBooking(now time.Time) error {
	if i.start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s,%s)", i.start.Format(time.RFC3339), i.end.Format(time.RFC3339))
}

type GuestCount struct {
	value int
}

func NewGuestCount(n int) (GuestCount, error) {
	if n < 1 {
		return GuestCount{}, ErrInvalidGuestCount
	}
	return GuestCount{value: n}, nil
}

func (g GuestCount) Int() int {
	return g.value
}

type Services struct {
	value string
}

func NewServices(value string) (Services, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxServicesLength {
		return Services{}, ErrServicesTooLong
	}
	return Services{value: value}, nil
}

func (s Services) String() string {
	return s.value
}

func (s Services) IsEmpty() bool {
	return s.value == ""
}
