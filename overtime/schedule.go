package overtime

import (
	"fmt"
	"time"
)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, &ValidationError{Field: "clock", Message: fmt.Sprintf("%q is not HH:MM", s)}
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On anchors the clock on the calendar date of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Schedule is the ordinary working day. The expected ordering
// WorkStart < BreakStart <= BreakEnd < WorkEnd is not enforced; a window whose
// end is not after its start simply overlaps nothing.
type Schedule struct {
	WorkStart  Clock `json:"workStart" yaml:"workStart"`
	WorkEnd    Clock `json:"workEnd" yaml:"workEnd"`
	BreakStart Clock `json:"breakStart" yaml:"breakStart"`
	BreakEnd   Clock `json:"breakEnd" yaml:"breakEnd"`
}

var DefaultSchedule = Schedule{
	WorkStart:  Clock{Hour: 9},
	WorkEnd:    Clock{Hour: 18},
	BreakStart: Clock{Hour: 12},
	BreakEnd:   Clock{Hour: 13},
}

func (s Schedule) workWindow(day time.Time) (time.Time, time.Time) {
	return s.WorkStart.On(day), s.WorkEnd.On(day)
}

func (s Schedule) breakWindow(day time.Time) (time.Time, time.Time) {
	return s.BreakStart.On(day), s.BreakEnd.On(day)
}
