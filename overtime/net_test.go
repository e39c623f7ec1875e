package overtime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"overtimepay/overtime"
)

func TestNetHours(t *testing.T) {
	schedule := overtime.DefaultSchedule // 09:00-18:00, break 12:00-13:00

	tests := []struct {
		name     string
		from, to string
		category overtime.Category
		force    bool
		want     float64
	}{
		{"after work", "18:00", "21:00", overtime.Weekday, false, 3},
		{"before work", "06:00", "09:00", overtime.Weekday, false, 3},
		{"straddles work end", "17:00", "20:00", overtime.Weekday, false, 2},
		{"inside work hours", "10:00", "11:00", overtime.Weekday, false, 0},
		{"works through break", "12:00", "13:00", overtime.Weekday, false, 1},
		{"morning through break", "11:00", "13:30", overtime.Weekday, false, 1},
		{"whole day", "08:00", "19:00", overtime.Weekday, false, 3},
		{"forced full", "17:00", "20:00", overtime.Weekday, true, 3},
		{"rest day not netted", "09:00", "18:00", overtime.RestDay, false, 9},
		{"holiday not netted", "10:00", "12:00", overtime.Holiday, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record("r", "2024-01-10", tt.from, tt.to, tt.category)
			r.ForceFullCalculation = tt.force
			assert.InDelta(t, tt.want, overtime.NetHours(r, schedule), 1e-9)
		})
	}
}

func TestNetHours_NeverExceedsRawDuration(t *testing.T) {
	schedule := overtime.DefaultSchedule
	day := at("2024-01-10", "00:00")

	for start := 0; start < 24*60; start += 45 {
		for length := 15; length <= 10*60; length += 75 {
			r := overtime.Record{
				ID:       "r",
				Start:    day.Add(time.Duration(start) * time.Minute),
				End:      day.Add(time.Duration(start+length) * time.Minute),
				Category: overtime.Weekday,
			}
			net := overtime.NetHours(r, schedule)
			raw := r.Duration().Hours()
			assert.GreaterOrEqual(t, net, 0.0)
			assert.LessOrEqual(t, net, raw+1e-9)

			r.ForceFullCalculation = true
			assert.InDelta(t, raw, overtime.NetHours(r, schedule), 1e-9)
		}
	}
}

func TestNetHours_MisconfiguredSchedule(t *testing.T) {
	// GIVEN: break window ends before it starts, work window inverted
	// THEN: nothing overlaps the broken windows and the result stays non-negative
	inverted := overtime.Schedule{
		WorkStart:  overtime.MustClock("18:00"),
		WorkEnd:    overtime.MustClock("09:00"),
		BreakStart: overtime.MustClock("13:00"),
		BreakEnd:   overtime.MustClock("12:00"),
	}
	r := record("r", "2024-01-10", "10:00", "14:00", overtime.Weekday)
	assert.InDelta(t, 4.0, overtime.NetHours(r, inverted), 1e-9)

	brokenBreak := overtime.DefaultSchedule
	brokenBreak.BreakStart, brokenBreak.BreakEnd = overtime.MustClock("13:00"), overtime.MustClock("12:00")
	r = record("r", "2024-01-10", "11:00", "19:00", overtime.Weekday)
	assert.InDelta(t, 1.0, overtime.NetHours(r, brokenBreak), 1e-9)
}

func TestNetHours_EndBeforeStartIsZero(t *testing.T) {
	r := record("r", "2024-01-10", "20:00", "19:00", overtime.Holiday)
	assert.Zero(t, overtime.NetHours(r, overtime.DefaultSchedule))
}
