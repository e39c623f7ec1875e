package overtime

import (
	"fmt"
	"time"
)

const (
	selectorLayout = "2006-01"
	displayLayout  = "2006/01/02"
)

// Period is the inclusive date range paid out together.
type Period struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Display string    `json:"display"`
}

// Contains is inclusive on both ends.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

func (p Period) String() string {
	return p.Display
}

// ParseSelector reads a "YYYY-MM" period selector.
func ParseSelector(selector string) (int, time.Month, error) {
	t, err := time.Parse(selectorLayout, selector)
	if err != nil {
		return 0, 0, &ValidationError{Field: "period", Message: fmt.Sprintf("%q is not YYYY-MM", selector)}
	}
	return t.Year(), t.Month(), nil
}

func ValidatePayday(payday int) error {
	if payday < 1 || payday > 31 {
		return &ValidationError{Field: "payday", Message: "must be between 1 and 31"}
	}
	return nil
}

// ResolvePeriod resolves a selector in the local time zone.
func ResolvePeriod(selector string, payday int) (Period, error) {
	return ResolvePeriodIn(selector, payday, time.Local)
}

// ResolvePeriodIn maps a "YYYY-MM" selector and a payday to a date range.
//
// Payday 1 means the calendar month. Any other payday closes the period the
// day before that month's payday, so it opens on the payday of the previous
// month. A payday past the end of a month falls on that month's last day.
func ResolvePeriodIn(selector string, payday int, loc *time.Location) (Period, error) {
	year, month, err := ParseSelector(selector)
	if err != nil {
		return Period{}, err
	}
	if err := ValidatePayday(payday); err != nil {
		return Period{}, err
	}
	if loc == nil {
		loc = time.Local
	}

	var start, endDay time.Time
	if payday == 1 {
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		endDay = start.AddDate(0, 1, -1)
	} else {
		prevYear, prevMonth := year, month-1
		if prevMonth < time.January {
			prevYear, prevMonth = year-1, time.December
		}
		start = paydayIn(prevYear, prevMonth, payday, loc)
		endDay = paydayIn(year, month, payday, loc).AddDate(0, 0, -1)
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, loc)

	return Period{
		Start:   start,
		End:     end,
		Display: start.Format(displayLayout) + " - " + end.Format(displayLayout),
	}, nil
}

// SelectorFor names the period that contains now.
func SelectorFor(now time.Time, payday int) string {
	if payday <= 1 {
		return now.Format(selectorLayout)
	}
	if now.Day() >= min(payday, daysIn(now.Year(), now.Month())) {
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfMonth.AddDate(0, 1, 0).Format(selectorLayout)
	}
	return now.Format(selectorLayout)
}

func paydayIn(year int, month time.Month, payday int, loc *time.Location) time.Time {
	return time.Date(year, month, min(payday, daysIn(year, month)), 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
