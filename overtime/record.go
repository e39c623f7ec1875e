package overtime

import (
	"strings"
	"time"
)

// Record is one overtime interval as entered by the user. Start and End are
// absolute instants; edits replace the whole record under the same ID.
type Record struct {
	ID                   string    `json:"id" yaml:"id"`
	Start                time.Time `json:"start" yaml:"start"`
	End                  time.Time `json:"end" yaml:"end"`
	Category             Category  `json:"category" yaml:"category"`
	ForceFullCalculation bool      `json:"forceFullCalculation" yaml:"forceFullCalculation"`
	Reason               string    `json:"reason" yaml:"reason"`
}

// Duration is the raw elapsed time, never negative.
func (r Record) Duration() time.Duration {
	return max(r.End.Sub(r.Start), 0)
}

// Day is midnight of the calendar date Start falls on, in Start's location.
func (r Record) Day() time.Time {
	return startOfDay(r.Start)
}

// Span formats the record as "2006-01-02 15:04-15:04" for conflict messages.
func (r Record) Span() string {
	end := r.End.Format("15:04")
	if !startOfDay(r.End).Equal(startOfDay(r.Start)) {
		end = r.End.Format("2006-01-02 15:04")
	}
	return r.Start.Format("2006-01-02 15:04") + "-" + end
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if r.Start.IsZero() {
		return &ValidationError{Field: "start", Message: "is required"}
	}
	if r.End.IsZero() {
		return &ValidationError{Field: "end", Message: "is required"}
	}
	if !r.End.After(r.Start) {
		return &ValidationError{Field: "end", Message: "must be after start"}
	}
	if !r.Category.Valid() {
		return &ValidationError{Field: "category", Message: "must be weekday, rest_day or holiday"}
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
