package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"overtimepay/overtime"
)

// loadRecords reads a YAML list of records. Missing IDs are numbered by
// position and a missing category means weekday.
func loadRecords(path string, loc *time.Location) ([]overtime.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var records []overtime.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}

	for i := range records {
		r := &records[i]
		if r.ID == "" {
			r.ID = fmt.Sprintf("#%d", i+1)
		}
		if r.Category == "" {
			r.Category = overtime.Weekday
		}
		r.Start = r.Start.In(loc)
		r.End = r.End.In(loc)
	}
	return records, nil
}

// parseWindow reads "HH:MM-HH:MM".
func parseWindow(flag, value string) (overtime.Clock, overtime.Clock, error) {
	from, to, ok := strings.Cut(value, "-")
	if !ok {
		return overtime.Clock{}, overtime.Clock{}, &overtime.ValidationError{Field: flag, Message: "must be HH:MM-HH:MM"}
	}
	start, err := overtime.ParseClock(strings.TrimSpace(from))
	if err != nil {
		return overtime.Clock{}, overtime.Clock{}, err
	}
	end, err := overtime.ParseClock(strings.TrimSpace(to))
	if err != nil {
		return overtime.Clock{}, overtime.Clock{}, err
	}
	return start, end, nil
}
