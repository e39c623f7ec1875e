package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"overtimepay/overtime"
)

// LoadRates reads the rate table from a YAML file. A missing file means the
// built-in table; a present file replaces it section by section.
func LoadRates(path string) (overtime.RateConstants, error) {
	rates := overtime.DefaultRates

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rates, nil
		}
		return overtime.RateConstants{}, fmt.Errorf("failed to read rates file: %w", err)
	}

	var file overtime.RateConstants
	if err := yaml.Unmarshal(data, &file); err != nil {
		return overtime.RateConstants{}, fmt.Errorf("failed to parse rates file: %w", err)
	}

	if file.MonthlyStandardHours != 0 {
		rates.MonthlyStandardHours = file.MonthlyStandardHours
	}
	if len(file.Weekday) > 0 {
		rates.Weekday = file.Weekday
	}
	if len(file.RestDay) > 0 {
		rates.RestDay = file.RestDay
	}
	if len(file.Holiday) > 0 {
		rates.Holiday = file.Holiday
	}

	if err := rates.Validate(); err != nil {
		return overtime.RateConstants{}, fmt.Errorf("invalid rates file %s: %w", path, err)
	}
	return rates, nil
}
