package overtime

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Tier prices the hours of a day up to UpTo (cumulative) at Multiplier times
// the hourly rate. UpTo == 0 marks the open-ended last tier.
type Tier struct {
	UpTo       float64 `json:"upTo" yaml:"upTo"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// RateConstants is the process-wide rate table. It is loaded once at startup.
type RateConstants struct {
	MonthlyStandardHours float64 `json:"monthlyStandardHours" yaml:"monthlyStandardHours"`
	Weekday              []Tier  `json:"weekday" yaml:"weekday"`
	RestDay              []Tier  `json:"restDay" yaml:"restDay"`
	Holiday              []Tier  `json:"holiday" yaml:"holiday"`
}

// DefaultRates: 240 standard hours per month, weekday 1.34 for the first two
// hours then 1.67, rest day 1.34 / 1.67 up to eight hours / 2.67 beyond,
// holiday a flat double rate.
var DefaultRates = RateConstants{
	MonthlyStandardHours: 240,
	Weekday: []Tier{
		{UpTo: 2, Multiplier: 1.34},
		{Multiplier: 1.67},
	},
	RestDay: []Tier{
		{UpTo: 2, Multiplier: 1.34},
		{UpTo: 8, Multiplier: 1.67},
		{Multiplier: 2.67},
	},
	Holiday: []Tier{
		{Multiplier: 2},
	},
}

// Tiers returns the tier table for a category. Unknown categories get none.
func (rc RateConstants) Tiers(c Category) []Tier {
	switch c {
	case Weekday:
		return rc.Weekday
	case RestDay:
		return rc.RestDay
	case Holiday:
		return rc.Holiday
	}
	return nil
}

func (rc RateConstants) Validate() error {
	if !finite(rc.MonthlyStandardHours) || rc.MonthlyStandardHours <= 0 {
		return &ValidationError{Field: "monthlyStandardHours", Message: "must be a positive number"}
	}
	for _, c := range Categories {
		if err := validateTiers(string(c), rc.Tiers(c)); err != nil {
			return err
		}
	}
	return nil
}

func validateTiers(name string, tiers []Tier) error {
	if len(tiers) == 0 {
		return &ValidationError{Field: name, Message: "needs at least one tier"}
	}
	prev := 0.0
	for i, t := range tiers {
		field := fmt.Sprintf("%s[%d]", name, i)
		if !finite(t.Multiplier) || t.Multiplier <= 0 {
			return &ValidationError{Field: field, Message: "multiplier must be a positive number"}
		}
		if !finite(t.UpTo) || t.UpTo < 0 {
			return &ValidationError{Field: field, Message: "upTo must be a non-negative number"}
		}
		last := i == len(tiers)-1
		if last && t.UpTo != 0 {
			return &ValidationError{Field: field, Message: "last tier must be open-ended (upTo 0)"}
		}
		if !last {
			if t.UpTo <= prev {
				return &ValidationError{Field: field, Message: "thresholds must increase"}
			}
			prev = t.UpTo
		}
	}
	return nil
}

// HourlyRate derives the base rate from a monthly salary.
func HourlyRate(monthlySalary float64, rates RateConstants) decimal.Decimal {
	if !finite(monthlySalary) || !finite(rates.MonthlyStandardHours) || rates.MonthlyStandardHours <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(monthlySalary).Div(decimal.NewFromFloat(rates.MonthlyStandardHours))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
