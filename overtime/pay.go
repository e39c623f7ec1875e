package overtime

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// payScale is the number of decimal places a day's total is kept to before
// it is rounded up.
const payScale = 6

// Calculator is the injected context for one calculation run.
type Calculator struct {
	Schedule   Schedule
	Rates      RateConstants
	HourlyRate decimal.Decimal
}

func NewCalculator(schedule Schedule, rates RateConstants, hourlyRate decimal.Decimal) *Calculator {
	return &Calculator{
		Schedule:   schedule,
		Rates:      rates,
		HourlyRate: hourlyRate,
	}
}

// PayLine is one tier's share of a day's pay.
type PayLine struct {
	Hours      decimal.Decimal `json:"hours"`
	Rate       decimal.Decimal `json:"rate"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

func (l PayLine) String() string {
	return l.Hours.StringFixed(2) + "h × " + l.Rate.Round(2).String() + " × " + l.Multiplier.String()
}

// Pay is the amount due for one day plus the breakdown shown for auditing.
type Pay struct {
	Amount    int64     `json:"amount"`
	Breakdown string    `json:"breakdown"`
	Lines     []PayLine `json:"lines,omitempty"`
}

// Warning reports a rate that makes every computation zero.
func (c *Calculator) Warning() *ConfigurationWarning {
	if c.HourlyRate.IsPositive() {
		return nil
	}
	return &ConfigurationWarning{HourlyRate: c.HourlyRate}
}

func (c *Calculator) NetHours(r Record) float64 {
	return NetHours(r, c.Schedule)
}

// DailyPay prices a day's total net hours. Tiers apply to the cumulative
// total, and the amount is rounded up to the next whole currency unit.
func (c *Calculator) DailyPay(hours float64, category Category) Pay {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 || !c.HourlyRate.IsPositive() {
		return Pay{Breakdown: "0"}
	}

	total := decimal.NewFromFloat(hours)
	var lines []PayLine
	sum := decimal.Zero
	lower := decimal.Zero
	for _, tier := range c.Rates.Tiers(category) {
		upper := total
		if tier.UpTo > 0 {
			upper = decimal.Min(total, decimal.NewFromFloat(tier.UpTo))
		}
		slice := upper.Sub(lower)
		if !slice.IsPositive() {
			break
		}
		multiplier := decimal.NewFromFloat(tier.Multiplier)
		line := PayLine{
			Hours:      slice,
			Rate:       c.HourlyRate,
			Multiplier: multiplier,
			Subtotal:   slice.Mul(c.HourlyRate).Mul(multiplier),
		}
		lines = append(lines, line)
		sum = sum.Add(line.Subtotal)
		lower = upper
		if tier.UpTo == 0 {
			break
		}
	}

	// Salary-derived rates repeat (40000/240); drop the division residue
	// before rounding up so an exact whole amount stays whole.
	sum = sum.Round(payScale)
	amount := sum.Ceil()
	return Pay{
		Amount:    amount.IntPart(),
		Breakdown: breakdown(lines, sum, amount),
		Lines:     lines,
	}
}

func breakdown(lines []PayLine, sum, amount decimal.Decimal) string {
	if len(lines) == 0 {
		return "0"
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	var b strings.Builder
	b.WriteString(strings.Join(parts, " + "))
	b.WriteString(" = ")
	b.WriteString(sum.StringFixed(2))
	b.WriteString(" → ")
	b.WriteString(amount.String())
	return b.String()
}
