package models

import (
	"time"

	"github.com/shopspring/decimal"

	"overtimepay/overtime"
)

// Settings is the per-user pay configuration. Zero values mean "not set" and
// are replaced with defaults when the calculator is built.
type Settings struct {
	ID             uint       `gorm:"primaryKey" json:"-"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"updated_at"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"-"`
	MonthlySalary  float64    `gorm:"not null;default:0" json:"monthly_salary"`
	HourlyRate     *float64   `json:"hourly_rate,omitempty"`
	Payday         int        `gorm:"not null;default:1" json:"payday"`
	WorkStart      string     `gorm:"size:5" json:"work_start"`
	WorkEnd        string     `gorm:"size:5" json:"work_end"`
	BreakStart     string     `gorm:"size:5" json:"break_start"`
	BreakEnd       string     `gorm:"size:5" json:"break_end"`
	PunchStartedAt *time.Time `json:"punch_started_at,omitempty"`
	PunchCategory  string     `gorm:"size:20" json:"punch_category,omitempty"`
}

func DefaultSettings(userID uint) Settings {
	s := overtime.DefaultSchedule
	return Settings{
		UserID:     userID,
		Payday:     1,
		WorkStart:  s.WorkStart.String(),
		WorkEnd:    s.WorkEnd.String(),
		BreakStart: s.BreakStart.String(),
		BreakEnd:   s.BreakEnd.String(),
	}
}

// Schedule parses the stored clocks, falling back to the default schedule
// field by field.
func (s *Settings) Schedule() (overtime.Schedule, error) {
	schedule := overtime.DefaultSchedule
	fields := []struct {
		value string
		dst   *overtime.Clock
	}{
		{s.WorkStart, &schedule.WorkStart},
		{s.WorkEnd, &schedule.WorkEnd},
		{s.BreakStart, &schedule.BreakStart},
		{s.BreakEnd, &schedule.BreakEnd},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		c, err := overtime.ParseClock(f.value)
		if err != nil {
			return overtime.Schedule{}, err
		}
		*f.dst = c
	}
	return schedule, nil
}

func (s *Settings) EffectivePayday() int {
	if s.Payday < 1 || s.Payday > 31 {
		return 1
	}
	return s.Payday
}

// EffectiveHourlyRate prefers an explicit hourly rate over one derived from
// the monthly salary.
func (s *Settings) EffectiveHourlyRate(rates overtime.RateConstants) decimal.Decimal {
	if s.HourlyRate != nil && *s.HourlyRate > 0 {
		return decimal.NewFromFloat(*s.HourlyRate)
	}
	return overtime.HourlyRate(s.MonthlySalary, rates)
}

// Calculator builds the calculation context for this user.
func (s *Settings) Calculator(rates overtime.RateConstants) (*overtime.Calculator, error) {
	schedule, err := s.Schedule()
	if err != nil {
		return nil, err
	}
	return overtime.NewCalculator(schedule, rates, s.EffectiveHourlyRate(rates)), nil
}
