package handlers

import (
	"time"

	"overtimepay/models"
	"overtimepay/overtime"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,notblank,min=3,max=100"`
	FullName        string `json:"full_name" validate:"max=200"`
	Password        string `json:"password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// UpdateUserRequest is an admin edit; empty fields are left unchanged.
type UpdateUserRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,max=200"`
	Role          *string `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
	ResetPassword string  `json:"reset_password" validate:"omitempty,min=5"`
}

type UserDTO struct {
	ID                 uint        `json:"id"`
	Username           string      `json:"username"`
	FullName           string      `json:"full_name"`
	Role               models.Role `json:"role"`
	MustChangePassword bool        `json:"must_change_password"`
	CreatedAt          time.Time   `json:"created_at"`
}

func toUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Username:           u.Username,
		FullName:           u.DisplayName(),
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// RecordRequest creates or replaces a record. Start and End are RFC 3339.
type RecordRequest struct {
	Start                time.Time `json:"start" validate:"required"`
	End                  time.Time `json:"end" validate:"required"`
	Category             string    `json:"category" validate:"omitempty,category"`
	ForceFullCalculation bool      `json:"forceFullCalculation"`
	Reason               string    `json:"reason" validate:"max=500"`
}

func (req RecordRequest) record(id string, loc *time.Location) overtime.Record {
	category := overtime.Category(req.Category)
	if category == "" {
		category = overtime.Weekday
	}
	return overtime.Record{
		ID:                   id,
		Start:                req.Start.In(loc),
		End:                  req.End.In(loc),
		Category:             category,
		ForceFullCalculation: req.ForceFullCalculation,
		Reason:               req.Reason,
	}
}

// RecordDTO is a stored record with its net hours under the user's schedule.
type RecordDTO struct {
	overtime.Record
	NetHours float64 `json:"netHours"`
}

// PeriodQuery is the ?period= and ?payday= selection shared by the period,
// days and records endpoints.
type PeriodQuery struct {
	Period string `json:"period" validate:"omitempty,yearmonth"`
	Payday string `json:"payday" validate:"omitempty,number"`
}

type PeriodDTO struct {
	Selector string          `json:"selector"`
	Payday   int             `json:"payday"`
	Period   overtime.Period `json:"period"`
}

// DaysResponse is a pay period summary. Warning is set when the hourly rate
// prices everything at zero.
type DaysResponse struct {
	Selector string           `json:"selector"`
	Summary  overtime.Summary `json:"summary"`
	Warning  string           `json:"warning,omitempty"`
}

type SettingsRequest struct {
	MonthlySalary float64  `json:"monthly_salary" validate:"gte=0"`
	HourlyRate    *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	Payday        int      `json:"payday" validate:"min=1,max=31"`
	WorkStart     string   `json:"work_start" validate:"required,clock"`
	WorkEnd       string   `json:"work_end" validate:"required,clock"`
	BreakStart    string   `json:"break_start" validate:"required,clock"`
	BreakEnd      string   `json:"break_end" validate:"required,clock"`
}

type SettingsResponse struct {
	models.Settings
	EffectiveHourlyRate string `json:"effective_hourly_rate"`
	Warning             string `json:"warning,omitempty"`
}

type PunchStartRequest struct {
	Category string `json:"category" validate:"omitempty,category"`
}

type PunchStopRequest struct {
	ForceFullCalculation bool   `json:"forceFullCalculation"`
	Reason               string `json:"reason" validate:"max=500"`
}

type PunchStatus struct {
	Running   bool              `json:"running"`
	StartedAt *time.Time        `json:"started_at,omitempty"`
	Category  overtime.Category `json:"category,omitempty"`
	Elapsed   string            `json:"elapsed,omitempty"`
}
