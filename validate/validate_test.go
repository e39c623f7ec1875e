package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overtimepay/overtime"
)

type sample struct {
	Period   string  `json:"period" validate:"omitempty,yearmonth"`
	From     string  `json:"from" validate:"required,clock"`
	Category string  `json:"category" validate:"required,category"`
	Payday   int     `json:"payday" validate:"min=1,max=31"`
	Salary   float64 `json:"monthly_salary" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	valid := sample{Period: "2024-12", From: "18:30", Category: "rest_day", Payday: 15}
	require.NoError(t, Struct(valid))

	tests := []struct {
		name  string
		edit  func(*sample)
		field string
	}{
		{"bad period", func(s *sample) { s.Period = "2024-13" }, "period"},
		{"bad clock", func(s *sample) { s.From = "6pm" }, "from"},
		{"bad category", func(s *sample) { s.Category = "night" }, "category"},
		{"payday too large", func(s *sample) { s.Payday = 32 }, "payday"},
		{"negative salary", func(s *sample) { s.Salary = -1 }, "monthly_salary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.edit(&s)
			err := Struct(s)
			var verr *overtime.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, overtime.ErrValidation)
		})
	}
}

func TestStruct_QueryParams(t *testing.T) {
	type query struct {
		Period string `json:"period" validate:"omitempty,yearmonth"`
		Payday string `json:"payday" validate:"omitempty,number"`
	}

	require.NoError(t, Struct(query{}))
	require.NoError(t, Struct(query{Period: "2024-01", Payday: "25"}))

	err := Struct(query{Payday: "last"})
	var verr *overtime.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payday", verr.Field)
	assert.Equal(t, "must be a number", verr.Message)
}
