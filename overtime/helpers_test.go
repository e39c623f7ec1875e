package overtime_test

import (
	"time"

	"github.com/shopspring/decimal"

	"overtimepay/overtime"
)

func at(day, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func record(id, day, from, to string, category overtime.Category) overtime.Record {
	return overtime.Record{
		ID:       id,
		Start:    at(day, from),
		End:      at(day, to),
		Category: category,
	}
}

func calculator(rate int64) *overtime.Calculator {
	return overtime.NewCalculator(overtime.DefaultSchedule, overtime.DefaultRates, decimal.NewFromInt(rate))
}
