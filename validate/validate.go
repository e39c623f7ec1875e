package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"overtimepay/overtime"
)

var Validate *validator.Validate

var notBlank = regexp.MustCompile(`\S`)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names
	Validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Period selector: "2024-12"
	_ = Validate.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01", fl.Field().String())
		return err == nil
	})

	// Time of day: "18:30"
	_ = Validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := overtime.ParseClock(fl.Field().String())
		return err == nil
	})

	_ = Validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return overtime.Category(fl.Field().String()).Valid()
	})

	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return notBlank.MatchString(fl.Field().String())
	})
}

// Struct validates v and reports the first failing field as an
// *overtime.ValidationError.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return &overtime.ValidationError{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "yearmonth":
		return "must be YYYY-MM"
	case "number", "numeric":
		return "must be a number"
	case "clock":
		return "must be HH:MM"
	case "category":
		return "must be weekday, rest_day or holiday"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
