package overtime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation wraps every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrConflict wraps every ConflictError.
	ErrConflict = errors.New("record overlaps an existing record")
)

// ValidationError rejects a malformed record or setting before it is accepted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError carries the accepted records a candidate would overlap.
type ConflictError struct {
	Candidate Record
	Conflicts []Record
}

func (e *ConflictError) Error() string {
	spans := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		spans[i] = c.Span()
	}
	return fmt.Sprintf("%s overlaps %d existing record(s): %s",
		e.Candidate.Span(), len(e.Conflicts), strings.Join(spans, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ConfigurationWarning is non-fatal: pay still computes (as zero) but new
// records should not be accepted until the rate is fixed.
type ConfigurationWarning struct {
	HourlyRate decimal.Decimal
}

func (w *ConfigurationWarning) Error() string {
	return fmt.Sprintf("hourly rate is %s; set a monthly salary or hourly rate above zero", w.HourlyRate.String())
}
