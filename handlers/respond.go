package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"overtimepay/database"
	"overtimepay/overtime"
	"overtimepay/validate"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string        `json:"error"`
	Details   string        `json:"details,omitempty"`
	Field     string        `json:"field,omitempty"`
	Conflicts []ConflictDTO `json:"conflicts,omitempty"`
}

// ConflictDTO names an accepted record that blocks the candidate.
type ConflictDTO struct {
	ID   string `json:"id"`
	Span string `json:"span"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps core and storage errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *overtime.ValidationError
		conflict *overtime.ConflictError
		warning  *overtime.ConfigurationWarning
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: verr.Error(), Field: verr.Field})
	case errors.As(err, &conflict):
		resp := ErrorResponse{Error: "record overlaps existing records", Details: conflict.Error()}
		for _, c := range conflict.Conflicts {
			resp.Conflicts = append(resp.Conflicts, ConflictDTO{ID: c.ID, Span: c.Span()})
		}
		writeJSON(w, http.StatusConflict, resp)
	case errors.As(err, &warning):
		writeError(w, http.StatusUnprocessableEntity, "pay settings incomplete", warning)
	case errors.Is(err, database.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "record not found", nil)
	case errors.Is(err, database.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", nil)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// decode reads a JSON body into dst and validates it. An empty body leaves
// dst zero.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &overtime.ValidationError{Field: "body", Message: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	return validate.Struct(dst)
}
