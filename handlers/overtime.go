package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"overtimepay/config"
	"overtimepay/database"
	"overtimepay/middleware"
	"overtimepay/models"
	"overtimepay/overtime"
	"overtimepay/validate"
)

type OvertimeHandler struct {
	config   *config.Config
	rates    overtime.RateConstants
	Now      func() time.Time
	Location *time.Location
}

func NewOvertimeHandler(cfg *config.Config, rates overtime.RateConstants) *OvertimeHandler {
	return &OvertimeHandler{
		config:   cfg,
		rates:    rates,
		Now:      time.Now,
		Location: time.Local,
	}
}

// targetUserID is the current user unless an admin asks for another one
// with ?user_id=.
func (h *OvertimeHandler) targetUserID(r *http.Request) (uint, error) {
	user := middleware.GetUserFromContext(r.Context())
	userIDStr := r.URL.Query().Get("user_id")
	if userIDStr == "" {
		return user.ID, nil
	}

	parsedID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return 0, &overtime.ValidationError{Field: "user_id", Message: "must be a number"}
	}
	if !user.CanManageOvertimeFor(uint(parsedID)) {
		return 0, database.ErrForbidden
	}
	return uint(parsedID), nil
}

func (h *OvertimeHandler) calculator(userID uint) (*overtime.Calculator, models.Settings, error) {
	settings, err := database.GetSettings(database.GetDB(), userID)
	if err != nil {
		return nil, settings, err
	}
	calc, err := settings.Calculator(h.rates)
	if err != nil {
		return nil, settings, err
	}
	return calc, settings, nil
}

// period resolves ?period= and ?payday=, defaulting to the user's payday and
// the period containing now.
func (h *OvertimeHandler) period(r *http.Request, settings models.Settings) (PeriodDTO, error) {
	query := PeriodQuery{
		Period: r.URL.Query().Get("period"),
		Payday: r.URL.Query().Get("payday"),
	}
	if err := validate.Struct(query); err != nil {
		return PeriodDTO{}, err
	}

	payday := settings.EffectivePayday()
	if query.Payday != "" {
		p, err := strconv.Atoi(query.Payday)
		if err != nil {
			return PeriodDTO{}, &overtime.ValidationError{Field: "payday", Message: "must be a number"}
		}
		payday = p
	}

	selector := query.Period
	if selector == "" {
		selector = overtime.SelectorFor(h.Now().In(h.Location), payday)
	}
	period, err := overtime.ResolvePeriodIn(selector, payday, h.Location)
	if err != nil {
		return PeriodDTO{}, err
	}
	return PeriodDTO{Selector: selector, Payday: payday, Period: period}, nil
}

func (h *OvertimeHandler) toDTO(calc *overtime.Calculator, r overtime.Record) RecordDTO {
	return RecordDTO{Record: r, NetHours: calc.NetHours(r)}
}

func (h *OvertimeHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := h.targetUserID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	calc, settings, err := h.calculator(userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var from, to time.Time
	if r.URL.Query().Get("period") != "" {
		resolved, err := h.period(r, settings)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		from, to = resolved.Period.Start, resolved.Period.End
	}

	entries, err := database.ListEntries(database.GetDB(), userID, from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	dtos := make([]RecordDTO, 0, len(entries))
	for _, record := range models.ToRecords(entries, h.Location) {
		dtos = append(dtos, h.toDTO(calc, record))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *OvertimeHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	entry, err := h.ownedEntry(user, chi.URLParam(r, "recordID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	calc, _, err := h.calculator(entry.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDTO(calc, entry.ToRecord(h.Location)))
}

func (h *OvertimeHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := h.targetUserID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req RecordRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	record, err := h.accept(userID, req.record(uuid.NewString(), h.Location))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// UpdateRecord replaces a record in full under the same ID.
func (h *OvertimeHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	entry, err := h.ownedEntry(user, chi.URLParam(r, "recordID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req RecordRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	record, err := h.accept(entry.UserID, req.record(entry.ID, h.Location))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *OvertimeHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	entry, err := h.ownedEntry(user, chi.URLParam(r, "recordID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := database.DeleteEntry(database.GetDB(), entry.UserID, entry.ID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedEntry loads an entry the user may manage; admins may manage anyone's.
func (h *OvertimeHandler) ownedEntry(user *models.User, id string) (*models.OvertimeEntry, error) {
	var entry models.OvertimeEntry
	err := database.GetDB().Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load overtime entry: %w", err)
	}
	if !user.CanManageOvertimeFor(entry.UserID) {
		return nil, database.ErrForbidden
	}
	return &entry, nil
}

// accept stores a record for userID. A zero hourly rate blocks new records.
func (h *OvertimeHandler) accept(userID uint, record overtime.Record) (RecordDTO, error) {
	calc, _, err := h.calculator(userID)
	if err != nil {
		return RecordDTO{}, err
	}
	if warning := calc.Warning(); warning != nil {
		return RecordDTO{}, warning
	}
	if err := database.AcceptRecord(database.GetDB(), userID, record); err != nil {
		return RecordDTO{}, err
	}

	slog.Info("overtime record accepted",
		"user_id", userID,
		"record_id", record.ID,
		"span", record.Span(),
		"category", record.Category,
	)
	return h.toDTO(calc, record), nil
}

func (h *OvertimeHandler) Period(w http.ResponseWriter, r *http.Request) {
	userID, err := h.targetUserID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	settings, err := database.GetSettings(database.GetDB(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resolved, err := h.period(r, settings)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

func (h *OvertimeHandler) summary(r *http.Request) (DaysResponse, error) {
	userID, err := h.targetUserID(r)
	if err != nil {
		return DaysResponse{}, err
	}
	calc, settings, err := h.calculator(userID)
	if err != nil {
		return DaysResponse{}, err
	}
	resolved, err := h.period(r, settings)
	if err != nil {
		return DaysResponse{}, err
	}
	period := resolved.Period

	entries, err := database.ListEntries(database.GetDB(), userID, period.Start, period.End)
	if err != nil {
		return DaysResponse{}, err
	}

	resp := DaysResponse{
		Selector: resolved.Selector,
		Summary:  calc.Summarize(models.ToRecords(entries, h.Location), period),
	}
	if warning := calc.Warning(); warning != nil {
		resp.Warning = warning.Error()
	}
	return resp, nil
}

// Days returns the pay period's daily groups with pay and breakdowns.
func (h *OvertimeHandler) Days(w http.ResponseWriter, r *http.Request) {
	resp, err := h.summary(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OvertimeHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	resp, err := h.summary(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filename := fmt.Sprintf("overtime_%s.csv", resp.Selector)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Date", "Category", "Records", "Net Hours", "Amount", "Breakdown"})
	for _, day := range resp.Summary.Days {
		spans := make([]string, len(day.Records))
		for i, rec := range day.Records {
			spans[i] = rec.Span()
		}
		writer.Write([]string{
			day.Date.Format("2006-01-02"),
			day.Category.Label(),
			strings.Join(spans, "; "),
			fmt.Sprintf("%.2f", day.TotalNetHours),
			strconv.FormatInt(day.Pay.Amount, 10),
			day.Pay.Breakdown,
		})
	}
	writer.Write([]string{
		"Total", "", "",
		fmt.Sprintf("%.2f", resp.Summary.TotalNetHours),
		strconv.FormatInt(resp.Summary.TotalPay, 10),
		resp.Summary.Period.Display,
	})
}

func (h *OvertimeHandler) settingsResponse(settings models.Settings) SettingsResponse {
	resp := SettingsResponse{
		Settings:            settings,
		EffectiveHourlyRate: settings.EffectiveHourlyRate(h.rates).StringFixed(2),
	}
	if calc, err := settings.Calculator(h.rates); err == nil {
		if warning := calc.Warning(); warning != nil {
			resp.Warning = warning.Error()
		}
	}
	return resp
}

func (h *OvertimeHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	settings, err := database.GetSettings(database.GetDB(), user.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsResponse(settings))
}

func (h *OvertimeHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req SettingsRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	settings, err := database.GetSettings(database.GetDB(), user.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	settings.MonthlySalary = req.MonthlySalary
	settings.HourlyRate = req.HourlyRate
	settings.Payday = req.Payday
	settings.WorkStart = req.WorkStart
	settings.WorkEnd = req.WorkEnd
	settings.BreakStart = req.BreakStart
	settings.BreakEnd = req.BreakEnd

	if err := database.SaveSettings(database.GetDB(), &settings); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsResponse(settings))
}

func (h *OvertimeHandler) punchStatus(settings models.Settings) PunchStatus {
	if settings.PunchStartedAt == nil {
		return PunchStatus{}
	}
	startedAt := settings.PunchStartedAt.In(h.Location)
	return PunchStatus{
		Running:   true,
		StartedAt: &startedAt,
		Category:  overtime.Category(settings.PunchCategory),
		Elapsed:   h.Now().Sub(startedAt).Truncate(time.Second).String(),
	}
}

func (h *OvertimeHandler) PunchStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	settings, err := database.GetSettings(database.GetDB(), user.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.punchStatus(settings))
}

// PunchStart starts the punch clock. The record is only created on stop.
func (h *OvertimeHandler) PunchStart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req PunchStartRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	settings, err := database.GetSettings(database.GetDB(), user.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if settings.PunchStartedAt != nil {
		writeError(w, http.StatusConflict, "punch clock already running", nil)
		return
	}

	category := overtime.Category(req.Category)
	if category == "" {
		category = overtime.Weekday
	}
	startedAt := h.Now().UTC().Truncate(time.Minute)
	settings.PunchStartedAt = &startedAt
	settings.PunchCategory = string(category)
	if err := database.SaveSettings(database.GetDB(), &settings); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.punchStatus(settings))
}

// PunchStop turns the running punch into a record ending now.
func (h *OvertimeHandler) PunchStop(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req PunchStopRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	settings, err := database.GetSettings(database.GetDB(), user.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if settings.PunchStartedAt == nil {
		writeError(w, http.StatusConflict, "punch clock is not running", nil)
		return
	}

	category := overtime.Category(settings.PunchCategory)
	if category == "" {
		category = overtime.Weekday
	}
	record := overtime.Record{
		ID:                   uuid.NewString(),
		Start:                settings.PunchStartedAt.In(h.Location),
		End:                  h.Now().In(h.Location).Truncate(time.Minute),
		Category:             category,
		ForceFullCalculation: req.ForceFullCalculation,
		Reason:               req.Reason,
	}

	dto, err := h.accept(user.ID, record)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	settings.PunchStartedAt = nil
	settings.PunchCategory = ""
	if err := database.SaveSettings(database.GetDB(), &settings); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}
