/*
handlers.go - HTTP API handlers for the shift engine

PURPOSE:
  Exposes the shift calculator, calendar bucketing and record store via a
  REST API. Handlers decode, validate, call the core, and encode; no
  business logic lives here.

ENDPOINTS:
  Shifts:
    POST   /api/shifts/preview   Compute duration + pay without persisting
    POST   /api/shifts           Compute and append one record
    GET    /api/shifts           All records with summary totals
    GET    /api/shifts/export    CSV download of all records

  Calendar:
    GET    /api/weeks            Labeled week windows for a year
    GET    /api/weeks/records    Records of the week containing a date
    GET    /api/stats/weekly     Weekly aggregation, newest first

  Misc:
    GET    /api/rules            Business constants for client banners

ERROR HANDLING:
  - 400: Validation errors (schedule order, length, future date, formats)
  - 409: Duplicate fecha + entry time pair
  - 502: Record store failures (external collaborator; no retry here)

REQUEST FLOW:
  1. Decode with render
  2. Field validation with go-playground/validator
  3. Business validation + calculation in shift/calendar
  4. Store call
  5. Encode response

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - metrics.go: Prometheus counters incremented here
*/
package api

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/turno/shift-engine/calendar"
	"github.com/turno/shift-engine/money"
	"github.com/turno/shift-engine/record"
	"github.com/turno/shift-engine/shift"
)

// ErrDuplicateShift is returned when a record with the same date and entry
// time already exists.
var ErrDuplicateShift = errors.New("shift already registered for this date and entry time")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	store    record.Store
	rules    shift.Rules
	log      *slog.Logger
	validate *validator.Validate

	// now is swappable for tests; future-date validation and the weekly
	// window both depend on it.
	now func() time.Time
}

// NewHandler creates a new handler with the given store and rules.
func NewHandler(store record.Store, rules shift.Rules, log *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		rules:    rules,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (h *Handler) opLog(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// computed bundles everything derived from one valid ShiftRequest.
type computed struct {
	date      time.Time
	entry     shift.Clock
	exit      shift.Clock
	result    shift.Result
	payment   shift.Payment
	surcharge decimal.Decimal
	total     decimal.Decimal
}

// computeShift runs the full validation + calculation chain for a request.
// Every returned error satisfies shift.IsValidationError.
func (h *Handler) computeShift(req ShiftRequest) (computed, error) {
	date, err := time.Parse(record.DateLayout, req.Fecha)
	if err != nil {
		// unreachable after struct validation; kept as the independent check
		return computed{}, shift.ErrInvalidClock
	}
	if err := shift.ValidateDate(date, h.now()); err != nil {
		return computed{}, err
	}

	entry, err := shift.ParseClock(req.HoraEntrada)
	if err != nil {
		return computed{}, err
	}
	exit, err := shift.ParseClock(req.HoraSalida)
	if err != nil {
		return computed{}, err
	}

	surcharge := decimal.NewFromInt(req.Recargo)
	if !h.rules.ValidSurcharge(surcharge) {
		return computed{}, fmt.Errorf("%w: %s", shift.ErrSurchargeNotAllowed, surcharge)
	}

	result, err := shift.ComputeDuration(entry, exit, date, h.rules)
	if err != nil {
		return computed{}, err
	}

	payment := shift.ComputePayment(result.TotalHours, h.rules)
	return computed{
		date:      date,
		entry:     entry,
		exit:      exit,
		result:    result,
		payment:   payment,
		surcharge: surcharge,
		total:     payment.TotalWith(surcharge),
	}, nil
}

func (c computed) calculationDTO() CalculationDTO {
	return CalculationDTO{
		Horas:            c.result.Hours,
		Minutos:          c.result.Minutes,
		TotalHoras:       c.result.TotalHours.InexactFloat64(),
		HorasFormateadas: c.result.Formatted,
		PagoBase:         c.payment.Base.InexactFloat64(),
		TipoCalculo:      string(c.payment.Kind),
		Recargo:          c.surcharge.InexactFloat64(),
		PagoTotal:        c.total.InexactFloat64(),
	}
}

func (c computed) record() record.Record {
	return record.Record{
		record.ColFecha:     c.date.Format(record.DateLayout),
		record.ColEntrada:   c.entry.Format12(c.date),
		record.ColSalida:    c.exit.Format12(c.date),
		record.ColRecargo:   c.surcharge.String(),
		record.ColHoras:     c.result.Formatted,
		record.ColPagoBase:  money.Format(c.payment.Base),
		record.ColPagoTotal: money.Format(c.total),
	}
}

// decodeShiftRequest decodes and field-validates a shift body. A nil error
// means req is usable; on error the response has already been written.
func (h *Handler) decodeShiftRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger) (ShiftRequest, bool) {
	var req ShiftRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			log.Warn("invalid request fields", slog.String("error", err.Error()))
			writeError(w, r, http.StatusBadRequest, validationMessage(validateErrs), nil)
			return req, false
		}
		writeError(w, r, http.StatusBadRequest, "invalid request", err)
		return req, false
	}
	return req, true
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// PreviewShift computes duration and payment without persisting anything.
func (h *Handler) PreviewShift(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.PreviewShift")

	req, ok := h.decodeShiftRequest(w, r, log)
	if !ok {
		return
	}

	c, err := h.computeShift(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, c.calculationDTO())
}

// CreateShift computes a shift and appends it to the record store.
// The append is a single blocking call with no retry: a failure is
// reported and nothing is stored.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.CreateShift")

	req, ok := h.decodeShiftRequest(w, r, log)
	if !ok {
		return
	}

	c, err := h.computeShift(req)
	if err != nil {
		log.Warn("shift rejected", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	rec := c.record()

	existing, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Error("record store failed", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "record store unavailable", err)
		return
	}
	for _, e := range existing {
		if e[record.ColFecha] == rec[record.ColFecha] && e[record.ColEntrada] == rec[record.ColEntrada] {
			writeError(w, r, http.StatusConflict, ErrDuplicateShift.Error(), nil)
			return
		}
	}

	if err := h.store.Append(r.Context(), rec); err != nil {
		log.Error("failed to append record", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "failed to store record", err)
		return
	}

	shiftsCreated.Inc()
	log.Info("shift stored",
		slog.String("fecha", rec[record.ColFecha]),
		slog.String("tipo_calculo", string(c.payment.Kind)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreateShiftResponse{
		Calculation: c.calculationDTO(),
		Record:      rec,
	})
}

// ListShifts returns all stored records plus summary totals.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.ListShifts")

	records, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Error("record store failed", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "record store unavailable", err)
		return
	}

	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(money.ParseOrZero(rec[record.ColPagoTotal]))
	}

	render.JSON(w, r, ListShiftsResponse{
		Count:       len(records),
		TotalPagado: total.InexactFloat64(),
		Records:     records,
	})
}

// ExportCSV streams every stored record as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.ExportCSV")

	records, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Error("record store failed", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "record store unavailable", err)
		return
	}

	filename := fmt.Sprintf("registros_horarios_%s.csv", h.now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	cols := record.Columns()
	_ = cw.Write(cols)
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = rec[col]
		}
		_ = cw.Write(row)
	}
	cw.Flush()
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListWeeks returns the labeled week windows of a year (default: current).
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid year", err)
			return
		}
		year = parsed
	}

	weeks := calendar.WeeksOfYear(year)
	dtos := make([]WeekDTO, len(weeks))
	for i, wk := range weeks {
		dtos[i] = weekDTO(wk)
	}
	render.JSON(w, r, dtos)
}

// WeekRecords returns the records of the week containing the given date
// (default: today).
func (h *Handler) WeekRecords(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.WeekRecords")

	ref := h.now()
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse(record.DateLayout, raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid start date (use YYYY-MM-DD)", err)
			return
		}
		ref = parsed
	}

	records, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Error("record store failed", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "record store unavailable", err)
		return
	}

	week := calendar.WeekOf(ref)
	matched := calendar.FilterByWeek(records, week)
	render.JSON(w, r, WeekRecordsResponse{
		Week:    weekDTO(week),
		Count:   len(matched),
		Records: matched,
	})
}

// WeeklyStats returns the weekly aggregation for the last N weeks
// (default 4; any positive integer accepted).
func (h *Handler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.WeeklyStats")

	weeksBack := 4
	if raw := r.URL.Query().Get("weeks_back"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, http.StatusBadRequest, "weeks_back must be a positive integer", err)
			return
		}
		weeksBack = parsed
	}

	records, err := h.store.ListAll(r.Context())
	if err != nil {
		log.Error("record store failed", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "record store unavailable", err)
		return
	}

	stats := calendar.AggregateWeekly(records, weeksBack, h.now())
	dtos := make([]WeeklyStatDTO, len(stats))
	for i, s := range stats {
		dtos[i] = weeklyStatDTO(s)
	}
	render.JSON(w, r, dtos)
}

// =============================================================================
// MISC HANDLERS
// =============================================================================

// GetRules returns the business constants for client banners.
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	surcharges := make([]float64, len(h.rules.Surcharges))
	for i, s := range h.rules.Surcharges {
		surcharges[i] = s.InexactFloat64()
	}
	render.JSON(w, r, RulesDTO{
		ValorHora:         h.rules.RatePerHour.InexactFloat64(),
		Bono6h:            h.rules.Bonus6h.InexactFloat64(),
		ToleranciaMinutos: h.rules.ToleranceMinutes,
		MaxHorasTurno:     h.rules.MaxShiftHours,
		Recargos:          surcharges,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
