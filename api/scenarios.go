/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the record store with
	realistic data for testing and demos. Each scenario resets the store
	and appends shifts computed through the real calculator, so amounts
	and formats always match what the create endpoint would produce.

AVAILABLE SCENARIOS:

	semana-tipica:  Five weekday shifts in the current week, one surcharge
	mes-variado:    Four weeks mixing short days, 6-hour days and overtime
	horas-extra:    A heavy week, every shift past the 6-hour bonus

HOW SCENARIOS WORK:
 1. Reset the record store (clear all data)
 2. Build shift inputs relative to today
 3. Run each through the validation + calculation chain
 4. Append the resulting records

USAGE VIA API:

	GET  /api/scenarios
	POST /api/scenarios/load
	{"scenario_id": "semana-tipica"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create a shift-list function: xxxShifts(today)
 3. Add a case to loadScenario

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: computeShift, the shared calculation chain
  - record: Store.Reset, the only caller of which is this file
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/turno/shift-engine/record"
)

// =============================================================================
// SCENARIO CATALOG
// =============================================================================

// Scenario describes one loadable demo dataset.
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var scenarios = []Scenario{
	{
		ID:          "semana-tipica",
		Name:        "Semana típica",
		Description: "Five weekday shifts in the current week, one with a surcharge.",
	},
	{
		ID:          "mes-variado",
		Name:        "Mes variado",
		Description: "Four weeks mixing short days, exact 6-hour days and overtime.",
	},
	{
		ID:          "horas-extra",
		Name:        "Horas extra",
		Description: "A heavy week where every shift runs past the 6-hour bonus.",
	},
}

// demoShift is one scenario entry before calculation. Offset counts days
// back from today so scenarios stay valid regardless of the current date.
type demoShift struct {
	daysAgo int
	entrada string
	salida  string
	recargo int64
}

func typicalWeekShifts(today time.Time) []demoShift {
	// Walk back to the most recent Monday, then fill the weekdays that
	// have already happened. weekday 0 = Sunday.
	sinceMonday := (int(today.Weekday()) + 6) % 7
	var shifts []demoShift
	for d := sinceMonday; d >= 0; d-- {
		if wd := today.AddDate(0, 0, -d).Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		shifts = append(shifts, demoShift{daysAgo: d, entrada: "08:00", salida: "14:00"})
	}
	if len(shifts) > 0 {
		// Last weekday gets a surcharge and a longer day
		shifts[len(shifts)-1] = demoShift{
			daysAgo: shifts[len(shifts)-1].daysAgo,
			entrada: "08:00", salida: "16:30", recargo: 10000,
		}
	}
	return shifts
}

func variedMonthShifts(today time.Time) []demoShift {
	var shifts []demoShift
	for week := 0; week < 4; week++ {
		base := week * 7
		shifts = append(shifts,
			demoShift{daysAgo: base + 2, entrada: "09:00", salida: "12:00"},
			demoShift{daysAgo: base + 3, entrada: "08:00", salida: "14:00"},
			demoShift{daysAgo: base + 4, entrada: "07:00", salida: "15:30", recargo: 5000},
		)
	}
	return shifts
}

func overtimeWeekShifts(_ time.Time) []demoShift {
	return []demoShift{
		{daysAgo: 5, entrada: "06:00", salida: "16:00"},
		{daysAgo: 4, entrada: "07:00", salida: "15:30", recargo: 5000},
		{daysAgo: 3, entrada: "06:30", salida: "17:00", recargo: 15000},
		{daysAgo: 2, entrada: "08:00", salida: "18:00"},
		{daysAgo: 1, entrada: "07:00", salida: "16:00"},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// loadScenario resets the store and appends the scenario's shifts. Every
// shift goes through computeShift so stored records are bit-identical to
// what CreateShift would have produced.
func (h *Handler) loadScenario(ctx context.Context, id string) (int, error) {
	today := h.now()

	var shifts []demoShift
	switch id {
	case "semana-tipica":
		shifts = typicalWeekShifts(today)
	case "mes-variado":
		shifts = variedMonthShifts(today)
	case "horas-extra":
		shifts = overtimeWeekShifts(today)
	default:
		return 0, fmt.Errorf("unknown scenario: %s", id)
	}

	if err := h.store.Reset(ctx); err != nil {
		return 0, fmt.Errorf("failed to reset store: %w", err)
	}

	loaded := 0
	for _, s := range shifts {
		req := ShiftRequest{
			Fecha:       today.AddDate(0, 0, -s.daysAgo).Format(record.DateLayout),
			HoraEntrada: s.entrada,
			HoraSalida:  s.salida,
			Recargo:     s.recargo,
		}
		c, err := h.computeShift(req)
		if err != nil {
			return loaded, fmt.Errorf("scenario shift %s rejected: %w", req.Fecha, err)
		}
		if err := h.store.Append(ctx, c.record()); err != nil {
			return loaded, fmt.Errorf("failed to append scenario shift: %w", err)
		}
		loaded++
	}
	return loaded, nil
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns the demo scenario catalog.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, scenarios)
}

// LoadScenarioRequest selects a scenario by id.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// LoadScenarioResponse reports what was loaded.
type LoadScenarioResponse struct {
	ScenarioID string `json:"scenario_id"`
	Loaded     int    `json:"loaded"`
}

// LoadScenario resets the store and populates it with the named scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	log := h.opLog(r, "api.LoadScenario")

	var req LoadScenarioRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "scenario_id is required", nil)
		return
	}

	known := false
	for _, s := range scenarios {
		if s.ID == req.ScenarioID {
			known = true
			break
		}
	}
	if !known {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	loaded, err := h.loadScenario(r.Context(), req.ScenarioID)
	if err != nil {
		log.Error("failed to load scenario", slog.String("error", err.Error()))
		writeError(w, r, http.StatusBadGateway, "failed to load scenario", err)
		return
	}

	log.Info("scenario loaded",
		slog.String("scenario_id", req.ScenarioID),
		slog.Int("records", loaded))
	render.JSON(w, r, LoadScenarioResponse{ScenarioID: req.ScenarioID, Loaded: loaded})
}
