/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Shift preview and creation (validation, duplicates, store failures)
- Record listing, CSV export
- Week windows and weekly statistics endpoints
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turno/shift-engine/record"
	"github.com/turno/shift-engine/record/store"
	"github.com/turno/shift-engine/shift"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// testToday is a Sunday; the surrounding week starts Monday the 9th.
var testToday = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(mem, shift.DefaultRules(), logger)
	h.now = func() time.Time { return testToday }

	srv := httptest.NewServer(NewRouter(h, logger))
	t.Cleanup(srv.Close)
	return srv, mem
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const validShift = `{"fecha":"2025-06-10","hora_entrada":"08:00","hora_salida":"16:00","recargo":5000}`

// =============================================================================
// PREVIEW / CREATE TESTS
// =============================================================================

func TestPreviewShift_ComputesWithoutPersisting(t *testing.T) {
	srv, mem := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shifts/preview", validShift)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	calc := decode[CalculationDTO](t, resp)
	// 8 hours: bonus + 2h * 15,500 = 131,000; plus 5,000 surcharge
	assert.Equal(t, "08:00", calc.HorasFormateadas)
	assert.Equal(t, "overtime", calc.TipoCalculo)
	assert.InDelta(t, 131000, calc.PagoBase, 0.01)
	assert.InDelta(t, 136000, calc.PagoTotal, 0.01)

	records, err := mem.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records, "preview must not persist")
}

func TestCreateShift_AppendsFormattedRecord(t *testing.T) {
	srv, mem := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shifts", validShift)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[CreateShiftResponse](t, resp)
	assert.Equal(t, "2025-06-10", created.Record[record.ColFecha])
	assert.Equal(t, "08:00 AM", created.Record[record.ColEntrada])
	assert.Equal(t, "04:00 PM", created.Record[record.ColSalida])
	assert.Equal(t, "5000", created.Record[record.ColRecargo])
	assert.Equal(t, "08:00", created.Record[record.ColHoras])
	assert.Equal(t, "$ 131,000", created.Record[record.ColPagoBase])
	assert.Equal(t, "$ 136,000", created.Record[record.ColPagoTotal])

	records, err := mem.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestCreateShift_ValidationFailures(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"crossed schedule", `{"fecha":"2025-06-10","hora_entrada":"17:00","hora_salida":"08:00","recargo":0}`},
		{"too long", `{"fecha":"2025-06-10","hora_entrada":"05:00","hora_salida":"21:30","recargo":0}`},
		{"future date", `{"fecha":"2025-06-16","hora_entrada":"08:00","hora_salida":"16:00","recargo":0}`},
		{"surcharge not in set", `{"fecha":"2025-06-10","hora_entrada":"08:00","hora_salida":"16:00","recargo":1234}`},
		{"missing fields", `{"fecha":"2025-06-10"}`},
		{"bad date format", `{"fecha":"10/06/2025","hora_entrada":"08:00","hora_salida":"16:00","recargo":0}`},
		{"bad clock format", `{"fecha":"2025-06-10","hora_entrada":"8am","hora_salida":"16:00","recargo":0}`},
		{"not json", `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/shifts", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[ErrorResponse](t, resp)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCreateShift_DuplicateRejected(t *testing.T) {
	srv, mem := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/shifts", validShift)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same date and entry time, different exit: still a duplicate
	dup := `{"fecha":"2025-06-10","hora_entrada":"08:00","hora_salida":"17:00","recargo":0}`
	resp = postJSON(t, srv.URL+"/api/shifts", dup)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	records, err := mem.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// failingStore simulates an unavailable record store.
type failingStore struct{}

func (failingStore) EnsureSchema(context.Context) error { return nil }
func (failingStore) Append(context.Context, record.Record) error {
	return errors.New("store down")
}
func (failingStore) ListAll(context.Context) ([]record.Record, error) {
	return nil, errors.New("store down")
}
func (failingStore) Reset(context.Context) error { return errors.New("store down") }

func TestCreateShift_StoreFailurePropagates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(failingStore{}, shift.DefaultRules(), logger)
	h.now = func() time.Time { return testToday }
	srv := httptest.NewServer(NewRouter(h, logger))
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/shifts", validShift)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

// =============================================================================
// LISTING / EXPORT TESTS
// =============================================================================

func seedWeek(t *testing.T, mem *store.Memory) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []record.Record{
		{record.ColFecha: "2025-06-09", record.ColEntrada: "08:00 AM", record.ColSalida: "02:00 PM",
			record.ColRecargo: "0", record.ColHoras: "06:00", record.ColPagoBase: "$ 100,000", record.ColPagoTotal: "$ 100,000"},
		{record.ColFecha: "2025-06-10", record.ColEntrada: "08:00 AM", record.ColSalida: "04:00 PM",
			record.ColRecargo: "5000", record.ColHoras: "08:00", record.ColPagoBase: "$ 131,000", record.ColPagoTotal: "$ 136,000"},
		{record.ColFecha: "2025-06-02", record.ColEntrada: "09:00 AM", record.ColSalida: "12:00 PM",
			record.ColRecargo: "0", record.ColHoras: "03:00", record.ColPagoBase: "$ 46,500", record.ColPagoTotal: "$ 46,500"},
	} {
		require.NoError(t, mem.Append(ctx, r))
	}
}

func TestListShifts_SummaryTotals(t *testing.T) {
	srv, mem := newTestServer(t)
	seedWeek(t, mem)

	resp := get(t, srv.URL+"/api/shifts")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[ListShiftsResponse](t, resp)
	assert.Equal(t, 3, list.Count)
	assert.InDelta(t, 282500, list.TotalPagado, 0.01)
	assert.Len(t, list.Records, 3)
}

func TestExportCSV_AllRecords(t *testing.T) {
	srv, mem := newTestServer(t)
	seedWeek(t, mem)

	resp := get(t, srv.URL+"/api/shifts/export")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "registros_horarios_20250615.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 4) // header + 3 records
	assert.Equal(t, strings.Join(record.Columns(), ","), lines[0])
	assert.Contains(t, lines[1], "2025-06-09")
	assert.Contains(t, lines[1], `"$ 100,000"`)
}

// =============================================================================
// CALENDAR ENDPOINT TESTS
// =============================================================================

func TestListWeeks_ForYear(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv.URL+"/api/weeks?year=2025")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	weeks := decode[[]WeekDTO](t, resp)
	require.NotEmpty(t, weeks)
	assert.Equal(t, "2024-12-30", weeks[0].Start)
	assert.True(t, strings.HasPrefix(weeks[0].Label, "Semana 1 ("))

	resp = get(t, srv.URL+"/api/weeks?year=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeekRecords_FiltersByWindow(t *testing.T) {
	srv, mem := newTestServer(t)
	seedWeek(t, mem)

	// Week of June 9-15 holds two of the seeded records
	resp := get(t, srv.URL+"/api/weeks/records?start=2025-06-11")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wr := decode[WeekRecordsResponse](t, resp)
	assert.Equal(t, "2025-06-09", wr.Week.Start)
	assert.Equal(t, 2, wr.Count)
}

func TestWeeklyStats_NewestFirst(t *testing.T) {
	srv, mem := newTestServer(t)
	seedWeek(t, mem)

	resp := get(t, srv.URL+"/api/stats/weekly?weeks_back=4")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decode[[]WeeklyStatDTO](t, resp)
	require.Len(t, stats, 2)
	assert.Equal(t, "2025-06-09", stats[0].Week.Start)
	assert.Equal(t, 2, stats[0].Registros)
	assert.InDelta(t, 236000, stats[0].TotalPagado, 0.01)
	assert.Equal(t, "2025-06-02", stats[1].Week.Start)

	resp = get(t, srv.URL+"/api/stats/weekly?weeks_back=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRules_ExposesConstants(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv.URL+"/api/rules")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rules := decode[RulesDTO](t, resp)
	assert.InDelta(t, 15500, rules.ValorHora, 0.01)
	assert.InDelta(t, 100000, rules.Bono6h, 0.01)
	assert.Equal(t, 1, rules.ToleranciaMinutos)
	assert.Len(t, rules.Recargos, 9)
}
