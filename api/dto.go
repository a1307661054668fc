/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculation core from the external API contract. Monetary values go
  out as plain numbers; the formatted "$ 12,345" strings live only inside
  stored records.

NAMING CONVENTION:
  - *Request:  Request body types from clients
  - *Response: Response wrappers
  - *DTO:      Embedded response fragments

VALIDATION:
  Struct tags carry the field-level rules (required, date/clock formats);
  handlers run them through go-playground/validator. Business validation
  (schedule order, shift length, surcharge set) stays in the shift package.

SEE ALSO:
  - handlers.go: Uses these types
  - shift: the calculation core behind them
*/
package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/turno/shift-engine/calendar"
	"github.com/turno/shift-engine/record"
)

// =============================================================================
// REQUESTS
// =============================================================================

// ShiftRequest is a candidate shift, for preview or creation.
type ShiftRequest struct {
	Fecha       string `json:"fecha" validate:"required,datetime=2006-01-02"`
	HoraEntrada string `json:"hora_entrada" validate:"required,datetime=15:04"`
	HoraSalida  string `json:"hora_salida" validate:"required,datetime=15:04"`
	Recargo     int64  `json:"recargo" validate:"min=0"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// CalculationDTO is the computed outcome for one shift.
type CalculationDTO struct {
	Horas            int     `json:"horas"`
	Minutos          int     `json:"minutos"`
	TotalHoras       float64 `json:"total_horas"`
	HorasFormateadas string  `json:"horas_formateadas"`
	PagoBase         float64 `json:"pago_base"`
	TipoCalculo      string  `json:"tipo_calculo"`
	Recargo          float64 `json:"recargo"`
	PagoTotal        float64 `json:"pago_total"`
}

// CreateShiftResponse returns the calculation plus the record as stored.
type CreateShiftResponse struct {
	Calculation CalculationDTO `json:"calculation"`
	Record      record.Record  `json:"record"`
}

// ListShiftsResponse returns every stored record with summary totals.
type ListShiftsResponse struct {
	Count       int             `json:"count"`
	TotalPagado float64         `json:"total_pagado"`
	Records     []record.Record `json:"records"`
}

// WeekDTO represents one week window.
type WeekDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

func weekDTO(w calendar.WeekWindow) WeekDTO {
	return WeekDTO{
		Start: w.Start.Format(record.DateLayout),
		End:   w.End.Format(record.DateLayout),
		Label: w.Label,
	}
}

// WeekRecordsResponse returns the records of one week.
type WeekRecordsResponse struct {
	Week    WeekDTO         `json:"week"`
	Count   int             `json:"count"`
	Records []record.Record `json:"records"`
}

// DayStatDTO is one weekday bucket of a weekly statistic.
type DayStatDTO struct {
	Dia       string  `json:"dia"`
	Total     float64 `json:"total"`
	Registros int     `json:"registros"`
	Promedio  float64 `json:"promedio"`
}

// WeeklyStatDTO is the aggregation of one week.
type WeeklyStatDTO struct {
	Week           WeekDTO      `json:"week"`
	TotalPagado    float64      `json:"total_pagado"`
	Registros      int          `json:"registros"`
	Dias           []DayStatDTO `json:"dias"`
	PromedioDiario float64      `json:"promedio_diario"`
	DiasTrabajados int          `json:"dias_trabajados"`
	PagoMaximo     float64      `json:"pago_maximo"`
	PagoMinimo     float64      `json:"pago_minimo"`
}

func weeklyStatDTO(s calendar.WeeklyStat) WeeklyStatDTO {
	days := make([]DayStatDTO, 7)
	for i := 0; i < 7; i++ {
		days[i] = DayStatDTO{
			Dia:       calendar.DayNames[i],
			Total:     s.DayTotals[i].InexactFloat64(),
			Registros: s.DayCounts[i],
			Promedio:  s.DayAverage(i).InexactFloat64(),
		}
	}
	return WeeklyStatDTO{
		Week:           weekDTO(s.Week),
		TotalPagado:    s.Total.InexactFloat64(),
		Registros:      s.Count,
		Dias:           days,
		PromedioDiario: s.AveragePerDay.InexactFloat64(),
		DiasTrabajados: s.DaysWorked,
		PagoMaximo:     s.MaxPay.InexactFloat64(),
		PagoMinimo:     s.MinPay.InexactFloat64(),
	}
}

// RulesDTO exposes the business constants for client banners.
type RulesDTO struct {
	ValorHora         float64   `json:"valor_hora"`
	Bono6h            float64   `json:"bono_6h"`
	ToleranciaMinutos int       `json:"tolerancia_minutos"`
	MaxHorasTurno     int       `json:"max_horas_turno"`
	Recargos          []float64 `json:"recargos"`
}

// ErrorResponse is the error body returned for any failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// validationMessage flattens validator errors into one readable reason.
func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", err.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("field %s has an invalid format", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s is below the minimum", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
