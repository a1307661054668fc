/*
Package record defines the persisted shift record and its store contract.

PURPOSE:
  A stored shift is an opaque mapping of column name to string value, owned
  entirely by the record store. The rest of the system reads and derives
  values from records but never mutates one in place. Records are created
  once after a successful calculation, appended once, and never updated or
  deleted.

COLUMNS:
  Fecha, Hora Entrada, Hora Salida, Recargo, Horas Trabajadas, Pago Base,
  Pago con Recargo. Columns() gives the canonical order used by schemas
  and exports.

STORE CONTRACT:
  EnsureSchema: create/repair the column layout
  Append:       add one record (append-only, at-most-once; a failed append
                is an error, never silently success)
  ListAll:      every stored record, oldest first
  Reset:        drop every record; only the demo scenario loader calls it

IMPLEMENTATIONS:
  - store/sqlite: production store
  - record/store: in-memory store for tests and dev

SEE ALSO:
  - calendar: consumes []Record for filtering and aggregation
  - api/handlers.go: composes records after a calculation
*/
package record

import (
	"context"
	"time"
)

// Column names, as stored.
const (
	ColFecha     = "Fecha"
	ColEntrada   = "Hora Entrada"
	ColSalida    = "Hora Salida"
	ColRecargo   = "Recargo"
	ColHoras     = "Horas Trabajadas"
	ColPagoBase  = "Pago Base"
	ColPagoTotal = "Pago con Recargo"
)

// DateLayout is the strict format of the Fecha column.
const DateLayout = "2006-01-02"

// Record is one persisted shift: column name to string value.
type Record map[string]string

// Columns returns the canonical column order.
func Columns() []string {
	return []string{ColFecha, ColEntrada, ColSalida, ColRecargo, ColHoras, ColPagoBase, ColPagoTotal}
}

// Date parses the Fecha column strictly. ok is false when the field is
// missing or not in YYYY-MM-DD form; callers skip such records.
func (r Record) Date() (time.Time, bool) {
	raw, present := r[ColFecha]
	if !present {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Clone returns a copy; stores hand out clones so callers can never mutate
// persisted state.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Store handles record persistence. Append-only: no update, no delete.
type Store interface {
	// EnsureSchema verifies the column layout exists, creating it if needed.
	EnsureSchema(ctx context.Context) error

	// Append persists one record. At-most-once: an error means the record
	// was not stored.
	Append(ctx context.Context, r Record) error

	// ListAll returns every record in insertion order.
	ListAll(ctx context.Context) ([]Record, error)

	// Reset removes every record. Normal operation never deletes; this
	// exists for the demo scenario loader and for tests.
	Reset(ctx context.Context) error
}
