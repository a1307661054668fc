/*
Package sqlite provides a SQLite-backed implementation of record.Store.

PURPOSE:
  Durable stand-in for the remote spreadsheet the original system wrote
  to. Same contract: ensure the column layout, append rows, list them all.
  Values are stored exactly as the strings that would land in the sheet,
  including the formatted currency fields.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the registros table
  - No per-row DELETE statements on the registros table
  A failed INSERT surfaces as an error; it is never reported as success.
  Reset (drop everything) exists only for the demo scenario loader.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  if err := store.EnsureSchema(ctx); err != nil { ... }

SEE ALSO:
  - record: interface definition and column names
  - record/store: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/turno/shift-engine/record"
)

// Store implements record.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at the given path.
// Use ":memory:" for an in-memory database. Open failure is a
// constructor-time error; there is no lazy connection.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// EnsureSchema creates the registros table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := `
	CREATE TABLE IF NOT EXISTS registros (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		fecha            TEXT NOT NULL,
		hora_entrada     TEXT NOT NULL,
		hora_salida      TEXT NOT NULL,
		recargo          TEXT NOT NULL,
		horas_trabajadas TEXT NOT NULL,
		pago_base        TEXT NOT NULL,
		pago_total       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_registros_fecha ON registros(fecha);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Append inserts one record. Append-only; at-most-once.
func (s *Store) Append(ctx context.Context, r record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registros (fecha, hora_entrada, hora_salida, recargo, horas_trabajadas, pago_base, pago_total)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r[record.ColFecha],
		r[record.ColEntrada],
		r[record.ColSalida],
		r[record.ColRecargo],
		r[record.ColHoras],
		r[record.ColPagoBase],
		r[record.ColPagoTotal],
	)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// ListAll returns every record in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT fecha, hora_entrada, hora_salida, recargo, horas_trabajadas, pago_base, pago_total
		FROM registros ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		var fecha, entrada, salida, recargo, horas, pagoBase, pagoTotal string
		if err := rows.Scan(&fecha, &entrada, &salida, &recargo, &horas, &pagoBase, &pagoTotal); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record.Record{
			record.ColFecha:     fecha,
			record.ColEntrada:   entrada,
			record.ColSalida:    salida,
			record.ColRecargo:   recargo,
			record.ColHoras:     horas,
			record.ColPagoBase:  pagoBase,
			record.ColPagoTotal: pagoTotal,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Reset removes every record and restarts the id sequence. Used by the
// demo scenario loader only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM registros`); err != nil {
		return fmt.Errorf("failed to reset records: %w", err)
	}
	// sqlite_sequence row may not exist yet on a fresh database
	_, _ = s.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'registros'`)
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
