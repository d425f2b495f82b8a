// Package store keeps a SQLite catalogue of record time fields.
//
// Each row is a labelled (dateo, deet, npas) triple plus its valid stamp,
// so the catalogue can answer "which records are valid in this range"
// without decoding every entry. SQLite runs in WAL mode so several CLI
// invocations can share one catalogue file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daviddao/rpndate/pkg/date"
	"github.com/daviddao/rpndate/pkg/stamp"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("store: record not found")

// Store manages all SQLite operations with WAL mode for concurrent access.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id         TEXT PRIMARY KEY,
		label      TEXT NOT NULL,
		dateo      INTEGER NOT NULL,
		deet       REAL NOT NULL DEFAULT 0,
		npas       REAL NOT NULL DEFAULT 0,
		datev      INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_datev ON records(datev);
	CREATE INDEX IF NOT EXISTS idx_records_label ON records(label, datev);
	`
	_, err := s.db.Exec(schema)
	return err
}

const recordColumns = `id, label, dateo, deet, npas, datev, created_at`

// SaveRecord catalogues d under label and returns the stored record.
func (s *Store) SaveRecord(label string, d *date.Date) (*Record, error) {
	if label == "" {
		return nil, fmt.Errorf("save record: empty label")
	}
	rec := &Record{
		ID:        uuid.NewString(),
		Label:     label,
		Dateo:     d.OriginStamp(),
		Deet:      d.StepLength(),
		Npas:      d.StepCount(),
		Datev:     d.Valid(),
		CreatedAt: time.Now().UTC(),
	}
	err := writeBackoff.do(func() error {
		_, err := s.db.Exec(
			`INSERT INTO records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Label, int64(rec.Dateo), rec.Deet, rec.Npas, int64(rec.Datev),
			rec.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save record %s: %w", label, err)
	}
	return rec, nil
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(id string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// ListRecords returns every record ordered by valid time, then label.
func (s *Store) ListRecords() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT ` + recordColumns + ` FROM records ORDER BY datev ASC, label ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByLabel returns the records catalogued under label, by valid time.
func (s *Store) ListByLabel(label string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT `+recordColumns+` FROM records WHERE label = ? ORDER BY datev ASC, id ASC`,
		label,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListValidBetween returns records whose valid time lies in the closed
// interval spanned by r's bounds, whichever way r steps.
func (s *Store) ListValidBetween(r *date.Range) ([]Record, error) {
	lo, hi := r.Start().Valid(), r.End().Valid()
	if hi < lo {
		lo, hi = hi, lo
	}
	rows, err := s.db.Query(
		`SELECT `+recordColumns+` FROM records WHERE datev BETWEEN ? AND ?
		 ORDER BY datev ASC, label ASC, id ASC`,
		int64(lo), int64(hi),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// DeleteRecord removes a record. Deleting an unknown ID returns ErrNotFound.
func (s *Store) DeleteRecord(id string) error {
	var n int64
	err := writeBackoff.do(func() error {
		res, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CountRecords returns the number of catalogued records.
func (s *Store) CountRecords() int64 {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var dateo, datev int64
	var createdStr string
	if err := row.Scan(&rec.ID, &rec.Label, &dateo, &rec.Deet, &rec.Npas, &datev, &createdStr); err != nil {
		return nil, err
	}
	rec.Dateo, rec.Datev = stamp.Stamp(dateo), stamp.Stamp(datev)
	var parseErr error
	rec.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parse created_at for record %s: %w", rec.ID, parseErr)
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}
