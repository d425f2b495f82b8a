// iface.go defines the Catalog interface for dependency injection and
// testing.
//
// The CLI depends on Catalog rather than *Store so commands can be driven
// against an in-memory fake in tests.
package store

import "github.com/daviddao/rpndate/pkg/date"

// Catalog defines the full set of store operations.
// The concrete *Store type implements this interface.
type Catalog interface {
	// Close closes the database connection.
	Close() error

	// SaveRecord catalogues a date under a label.
	SaveRecord(label string, d *date.Date) (*Record, error)

	// GetRecord retrieves a record by ID.
	GetRecord(id string) (*Record, error)

	// ListRecords returns every record ordered by valid time.
	ListRecords() ([]Record, error)

	// ListByLabel returns the records for one label ordered by valid time.
	ListByLabel(label string) ([]Record, error)

	// ListValidBetween returns records valid within a range's bounds.
	ListValidBetween(r *date.Range) ([]Record, error)

	// DeleteRecord removes a record by ID.
	DeleteRecord(id string) error

	// CountRecords returns the number of catalogued records.
	CountRecords() int64
}

// Compile-time check that *Store implements Catalog.
var _ Catalog = (*Store)(nil)
