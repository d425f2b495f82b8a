package store

import (
	"time"

	"github.com/daviddao/rpndate/pkg/date"
	"github.com/daviddao/rpndate/pkg/stamp"
)

// Record is one catalogued record header: a label (typically the field
// name, e.g. "TT" or "GZ") plus the RPN time fields it was written with.
// Datev is stored so records can be queried by valid time; it is derived
// from Dateo, Deet and Npas with the default codec at save time.
type Record struct {
	ID        string      `json:"id" yaml:"id"`
	Label     string      `json:"label" yaml:"label"`
	Dateo     stamp.Stamp `json:"dateo" yaml:"dateo"`
	Deet      float64     `json:"deet" yaml:"deet"`
	Npas      float64     `json:"npas" yaml:"npas"`
	Datev     stamp.Stamp `json:"datev" yaml:"datev"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
}

// Compile-time check that *Record can seed a date.Date.
var _ date.Stepped = (*Record)(nil)

// OriginStamp implements date.Stepped.
func (r *Record) OriginStamp() stamp.Stamp { return r.Dateo }

// StepLength implements date.Stepped.
func (r *Record) StepLength() float64 { return r.Deet }

// StepCount implements date.Stepped.
func (r *Record) StepCount() float64 { return r.Npas }

// Date rebuilds the record's time fields as a date.Date.
func (r *Record) Date() *date.Date { return date.Copy(r) }

// Dates converts records to dates, keeping their order.
func Dates(recs []Record) []*date.Date {
	out := make([]*date.Date, len(recs))
	for i := range recs {
		out[i] = recs[i].Date()
	}
	return out
}
