// Package coverage checks a set of record dates against the time grid of a
// date range.
//
// A forecast run is expected to write one record per output hour: the grid
// is an independent traversal of a date.Range. Check matches the dates a
// file actually holds against that grid by valid stamp, so a record stored
// as (dateo, deet=3600, npas=12) matches a grid point written as
// (dateo+12h, deet=0, npas=0). The range is complete when no grid point is
// missing.
package coverage

import (
	"sort"

	"github.com/daviddao/rpndate/pkg/date"
	"github.com/daviddao/rpndate/pkg/stamp"
)

// Report is the result of a coverage check.
type Report struct {
	Complete bool         `json:"complete" yaml:"complete"`
	Expected int          `json:"expected" yaml:"expected"`
	Present  []*date.Date `json:"present" yaml:"present"`
	Missing  []*date.Date `json:"missing,omitempty" yaml:"missing,omitempty"`
	// Offgrid lists dates inside or outside the range that fall on no grid
	// point, in valid-time order.
	Offgrid []*date.Date `json:"offgrid,omitempty" yaml:"offgrid,omitempty"`
}

// Check walks an independent traversal of r and sorts every grid point into
// Present or Missing depending on whether some date in have shares its
// valid stamp. r itself is not advanced.
func Check(r *date.Range, have []*date.Date) Report {
	byValid := make(map[stamp.Stamp]*date.Date, len(have))
	for _, d := range have {
		if _, dup := byValid[d.Valid()]; !dup {
			byValid[d.Valid()] = d
		}
	}

	rep := Report{Complete: true}
	onGrid := make(map[stamp.Stamp]bool)
	for want := range r.All() {
		rep.Expected++
		v := want.Valid()
		onGrid[v] = true
		if got, ok := byValid[v]; ok {
			rep.Present = append(rep.Present, got)
		} else {
			rep.Complete = false
			rep.Missing = append(rep.Missing, want)
		}
	}

	for _, d := range have {
		if !onGrid[d.Valid()] {
			rep.Offgrid = append(rep.Offgrid, d)
		}
	}
	sort.SliceStable(rep.Offgrid, func(i, j int) bool {
		return rep.Offgrid[i].Before(rep.Offgrid[j])
	})
	return rep
}

// Span returns the earliest and latest valid dates in have. ok is false when
// have is empty.
func Span(have []*date.Date) (first, last *date.Date, ok bool) {
	for _, d := range have {
		if first == nil || d.Before(first) {
			first = d
		}
		if last == nil || d.After(last) {
			last = d
		}
	}
	return first, last, first != nil
}
