package date

import (
	"fmt"
	"iter"
	"math"
)

// Range is a cursor over the closed interval [start, end] moving delta
// hours per step. The sign of delta gives the direction.
//
// A Range owns copies of its bounds, so later changes to the Dates passed
// to NewRange do not leak in. Next moves the cursor and reports
// ErrExhausted once the cursor has passed end, that is once
// (end - cursor) * delta < 0.
//
// A delta whose sign points away from end is accepted; the first Next
// already lands beyond end, so such a range produces nothing.
type Range struct {
	start *Date
	end   *Date
	delta float64
	now   *Date
	done  bool
}

// NewRange builds a Range from start to end stepping delta hours. The cursor
// starts at start, so the first Next returns start + delta. Use Iter or All
// to walk the range from start itself.
func NewRange(start, end *Date, delta float64) (*Range, error) {
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: range bounds must be non-nil Dates", ErrInvalidArgumentType)
	}
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nil, fmt.Errorf("%w: %v hours", ErrInvalidStep, delta)
	}
	return &Range{
		start: Copy(start),
		end:   Copy(end),
		delta: delta,
		now:   Copy(start),
	}, nil
}

// Start returns a copy of the first bound.
func (r *Range) Start() *Date { return Copy(r.start) }

// End returns a copy of the last bound.
func (r *Range) End() *Date { return Copy(r.end) }

// Step returns the increment in hours.
func (r *Range) Step() float64 { return r.delta }

// Cursor returns a copy of the current position.
func (r *Range) Cursor() *Date { return Copy(r.now) }

// Length returns |end - start| in hours.
func (r *Range) Length() float64 { return math.Abs(r.end.Sub(r.start)) }

// Remaining returns |end - cursor| in hours.
func (r *Range) Remaining() float64 { return math.Abs(r.end.Sub(r.now)) }

// Next advances the cursor by one step and returns a copy of it. When the
// step carries the cursor past end, Next returns ErrExhausted; further calls
// keep returning ErrExhausted without moving until Reset.
func (r *Range) Next() (*Date, error) {
	if r.done {
		return nil, ErrExhausted
	}
	r.now.AddHours(r.delta)
	if r.end.Sub(r.now)*r.delta < 0 {
		r.done = true
		return nil, ErrExhausted
	}
	return Copy(r.now), nil
}

// Reset puts the cursor back on start. The next call to Next returns
// start + delta; this is not the same as beginning a traversal with Iter.
func (r *Range) Reset() {
	r.now = Copy(r.start)
	r.done = false
}

// Iter begins an independent traversal. The returned Range has its own
// copies of the bounds and its cursor one step before start, so its first
// Next returns start itself. r is not modified, and every call to Iter
// yields the same sequence.
func (r *Range) Iter() *Range {
	return &Range{
		start: Copy(r.start),
		end:   Copy(r.end),
		delta: r.delta,
		now:   r.start.Minus(r.delta),
	}
}

// All returns an independent traversal as an iterator:
//
//	for d := range r.All() { ... }
func (r *Range) All() iter.Seq[*Date] {
	return func(yield func(*Date) bool) {
		it := r.Iter()
		for {
			d, err := it.Next()
			if err != nil {
				return
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Dates collects an independent traversal into a slice.
func (r *Range) Dates() []*Date {
	var out []*Date
	for d := range r.All() {
		out = append(out, d)
	}
	return out
}

func (r *Range) String() string {
	return fmt.Sprintf("from:(%s), to:(%s), delta:%g at (%s)",
		short(r.start), short(r.end), r.delta, short(r.now))
}

func short(d *Date) string {
	ymd, hms := d.Print()
	return fmt.Sprintf("%08d,%08d", ymd, hms)
}
