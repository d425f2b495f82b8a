// Package date models the time metadata of RPN standard file records.
//
// A record does not store its validity time directly. It stores an origin
// stamp (dateo), a time step length in seconds (deet) and a number of steps
// (npas). The valid instant (datev) is derived:
//
//	datev = dateo + deet*npas seconds
//
// Date keeps the three base fields and recomputes datev from them on every
// read, so datev always reflects the latest mutation. There is no way to set
// datev; callers change it only by moving dateo, deet or npas.
//
// Range walks a closed interval of Dates at a fixed number of hours per
// step. See Range and Range.Iter for the exact traversal rules.
//
// Note: neither type is goroutine-safe. Each value is meant to be owned by
// one caller; wrap it in your own lock if you share it.
package date

import (
	"fmt"
	"time"

	"github.com/daviddao/rpndate/pkg/stamp"
)

// secondsPerHour is also the step length AddHours falls back to when a Date
// has no step length yet.
const secondsPerHour = 3600.0

// Stepped is anything that carries an origin stamp and RPN step parameters.
// *Date implements it, and so do catalogue records in package store.
type Stepped interface {
	OriginStamp() stamp.Stamp
	StepLength() float64
	StepCount() float64
}

// Date is an RPN date: an origin stamp plus a time-stepping scheme. The zero
// value is the Default codec's epoch with no steps.
type Date struct {
	origin stamp.Stamp
	deet   float64
	npas   float64
	codec  stamp.Codec
}

// Compile-time check that *Date implements Stepped.
var _ Stepped = (*Date)(nil)

// Option overrides a construction default.
type Option func(*options)

type options struct {
	deet  *float64
	npas  *float64
	codec stamp.Codec
}

// WithStepLength sets deet, the step length in seconds.
func WithStepLength(seconds float64) Option {
	return func(o *options) { o.deet = &seconds }
}

// WithStepCount sets npas, the number of steps since the origin.
func WithStepCount(n float64) Option {
	return func(o *options) { o.npas = &n }
}

// WithCodec selects the stamp codec. A nil codec leaves the default alone.
func WithCodec(c stamp.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) apply(d *Date) *Date {
	if o.codec != nil {
		d.codec = o.codec
	}
	if o.deet != nil {
		d.deet = *o.deet
	}
	if o.npas != nil {
		d.npas = *o.npas
	}
	return d
}

// FromStamp builds a Date whose origin is s.
func FromStamp(s stamp.Stamp, opts ...Option) *Date {
	return collect(opts).apply(&Date{origin: s})
}

// FromPrint builds a Date from a packed YYYYMMDD date and HHMMSShh time.
func FromPrint(ymd, hms int, opts ...Option) (*Date, error) {
	o := collect(opts)
	s, err := codecOrDefault(o.codec).Encode(ymd, hms)
	if err != nil {
		return nil, err
	}
	return o.apply(&Date{origin: s}), nil
}

// FromTime builds a Date from a calendar time. The time is converted to UTC
// and truncated to centiseconds.
func FromTime(t time.Time, opts ...Option) (*Date, error) {
	o := collect(opts)
	s, err := stamp.FromTime(codecOrDefault(o.codec), t)
	if err != nil {
		return nil, err
	}
	return o.apply(&Date{origin: s}), nil
}

// Copy builds an independent Date from the origin and step fields of src.
// When src is a *Date its codec is kept unless an option replaces it.
func Copy(src Stepped, opts ...Option) *Date {
	d := &Date{
		origin: src.OriginStamp(),
		deet:   src.StepLength(),
		npas:   src.StepCount(),
	}
	if sd, ok := src.(*Date); ok {
		d.codec = sd.codec
	}
	return collect(opts).apply(d)
}

// New builds a Date from any supported source. Sources are tried from the
// most specific shape to the least:
//
//	*Date, Date     copy of origin and step fields
//	time.Time       FromTime
//	Stepped         Copy
//	stamp.Stamp     FromStamp; int and int64 are taken as stamps too
//
// Anything else fails with ErrInvalidArgumentType.
func New(src any, opts ...Option) (*Date, error) {
	switch v := src.(type) {
	case *Date:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *Date", ErrInvalidArgumentType)
		}
		return Copy(v, opts...), nil
	case Date:
		return Copy(&v, opts...), nil
	case time.Time:
		return FromTime(v, opts...)
	case Stepped:
		return Copy(v, opts...), nil
	case stamp.Stamp:
		return FromStamp(v, opts...), nil
	case int64:
		return FromStamp(stamp.Stamp(v), opts...), nil
	case int:
		return FromStamp(stamp.Stamp(v), opts...), nil
	default:
		return nil, fmt.Errorf("%w: cannot build a Date from %T", ErrInvalidArgumentType, src)
	}
}

func codecOrDefault(c stamp.Codec) stamp.Codec {
	if c == nil {
		return stamp.Default
	}
	return c
}

// Codec returns the stamp codec d computes with.
func (d *Date) Codec() stamp.Codec { return codecOrDefault(d.codec) }

// OriginStamp returns dateo, the stamp at step zero.
func (d *Date) OriginStamp() stamp.Stamp { return d.origin }

// StepLength returns deet, the step length in seconds.
func (d *Date) StepLength() float64 { return d.deet }

// StepCount returns npas, the number of steps since the origin.
func (d *Date) StepCount() float64 { return d.npas }

// Valid returns datev, the origin advanced by deet*npas seconds. It is
// recomputed from the current base fields on every call.
func (d *Date) Valid() stamp.Stamp {
	return d.Codec().Advance(d.origin, d.deet*d.npas/secondsPerHour)
}

// SetOrigin replaces dateo.
func (d *Date) SetOrigin(s stamp.Stamp) { d.origin = s }

// SetStepLength replaces deet.
func (d *Date) SetStepLength(seconds float64) { d.deet = seconds }

// SetStepCount replaces npas.
func (d *Date) SetStepCount(n float64) { d.npas = n }

// Changes lists the fields Update should replace. Nil fields are left alone.
type Changes struct {
	// Origin is any source New accepts. When set, d is rebuilt from it as by
	// New (so a *Date origin brings its own step fields), and StepLength and
	// StepCount are applied afterwards.
	Origin     any
	StepLength *float64
	StepCount  *float64
}

// Update applies c to d. On error d is left untouched.
func (d *Date) Update(c Changes) error {
	next := *d
	if c.Origin != nil {
		nd, err := New(c.Origin, WithCodec(d.codec))
		if err != nil {
			return fmt.Errorf("update origin: %w", err)
		}
		next = *nd
	}
	if c.StepLength != nil {
		next.deet = *c.StepLength
	}
	if c.StepCount != nil {
		next.npas = *c.StepCount
	}
	*d = next
	return nil
}

// AddHours moves d forward by hours in place by growing npas. A Date with
// no step length first gets one-hour steps. It returns d.
func (d *Date) AddHours(hours float64) *Date {
	if d.deet == 0 {
		d.deet = secondsPerHour
	}
	d.npas += hours * secondsPerHour / d.deet
	return d
}

// SubtractHours is AddHours(-hours).
func (d *Date) SubtractHours(hours float64) *Date {
	return d.AddHours(-hours)
}

// Plus returns a copy of d moved forward by hours. d is unchanged.
func (d *Date) Plus(hours float64) *Date {
	return Copy(d).AddHours(hours)
}

// Minus returns a copy of d moved back by hours. d is unchanged.
func (d *Date) Minus(hours float64) *Date {
	return Copy(d).AddHours(-hours)
}

// Sub returns the difference d - o in hours. Only the valid stamps take
// part; how each Date splits its time into origin and steps is ignored.
func (d *Date) Sub(o *Date) float64 {
	return d.Codec().HoursBetween(d.Valid(), o.Valid())
}

// Compare returns 0 when d and o share a valid stamp, otherwise -1 or +1
// following the sign of d.Sub(o).
func (d *Date) Compare(o *Date) int {
	if d.Valid() == o.Valid() {
		return 0
	}
	if d.Sub(o) < 0 {
		return -1
	}
	return 1
}

// Equal reports whether d and o name the same valid instant.
func (d *Date) Equal(o *Date) bool { return d.Compare(o) == 0 }

// Before reports whether d is valid strictly before o.
func (d *Date) Before(o *Date) bool { return d.Compare(o) < 0 }

// After reports whether d is valid strictly after o.
func (d *Date) After(o *Date) bool { return d.Compare(o) > 0 }

// Print returns the valid instant in packed YYYYMMDD, HHMMSShh form.
func (d *Date) Print() (ymd, hms int) { return d.Codec().Decode(d.Valid()) }

// OriginPrint returns the origin in packed YYYYMMDD, HHMMSShh form.
func (d *Date) OriginPrint() (ymd, hms int) { return d.Codec().Decode(d.origin) }

// Time returns the valid instant as a UTC time.Time.
func (d *Date) Time() time.Time { return stamp.ToTime(d.Codec(), d.Valid()) }

// Rebase folds the steps into the origin: dateo becomes datev and deet and
// npas are reset to zero. The valid instant does not move. It returns d.
func (d *Date) Rebase() *Date {
	d.origin = d.Valid()
	d.deet = 0
	d.npas = 0
	return d
}

// String renders the valid date/time. A Date with a step length also shows
// its origin and step fields.
func (d *Date) String() string {
	valid := stamp.FormatPrint(d.Print())
	if d.deet == 0 {
		return valid
	}
	return fmt.Sprintf("%s ; origin %s deet=%.1f npas=%.1f",
		valid, stamp.FormatPrint(d.OriginPrint()), d.deet, d.npas)
}
