// Package stamp implements the date-stamp codec used by RPN standard files.
//
// A Stamp is an opaque integer naming one instant. Client code never does
// arithmetic on a Stamp directly; it goes through a Codec, which provides the
// four operations everything else is built on:
//
//	Encode:       packed YYYYMMDD + HHMMSShh  -> Stamp
//	Decode:       Stamp -> packed YYYYMMDD + HHMMSShh
//	Advance:      Stamp + signed hours        -> Stamp
//	HoursBetween: Stamp - Stamp               -> signed hours
//
// The Default codec counts centiseconds since 1900-01-01T00:00:00Z. That is
// the finest resolution the printable HHMMSShh form can carry, so Decode is
// an exact inverse of Encode. Codecs are stateless and safe for concurrent
// use.
package stamp

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Stamp is an encoded instant. Its numeric layout belongs to the Codec that
// produced it.
type Stamp int64

// ErrInvalidPrint is returned when a packed date or time has a field out of
// range (month 13, hour 24, April 31, ...).
var ErrInvalidPrint = errors.New("stamp: invalid printable date/time")

// Codec is the date-stamp collaborator consumed by package date.
type Codec interface {
	// Encode converts a packed YYYYMMDD date and HHMMSShh time to a Stamp.
	Encode(ymd, hms int) (Stamp, error)

	// Decode is the inverse of Encode for stamps Encode itself produced.
	Decode(s Stamp) (ymd, hms int)

	// Advance moves s by a signed, possibly fractional, number of hours.
	// Advance(Advance(s, h1), h2) == Advance(s, h1+h2) within one tick.
	Advance(s Stamp, hours float64) Stamp

	// HoursBetween returns a - b in hours. It is antisymmetric and
	// Advance(b, HoursBetween(a, b)) == a.
	HoursBetween(a, b Stamp) float64
}

const (
	// CentisecondsPerHour is the number of Default ticks in one hour.
	CentisecondsPerHour = 360000
	centisecondsPerDay  = 24 * CentisecondsPerHour
	secondsPerDay       = 86400
)

// epochUnix is 1900-01-01T00:00:00Z in Unix seconds.
var epochUnix = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

// Centisecond is the Default codec. The zero value is ready to use.
type Centisecond struct{}

// Default is the codec used by package date unless another one is supplied.
var Default Codec = Centisecond{}

// Compile-time check that Centisecond implements Codec.
var _ Codec = Centisecond{}

// Encode implements Codec.
func (Centisecond) Encode(ymd, hms int) (Stamp, error) {
	y, mo, d, err := UnpackDate(ymd)
	if err != nil {
		return 0, err
	}
	h, mi, s, cs, err := UnpackTime(hms)
	if err != nil {
		return 0, err
	}
	day := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	days := (day.Unix() - epochUnix) / secondsPerDay
	tod := int64(((h*60+mi)*60+s)*100 + cs)
	return Stamp(days*centisecondsPerDay + tod), nil
}

// Decode implements Codec.
func (Centisecond) Decode(s Stamp) (ymd, hms int) {
	days := floorDiv(int64(s), centisecondsPerDay)
	rem := int64(s) - days*centisecondsPerDay

	t := time.Unix(epochUnix+days*secondsPerDay, 0).UTC()
	ymd = PackDate(t.Year(), int(t.Month()), t.Day())

	cs := int(rem % 100)
	secs := int(rem / 100)
	hms = PackTime(secs/3600, secs/60%60, secs%60, cs)
	return ymd, hms
}

// Advance implements Codec. The result is rounded to the nearest
// centisecond.
func (Centisecond) Advance(s Stamp, hours float64) Stamp {
	return s + Stamp(math.Round(hours*CentisecondsPerHour))
}

// HoursBetween implements Codec.
func (Centisecond) HoursBetween(a, b Stamp) float64 {
	return float64(a-b) / CentisecondsPerHour
}

// FromTime encodes t (converted to UTC) with codec c, truncating to
// centiseconds.
func FromTime(c Codec, t time.Time) (Stamp, error) {
	t = t.UTC()
	ymd := PackDate(t.Year(), int(t.Month()), t.Day())
	hms := PackTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e7)
	s, err := c.Encode(ymd, hms)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", t.Format(time.RFC3339Nano), err)
	}
	return s, nil
}

// ToTime decodes s with codec c into a UTC time.
func ToTime(c Codec, s Stamp) time.Time {
	ymd, hms := c.Decode(s)
	y, mo, d := ymd/10000, ymd/100%100, ymd%100
	h, mi, sec, cs := hms/1000000, hms/10000%100, hms/100%100, hms%100
	return time.Date(y, time.Month(mo), d, h, mi, sec, cs*1e7, time.UTC)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
