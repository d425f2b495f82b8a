package date

import "errors"

var (
	// ErrInvalidArgumentType is returned when a constructor or Update is
	// handed a value it cannot build a Date from.
	ErrInvalidArgumentType = errors.New("date: invalid argument type")

	// ErrInvalidStep is returned by NewRange for a zero, NaN or infinite
	// step. Such a range would never reach its end.
	ErrInvalidStep = errors.New("date: invalid range step")

	// ErrExhausted is returned by Range.Next once the cursor has moved past
	// the end of the range. It marks normal termination, not a failure.
	ErrExhausted = errors.New("date: range exhausted")
)
