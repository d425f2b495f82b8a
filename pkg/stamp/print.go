package stamp

import (
	"fmt"
	"time"
)

// PackDate returns the printable YYYYMMDD form of a calendar date. It does
// not validate its arguments.
func PackDate(year, month, day int) int {
	return year*10000 + month*100 + day
}

// PackTime returns the printable HHMMSShh form of a time of day, hh being
// centiseconds. It does not validate its arguments.
func PackTime(hour, minute, second, centisecond int) int {
	return hour*1000000 + minute*10000 + second*100 + centisecond
}

// UnpackDate splits a packed YYYYMMDD date and checks that it names a real
// calendar day.
func UnpackDate(ymd int) (year, month, day int, err error) {
	if ymd <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: date %d", ErrInvalidPrint, ymd)
	}
	year, month, day = ymd/10000, ymd/100%100, ymd%100
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, 0, fmt.Errorf("%w: date %08d", ErrInvalidPrint, ymd)
	}
	return year, month, day, nil
}

// UnpackTime splits a packed HHMMSShh time of day and checks every field.
func UnpackTime(hms int) (hour, minute, second, centisecond int, err error) {
	if hms < 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: time %d", ErrInvalidPrint, hms)
	}
	hour, minute, second, centisecond = hms/1000000, hms/10000%100, hms/100%100, hms%100
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, 0, fmt.Errorf("%w: time %08d", ErrInvalidPrint, hms)
	}
	return hour, minute, second, centisecond, nil
}

// FormatPrint renders a packed pair as "YYYYMMDD/HHMMSShh".
func FormatPrint(ymd, hms int) string {
	return fmt.Sprintf("%08d/%08d", ymd, hms)
}
