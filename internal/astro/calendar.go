package astro

import (
	"fmt"
	"time"
)

// CivilTimestamp is a calendar-valid UTC date and time with whole seconds.
// Values are produced by Normalize and are not modified afterwards.
type CivilTimestamp struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-DaysInMonth
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// IsLeapYear reports whether February of year has 29 days.
// Only the divisible-by-four rule is applied; century years are not special.
func IsLeapYear(year int) bool {
	return year%4 == 0
}

// DaysInMonth returns the length of month in year. Month must be 1-12.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// Normalize shifts a local wall-clock tuple to UTC and repairs any field that
// is out of range by carrying into (or borrowing from) the next larger unit.
//
// offset is the number of hours local time is ahead of UTC, so it is
// subtracted from hour. The repair loop applies one correction category per
// pass, tested in order seconds, minutes, hours, days, months, and re-checks
// everything after each pass. Every correction strictly reduces the distance
// from a valid timestamp, so the loop terminates for any integer input.
func Normalize(offset, year, month, day, hour, minute, second int) CivilTimestamp {
	ts := CivilTimestamp{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour - offset,
		Minute: minute,
		Second: second,
	}
	for ts.repairOnce() {
	}
	return ts
}

// repairOnce applies the first applicable correction and reports whether one
// was needed.
func (ts *CivilTimestamp) repairOnce() bool {
	switch {
	case ts.Second < 0 || ts.Second >= 60:
		carry := floorDiv(ts.Second, 60)
		ts.Minute += carry
		ts.Second -= carry * 60

	case ts.Minute < 0 || ts.Minute >= 60:
		carry := floorDiv(ts.Minute, 60)
		ts.Hour += carry
		ts.Minute -= carry * 60

	case ts.Hour < 0 || ts.Hour >= 24:
		carry := floorDiv(ts.Hour, 24)
		ts.Day += carry
		ts.Hour -= carry * 24

	case ts.monthValid() && ts.Day < 1:
		// Borrow a whole previous month. A January borrow leaves Month at 0
		// for the year correction on the next pass.
		py, pm := ts.Year, ts.Month-1
		if pm < 1 {
			py, pm = py-1, 12
		}
		ts.Day += DaysInMonth(py, pm)
		ts.Month--

	case ts.monthValid() && ts.Day > DaysInMonth(ts.Year, ts.Month):
		ts.Day -= DaysInMonth(ts.Year, ts.Month)
		ts.Month++

	case !ts.monthValid():
		carry := floorDiv(ts.Month-1, 12)
		ts.Year += carry
		ts.Month -= carry * 12

	default:
		return false
	}
	return true
}

func (ts CivilTimestamp) monthValid() bool {
	return ts.Month >= 1 && ts.Month <= 12
}

// Valid reports whether every field is within its calendar range.
func (ts CivilTimestamp) Valid() bool {
	return ts.monthValid() &&
		ts.Day >= 1 && ts.Day <= DaysInMonth(ts.Year, ts.Month) &&
		ts.Hour >= 0 && ts.Hour < 24 &&
		ts.Minute >= 0 && ts.Minute < 60 &&
		ts.Second >= 0 && ts.Second < 60
}

// Time returns the timestamp as a UTC time.Time.
func (ts CivilTimestamp) Time() time.Time {
	return time.Date(ts.Year, time.Month(ts.Month), ts.Day, ts.Hour, ts.Minute, ts.Second, 0, time.UTC)
}

// Unix returns seconds since 1970-01-01 00:00:00 UTC.
func (ts CivilTimestamp) Unix() int64 {
	return ts.Time().Unix()
}

func (ts CivilTimestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d UTC",
		ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
}

// MarshalText encodes the timestamp in its String form.
func (ts CivilTimestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
