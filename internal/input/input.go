// Package input coerces the raw text of a sighting form into numbers.
//
// Blank or unparseable numeric fields become zero. Each field records
// whether that happened so callers can warn about it.
package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one coerced form value.
type Field[T any] struct {
	Raw       string
	Value     T
	Defaulted bool  // Value is the zero default rather than parsed
	Err       error // parse error; nil for blank input
}

// RawForm is the sighting form as typed.
type RawForm struct {
	Location string `json:"location"`
	Altitude string `json:"altitude"`
	Azimuth  string `json:"azimuth"`
	Year     string `json:"year"`
	Month    string `json:"month"`
	Day      string `json:"day"`
	Hour     string `json:"hour"`
	Minute   string `json:"minute"`
	Second   string `json:"second"`
}

// Form is the coerced sighting form.
type Form struct {
	Location string
	Altitude Field[float64]
	Azimuth  Field[float64]
	Year     Field[int]
	Month    Field[int]
	Day      Field[int]
	Hour     Field[int]
	Minute   Field[int]
	Second   Field[int]
}

// Parse coerces every field of raw. It never fails.
func Parse(raw RawForm) Form {
	return Form{
		Location: strings.TrimSpace(raw.Location),
		Altitude: Float(raw.Altitude),
		Azimuth:  Float(raw.Azimuth),
		Year:     Int(raw.Year),
		Month:    Int(raw.Month),
		Day:      Int(raw.Day),
		Hour:     Int(raw.Hour),
		Minute:   Int(raw.Minute),
		Second:   Int(raw.Second),
	}
}

// Float parses a decimal number, defaulting to 0.
func Float(s string) Field[float64] {
	f := Field[float64]{Raw: s}
	t := strings.TrimSpace(s)
	if t == "" {
		f.Defaulted = true
		return f
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		f.Defaulted = true
		f.Err = err
		return f
	}
	f.Value = v
	return f
}

// Int parses a base-10 integer, defaulting to 0.
func Int(s string) Field[int] {
	f := Field[int]{Raw: s}
	t := strings.TrimSpace(s)
	if t == "" {
		f.Defaulted = true
		return f
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		f.Defaulted = true
		f.Err = err
		return f
	}
	f.Value = v
	return f
}

// Defaulted lists the names of the fields that fell back to zero.
func (f Form) Defaulted() []string {
	var names []string
	add := func(name string, defaulted bool) {
		if defaulted {
			names = append(names, name)
		}
	}
	add("altitude", f.Altitude.Defaulted)
	add("azimuth", f.Azimuth.Defaulted)
	add("year", f.Year.Defaulted)
	add("month", f.Month.Defaulted)
	add("day", f.Day.Defaulted)
	add("hour", f.Hour.Defaulted)
	add("minute", f.Minute.Defaulted)
	add("second", f.Second.Defaulted)
	return names
}

// Warnings describes each defaulted field in one line.
func (f Form) Warnings() []string {
	var out []string
	warn := func(name, raw string, err error) {
		switch {
		case err != nil:
			out = append(out, fmt.Sprintf("%s: %q is not a number, using 0", name, raw))
		case strings.TrimSpace(raw) == "":
			out = append(out, fmt.Sprintf("%s: empty, using 0", name))
		}
	}
	warn("altitude", f.Altitude.Raw, f.Altitude.Err)
	warn("azimuth", f.Azimuth.Raw, f.Azimuth.Err)
	warn("year", f.Year.Raw, f.Year.Err)
	warn("month", f.Month.Raw, f.Month.Err)
	warn("day", f.Day.Raw, f.Day.Err)
	warn("hour", f.Hour.Raw, f.Hour.Err)
	warn("minute", f.Minute.Raw, f.Minute.Err)
	warn("second", f.Second.Raw, f.Second.Err)
	return out
}
