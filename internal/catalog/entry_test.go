package catalog

import (
	"errors"
	"math"
	"testing"
)

func TestEntry_DistanceLightYears(t *testing.T) {
	tests := []struct {
		name   string
		plx    *float64
		want   float64
		wantOK bool
	}{
		{"ten parsecs", parallax(100), 32.62, true},
		{"sirius", parallax(379.21), 8.6021, true},
		{"missing", nil, 0, false},
		{"zero", parallax(0), 0, false},
		{"negative", parallax(-1.2), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Entry{ParallaxMas: tt.plx}.DistanceLightYears()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryError(t *testing.T) {
	cause := errors.New("boom")

	err := &QueryError{Service: "simbad", StatusCode: 502, Err: cause}
	if got := err.Error(); got != "simbad query failed (status 502): boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("QueryError should unwrap to its cause")
	}

	noStatus := &QueryError{Service: "simbad", Err: cause}
	if got := noStatus.Error(); got != "simbad query failed: boom" {
		t.Errorf("Error() = %q", got)
	}
}
