package astro

import (
	"math"
	"testing"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		ts       CivilTimestamp
		expected float64
		tol      float64
	}{
		{
			name:     "J2000 epoch",
			ts:       CivilTimestamp{2000, 1, 1, 12, 0, 0},
			expected: 2451545.0,
			tol:      0,
		},
		{
			name:     "Unix epoch",
			ts:       CivilTimestamp{1970, 1, 1, 0, 0, 0},
			expected: 2440587.5,
			tol:      0.0001,
		},
		{
			name:     "Known date 2024-01-01 00:00 UTC",
			ts:       CivilTimestamp{2024, 1, 1, 0, 0, 0},
			expected: 2460310.5,
			tol:      0.0001,
		},
		{
			name:     "Sighting fixture 2020-10-26 03:43:30 UTC",
			ts:       CivilTimestamp{2020, 10, 26, 3, 43, 30},
			expected: 2459148.6552083334,
			tol:      1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.ts)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianDay() = %v, want %v (±%v)", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestJulianDay_Monotonic(t *testing.T) {
	prev := JulianDay(Normalize(0, 2020, 1, 1, 0, 0, 0))
	for s := 3600; s <= 3*366*86400; s += 3600 {
		jd := JulianDay(Normalize(0, 2020, 1, 1, 0, 0, s))
		if jd <= prev {
			t.Fatalf("JulianDay not increasing at +%ds: %v <= %v", s, jd, prev)
		}
		prev = jd
	}
}

func TestGMST(t *testing.T) {
	// At J2000 epoch the polynomial reduces to its constant term
	gmst := GMST(j2000JD)
	if math.Abs(gmst-280.46061837) > 1e-9 {
		t.Errorf("GMST at J2000 = %v, want 280.46061837", gmst)
	}

	// Fixture from the reference sighting
	if got := GMST(2459148.6552083334); math.Abs(got-90.85836547520012) > 1e-7 {
		t.Errorf("GMST(2459148.6552083334) = %v, want ~90.858365475", got)
	}

	// Always in range 0-360, including before J2000
	for jd := 2400000.0; jd < 2500000; jd += 1234.567 {
		g := GMST(jd)
		if g < 0 || g >= 360 {
			t.Errorf("GMST(%v) out of range: %v", jd, g)
		}
	}
}

func TestLocalSiderealTime(t *testing.T) {
	tests := []struct {
		gmst, lon float64
		want      float64
	}{
		{100, 0, 100},
		{100, 150, 110},
		{355, 150, 5},
		{2, -180, 350},
	}

	for _, tt := range tests {
		got := LocalSiderealTime(tt.gmst, tt.lon)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LocalSiderealTime(%v, %v) = %v, want %v", tt.gmst, tt.lon, got, tt.want)
		}
	}

	// LST should always be in 0-360 range
	for lon := -180.0; lon <= 180; lon += 30 {
		lst := LocalSiderealTime(359.9, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}

func TestHorizontalToEquatorial_Fixture(t *testing.T) {
	ts := Normalize(0, 2020, 10, 26, 3, 43, 30)
	s := Sighting{
		Observer: Observer{LatDeg: 47.359, LonDeg: 121.986},
		AltDeg:   26.7,
		AzDeg:    46.0,
	}

	got := HorizontalToEquatorial(s, GMST(JulianDay(ts)))

	if math.Abs(got.RAdeg-202.31012817606467) > 1e-9 {
		t.Errorf("RA = %.12f, want 202.310128176065", got.RAdeg)
	}
	if math.Abs(got.DecDeg-48.66948464435767) > 1e-9 {
		t.Errorf("Dec = %.12f, want 48.669484644358", got.DecDeg)
	}
}

func TestHorizontalToEquatorial_RoundTrip(t *testing.T) {
	observers := []Observer{
		{LatDeg: 35.0, LonDeg: -117.0},
		{LatDeg: -33.9, LonDeg: 18.4},
		{LatDeg: 47.359, LonDeg: 121.986},
	}
	gmsts := []float64{0, 90.858, 213.4, 359.5}

	for _, obs := range observers {
		for _, gmst := range gmsts {
			for ra := 0.0; ra < 360; ra += 30 {
				for dec := -60.0; dec <= 60; dec += 30 {
					eq := Apparent{Equatorial{RAdeg: ra, DecDeg: dec}}
					s := EquatorialToHorizontal(eq, obs, gmst)
					back := HorizontalToEquatorial(s, gmst)

					if d := angleDiff(back.RAdeg, ra); d > 1e-6 {
						t.Errorf("obs=%+v gmst=%v RA %v -> %v (diff %v)", obs, gmst, ra, back.RAdeg, d)
					}
					if math.Abs(back.DecDeg-dec) > 1e-6 {
						t.Errorf("obs=%+v gmst=%v Dec %v -> %v", obs, gmst, dec, back.DecDeg)
					}
				}
			}
		}
	}
}

func TestHorizontalToEquatorial_Ranges(t *testing.T) {
	obs := Observer{LatDeg: 35, LonDeg: -117}

	for az := 0.0; az < 360; az += 15 {
		for alt := -80.0; alt <= 80; alt += 20 {
			eq := HorizontalToEquatorial(Sighting{Observer: obs, AltDeg: alt, AzDeg: az}, 123.4)
			if eq.RAdeg < 0 || eq.RAdeg >= 360 {
				t.Errorf("RA out of range for alt=%v az=%v: %v", alt, az, eq.RAdeg)
			}
			if eq.DecDeg < -90 || eq.DecDeg > 90 {
				t.Errorf("Dec out of range for alt=%v az=%v: %v", alt, az, eq.DecDeg)
			}
		}
	}
}

func TestHorizontalToEquatorial_Zenith(t *testing.T) {
	// Straight up: Dec equals latitude
	obs := Observer{LatDeg: 35, LonDeg: -117}
	eq := HorizontalToEquatorial(Sighting{Observer: obs, AltDeg: 89.9999, AzDeg: 0}, 10)

	if math.Abs(eq.DecDeg-obs.LatDeg) > 1e-3 {
		t.Errorf("zenith Dec = %v, want ~%v", eq.DecDeg, obs.LatDeg)
	}
}

func TestHorizontalToEquatorial_DegenerateInputPropagates(t *testing.T) {
	obs := Observer{LatDeg: 35, LonDeg: -117}

	eq := HorizontalToEquatorial(Sighting{Observer: obs, AltDeg: math.NaN(), AzDeg: 10}, 10)
	if eq.IsFinite() {
		t.Errorf("expected non-finite result for NaN altitude, got %+v", eq)
	}

	// Pole geometry must not panic whatever the numeric outcome.
	_ = HorizontalToEquatorial(Sighting{Observer: Observer{LatDeg: 90}, AltDeg: 90, AzDeg: 0}, 0)
	_ = HorizontalToEquatorial(Sighting{Observer: Observer{LatDeg: -90}, AltDeg: -90, AzDeg: 180}, 0)
}

func TestEquatorial_IsFinite(t *testing.T) {
	tests := []struct {
		eq   Equatorial
		want bool
	}{
		{Equatorial{10, 20}, true},
		{Equatorial{math.NaN(), 20}, false},
		{Equatorial{10, math.Inf(1)}, false},
		{Equatorial{math.Inf(-1), math.NaN()}, false},
	}

	for _, tt := range tests {
		if got := tt.eq.IsFinite(); got != tt.want {
			t.Errorf("%+v.IsFinite() = %v, want %v", tt.eq, got, tt.want)
		}
	}
}

func TestDegToRad(t *testing.T) {
	tests := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-90, -math.Pi / 2},
	}

	for _, tt := range tests {
		if got := degToRad(tt.deg); math.Abs(got-tt.rad) > 1e-10 {
			t.Errorf("degToRad(%v) = %v, want %v", tt.deg, got, tt.rad)
		}
		if got := radToDeg(tt.rad); math.Abs(got-tt.deg) > 1e-10 {
			t.Errorf("radToDeg(%v) = %v, want %v", tt.rad, got, tt.deg)
		}
	}
}

func TestNormalizeAngle360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-720, 0},
		{-1e-15, 0},
	}

	for _, tt := range tests {
		if got := normalizeAngle360(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAngle360(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// angleDiff returns the smallest absolute difference between two angles.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
