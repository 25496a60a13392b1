package astro

import (
	"math"
	"testing"
)

func TestSunPosition_EquinoxesAndSolstices(t *testing.T) {
	tests := []struct {
		name string
		ts   CivilTimestamp
		want Equatorial
		tol  float64
	}{
		{"march equinox", CivilTimestamp{2024, 3, 20, 12, 0, 0}, Equatorial{0, 0}, 2},
		{"june solstice", CivilTimestamp{2024, 6, 21, 12, 0, 0}, Equatorial{90, 23.44}, 2},
		{"september equinox", CivilTimestamp{2024, 9, 22, 12, 0, 0}, Equatorial{180, 0}, 2},
		{"december solstice", CivilTimestamp{2024, 12, 21, 12, 0, 0}, Equatorial{270, -23.44}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sun := SunPosition(JulianDay(tt.ts))

			if d := angleDiff(sun.RAdeg, tt.want.RAdeg); d > tt.tol {
				t.Errorf("Sun RA = %.3f, want %.3f ±%v", sun.RAdeg, tt.want.RAdeg, tt.tol)
			}
			if math.Abs(sun.DecDeg-tt.want.DecDeg) > 1 {
				t.Errorf("Sun Dec = %.3f, want %.3f ±1", sun.DecDeg, tt.want.DecDeg)
			}
			if sun.RAdeg < 0 || sun.RAdeg >= 360 {
				t.Errorf("Sun RA out of range: %v", sun.RAdeg)
			}
		})
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name string
		a, b Equatorial
		want float64
		tol  float64
	}{
		{"identical", Equatorial{202.3, 48.7}, Equatorial{202.3, 48.7}, 0, 1e-9},
		{"quarter turn on equator", Equatorial{0, 0}, Equatorial{90, 0}, 90, 1e-9},
		{"across RA zero", Equatorial{359.5, 0}, Equatorial{0.5, 0}, 1, 1e-9},
		{"pole to equator", Equatorial{0, 90}, Equatorial{123, 0}, 90, 1e-9},
		{"pole to pole", Equatorial{0, 90}, Equatorial{0, -90}, 180, 1e-9},
		{"one hour of RA at dec 60", Equatorial{100, 60}, Equatorial{115, 60}, 7.483919, 1e-5},
		{"antipodal off the equator", Equatorial{10, 30}, Equatorial{190, -30}, 180, 1e-9},
		{"just short of antipodal", Equatorial{0, 0}, Equatorial{179.999, 0}, 179.999, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("AngularSeparation() = %.6f, want %.6f", got, tt.want)
			}
			if back := AngularSeparation(tt.b, tt.a); math.Abs(back-got) > 1e-12 {
				t.Errorf("AngularSeparation not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestSunSeparation(t *testing.T) {
	jd := JulianDay(CivilTimestamp{2024, 6, 21, 12, 0, 0})
	sun := SunPosition(jd)

	if sep := SunSeparation(sun, jd); sep > 1e-9 {
		t.Errorf("separation of the Sun from itself = %v", sep)
	}

	opposite := Apparent{Equatorial{RAdeg: normalizeAngle360(sun.RAdeg + 180), DecDeg: -sun.DecDeg}}
	if sep := SunSeparation(opposite, jd); math.Abs(sep-180) > 1e-6 {
		t.Errorf("separation of the anti-solar point = %v, want 180", sep)
	}
}

func TestGetSunSeparationTier(t *testing.T) {
	tests := []struct {
		sepDeg float64
		want   SunSeparationTier
	}{
		{0, SunSepWarning},
		{9.99, SunSepWarning},
		{10, SunSepCaution},
		{19.99, SunSepCaution},
		{20, SunSepSafe},
		{180, SunSepSafe},
	}

	for _, tt := range tests {
		if got := GetSunSeparationTier(tt.sepDeg); got != tt.want {
			t.Errorf("GetSunSeparationTier(%v) = %v, want %v", tt.sepDeg, got, tt.want)
		}
	}
}

func TestSunSeparationTier_String(t *testing.T) {
	tests := map[SunSeparationTier]string{
		SunSepSafe:            "safe",
		SunSepCaution:         "caution",
		SunSepWarning:         "warning",
		SunSeparationTier(42): "unknown",
	}
	for tier, want := range tests {
		if got := tier.String(); got != want {
			t.Errorf("SunSeparationTier(%d).String() = %q, want %q", tier, got, want)
		}
	}
}
