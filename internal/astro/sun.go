package astro

import (
	"math"
)

// SunPosition returns the apparent equatorial coordinates of the Sun at a
// Julian Day. Uses a simplified solar ephemeris based on the Astronomical
// Almanac, good to ~0.01 degrees, which is enough for separation checks.
func SunPosition(jd float64) Apparent {
	// Julian centuries from J2000.0
	T := (jd - j2000JD) / 36525.0

	// Mean longitude and mean anomaly (degrees)
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	// Apparent longitude, corrected for aberration and nutation
	omega := 125.04 - 1934.136*T
	lon := degToRad(L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega)))

	// Corrected obliquity of the ecliptic
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := degToRad(eps0 + 0.00256*math.Cos(degToRad(omega)))

	ra := math.Atan2(math.Cos(eps)*math.Sin(lon), math.Cos(lon))
	dec := math.Asin(math.Sin(eps) * math.Sin(lon))

	return Apparent{Equatorial{
		RAdeg:  normalizeAngle360(radToDeg(ra)),
		DecDeg: radToDeg(dec),
	}}
}

// AngularSeparation returns the great-circle distance in degrees between two
// points on the celestial sphere.
func AngularSeparation(a, b Equatorial) float64 {
	ra1, dec1 := degToRad(a.RAdeg), degToRad(a.DecDeg)
	ra2, dec2 := degToRad(b.RAdeg), degToRad(b.DecDeg)

	dRA := ra2 - ra1
	sinDec1, cosDec1 := math.Sincos(dec1)
	sinDec2, cosDec2 := math.Sincos(dec2)
	sinDRA, cosDRA := math.Sincos(dRA)

	// Vincenty form: well conditioned from 0 to 180 degrees
	x := cosDec2 * sinDRA
	y := cosDec1*sinDec2 - sinDec1*cosDec2*cosDRA
	num := math.Sqrt(x*x + y*y)
	den := sinDec1*sinDec2 + cosDec1*cosDec2*cosDRA

	return radToDeg(math.Atan2(num, den))
}

// SunSeparation returns the angle in degrees between an apparent position and
// the Sun at the same instant.
func SunSeparation(eq Apparent, jd float64) float64 {
	return AngularSeparation(SunPosition(jd).Equatorial, eq.Equatorial)
}

// SunSeparationTier categorizes how close to the Sun a sighting points.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // >= 20 degrees
	SunSepCaution                          // 10-20 degrees
	SunSepWarning                          // < 10 degrees
)

func (t SunSeparationTier) String() string {
	switch t {
	case SunSepSafe:
		return "safe"
	case SunSepCaution:
		return "caution"
	case SunSepWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// GetSunSeparationTier returns the tier for a given separation angle.
func GetSunSeparationTier(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 10:
		return SunSepWarning
	case sepDeg < 20:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}
