// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"
)

// j2000JD is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UTC).
const j2000JD = 2451545.0

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// Sighting is an object seen from an observer, in horizontal coordinates.
type Sighting struct {
	Observer Observer
	AltDeg   float64 // Altitude of the object above the horizon (-90 to +90)
	AzDeg    float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
}

// Equatorial is a right ascension / declination pair in degrees.
type Equatorial struct {
	RAdeg  float64 `json:"ra_deg"`  // Right Ascension in degrees (0-360)
	DecDeg float64 `json:"dec_deg"` // Declination in degrees (-90 to +90)
}

// IsFinite reports whether both components are real numbers. Degenerate
// geometry (an observer or object exactly at a pole) yields NaN or Inf.
func (e Equatorial) IsFinite() bool {
	return !math.IsNaN(e.RAdeg) && !math.IsInf(e.RAdeg, 0) &&
		!math.IsNaN(e.DecDeg) && !math.IsInf(e.DecDeg, 0)
}

// Apparent is an equatorial position referred to the equator and equinox of
// the observation date.
type Apparent struct {
	Equatorial
}

// J2000 is an equatorial position referred to the J2000.0 frame used by star
// catalogs.
type J2000 struct {
	Equatorial
}

// JulianDay returns the Julian Day for a normalized UTC timestamp.
func JulianDay(ts CivilTimestamp) float64 {
	y := float64(ts.Year)
	m := float64(ts.Month)

	dayFrac := (float64(ts.Hour) + float64(ts.Minute)/60 + float64(ts.Second)/3600) / 24.0

	// Adjust for January/February (treat as months 13/14 of previous year)
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		float64(ts.Day) + B - 1524.5 + dayFrac
}

// GMST returns Greenwich Mean Sidereal Time in degrees [0, 360) for a Julian Day.
// IAU 1982 formula:
// GMST = 280.46061837 + 360.98564736629*d + 0.000387933*T^2 - T^3/38710000
func GMST(jd float64) float64 {
	d := jd - j2000JD
	T := d / 36525.0

	gmst := 280.46061837 +
		360.98564736629*d +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeAngle360(gmst)
}

// LocalSiderealTime returns the sidereal angle in degrees [0, 360) used as the
// hour-angle origin for an observer. The longitude enters scaled by 1/15.
func LocalSiderealTime(gmstDeg, lonDeg float64) float64 {
	return normalizeAngle360(gmstDeg + lonDeg/15.0)
}

// HorizontalToEquatorial converts a sighting into apparent RA/Dec using the
// sidereal time of the observation instant.
//
// No special casing is done at the poles: when cos(dec) or cos(lat) is zero
// the result contains NaN or Inf, which callers detect with IsFinite.
func HorizontalToEquatorial(s Sighting, gmstDeg float64) Apparent {
	lst := LocalSiderealTime(gmstDeg, s.Observer.LonDeg)

	lat := degToRad(s.Observer.LatDeg)
	alt := degToRad(s.AltDeg)
	az := degToRad(s.AzDeg)

	sinDec := math.Sin(alt)*math.Sin(lat) + math.Cos(alt)*math.Cos(lat)*math.Cos(az)
	dec := math.Asin(sinDec)

	sinLHA := -math.Sin(az) * math.Cos(alt) / math.Cos(dec)
	cosLHA := (math.Sin(alt) - math.Sin(lat)*math.Sin(dec)) / (math.Cos(dec) * math.Cos(lat))
	lha := normalizeAngle360(radToDeg(math.Atan2(sinLHA, cosLHA)))

	return Apparent{Equatorial{
		RAdeg:  normalizeAngle360(lst - lha),
		DecDeg: radToDeg(dec),
	}}
}

// EquatorialToHorizontal converts an apparent position to altitude/azimuth for
// an observer at the given sidereal time. It is the inverse of
// HorizontalToEquatorial.
func EquatorialToHorizontal(eq Apparent, obs Observer, gmstDeg float64) Sighting {
	lst := LocalSiderealTime(gmstDeg, obs.LonDeg)

	lat := degToRad(obs.LatDeg)
	dec := degToRad(eq.DecDeg)
	ha := degToRad(lst - eq.RAdeg)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(sinAlt)

	sinAz := -math.Sin(ha) * math.Cos(dec) / math.Cos(alt)
	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))

	return Sighting{
		Observer: obs,
		AltDeg:   radToDeg(alt),
		AzDeg:    normalizeAngle360(radToDeg(math.Atan2(sinAz, cosAz))),
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalizeAngle360 reduces an angle into [0, 360). NaN passes through.
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds to 360 in float64
	if a >= 360 {
		a = 0
	}
	return a
}
