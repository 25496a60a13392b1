package astro

// Precession coefficients in arcseconds per Julian century.
const (
	zetaRate   = 0.6406161
	zetaAccel  = 0.0000839
	thetaRate  = 0.5567530
	thetaAccel = -0.0001185
)

// PrecessionAngles returns the (zeta, theta) rotation angles in radians for an
// observation year, measured from J2000.0.
func PrecessionAngles(observationYear float64) (zeta, theta float64) {
	t := (observationYear - 2000) / 100
	zeta = degToRad((zetaRate + zetaAccel*t) * t / 3600)
	theta = degToRad((thetaRate + thetaAccel*t) * t / 3600)
	return zeta, theta
}

// ToJ2000 refers an apparent position of the given year to the J2000.0 frame.
//
// This is a low-precision model: the vector is tilted by theta about the Y
// axis and then turned by zeta about the pole. The third angle of the full
// three-angle precession (z) is not applied. RA is reduced to [0, 360);
// Dec is not wrapped.
func ToJ2000(eq Apparent, observationYear float64) J2000 {
	zeta, theta := PrecessionAngles(observationYear)
	v := UnitVector(eq.Equatorial).RotateY(theta).RotateZ(zeta)
	return J2000{v.Equatorial()}
}
