package astro

import (
	"math"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// UnitVector returns the unit vector pointing at (ra, dec), both in degrees.
// X points to RA 0 on the equator, Z to the north celestial pole.
func UnitVector(eq Equatorial) Vec3 {
	ra := degToRad(eq.RAdeg)
	dec := degToRad(eq.DecDeg)
	return Vec3{
		X: math.Cos(ra) * math.Cos(dec),
		Y: math.Sin(ra) * math.Cos(dec),
		Z: math.Sin(dec),
	}
}

// Equatorial converts a unit vector back to RA/Dec in degrees.
// RA is reduced to [0, 360); Dec is taken directly from asin(Z).
func (v Vec3) Equatorial() Equatorial {
	return Equatorial{
		RAdeg:  normalizeAngle360(radToDeg(math.Atan2(v.Y, v.X))),
		DecDeg: radToDeg(math.Asin(v.Z)),
	}
}

// RotateY rotates the vector about the Y axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateZ rotates the vector about the pole (Z axis) by angle radians.
func (v Vec3) RotateZ(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}
