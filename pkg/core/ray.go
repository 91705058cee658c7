package core

import "github.com/go-gl/mathgl/mgl64"

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray. The direction is always normalized; a zero
// direction produces NaN components.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transformed applies m to the origin as a point and to the direction as a
// vector. The direction is not renormalized, so the ray parameter t maps to
// the same geometric point in both frames.
func (r Ray) Transformed(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    fromMgl(mgl64.TransformCoordinate(r.Origin.mgl(), m)),
		Direction: fromMgl(mgl64.TransformNormal(r.Direction.mgl(), m)),
	}
}
