package geometry

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// hitSphere intersects a local-frame ray with a sphere centered at the origin
func hitSphere(radius float64, ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	oc := ray.Origin

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, core.Vec3{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearest root not behind tMin
	root := (-halfB - sqrtD) / a
	if root < tMin {
		root = (-halfB + sqrtD) / a
		if root < tMin {
			return 0, core.Vec3{}, false
		}
	}
	if root > tMax {
		return 0, core.Vec3{}, false
	}

	return root, ray.At(root).Divide(radius), true
}
