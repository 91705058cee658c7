package geometry

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// planeEpsilon rejects rays that are parallel to or behind the plane
const planeEpsilon = 1e-8

// hitPlane intersects a local-frame ray with the plane through the origin
func hitPlane(normal core.Vec3, ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	denominator := -ray.Direction.Dot(normal)
	if denominator <= planeEpsilon {
		return 0, core.Vec3{}, false
	}

	t := ray.Origin.Dot(normal) / denominator
	if t < tMin || t > tMax {
		return 0, core.Vec3{}, false
	}

	return t, normal, true
}
