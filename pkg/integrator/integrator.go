package integrator

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray. All randomness is
	// drawn from sampler.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
