package integrator

import (
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// ShadowAcneEpsilon is the minimum hit distance, so a scattered ray does not
// re-hit the surface it leaves
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements naive unidirectional path tracing with a
// fixed bounce budget taken from the scene
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single camera ray. The path is followed
// iteratively, carrying the product of attenuations seen so far.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for remaining := s.MaxBounces; remaining > 0; remaining-- {
		hit, isHit := s.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(s.Sky.GetColor(ray.Direction))
		}

		bounce := material.Scatter(hit.Material, ray, hit, sampler)
		switch bounce.Kind {
		case material.BounceStop:
			return throughput.MultiplyVec(bounce.Color)
		case material.BounceSky:
			return throughput.MultiplyVec(s.Sky.GetColor(bounce.Ray.Direction))
		}

		// The last allowed bounce returns its attenuation without gathering more light
		throughput = throughput.MultiplyVec(bounce.Color)
		if remaining == 1 {
			return throughput
		}
		ray = bounce.Ray
	}

	// Bounce budget exhausted before the first hit
	return core.Vec3{}
}
