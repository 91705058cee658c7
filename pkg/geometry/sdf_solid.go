package geometry

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/sdf"
)

const (
	// maxMarchSteps caps sphere tracing. A ray that has not converged by then is a miss.
	maxMarchSteps = 1000
	// marchEpsilon is the surface distance at which a march counts as a hit
	marchEpsilon = 1e-5
)

// hitSDF sphere-traces a local-frame ray against the zero level set of node
func hitSDF(node *sdf.Node, ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	depth := tMin
	for step := 0; step < maxMarchSteps; step++ {
		if depth > tMax {
			return 0, core.Vec3{}, false
		}

		position := ray.At(depth)
		distance := sdf.Distance(node, position)
		if distance < marchEpsilon {
			return depth, sdf.Gradient(node, position), true
		}

		depth += distance
	}
	return 0, core.Vec3{}, false
}
