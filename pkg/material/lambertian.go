package material

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// scatterLambert bounces toward normal + a random unit vector, which yields a
// cosine-weighted distribution over the hemisphere
func scatterLambert(m Material, hit HitRecord, sampler core.Sampler) Bounce {
	direction := hit.Normal.Add(randomUnitVector(sampler))

	// Catch degenerate scatter direction
	if direction.NearZero() {
		direction = hit.Normal
	}

	return Continue(m.Albedo, core.NewRay(hit.Point, direction))
}
