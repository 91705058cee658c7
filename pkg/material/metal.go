package material

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// scatterMetal reflects about the normal and perturbs the result by Fuzz.
// A perturbed ray that ends up below the surface is absorbed and the path
// stops with the albedo.
func scatterMetal(m Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) Bounce {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)
	scattered := core.NewRay(hit.Point, reflected.Add(randomUnitVector(sampler).Multiply(m.Fuzz)))

	if scattered.Direction.Dot(hit.Normal) > 0 {
		return Continue(m.Albedo, scattered)
	}
	return Stop(m.Albedo)
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
