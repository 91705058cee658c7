package material

import "github.com/df07/go-sdf-raytracer/pkg/core"

// BounceKind tells the integrator how to continue a path
type BounceKind int

const (
	// BounceContinue multiplies the path by Color and follows Ray
	BounceContinue BounceKind = iota
	// BounceStop terminates the path and emits Color directly
	BounceStop
	// BounceSky terminates the path with the sky radiance along Ray
	BounceSky
)

// Bounce is the outcome of a scatter event
type Bounce struct {
	Kind  BounceKind
	Color core.Vec3 // Attenuation for BounceContinue, emitted color for BounceStop
	Ray   core.Ray  // Next ray for BounceContinue and BounceSky
}

// Continue returns a bounce that attenuates by attenuation and follows ray
func Continue(attenuation core.Vec3, ray core.Ray) Bounce {
	return Bounce{Kind: BounceContinue, Color: attenuation, Ray: ray}
}

// Stop returns a bounce that ends the path with color
func Stop(color core.Vec3) Bounce {
	return Bounce{Kind: BounceStop, Color: color}
}

// ToSky returns a bounce that ends the path looking up the sky along ray
func ToSky(ray core.Ray) Bounce {
	return Bounce{Kind: BounceSky, Ray: ray}
}
