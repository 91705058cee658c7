package material

import (
	"fmt"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Kind identifies the scattering model of a Material
type Kind int

const (
	HoldoutKind Kind = iota
	LambertKind
	MetalKind
	DielectricKind
)

func (k Kind) String() string {
	switch k {
	case HoldoutKind:
		return "Holdout"
	case LambertKind:
		return "Lambert"
	case MetalKind:
		return "Metal"
	case DielectricKind:
		return "Dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material describes how a surface scatters light. It is a plain value:
// immutable once built and safe to share between goroutines.
type Material struct {
	Kind   Kind
	Albedo core.Vec3 // Reflectance, or transmittance for dielectrics
	Fuzz   float64   // Metal only: 0 is a perfect mirror
	IOR    float64   // Dielectric only: index of refraction
}

// NewHoldout creates a material that absorbs the path and returns its albedo
func NewHoldout(albedo core.Vec3) Material {
	return Material{Kind: HoldoutKind, Albedo: albedo}
}

// NewLambert creates a perfectly diffuse material
func NewLambert(albedo core.Vec3) Material {
	return Material{Kind: LambertKind, Albedo: albedo}
}

// NewMetal creates a specular material with fuzzed reflections
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: MetalKind, Albedo: albedo, Fuzz: fuzz}
}

// NewDielectric creates a transparent material such as glass or water
func NewDielectric(transmittance core.Vec3, ior float64) Material {
	return Material{Kind: DielectricKind, Albedo: transmittance, IOR: ior}
}

// Scatter decides what happens to rayIn at hit. Randomness is drawn only from
// sampler.
func Scatter(m Material, rayIn core.Ray, hit HitRecord, sampler core.Sampler) Bounce {
	switch m.Kind {
	case HoldoutKind:
		return Stop(m.Albedo)
	case LambertKind:
		return scatterLambert(m, hit, sampler)
	case MetalKind:
		return scatterMetal(m, rayIn, hit, sampler)
	case DielectricKind:
		return scatterDielectric(m, rayIn, hit, sampler)
	default:
		return Stop(core.Vec3{})
	}
}

// randomUnitVector returns a uniformly distributed unit direction
func randomUnitVector(sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}
