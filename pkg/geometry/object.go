package geometry

import (
	"fmt"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/sdf"
)

// Kind identifies the shape of an Object
type Kind int

const (
	SphereKind Kind = iota
	PlaneKind
	SDFKind
)

func (k Kind) String() string {
	switch k {
	case SphereKind:
		return "Sphere"
	case PlaneKind:
		return "Plane"
	case SDFKind:
		return "SDF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Object is a primitive defined in its own local frame, placed in the world
// by Transform. Only the fields relevant to Kind are read.
type Object struct {
	Kind      Kind
	Radius    float64   // Sphere
	Normal    core.Vec3 // Plane, unit length
	SDF       *sdf.Node // SDF solid
	Transform core.Transform
	Material  material.Material
}

// NewSphere creates a sphere of the given radius centered at center
func NewSphere(center core.Vec3, radius float64, mat material.Material) Object {
	return Object{
		Kind:      SphereKind,
		Radius:    radius,
		Transform: core.Translate(center),
		Material:  mat,
	}
}

// NewPlane creates a one-sided plane through point. Rays approaching from the
// side the normal points to hit it; rays from behind pass through.
func NewPlane(point, normal core.Vec3, mat material.Material) Object {
	return Object{
		Kind:      PlaneKind,
		Normal:    normal.Normalize(),
		Transform: core.Translate(point),
		Material:  mat,
	}
}

// NewSDFSolid creates a solid bounded by the zero level set of node, with its
// local origin at position
func NewSDFSolid(position core.Vec3, node *sdf.Node, mat material.Material) Object {
	return Object{
		Kind:      SDFKind,
		SDF:       node,
		Transform: core.Translate(position),
		Material:  mat,
	}
}

// Hit intersects ray with o and returns the hit closest to the ray origin
// with t in [tMin, tMax].
func (o Object) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	local := ray.Transformed(o.Transform.ToLocal())

	var t float64
	var localNormal core.Vec3
	var ok bool
	switch o.Kind {
	case SphereKind:
		t, localNormal, ok = hitSphere(o.Radius, local, tMin, tMax)
	case PlaneKind:
		t, localNormal, ok = hitPlane(o.Normal, local, tMin, tMax)
	case SDFKind:
		t, localNormal, ok = hitSDF(o.SDF, local, tMin, tMax)
	}
	if !ok {
		return material.HitRecord{}, false
	}

	// The affine map preserves t, so the world point is ray.At(t)
	return material.NewHitRecord(ray, t, o.Transform.NormalToWorld(localNormal), o.Material), true
}
