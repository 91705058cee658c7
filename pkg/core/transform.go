package core

import "github.com/go-gl/mathgl/mgl64"

// Transform places a local frame in world space. Both directions of the
// affine map are kept so hit queries never invert a matrix per ray.
type Transform struct {
	toWorld mgl64.Mat4
	toLocal mgl64.Mat4
}

// NewTransform builds a transform from a local-to-world matrix
func NewTransform(toWorld mgl64.Mat4) Transform {
	return Transform{toWorld: toWorld, toLocal: toWorld.Inv()}
}

// Translate returns a transform that moves the local origin to offset
func Translate(offset Vec3) Transform {
	return NewTransform(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// ToWorld returns the local-to-world matrix
func (t Transform) ToWorld() mgl64.Mat4 {
	return t.toWorld
}

// ToLocal returns the world-to-local matrix
func (t Transform) ToLocal() mgl64.Mat4 {
	return t.toLocal
}

// Origin returns the world position of the local origin
func (t Transform) Origin() Vec3 {
	return t.PointToWorld(Vec3{})
}

// PointToWorld maps a local point into world space
func (t Transform) PointToWorld(p Vec3) Vec3 {
	return fromMgl(mgl64.TransformCoordinate(p.mgl(), t.toWorld))
}

// NormalToWorld maps a local surface normal into world space using the
// inverse transpose, then renormalizes it
func (t Transform) NormalToWorld(n Vec3) Vec3 {
	return fromMgl(mgl64.TransformNormal(n.mgl(), t.toLocal.Transpose())).Normalize()
}
