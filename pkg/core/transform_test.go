package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTranslate_RoundTrip(t *testing.T) {
	tr := Translate(NewVec3(1, -2, 5))

	if !tr.Origin().ApproxEquals(NewVec3(1, -2, 5), 1e-12) {
		t.Errorf("Expected origin (1,-2,5), got %v", tr.Origin())
	}

	world := NewRay(NewVec3(4, 4, 4), NewVec3(0, 1, 0))
	local := world.Transformed(tr.ToLocal())
	if !local.Origin.ApproxEquals(NewVec3(3, 6, -1), 1e-12) {
		t.Errorf("Expected local origin (3,6,-1), got %v", local.Origin)
	}
	back := local.Transformed(tr.ToWorld())
	if !back.Origin.ApproxEquals(world.Origin, 1e-12) {
		t.Errorf("Round trip origin mismatch: %v vs %v", back.Origin, world.Origin)
	}
}

func TestTransform_NormalToWorld(t *testing.T) {
	rotation := NewTransform(mgl64.HomogRotate3DZ(math.Pi / 2))
	n := rotation.NormalToWorld(NewVec3(1, 0, 0))
	if !n.ApproxEquals(NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected rotated normal (0,1,0), got %v", n)
	}

	// Non-uniform scale: normals use the inverse transpose
	scale := NewTransform(mgl64.Scale3D(2, 1, 1))
	diag := scale.NormalToWorld(NewVec3(1, 1, 0).Normalize())
	expected := NewVec3(0.5, 1, 0).Normalize()
	if !diag.ApproxEquals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, diag)
	}
}
