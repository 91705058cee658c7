package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/sdf"
)

func TestSDFSolid_SphereMatchesAnalytic(t *testing.T) {
	center := core.NewVec3(0.5, 0.25, -4)
	analytic := NewSphere(center, 1.5, gray)
	marched := NewSDFSolid(center, sdf.Sphere(1.5), gray)

	origins := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(-0.5, 0, 1),
	}
	for _, origin := range origins {
		ray := core.NewRay(origin, center.Subtract(origin).Add(core.NewVec3(0.2, -0.1, 0)))

		want, wantHit := analytic.Hit(ray, 0.001, math.Inf(1))
		got, gotHit := marched.Hit(ray, 0.001, math.Inf(1))
		if wantHit != gotHit {
			t.Fatalf("Origin %v: expected hit=%v, got %v", origin, wantHit, gotHit)
		}
		if math.Abs(want.T-got.T) > 1e-4 {
			t.Errorf("Origin %v: expected t=%f, got t=%f", origin, want.T, got.T)
		}
		if !want.Normal.ApproxEquals(got.Normal, 1e-3) {
			t.Errorf("Origin %v: expected normal %v, got %v", origin, want.Normal, got.Normal)
		}
		if !got.FrontFace {
			t.Errorf("Origin %v: expected front face hit", origin)
		}
	}
}

func TestSDFSolid_Miss(t *testing.T) {
	solid := NewSDFSolid(core.NewVec3(0, 0, -5), sdf.Box(core.NewVec3(1, 1, 1)), gray)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := solid.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Errorf("Expected miss, got hit at t=%f", hit.T)
	}
}

func TestSDFSolid_RespectsTMax(t *testing.T) {
	solid := NewSDFSolid(core.NewVec3(0, 0, -5), sdf.Box(core.NewVec3(1, 1, 1)), gray)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit, isHit := solid.Hit(ray, 0.001, 3.0); isHit {
		t.Errorf("Expected miss before tMax, got hit at t=%f", hit.T)
	}

	hit, isHit := solid.Hit(ray, 0.001, 10.0)
	if !isHit {
		t.Fatal("Expected hit on box face, got miss")
	}
	if math.Abs(hit.T-4) > 1e-4 {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}
	if !hit.Normal.ApproxEquals(core.NewVec3(0, 0, 1), 1e-3) {
		t.Errorf("Expected box face normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSDFSolid_UnionOfTwoSpheres(t *testing.T) {
	node := sdf.Union(
		sdf.At(core.NewVec3(-1, 0, 0), sdf.Sphere(0.5)),
		sdf.At(core.NewVec3(1, 0, 0), sdf.Sphere(0.5)),
		0,
	)
	solid := NewSDFSolid(core.NewVec3(0, 0, -3), node, gray)

	// Between the spheres there is nothing to hit
	between := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit, isHit := solid.Hit(between, 0.001, math.Inf(1)); isHit {
		t.Errorf("Expected miss through the gap, got hit at t=%f", hit.T)
	}

	right := core.NewRay(core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := solid.Hit(right, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on right sphere, got miss")
	}
	if math.Abs(hit.T-2.5) > 1e-4 {
		t.Errorf("Expected t=2.5, got t=%f", hit.T)
	}
}

func TestSDFSolid_StepCapIsMiss(t *testing.T) {
	// Parallel to the plane: every step advances by 1 and tMax is never reached
	solid := NewSDFSolid(core.NewVec3(0, 0, 0), sdf.Plane(core.NewVec3(0, 1, 0)), gray)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))

	if _, ok := solid.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected miss after exhausting march steps")
	}
}
