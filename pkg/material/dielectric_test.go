package material

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestDielectric_MatchedIndexPassesStraightThrough(t *testing.T) {
	clear := NewDielectric(core.NewVec3(1, 1, 1), 1.0)
	normal := core.NewVec3(0, 1, 0)

	angles := []float64{0, 10, 30, 45, 60, 80, 89}
	for _, deg := range angles {
		theta := deg * math.Pi / 180
		dir := core.NewVec3(math.Sin(theta), -math.Cos(theta), 0)
		rayIn := core.NewRay(dir.Negate(), dir)

		for _, frontFace := range []bool{true, false} {
			outward := normal
			if !frontFace {
				// Flip so the same ray arrives from inside
				outward = normal.Negate()
			}
			hit := NewHitRecord(rayIn, 1, outward, clear)
			if hit.FrontFace != frontFace {
				t.Fatalf("Test setup: expected front face %v", frontFace)
			}

			// A draw of 0 would pick reflection for any positive reflectance
			b := Scatter(clear, rayIn, hit, fixedSampler{value1D: 0})
			if b.Kind != BounceContinue {
				t.Fatalf("Dielectric should always continue, got %v", b.Kind)
			}
			if !b.Ray.Direction.ApproxEquals(rayIn.Direction, 1e-9) {
				t.Errorf("Angle %.0f° front=%v: expected unchanged direction %v, got %v",
					deg, frontFace, rayIn.Direction, b.Ray.Direction)
			}
		}
	}
}

func TestDielectric_RefractsTowardNormal(t *testing.T) {
	glass := NewDielectric(core.NewVec3(1, 1, 1), 1.5)
	dir := core.NewVec3(1, -1, 0).Normalize()
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), dir)
	hit := NewHitRecord(rayIn, math.Sqrt2, core.NewVec3(0, 1, 0), glass)

	// Draw of 0.999 exceeds the reflectance at 45°, forcing refraction
	b := Scatter(glass, rayIn, hit, fixedSampler{value1D: 0.999})

	// Snell: sin(θt) = sin(45°) / 1.5
	expectedSin := math.Sin(math.Pi/4) / 1.5
	if math.Abs(b.Ray.Direction.X-expectedSin) > 1e-9 {
		t.Errorf("Expected refracted sin %f, got %f", expectedSin, b.Ray.Direction.X)
	}
	if b.Ray.Direction.Y >= 0 {
		t.Errorf("Refracted ray should continue downward, got %v", b.Ray.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(core.NewVec3(0.9, 1, 0.9), 1.5)

	// Exiting glass at 60°: 1.5 * sin(60°) > 1
	theta := 60 * math.Pi / 180
	dir := core.NewVec3(math.Sin(theta), math.Cos(theta), 0)
	rayIn := core.NewRay(core.Vec3{}, dir)
	// Outward normal points along +y, the ray travels outward so it is a back face hit
	hit := NewHitRecord(rayIn, 1, core.NewVec3(0, 1, 0), glass)
	if hit.FrontFace {
		t.Fatal("Test setup: expected a back face hit")
	}

	b := Scatter(glass, rayIn, hit, fixedSampler{value1D: 0.999})
	expected := core.NewVec3(math.Sin(theta), -math.Cos(theta), 0)
	if !b.Ray.Direction.ApproxEquals(expected, 1e-9) {
		t.Errorf("Expected total internal reflection to %v, got %v", expected, b.Ray.Direction)
	}
	if !b.Color.Equals(core.NewVec3(0.9, 1, 0.9)) {
		t.Errorf("Expected transmittance attenuation, got %v", b.Color)
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence on glass: ((1-1.5)/(1+1.5))^2 = 0.04
	if r := Reflectance(1, 1.5); math.Abs(r-0.04) > 1e-12 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", r)
	}
	// Ratio and its inverse give the same base reflectance
	if math.Abs(Reflectance(1, 1.5)-Reflectance(1, 1/1.5)) > 1e-12 {
		t.Error("Reflectance should be symmetric in the refraction ratio")
	}
	// Grazing incidence reflects everything
	if r := Reflectance(0, 1.5); math.Abs(r-1) > 1e-12 {
		t.Errorf("Expected 1 at grazing incidence, got %f", r)
	}
	if r := Reflectance(0.3, 1); r != 0 {
		t.Errorf("Matched indices should never reflect, got %f", r)
	}
}
