package scene

import (
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestSky_Gradient(t *testing.T) {
	sky := DefaultSky()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sky.GetColor(tt.direction)
			if !got.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSky_Sun(t *testing.T) {
	sunColor := core.NewVec3(10, 9, 8)
	sky := DefaultSky()
	sky.Sun = &Sun{Direction: core.NewVec3(0, 1, 1).Normalize(), Color: sunColor}

	if got := sky.GetColor(sky.Sun.Direction); !got.Equals(sunColor) {
		t.Errorf("Expected sun color looking at the sun, got %v", got)
	}

	// Well outside the 0.998 cosine cone
	away := core.NewVec3(0, 1, 0)
	if got := sky.GetColor(away); got.Equals(sunColor) {
		t.Errorf("Expected gradient away from the sun, got sun color")
	}
}

func TestSky_Uniform(t *testing.T) {
	color := core.NewVec3(0.3, 0.6, 0.9)
	sky := UniformSky(color)
	for _, dir := range []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 1, 1).Normalize(),
	} {
		if got := sky.GetColor(dir); !got.ApproxEquals(color, 1e-12) {
			t.Errorf("Direction %v: expected %v, got %v", dir, color, got)
		}
	}
}
