package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/sdf"
)

// builtinScenes maps a scene ID to its constructor
var builtinScenes = map[string]struct {
	description string
	create      func() *Scene
}{
	"default": {"Three spheres in lambert, metal and glass over a ground plane", NewDefaultScene},
	"sdf":     {"Smooth-blended distance field solids", NewSDFScene},
}

// Builtin returns a fresh copy of the named built-in scene
func Builtin(name string) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", name)
	}
	return entry.create(), nil
}

// BuiltinNames returns the IDs of all built-in scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	// Create materials
	lambertianGreen := material.NewLambert(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambert(core.NewVec3(0.65, 0.25, 0.2))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(core.NewVec3(1, 1, 1), 1.5)

	return &Scene{
		SampleCount: 100,
		MaxBounces:  50,
		CameraConfig: geometry.CameraConfig{
			LookFrom: core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
			LookAt:   core.NewVec3(0, 0.5, -1), // Look at the sphere center
			Up:       core.NewVec3(0, 1, 0),
			VFov:     40.0,
			Aperture: 0.05,
		},
		World: geometry.World{
			geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
			geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, materialGlass),
			geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), lambertianGreen),
		},
		Sky: DefaultSky(),
	}
}

// NewSDFScene creates a scene of distance field solids: a rounded box smoothly
// fused with a sphere, and a lens cut from two spheres
func NewSDFScene() *Scene {
	ground := material.NewLambert(core.NewVec3(0.5, 0.5, 0.5))
	blue := material.NewLambert(core.NewVec3(0.1, 0.2, 0.5))
	steel := material.NewMetal(core.NewVec3(0.7, 0.7, 0.75), 0.05)
	glass := material.NewDielectric(core.NewVec3(0.95, 1, 0.95), 1.5)

	blob := sdf.Union(
		sdf.At(core.Vec3{}, sdf.Round(sdf.Box(core.NewVec3(0.3, 0.3, 0.3)), 0.1)),
		sdf.At(core.NewVec3(0.35, 0.35, 0), sdf.Sphere(0.3)),
		0.2,
	)
	lens := sdf.Intersection(
		sdf.At(core.NewVec3(0, 0, 0.6), sdf.Sphere(0.8)),
		sdf.At(core.NewVec3(0, 0, -0.6), sdf.Sphere(0.8)),
		0.05,
	)

	return &Scene{
		SampleCount: 100,
		MaxBounces:  50,
		CameraConfig: geometry.CameraConfig{
			LookFrom: core.NewVec3(0, 1.2, 3),
			LookAt:   core.NewVec3(0, 0.4, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     45.0,
			Aperture: 0.02,
		},
		World: geometry.World{
			geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
			geometry.NewSDFSolid(core.NewVec3(-0.8, 0.4, -1), blob, steel),
			geometry.NewSDFSolid(core.NewVec3(0.8, 0.5, -1), lens, glass),
			geometry.NewSDFSolid(core.NewVec3(0, 0.25, 0), sdf.Round(sdf.Box(core.NewVec3(0.2, 0.15, 0.2)), 0.05), blue),
		},
		Sky: Sky{
			Horizon: core.NewVec3(1.0, 1.0, 1.0),
			Zenith:  core.NewVec3(0.5, 0.7, 1.0),
			Sun: &Sun{
				Direction: core.NewVec3(1, 2, 1).Normalize(),
				Color:     core.NewVec3(8, 7.5, 7),
			},
		},
	}
}
