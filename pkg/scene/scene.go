package scene

import (
	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It is built once and
// treated as read-only while a render is in progress.
type Scene struct {
	SampleCount  int                   // Rays averaged per pixel
	MaxBounces   int                   // Path length budget per sample
	CameraConfig geometry.CameraConfig // Camera is derived per render from the image aspect ratio
	World        geometry.World
	Sky          Sky
}

// NewCamera builds the scene camera for an image with the given aspect ratio
func (s *Scene) NewCamera(aspectRatio float64) *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig, aspectRatio)
}

// Hit returns the closest intersection of ray with the world
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return s.World.Hit(ray, tMin, tMax)
}

// GetPrimitiveCount returns the number of objects in the world
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World)
}
