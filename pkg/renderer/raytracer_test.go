package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

var testCamera = geometry.CameraConfig{
	LookFrom: core.NewVec3(0, 0, 0),
	LookAt:   core.NewVec3(0, 0, -1),
	Up:       core.NewVec3(0, 1, 0),
	VFov:     60,
	Aperture: 0.1,
}

func collectRows(t *testing.T, rt *Raytracer) []Row {
	t.Helper()
	var rows []Row
	for row := range rt.Render() {
		rows = append(rows, row)
	}
	return rows
}

func TestRender_RowOrderAndShape(t *testing.T) {
	sc := &scene.Scene{SampleCount: 2, MaxBounces: 4, CameraConfig: testCamera, Sky: scene.DefaultSky()}
	rt := NewRaytracer(sc, 5, 4, RenderConfig{NumWorkers: 3, Seed: 1}, nil)

	rows := collectRows(t, rt)
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Y != i {
			t.Errorf("Expected row %d in position %d, got Y=%d", i, i, row.Y)
		}
		if len(row.Pixels) != 5 {
			t.Errorf("Row %d: expected 5 pixels, got %d", i, len(row.Pixels))
		}
	}

	// Top rows look higher up the gradient, so they are bluer than bottom rows
	if rows[0].Pixels[2].X >= rows[3].Pixels[2].X {
		t.Errorf("Expected top row %v to be bluer than bottom row %v", rows[0].Pixels[2], rows[3].Pixels[2])
	}
}

func TestRender_EmptyWorldUniformSky(t *testing.T) {
	skyColor := core.NewVec3(0.25, 0.5, 0.75)

	for _, samples := range []int{1, 3, 16} {
		sc := &scene.Scene{
			SampleCount:  samples,
			MaxBounces:   10,
			CameraConfig: testCamera,
			Sky:          scene.UniformSky(skyColor),
		}
		rt := NewRaytracer(sc, 4, 3, RenderConfig{NumWorkers: 2, Seed: 9}, nil)

		for _, row := range collectRows(t, rt) {
			for x, c := range row.Pixels {
				if !c.ApproxEquals(skyColor, 1e-12) {
					t.Errorf("samples=%d pixel (%d,%d): expected %v, got %v", samples, x, row.Y, skyColor, c)
				}
			}
		}
	}
}

func TestRender_HoldoutEnclosure(t *testing.T) {
	albedo := core.NewVec3(0.1, 0.6, 0.3)
	sc := &scene.Scene{
		SampleCount:  1,
		MaxBounces:   5,
		CameraConfig: testCamera,
		World:        geometry.World{geometry.NewSphere(core.Vec3{}, 100, material.NewHoldout(albedo))},
		Sky:          scene.DefaultSky(),
	}
	rt := NewRaytracer(sc, 2, 2, RenderConfig{NumWorkers: 1, Seed: 3}, nil)

	for _, row := range collectRows(t, rt) {
		for x, c := range row.Pixels {
			if !c.Equals(albedo) {
				t.Errorf("Pixel (%d,%d): expected holdout albedo %v, got %v", x, row.Y, albedo, c)
			}
		}
	}
}

func TestRender_SingleBounceLambertEnclosure(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.4, 0.2)
	sc := &scene.Scene{
		SampleCount:  4,
		MaxBounces:   1,
		CameraConfig: testCamera,
		World:        geometry.World{geometry.NewSphere(core.Vec3{}, 50, material.NewLambert(albedo))},
		Sky:          scene.DefaultSky(),
	}
	rt := NewRaytracer(sc, 3, 2, RenderConfig{Seed: 5}, nil)

	for _, row := range collectRows(t, rt) {
		for x, c := range row.Pixels {
			if !c.ApproxEquals(albedo, 1e-12) {
				t.Errorf("Pixel (%d,%d): expected attenuation %v, got %v", x, row.Y, albedo, c)
			}
		}
	}
}

func TestRender_DeterministicForSeed(t *testing.T) {
	sc := scene.NewDefaultScene()
	sc.SampleCount = 3
	sc.MaxBounces = 6

	render := func(workers int, seed uint64) []Row {
		return collectRows(t, NewRaytracer(sc, 8, 6, RenderConfig{NumWorkers: workers, Seed: seed}, nil))
	}

	first := render(1, 77)
	second := render(4, 77)
	for y := range first {
		for x := range first[y].Pixels {
			a, b := first[y].Pixels[x], second[y].Pixels[x]
			if a != b && !(math.IsNaN(a.X) && math.IsNaN(b.X)) {
				t.Fatalf("Pixel (%d,%d) differs between runs: %v vs %v", x, y, a, b)
			}
		}
	}

	different := render(4, 78)
	same := true
	for y := range first {
		for x := range first[y].Pixels {
			if first[y].Pixels[x] != different[y].Pixels[x] {
				same = false
			}
		}
	}
	if same {
		t.Error("Expected a different seed to change the image")
	}
}

func TestRender_ZeroSamplesIsBlack(t *testing.T) {
	sc := &scene.Scene{SampleCount: 0, MaxBounces: 5, CameraConfig: testCamera, Sky: scene.DefaultSky()}
	rt := NewRaytracer(sc, 3, 3, DefaultRenderConfig(), nil)

	for _, row := range collectRows(t, rt) {
		for x, c := range row.Pixels {
			if c != (core.Vec3{}) {
				t.Errorf("Pixel (%d,%d): expected black, got %v", x, row.Y, c)
			}
		}
	}
}

func TestRender_SinglePixel(t *testing.T) {
	sc := &scene.Scene{SampleCount: 4, MaxBounces: 5, CameraConfig: testCamera, Sky: scene.DefaultSky()}
	rt := NewRaytracer(sc, 1, 1, DefaultRenderConfig(), nil)

	rows := collectRows(t, rt)
	if len(rows) != 1 || len(rows[0].Pixels) != 1 {
		t.Fatalf("Expected a single pixel, got %v", rows)
	}
	c := rows[0].Pixels[0]
	if math.IsNaN(c.X) || math.IsInf(c.X, 0) {
		t.Errorf("Expected a finite color, got %v", c)
	}
}

func TestRenderImage_Stats(t *testing.T) {
	sc := &scene.Scene{SampleCount: 2, MaxBounces: 3, CameraConfig: testCamera, Sky: scene.DefaultSky()}
	rt := NewRaytracer(sc, 6, 4, RenderConfig{NumWorkers: 2}, nil)

	img, stats := rt.RenderImage()
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 6x4 image, got %v", img.Bounds())
	}
	if stats.TotalPixels != 24 || stats.TotalSamples != 48 || stats.Rows != 4 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.NumWorkers != 2 || stats.AverageSamples != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if img.RGBAAt(0, 0).A != 255 {
		t.Error("Expected opaque pixels")
	}
	if stats.Luminance <= 0 || stats.Luminance != CalculateAverageLuminance(img) {
		t.Errorf("Expected luminance of the sky image, got %f", stats.Luminance)
	}
}
