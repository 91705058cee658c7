package renderer

import (
	"image"
	"time"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/integrator"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	NumWorkers int    // Number of parallel workers per row (0 = use CPU count)
	Seed       uint64 // Base seed; each pixel draws from its own stream of it
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,  // Auto-detect CPU count
		Seed:       42, // Deterministic by default
	}
}

// Row is one finished image row of linear colors, left to right
type Row struct {
	Y      int // Image row, 0 is the top of the image
	Pixels []core.Vec3
}

// Raytracer renders a scene row by row
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     RenderConfig
	camera     *geometry.Camera
	integrator integrator.Integrator
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRaytracer creates a raytracer for a width x height image of s
func NewRaytracer(s *scene.Scene, width, height int, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:      s,
		width:      width,
		height:     height,
		config:     config,
		camera:     s.NewCamera(float64(width) / float64(height)),
		integrator: integrator.NewPathTracingIntegrator(),
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// Render starts rendering in the background and returns the rows as they
// complete, top row first. Within a row, pixels are computed in parallel.
// The channel holds every row, so the renderer never waits for the caller,
// and it is closed after the last row. A started render always runs to
// completion.
func (rt *Raytracer) Render() <-chan Row {
	rows := make(chan Row, rt.height)

	go func() {
		defer close(rows)

		for j := rt.height - 1; j >= 0; j-- {
			pixels := make([]core.Vec3, rt.width)
			// Pixels are independent and the tasks never fail
			_ = rt.workerPool.Run(rt.width, func(i int) error {
				stats := rt.RenderPixel(i, j)
				pixels[i] = stats.GetColor()
				return nil
			})
			rows <- Row{Y: rt.height - 1 - j, Pixels: pixels}
		}
	}()

	return rows
}

// RenderPixel samples pixel (i, j), where j counts rows from the bottom of
// the image. The result depends only on the scene, the seed and the pixel.
func (rt *Raytracer) RenderPixel(i, j int) PixelStats {
	sampler := core.NewPixelSampler(rt.config.Seed, uint64(j*rt.width+i))

	// A single column or row still spans the full [0, 1] range
	uScale := float64(max(rt.width-1, 1))
	vScale := float64(max(rt.height-1, 1))

	var stats PixelStats
	for sample := 0; sample < rt.scene.SampleCount; sample++ {
		u := (float64(i) + sampler.Get1D()) / uScale
		v := (float64(j) + sampler.Get1D()) / vScale

		ray := rt.camera.GetRay(u, v, sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
	}
	return stats
}

// RenderImage renders the whole image and converts it for output
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats) {
	start := time.Now()
	rt.logger.Printf("Rendering %dx%d, %d samples, %d bounces, %d workers, %d objects\n",
		rt.width, rt.height, rt.scene.SampleCount, rt.scene.MaxBounces,
		rt.workerPool.GetNumWorkers(), rt.scene.GetPrimitiveCount())

	img := NewImage(rt.width, rt.height)
	stats := RenderStats{NumWorkers: rt.workerPool.GetNumWorkers()}
	for row := range rt.Render() {
		SetRow(img, row)
		stats.Rows++
		if stats.Rows%max(rt.height/10, 1) == 0 {
			rt.logger.Printf("%d/%d rows\n", stats.Rows, rt.height)
		}
	}

	stats.TotalPixels = rt.width * rt.height
	stats.TotalSamples = stats.TotalPixels * rt.scene.SampleCount
	stats.AverageSamples = float64(rt.scene.SampleCount)
	stats.Elapsed = time.Since(start)
	stats.Luminance = CalculateAverageLuminance(img)
	rt.logger.Printf("Render completed in %v, average luminance %.3f\n", stats.Elapsed, stats.Luminance)

	return img, stats
}
