package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/df07/go-sdf-raytracer/pkg/config"
	"github.com/df07/go-sdf-raytracer/pkg/renderer"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command line interface. Flag defaults come from cfg.
func newApp(cfg *config.Config) *cli.App {
	renderFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "default",
			Usage: "built-in scene name, scene file name in the scenes directory, or path to a YAML scene",
		},
		cli.IntFlag{
			Name:  "width",
			Value: cfg.Width,
			Usage: "image width in pixels",
		},
		cli.IntFlag{
			Name:  "height",
			Value: cfg.Height,
			Usage: "image height in pixels",
		},
		cli.IntFlag{
			Name:  "samples",
			Usage: "samples per pixel (default: from the scene)",
		},
		cli.IntFlag{
			Name:  "bounces",
			Usage: "maximum bounces per path (default: from the scene)",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: cfg.Workers,
			Usage: "parallel workers per row, 0 uses every CPU",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Value: cfg.Seed,
			Usage: "random seed; the same seed always produces the same image",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "png",
			Usage: "output format: png or ppm",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "output file (default: <output dir>/<scene>/render_<timestamp>.<format>)",
		},
	}

	app := cli.NewApp()
	app.Name = "sdftrace"
	app.Usage = "render scenes of spheres, planes and distance fields by path tracing"
	app.Version = "0.1.0"
	app.Flags = renderFlags
	app.Action = func(c *cli.Context) error {
		return renderCommand(c, cfg)
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Flags: renderFlags,
			Action: func(c *cli.Context) error {
				return renderCommand(c, cfg)
			},
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Action: func(c *cli.Context) error {
				return listScenes(c, cfg)
			},
		},
	}

	return app
}

// renderCommand renders the selected scene and writes it to disk
func renderCommand(c *cli.Context, cfg *config.Config) error {
	sceneName := c.String("scene")
	format := strings.ToLower(c.String("format"))
	if format != "png" && format != "ppm" {
		return fmt.Errorf("unknown output format %q", format)
	}

	width, height := c.Int("width"), c.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}

	selectedScene, err := scene.Resolve(sceneName, cfg.ScenesDir)
	if err != nil {
		return err
	}
	if c.IsSet("samples") {
		if c.Int("samples") < 0 {
			return fmt.Errorf("samples must not be negative")
		}
		selectedScene.SampleCount = c.Int("samples")
	}
	if c.IsSet("bounces") {
		if c.Int("bounces") < 0 {
			return fmt.Errorf("bounces must not be negative")
		}
		selectedScene.MaxBounces = c.Int("bounces")
	}

	filename := c.String("output")
	if filename == "" {
		filename = outputFilename(cfg.OutputDir, sceneName, format, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	raytracer := renderer.NewRaytracer(selectedScene, width, height, renderer.RenderConfig{
		NumWorkers: c.Int("workers"),
		Seed:       c.Uint64("seed"),
	}, renderer.NewDefaultLogger())

	img, stats := raytracer.RenderImage()
	fmt.Fprintf(c.App.Writer, "Rendered %d pixels (%d samples) in %v\n",
		stats.TotalPixels, stats.TotalSamples, stats.Elapsed)

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if format == "ppm" {
		err = renderer.EncodePPM(file, img)
	} else {
		err = renderer.EncodePNG(file, img)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Render saved as %s\n", filename)
	return nil
}

// outputFilename places a render under outputDir/<scene base name>
func outputFilename(outputDir, sceneName, format string, now time.Time) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimPrefix(base, "file:")
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}

	timestamp := now.Format("20060102_150405")
	id := uuid.New().String()[:8]
	return filepath.Join(outputDir, base, fmt.Sprintf("render_%s_%s.%s", timestamp, id, format))
}

// listScenes prints every scene the render command can resolve
func listScenes(c *cli.Context, cfg *config.Config) error {
	response, err := scene.ListAllScenes(cfg.ScenesDir)
	if err != nil {
		return err
	}

	for _, group := range response.Groups {
		fmt.Fprintf(c.App.Writer, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			line := fmt.Sprintf("  %-20s %s", info.ID, info.DisplayName)
			if info.Description != "" {
				line += " - " + info.Description
			}
			fmt.Fprintln(c.App.Writer, line)
		}
	}
	return nil
}
