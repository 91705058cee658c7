package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// ColorToRGBA converts a linear color to 8-bit sRGB-ish output: clamp to
// [0, 1], gamma 2, then quantize
func ColorToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(v float64) uint8 {
	// NaN falls through both comparisons and is written as black
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(255.999 * math.Sqrt(v))
}

// NewImage allocates an image for rendered rows
func NewImage(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// SetRow writes a rendered row into img
func SetRow(img *image.RGBA, row Row) {
	for x, c := range row.Pixels {
		img.SetRGBA(x, row.Y, ColorToRGBA(c))
	}
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img *image.RGBA) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// EncodePPM writes img as a plain-text (P3) PPM
func EncodePPM(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ppm: %w", err)
	}
	return nil
}
