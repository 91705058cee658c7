package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/material"
	"github.com/df07/go-sdf-raytracer/pkg/sdf"
)

// Defaults applied to fields a scene file leaves out
const (
	DefaultBounces  = 100
	DefaultSamples  = 100
	DefaultAperture = 0.1
	DefaultFov      = 60.0
	DefaultFuzz     = 0.01
)

// V3 is a vector written as a three element YAML sequence
type V3 [3]float64

// Vec3 converts v to a core vector
func (v V3) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Config is the serialized form of a scene. Build turns it into a Scene.
type Config struct {
	Bounces int            `yaml:"bounces"`
	Samples int            `yaml:"samples"`
	Camera  CameraConfig   `yaml:"camera"`
	World   []ObjectConfig `yaml:"world"`
	Sky     *SkyConfig     `yaml:"sky,omitempty"`
}

// CameraConfig describes the camera. A missing focus distance focuses on LookAt.
type CameraConfig struct {
	Pos           V3       `yaml:"pos"`
	LookAt        V3       `yaml:"look_at"`
	Up            V3       `yaml:"up"`
	FocusDistance *float64 `yaml:"focus_distance,omitempty"`
	Aperture      float64  `yaml:"aperture"`
	Fov           float64  `yaml:"fov"`
}

// ColorInput is either a constant color or a texture file. Only constant
// colors are supported.
type ColorInput struct {
	Color    *V3    `yaml:"color,omitempty"`
	Filename string `yaml:"filename,omitempty"`
}

// MaterialConfig is a material tagged by Type: Holdout, Lambert, Metal or Dielectric
type MaterialConfig struct {
	Type   string     `yaml:"type"`
	Albedo ColorInput `yaml:"albedo"`
	Fuzz   *float64   `yaml:"fuzz,omitempty"`
	IOR    float64    `yaml:"ior,omitempty"`
}

// ObjectConfig is a world object tagged by Type: Sphere, Plane or SDF
type ObjectConfig struct {
	Type     string         `yaml:"type"`
	Pos      V3             `yaml:"pos"`
	Radius   float64        `yaml:"radius,omitempty"`
	Normal   V3             `yaml:"normal,omitempty"`
	SDF      *SDFConfig     `yaml:"sdf,omitempty"`
	Material MaterialConfig `yaml:"material"`
}

// SDFConfig is a distance field node tagged by Type: Sphere, Plane, Box,
// Rounding, Union or Intersection
type SDFConfig struct {
	Type   string            `yaml:"type"`
	Radius float64           `yaml:"radius,omitempty"`
	Normal V3                `yaml:"normal,omitempty"`
	Size   V3                `yaml:"size,omitempty"`
	SDF    *SDFConfig        `yaml:"sdf,omitempty"`
	Amount float64           `yaml:"amount,omitempty"`
	Left   *PositionedConfig `yaml:"left,omitempty"`
	Right  *PositionedConfig `yaml:"right,omitempty"`
	Smooth float64           `yaml:"smooth,omitempty"`
}

// PositionedConfig is an SDF node with its offset written alongside the node fields
type PositionedConfig struct {
	Pos       V3 `yaml:"pos"`
	SDFConfig `yaml:",inline"`
}

// SkyConfig overrides the default sky gradient
type SkyConfig struct {
	Horizon *V3        `yaml:"horizon,omitempty"`
	Zenith  *V3        `yaml:"zenith,omitempty"`
	Sun     *SunConfig `yaml:"sun,omitempty"`
}

// SunConfig places a sun disk in the sky
type SunConfig struct {
	Direction V3 `yaml:"direction"`
	Color     V3 `yaml:"color"`
}

// LoadConfig decodes a YAML scene description. Unknown fields are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	config := &Config{
		Bounces: DefaultBounces,
		Samples: DefaultSamples,
		Camera: CameraConfig{
			Aperture: DefaultAperture,
			Fov:      DefaultFov,
		},
	}

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return config, nil
}

// LoadFile reads and builds the scene stored at path
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	config, err := LoadConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Build validates the configuration and converts it into a renderable Scene
func (c *Config) Build() (*Scene, error) {
	if c.Samples < 0 {
		return nil, fmt.Errorf("samples must not be negative, got %d", c.Samples)
	}
	if c.Bounces < 0 {
		return nil, fmt.Errorf("bounces must not be negative, got %d", c.Bounces)
	}

	camera, err := c.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	world := make(geometry.World, 0, len(c.World))
	for i, objectConfig := range c.World {
		object, err := objectConfig.build()
		if err != nil {
			return nil, fmt.Errorf("world[%d]: %w", i, err)
		}
		world = append(world, object)
	}

	sky := DefaultSky()
	if c.Sky != nil {
		if sky, err = c.Sky.build(); err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
	}

	return &Scene{
		SampleCount:  c.Samples,
		MaxBounces:   c.Bounces,
		CameraConfig: camera,
		World:        world,
		Sky:          sky,
	}, nil
}

func (c CameraConfig) build() (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		LookFrom: c.Pos.Vec3(),
		LookAt:   c.LookAt.Vec3(),
		Up:       c.Up.Vec3(),
		VFov:     c.Fov,
		Aperture: c.Aperture,
	}

	view := config.LookFrom.Subtract(config.LookAt)
	if view.NearZero() {
		return config, fmt.Errorf("pos and look_at must differ")
	}
	if config.Up.Cross(view).NearZero() {
		return config, fmt.Errorf("up must not be zero or parallel to the view direction")
	}
	if c.Fov <= 0 || c.Fov >= 180 {
		return config, fmt.Errorf("fov must be in (0, 180), got %g", c.Fov)
	}
	if c.Aperture < 0 {
		return config, fmt.Errorf("aperture must not be negative, got %g", c.Aperture)
	}

	if c.FocusDistance != nil {
		if *c.FocusDistance <= 0 {
			return config, fmt.Errorf("focus_distance must be positive, got %g", *c.FocusDistance)
		}
		config.FocusDistance = *c.FocusDistance
	}
	return config, nil
}

func (c ColorInput) build() (core.Vec3, error) {
	switch {
	case c.Color != nil:
		return c.Color.Vec3(), nil
	case c.Filename != "":
		return core.Vec3{}, fmt.Errorf("texture albedo %q is not supported", c.Filename)
	default:
		return core.Vec3{}, fmt.Errorf("albedo requires a color")
	}
}

func (c MaterialConfig) build() (material.Material, error) {
	albedo, err := c.Albedo.build()
	if err != nil {
		return material.Material{}, err
	}

	switch c.Type {
	case "Holdout":
		return material.NewHoldout(albedo), nil
	case "Lambert":
		return material.NewLambert(albedo), nil
	case "Metal":
		fuzz := DefaultFuzz
		if c.Fuzz != nil {
			fuzz = *c.Fuzz
		}
		if fuzz < 0 {
			return material.Material{}, fmt.Errorf("metal fuzz must not be negative, got %g", fuzz)
		}
		return material.NewMetal(albedo, fuzz), nil
	case "Dielectric":
		if c.IOR <= 0 {
			return material.Material{}, fmt.Errorf("dielectric ior must be positive, got %g", c.IOR)
		}
		return material.NewDielectric(albedo, c.IOR), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", c.Type)
	}
}

func (c ObjectConfig) build() (geometry.Object, error) {
	mat, err := c.Material.build()
	if err != nil {
		return geometry.Object{}, fmt.Errorf("material: %w", err)
	}
	pos := c.Pos.Vec3()

	switch c.Type {
	case "Sphere":
		if c.Radius <= 0 {
			return geometry.Object{}, fmt.Errorf("sphere radius must be positive, got %g", c.Radius)
		}
		return geometry.NewSphere(pos, c.Radius, mat), nil
	case "Plane":
		if c.Normal.Vec3().NearZero() {
			return geometry.Object{}, fmt.Errorf("plane normal must not be zero")
		}
		return geometry.NewPlane(pos, c.Normal.Vec3(), mat), nil
	case "SDF":
		if c.SDF == nil {
			return geometry.Object{}, fmt.Errorf("sdf object requires an sdf tree")
		}
		node, err := c.SDF.build()
		if err != nil {
			return geometry.Object{}, fmt.Errorf("sdf: %w", err)
		}
		return geometry.NewSDFSolid(pos, node, mat), nil
	default:
		return geometry.Object{}, fmt.Errorf("unknown object type %q", c.Type)
	}
}

func (c *SDFConfig) build() (*sdf.Node, error) {
	switch c.Type {
	case "Sphere":
		if c.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", c.Radius)
		}
		return sdf.Sphere(c.Radius), nil
	case "Plane":
		if c.Normal.Vec3().NearZero() {
			return nil, fmt.Errorf("plane normal must not be zero")
		}
		return sdf.Plane(c.Normal.Vec3()), nil
	case "Box":
		size := c.Size.Vec3()
		if size.X < 0 || size.Y < 0 || size.Z < 0 {
			return nil, fmt.Errorf("box size must not be negative, got %v", size)
		}
		return sdf.Box(size), nil
	case "Rounding":
		if c.SDF == nil {
			return nil, fmt.Errorf("rounding requires an sdf")
		}
		child, err := c.SDF.build()
		if err != nil {
			return nil, fmt.Errorf("rounding: %w", err)
		}
		return sdf.Round(child, c.Amount), nil
	case "Union", "Intersection":
		if c.Left == nil || c.Right == nil {
			return nil, fmt.Errorf("%s requires left and right", c.Type)
		}
		if c.Smooth < 0 {
			return nil, fmt.Errorf("%s smooth must not be negative, got %g", c.Type, c.Smooth)
		}
		left, err := c.Left.build()
		if err != nil {
			return nil, fmt.Errorf("%s left: %w", c.Type, err)
		}
		right, err := c.Right.build()
		if err != nil {
			return nil, fmt.Errorf("%s right: %w", c.Type, err)
		}
		if c.Type == "Union" {
			return sdf.Union(left, right, c.Smooth), nil
		}
		return sdf.Intersection(left, right, c.Smooth), nil
	default:
		return nil, fmt.Errorf("unknown sdf type %q", c.Type)
	}
}

func (c *PositionedConfig) build() (sdf.Positioned, error) {
	node, err := c.SDFConfig.build()
	if err != nil {
		return sdf.Positioned{}, err
	}
	return sdf.At(c.Pos.Vec3(), node), nil
}

func (c *SkyConfig) build() (Sky, error) {
	sky := DefaultSky()
	if c.Horizon != nil {
		sky.Horizon = c.Horizon.Vec3()
	}
	if c.Zenith != nil {
		sky.Zenith = c.Zenith.Vec3()
	}
	if c.Sun != nil {
		direction := c.Sun.Direction.Vec3()
		if direction.NearZero() {
			return sky, fmt.Errorf("sun direction must not be zero")
		}
		sky.Sun = &Sun{Direction: direction.Normalize(), Color: c.Sun.Color.Vec3()}
	}
	return sky, nil
}
