package scene

import "github.com/df07/go-sdf-raytracer/pkg/core"

// sunCosThreshold is the cosine of the sun disk's angular radius
const sunCosThreshold = 0.998

// Sun is a small bright disk in the sky
type Sun struct {
	Direction core.Vec3 // Unit vector toward the sun
	Color     core.Vec3
}

// Sky is the background radiance seen by rays that escape the world. It is a
// pure function of direction.
type Sky struct {
	Horizon core.Vec3 // Color at and below the horizon
	Zenith  core.Vec3 // Color straight up
	Sun     *Sun      // Optional
}

// DefaultSky returns the white-to-light-blue gradient
func DefaultSky() Sky {
	return Sky{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// UniformSky returns a sky of a single constant color
func UniformSky(color core.Vec3) Sky {
	return Sky{Horizon: color, Zenith: color}
}

// GetColor returns the sky radiance along the unit direction dir
func (s Sky) GetColor(dir core.Vec3) core.Vec3 {
	if s.Sun != nil && dir.Dot(s.Sun.Direction) > sunCosThreshold {
		return s.Sun.Color
	}

	t := 0.5 * (dir.Y + 1.0)
	return s.Horizon.Multiply(1.0 - t).Add(s.Zenith.Multiply(t))
}
