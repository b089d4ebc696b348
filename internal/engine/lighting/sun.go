// Package lighting provides the directional light the range is lit with.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/shooting-range/pkg/math"
)

// Sun is a directional light given by compass angles in degrees.
// Azimuth rotates around the Y axis starting at +Z. Elevation is measured
// up from the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
	Color     math.Vec3
	Ambient   float32 // fraction of Color applied regardless of facing
}

// DefaultSun lights the range from behind the firing line, high overhead.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   30,
		Elevation: 60,
		Color:     math.Vec3{X: 1, Y: 0.97, Z: 0.9},
		Ambient:   0.3,
	}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	az := float64(math.Radians(s.Azimuth))
	el := float64(math.Radians(s.Elevation))

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}
