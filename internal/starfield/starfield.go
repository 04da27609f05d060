// Package starfield generates the decorative star background and owns the
// persisted on/off preference that controls it.
//
// A background is a stack of layers. Each layer is a fresh, unseeded sample
// of star descriptors whose count is derived from the layer density:
//
//	layers := starfield.Compose(starfield.DefaultRand, starfield.DefaultLayers())
//
// Nothing is cached between calls, so positions differ on every render.
package starfield

import (
	"math"
	"math/rand/v2"
)

// StarsPerDensity is the number of stars a layer of density 1 contains.
const StarsPerDensity = 400

const (
	minStarSize    = 0.6
	minTwinkleSecs = 2.0
	twinkleSpread  = 4.0
)

// StarCount returns floor(400 * density). Negative densities follow
// mathematical floor; callers get a non-positive count and no stars.
func StarCount(density float64) int {
	return int(math.Floor(StarsPerDensity * density))
}

// Star is one decorative point. X and Y are percentages of the container,
// Size is in pixels (or cells) and Twinkle is the animation period in seconds.
type Star struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Twinkle float64 `json:"twinkle"`
}

// RandSource yields uniform values in [0, 1).
type RandSource interface {
	Float64() float64
}

// RandFunc adapts a plain function to RandSource.
type RandFunc func() float64

// Float64 calls f.
func (f RandFunc) Float64() float64 { return f() }

// DefaultRand draws from the unseeded global generator.
// #nosec G404 -- decorative positions, not security-sensitive
var DefaultRand RandSource = RandFunc(rand.Float64)

// GenerateLayer samples StarCount(density) stars. size is the jitter range
// added on top of the fixed minimum star size.
func GenerateLayer(rng RandSource, density, size float64) []Star {
	n := StarCount(density)
	if n <= 0 {
		return []Star{}
	}
	if rng == nil {
		rng = DefaultRand
	}

	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:       rng.Float64() * 100,
			Y:       rng.Float64() * 100,
			Size:    rng.Float64()*size + minStarSize,
			Twinkle: rng.Float64()*twinkleSpread + minTwinkleSecs,
		}
	}
	return stars
}
