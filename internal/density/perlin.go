package density

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Perlin is single-octave gradient noise. The underlying tables are fixed
// at construction, so it is safe for concurrent use.
type Perlin struct {
	noise *perlin.Perlin
}

// NewPerlin seeds a generator from rnd. Consecutive calls on the same rnd
// give independent generators.
func NewPerlin(rnd *rand.Rand) *Perlin {
	// alpha and beta only matter with more than one octave
	return &Perlin{noise: perlin.NewPerlin(2, 2, 1, rnd.Int63())}
}

// Noise3 returns gradient noise at (x, y, z), roughly in [-1, 1].
// It is exactly zero on integer lattice points.
func (p *Perlin) Noise3(x, y, z float64) float64 {
	return p.noise.Noise3D(x, y, z)
}

func (p *Perlin) Noise2(x, z float64) float64 {
	return p.noise.Noise2D(x, z)
}

// Octaves sums octaves at rising frequency and falling amplitude
// (fractal Brownian motion).
type Octaves struct {
	noise *perlin.Perlin
	norm  float64
}

// NewOctaves builds an octave sum. Each octave's amplitude is persistence
// times the previous one and its frequency lacunarity times.
func NewOctaves(rnd *rand.Rand, octaves int, persistence, lacunarity float64) *Octaves {
	o := &Octaves{
		noise: perlin.NewPerlin(1/persistence, lacunarity, int32(octaves), rnd.Int63()),
	}
	amp := 1.0
	for i := 0; i < octaves; i++ {
		o.norm += amp
		amp *= persistence
	}
	return o
}

// Noise2 returns the normalised octave sum, roughly in [-1, 1].
func (o *Octaves) Noise2(x, z float64) float64 {
	if o.norm == 0 {
		return 0
	}
	return o.noise.Noise2D(x, z) / o.norm
}
