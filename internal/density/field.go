// Package density maps world positions to scalar terrain density.
// Positive values are solid, the iso level is the surface.
package density

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"voxel-terrain/internal/config"
)

// Offset added to world coordinates before sampling so the noise lattice
// never sits on the origin.
const Offset = 16777216.0

// Field is a deterministic density function. Implementations must be safe
// for concurrent use by streaming workers.
type Field interface {
	Sample(x, y, z float64) float32
}

// TerrainField composes a fractal height map with a 3D cave layer.
type TerrainField struct {
	cfg    config.NoiseConfig
	base   *Octaves
	hills  *Perlin
	detail *Perlin
	caves  *Perlin
	offset mgl64.Vec3
}

func NewTerrainField(cfg config.NoiseConfig) *TerrainField {
	rnd := rand.New(rand.NewSource(cfg.Seed))
	return &TerrainField{
		cfg:    cfg,
		base:   NewOctaves(rnd, cfg.Octaves, cfg.Persistence, cfg.Lacunarity),
		hills:  NewPerlin(rnd),
		detail: NewPerlin(rnd),
		caves:  NewPerlin(rnd),
		offset: mgl64.Vec3{Offset, Offset, Offset},
	}
}

func unit(n float64) float64 {
	return (n + 1) * 0.5
}

// Height returns the terrain surface height at a world column.
func (f *TerrainField) Height(x, z float64) float64 {
	p := mgl64.Vec3{x, 0, z}.Add(f.offset)
	base := unit(f.base.Noise2(p.X()*f.cfg.BaseScale, p.Z()*f.cfg.BaseScale))
	hills := unit(f.hills.Noise2(p.X()*f.cfg.HillsScale, p.Z()*f.cfg.HillsScale))
	tiny := unit(f.detail.Noise2(p.X()*f.cfg.DetailScale, p.Z()*f.cfg.DetailScale))
	return (base + hills*0.2 + tiny*0.01) * f.cfg.HeightScale
}

func (f *TerrainField) Sample(x, y, z float64) float32 {
	iso := f.Height(x, z) - y
	if f.cfg.Caves {
		p := mgl64.Vec3{x, y, z}.Add(f.offset).Mul(f.cfg.CaveScale)
		// caves only ever carve
		iso -= unit(f.caves.Noise3(p.X(), p.Y(), p.Z())) * f.cfg.CaveStrength
	}
	return float32(iso)
}

// FlatField is a horizontal ground plane at Height.
type FlatField struct {
	Height float64
}

func (f FlatField) Sample(_, y, _ float64) float32 {
	return float32(f.Height - y)
}

// FieldFunc adapts a plain function to Field.
type FieldFunc func(x, y, z float64) float32

func (fn FieldFunc) Sample(x, y, z float64) float32 {
	return fn(x, y, z)
}
