package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/density"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/profiling"
)

// Generator builds chunks from a density field. It only reads shared,
// immutable inputs so any number of workers may call Generate at once.
type Generator struct {
	Kind    Kind
	Terrain config.TerrainConfig
	Field   density.Field

	extractor meshing.Extractor
}

// NewGenerator returns a generator for the given chunk kind.
func NewGenerator(kind Kind, terrain config.TerrainConfig, field density.Field) *Generator {
	g := &Generator{Kind: kind, Terrain: terrain, Field: field}
	switch kind {
	case KindSurfaceNets:
		g.extractor = meshing.SurfaceNets{}
	case KindMarchingCubes:
		g.extractor = meshing.MarchingCubes{}
	}
	return g
}

// Generate samples and meshes the chunk at coord. Block chunks ignore lod.
func (g *Generator) Generate(coord ChunkCoord, lod int) *Chunk {
	defer profiling.Track("world.Generate")()

	size := g.Terrain.ChunkSize
	c := &Chunk{
		Coord:  coord,
		Bounds: BoundsForCoord(coord, size),
		Kind:   g.Kind,
	}

	if g.Kind == KindBlocks {
		c.Resolution = size
		c.vol = &blockVolume{grid: g.populate(c.Bounds)}
	} else {
		res := g.Terrain.Resolution(lod)
		step := size / res
		origin := mgl64.Vec3{float64(c.Bounds.Min[0]), float64(c.Bounds.Min[1]), float64(c.Bounds.Min[2])}
		c.LOD = lod
		c.Resolution = res
		c.vol = &isoVolume{
			grid:      meshing.SampleGrid(g.Field, origin, res, float64(step)),
			iso:       g.Terrain.IsoValue,
			step:      float32(step),
			extractor: g.extractor,
		}
	}

	c.mesh = c.vol.extract()
	profiling.Count("world.chunks_generated", 1)
	return c
}

// populate fills a block grid by sampling the field at voxel centres.
// Each column is walked top down, starting a few voxels above the chunk so
// the grass and dirt layers continue across vertical chunk borders.
func (g *Generator) populate(b ChunkBounds) *meshing.VoxelGrid {
	size := b.Size()
	grid := meshing.NewVoxelGrid(size, size, size)
	iso := g.Terrain.IsoValue
	for z := 0; z < size; z++ {
		wz := float64(b.Min[2]) + float64(z) + 0.5
		for x := 0; x < size; x++ {
			wx := float64(b.Min[0]) + float64(x) + 0.5
			depth := -1
			for y := size + dirtDepth; y >= 0; y-- {
				wy := float64(b.Min[1]) + float64(y) + 0.5
				if g.Field.Sample(wx, wy, wz) <= iso {
					depth = -1
					continue
				}
				depth++
				if y < size {
					grid.Set(x, y, z, blockForDepth(depth))
				}
			}
		}
	}
	return grid
}
