package meshing

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxel-terrain/internal/density"
	"voxel-terrain/internal/profiling"
)

// DensityGrid is a cubic lattice of Size samples per axis, x fastest.
type DensityGrid struct {
	Size   int
	Values []float32
}

func NewDensityGrid(size int) *DensityGrid {
	return &DensityGrid{Size: size, Values: make([]float32, size*size*size)}
}

func (g *DensityGrid) index(x, y, z int) int {
	return x + g.Size*(y+g.Size*z)
}

func (g *DensityGrid) InRange(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.Size && y < g.Size && z < g.Size
}

func (g *DensityGrid) At(x, y, z int) float32 {
	return g.Values[g.index(x, y, z)]
}

func (g *DensityGrid) Set(x, y, z int, v float32) {
	g.Values[g.index(x, y, z)] = v
}

// Resolution is the number of cells a chunk owns along each axis.
func (g *DensityGrid) Resolution() int {
	return g.Size - 2
}

// SampleGrid samples f on a (resolution+2)^3 lattice starting at origin with
// the given world-space stride. The extra layer lets boundary cells see
// their neighbours.
func SampleGrid(f density.Field, origin mgl64.Vec3, resolution int, step float64) *DensityGrid {
	defer profiling.Track("meshing.SampleGrid")()
	g := NewDensityGrid(resolution + 2)
	i := 0
	for z := 0; z < g.Size; z++ {
		wz := origin.Z() + float64(z)*step
		for y := 0; y < g.Size; y++ {
			wy := origin.Y() + float64(y)*step
			for x := 0; x < g.Size; x++ {
				g.Values[i] = f.Sample(origin.X()+float64(x)*step, wy, wz)
				i++
			}
		}
	}
	return g
}

// VoxelGrid holds block ids, 0 meaning empty.
type VoxelGrid struct {
	Dims   [3]int
	Blocks []uint16
}

func NewVoxelGrid(sx, sy, sz int) *VoxelGrid {
	return &VoxelGrid{Dims: [3]int{sx, sy, sz}, Blocks: make([]uint16, sx*sy*sz)}
}

func (g *VoxelGrid) InRange(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.Dims[0] && y < g.Dims[1] && z < g.Dims[2]
}

// At returns the block at (x, y, z); positions outside the grid are empty.
func (g *VoxelGrid) At(x, y, z int) uint16 {
	if !g.InRange(x, y, z) {
		return 0
	}
	return g.Blocks[x+g.Dims[0]*(y+g.Dims[1]*z)]
}

// Set stores a block and reports whether the position was inside the grid.
func (g *VoxelGrid) Set(x, y, z int, block uint16) bool {
	if !g.InRange(x, y, z) {
		return false
	}
	g.Blocks[x+g.Dims[0]*(y+g.Dims[1]*z)] = block
	return true
}
