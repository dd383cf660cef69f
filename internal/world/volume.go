package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/meshing"
)

// volume is the editable voxel data behind a chunk mesh.
type volume interface {
	// voxelAt maps a chunk-local position to a voxel index.
	voxelAt(local mgl32.Vec3) ([3]int, bool)
	solid(v [3]int) bool
	// set makes a voxel solid or empty and reports whether it changed.
	set(v [3]int, solid bool, block BlockType) bool
	extract() *meshing.Mesh
}

// isoVolume keeps the sampled density lattice so edits can rewrite single
// lattice points. A voxel is a lattice point.
type isoVolume struct {
	grid      *meshing.DensityGrid
	iso       float32
	step      float32
	extractor meshing.Extractor
}

func (v *isoVolume) voxelAt(local mgl32.Vec3) ([3]int, bool) {
	var idx [3]int
	for i := 0; i < 3; i++ {
		idx[i] = int(math.Floor(float64(local[i]/v.step) + 0.5))
	}
	return idx, v.grid.InRange(idx[0], idx[1], idx[2])
}

func (v *isoVolume) solid(p [3]int) bool {
	if !v.grid.InRange(p[0], p[1], p[2]) {
		return false
	}
	return v.grid.At(p[0], p[1], p[2]) > v.iso
}

func (v *isoVolume) set(p [3]int, solid bool, _ BlockType) bool {
	if !v.grid.InRange(p[0], p[1], p[2]) || v.solid(p) == solid {
		return false
	}
	value := v.iso - 1
	if solid {
		value = v.iso + 1
	}
	v.grid.Set(p[0], p[1], p[2], value)
	return true
}

// setRaw copies a lattice value shared with a neighbouring chunk.
func (v *isoVolume) setRaw(p [3]int, value float32) bool {
	if !v.grid.InRange(p[0], p[1], p[2]) || v.grid.At(p[0], p[1], p[2]) == value {
		return false
	}
	v.grid.Set(p[0], p[1], p[2], value)
	return true
}

func (v *isoVolume) extract() *meshing.Mesh {
	return v.extractor.Extract(v.grid, v.iso, v.step)
}

// blockVolume stores one block per unit voxel.
type blockVolume struct {
	grid *meshing.VoxelGrid
}

func (v *blockVolume) voxelAt(local mgl32.Vec3) ([3]int, bool) {
	idx := [3]int{
		int(math.Floor(float64(local.X()))),
		int(math.Floor(float64(local.Y()))),
		int(math.Floor(float64(local.Z()))),
	}
	return idx, v.grid.InRange(idx[0], idx[1], idx[2])
}

func (v *blockVolume) solid(p [3]int) bool {
	return v.grid.At(p[0], p[1], p[2]) != BlockTypeAir
}

func (v *blockVolume) set(p [3]int, solid bool, block BlockType) bool {
	if !v.grid.InRange(p[0], p[1], p[2]) || v.solid(p) == solid {
		return false
	}
	if !solid {
		block = BlockTypeAir
	}
	return v.grid.Set(p[0], p[1], p[2], block)
}

func (v *blockVolume) extract() *meshing.Mesh {
	return meshing.BuildBlockMesh(v.grid)
}
