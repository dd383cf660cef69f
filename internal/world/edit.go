package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/physics"
	"voxel-terrain/internal/profiling"
)

// VoxelRef addresses one voxel of a loaded chunk.
type VoxelRef struct {
	Bounds ChunkBounds
	Voxel  [3]int
}

// probe resolves a world position for the ray marcher. ok is false where no
// chunk is loaded.
func (t *Terrain) probe(p mgl32.Vec3) (VoxelRef, bool, bool) {
	c := t.store.ChunkAt(p)
	if c == nil {
		return VoxelRef{}, false, false
	}
	v, ok := c.voxelAt(p)
	if !ok {
		return VoxelRef{}, false, false
	}
	return VoxelRef{Bounds: c.Bounds, Voxel: v}, c.vol.solid(v), true
}

// ProcessLine casts ray through the loaded chunks. Remove clears the first
// solid voxel hit; Place fills the empty voxel passed just before it. The
// edited chunk is re-meshed before returning. It reports whether any voxel
// changed.
func (t *Terrain) ProcessLine(ray physics.Ray, intent physics.Intent) bool {
	defer profiling.Track("world.ProcessLine")()

	if ray.Length > t.cfg.Edit.Reach {
		ray.Length = t.cfg.Edit.Reach
	}
	res := physics.Raycast(ray, t.cfg.Edit.Step, t.probe)
	if !res.Hit {
		return false
	}
	switch intent {
	case physics.IntentRemove:
		return t.setVoxel(res.Solid, false)
	case physics.IntentPlace:
		if !res.HasEmpty {
			return false
		}
		return t.setVoxel(res.Empty, true)
	}
	return false
}

func (t *Terrain) setVoxel(ref VoxelRef, solid bool) bool {
	c := t.store.Get(ref.Bounds)
	if c == nil || !c.vol.set(ref.Voxel, solid, t.cfg.Edit.PlaceBlock) {
		return false
	}
	c.rebuild()
	profiling.Count("world.edits", 1)
	if iso, ok := c.vol.(*isoVolume); ok {
		v := ref.Voxel
		t.propagate(c, v, iso.grid.At(v[0], v[1], v[2]))
	}
	return true
}

// propagate copies an edited lattice value into neighbouring chunks whose
// lattices contain the same world point, so shared faces stay closed.
// Neighbours at another resolution sample different points and are left
// alone.
func (t *Terrain) propagate(c *Chunk, v [3]int, value float32) {
	step := int32(c.Step())
	var p [3]int32
	for i := range p {
		p[i] = c.Bounds.Min[i] + int32(v[i])*step
	}
	size := c.Bounds.Size()
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				nb := t.store.Get(BoundsForCoord(c.Coord.Add(dx, dy, dz), size))
				if nb == nil || nb.Resolution != c.Resolution {
					continue
				}
				vol, ok := nb.vol.(*isoVolume)
				if !ok {
					continue
				}
				var idx [3]int
				for i := range idx {
					idx[i] = int((p[i] - nb.Bounds.Min[i]) / step)
				}
				if vol.setRaw(idx, value) {
					nb.rebuild()
				}
			}
		}
	}
}
