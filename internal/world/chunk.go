package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/meshing"
)

// Kind selects how a chunk is meshed.
type Kind int

const (
	KindSurfaceNets Kind = iota
	KindMarchingCubes
	KindBlocks
)

func ParseKind(s string) (Kind, error) {
	switch s {
	case config.KindSurfaceNets:
		return KindSurfaceNets, nil
	case config.KindMarchingCubes:
		return KindMarchingCubes, nil
	case config.KindBlocks:
		return KindBlocks, nil
	}
	return 0, fmt.Errorf("unknown terrain kind %q", s)
}

func (k Kind) String() string {
	switch k {
	case KindSurfaceNets:
		return config.KindSurfaceNets
	case KindMarchingCubes:
		return config.KindMarchingCubes
	case KindBlocks:
		return config.KindBlocks
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ChunkState tracks a chunk from request to GPU residency.
type ChunkState int

const (
	StateRequested ChunkState = iota
	StateGenerating
	StateReady
	StateBuffered
)

func (s ChunkState) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	case StateBuffered:
		return "buffered"
	}
	return "unknown"
}

// Chunk is a fixed-size cube of terrain. It is built by a worker and owned
// by the consumer goroutine once received.
type Chunk struct {
	Coord      ChunkCoord
	Bounds     ChunkBounds
	LOD        int
	Kind       Kind
	Resolution int

	vol  volume
	mesh *meshing.Mesh
}

func (c *Chunk) Mesh() *meshing.Mesh {
	return c.mesh
}

func (c *Chunk) State() ChunkState {
	if c.mesh != nil && c.mesh.Buffered() {
		return StateBuffered
	}
	return StateReady
}

// Origin is the world position of the chunk's min corner; mesh positions
// are relative to it.
func (c *Chunk) Origin() mgl32.Vec3 {
	return c.Bounds.MinVec()
}

// Step is the world distance between lattice samples.
func (c *Chunk) Step() int {
	return c.Bounds.Size() / c.Resolution
}

// voxelAt resolves a world position to a voxel of this chunk.
func (c *Chunk) voxelAt(p mgl32.Vec3) ([3]int, bool) {
	if !c.Bounds.Contains(p) {
		return [3]int{}, false
	}
	return c.vol.voxelAt(p.Sub(c.Origin()))
}

// rebuild re-extracts the mesh after an edit. The new mesh uploads on the
// next render; the old buffer is freed.
func (c *Chunk) rebuild() {
	old := c.mesh
	c.mesh = c.vol.extract()
	old.Release()
}

// release frees GPU resources of a chunk leaving the store.
func (c *Chunk) release() {
	c.mesh.Release()
}
