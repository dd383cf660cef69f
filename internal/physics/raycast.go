package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/profiling"
)

const DefaultStep = 0.1

// Intent is what a line cast should do at its hit.
type Intent int

const (
	IntentRemove Intent = iota
	IntentPlace
)

func (i Intent) String() string {
	switch i {
	case IntentRemove:
		return "remove"
	case IntentPlace:
		return "place"
	}
	return "unknown"
}

// Ray is a segment from Origin along a unit Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
	Length    float32
}

// NewRay normalises dir. A zero direction yields a zero-length ray.
func NewRay(origin, dir mgl32.Vec3, length float32) Ray {
	if dir.Len() == 0 {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Direction: dir.Normalize(), Length: length}
}

func (r Ray) At(dist float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(dist))
}

// RaycastResult stores the result of a ray march.
type RaycastResult[K comparable] struct {
	Hit      bool
	Solid    K // first solid voxel
	Empty    K // last addressable empty voxel before Solid
	HasEmpty bool
	Distance float32
}

// Raycast steps along the ray at a fixed increment and stops at the first
// solid voxel. probe resolves the voxel containing a point; ok is false
// when nothing is addressable there, which counts as empty space.
func Raycast[K comparable](ray Ray, step float32, probe func(p mgl32.Vec3) (voxel K, solid, ok bool)) RaycastResult[K] {
	defer profiling.Track("physics.Raycast")()
	var result RaycastResult[K]
	if step <= 0 || ray.Length <= 0 {
		return result
	}

	steps := int(ray.Length / step)
	for i := 0; i <= steps; i++ {
		dist := float32(i) * step
		voxel, solid, ok := probe(ray.At(dist))
		if !ok {
			// a gap in addressable space breaks adjacency
			result.HasEmpty = false
			continue
		}
		if solid {
			result.Hit = true
			result.Solid = voxel
			result.Distance = dist
			return result
		}
		result.Empty = voxel
		result.HasEmpty = true
	}
	result.HasEmpty = false
	return result
}
