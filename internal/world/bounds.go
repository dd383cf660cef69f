package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord is a chunk's position on the chunk grid.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) Add(dx, dy, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Ring returns the horizontal Chebyshev distance between two coords.
func (c ChunkCoord) Ring(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Z-o.Z))
}

// ChunkBounds is the world-space cube a chunk covers. It is the identity of
// a chunk in the store. Max = Min + chunk size on every axis.
type ChunkBounds struct {
	Min, Max [3]int32
}

// BoundsForCoord returns the bounds of a chunk grid position.
func BoundsForCoord(c ChunkCoord, size int) ChunkBounds {
	var b ChunkBounds
	for i, v := range [3]int{c.X, c.Y, c.Z} {
		b.Min[i] = int32(v * size)
		b.Max[i] = int32((v + 1) * size)
	}
	return b
}

// ParseBounds returns the bounds containing a world position. Every
// position lies in exactly one bounds.
func ParseBounds(p mgl32.Vec3, size int) ChunkBounds {
	return BoundsForCoord(CoordAt(p, size), size)
}

// CoordAt returns the chunk grid position containing a world position.
func CoordAt(p mgl32.Vec3, size int) ChunkCoord {
	s := float64(size)
	return ChunkCoord{
		X: int(math.Floor(float64(p.X()) / s)),
		Y: int(math.Floor(float64(p.Y()) / s)),
		Z: int(math.Floor(float64(p.Z()) / s)),
	}
}

func (b ChunkBounds) Size() int {
	return int(b.Max[0] - b.Min[0])
}

func (b ChunkBounds) Coord() ChunkCoord {
	s := int32(b.Size())
	return ChunkCoord{
		X: int(floorDiv(b.Min[0], s)),
		Y: int(floorDiv(b.Min[1], s)),
		Z: int(floorDiv(b.Min[2], s)),
	}
}

// Contains is half-open: Min is inside, Max is not.
func (b ChunkBounds) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		v := float64(p[i])
		if v < float64(b.Min[i]) || v >= float64(b.Max[i]) {
			return false
		}
	}
	return true
}

func (b ChunkBounds) Overlaps(o ChunkBounds) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] <= o.Min[i] || o.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

func (b ChunkBounds) MinVec() mgl32.Vec3 {
	return mgl32.Vec3{float32(b.Min[0]), float32(b.Min[1]), float32(b.Min[2])}
}

func (b ChunkBounds) MaxVec() mgl32.Vec3 {
	return mgl32.Vec3{float32(b.Max[0]), float32(b.Max[1]), float32(b.Max[2])}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
