package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkStore indexes loaded chunks by bounds. It is owned by the goroutine
// that drains the streamer and renders; it has no locks.
type ChunkStore struct {
	chunks map[ChunkBounds]*Chunk
	size   int
}

// NewChunkStore creates an empty store for chunks of the given size.
func NewChunkStore(size int) *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkBounds]*Chunk),
		size:   size,
	}
}

// Insert adds a chunk. A chunk already stored under the same bounds is
// kept and false is returned.
func (cs *ChunkStore) Insert(c *Chunk) bool {
	if _, ok := cs.chunks[c.Bounds]; ok {
		return false
	}
	cs.chunks[c.Bounds] = c
	return true
}

func (cs *ChunkStore) Get(b ChunkBounds) *Chunk {
	return cs.chunks[b]
}

func (cs *ChunkStore) Has(b ChunkBounds) bool {
	_, ok := cs.chunks[b]
	return ok
}

// ChunkAt returns the chunk containing a world position, or nil.
func (cs *ChunkStore) ChunkAt(p mgl32.Vec3) *Chunk {
	return cs.chunks[ParseBounds(p, cs.size)]
}

// Remove drops a chunk and frees its GPU buffer.
func (cs *ChunkStore) Remove(b ChunkBounds) {
	c, ok := cs.chunks[b]
	if !ok {
		return
	}
	c.release()
	delete(cs.chunks, b)
}

func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// Each visits every chunk in unspecified order.
func (cs *ChunkStore) Each(fn func(*Chunk)) {
	for _, c := range cs.chunks {
		fn(c)
	}
}

// Keys returns a snapshot of the stored bounds.
func (cs *ChunkStore) Keys() map[ChunkBounds]struct{} {
	keys := make(map[ChunkBounds]struct{}, len(cs.chunks))
	for b := range cs.chunks {
		keys[b] = struct{}{}
	}
	return keys
}

// EvictFar removes chunks whose horizontal ring distance from center is
// greater than radius and returns how many were removed.
func (cs *ChunkStore) EvictFar(center ChunkCoord, radius int) int {
	removed := 0
	for b, c := range cs.chunks {
		if c.Coord.Ring(center) <= radius {
			continue
		}
		c.release()
		delete(cs.chunks, b)
		removed++
	}
	return removed
}
