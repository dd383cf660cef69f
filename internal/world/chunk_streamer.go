package world

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"

	"voxel-terrain/internal/profiling"
)

// Streamer generates chunks around a centre on a bounded worker pool.
// Each Start begins an independent session; the pool is shared.
type Streamer struct {
	gen    *Generator
	pool   pond.Pool
	radius int
}

// NewStreamer creates a streamer that runs at most workers generations at
// once and covers radius rings around the centre.
func NewStreamer(gen *Generator, workers, radius int) *Streamer {
	return &Streamer{
		gen:    gen,
		pool:   pond.NewPool(max(workers, 1)),
		radius: radius,
	}
}

// Close waits for running tasks and shuts the pool down. Sessions must be
// stopped first.
func (s *Streamer) Close() {
	s.pool.StopAndWait()
}

// Session is one streaming pass around a fixed centre. Chunks arrive on a
// channel sized to hold every chunk of the pass, so workers never block.
type Session struct {
	Center ChunkCoord

	chunks     chan *Chunk
	states     sync.Map // ChunkBounds -> ChunkState, until received
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	generating atomic.Int32
	stopOnce   sync.Once
}

// Start streams the y=0 chunk row around center, skipping bounds already
// loaded. The centre chunk is generated first, then four workers walk one
// quadrant each, nearest ring first.
func (s *Streamer) Start(center ChunkCoord, skip map[ChunkBounds]struct{}) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	side := 2*s.radius + 1
	sess := &Session{
		Center: center,
		chunks: make(chan *Chunk, side*side),
		cancel: cancel,
	}

	size := s.gen.Terrain.ChunkSize
	sess.request(BoundsForCoord(center, size), skip)
	quadrants := make([][][2]int, 4)
	for q := range quadrants {
		quadrants[q] = quadrantOffsets(q, s.radius)
		for _, off := range quadrants[q] {
			sess.request(BoundsForCoord(center.Add(off[0], 0, off[1]), size), skip)
		}
	}

	sess.submit(s.pool, func() {
		sess.build(ctx, s.gen, center, skip)
	})
	for _, offsets := range quadrants {
		sess.submit(s.pool, func() {
			for _, off := range offsets {
				if !sess.build(ctx, s.gen, center.Add(off[0], 0, off[1]), skip) {
					return
				}
			}
		})
	}
	log.Printf("streaming started around %v, radius %d, %d chunks already loaded", center, s.radius, len(skip))
	return sess
}

func (sess *Session) request(b ChunkBounds, skip map[ChunkBounds]struct{}) {
	if _, ok := skip[b]; !ok {
		sess.states.Store(b, StateRequested)
	}
}

func (sess *Session) submit(pool pond.Pool, task func()) {
	sess.wg.Add(1)
	pool.Submit(func() {
		defer sess.wg.Done()
		task()
	})
}

// build generates one chunk and hands it over. It returns false once the
// session is cancelled.
func (sess *Session) build(ctx context.Context, gen *Generator, coord ChunkCoord, skip map[ChunkBounds]struct{}) bool {
	if ctx.Err() != nil {
		return false
	}
	b := BoundsForCoord(coord, gen.Terrain.ChunkSize)
	if _, ok := skip[b]; ok {
		return true
	}

	sess.states.Store(b, StateGenerating)
	sess.generating.Add(1)
	c := gen.Generate(coord, gen.Terrain.LODForRing(coord.Ring(sess.Center)))
	sess.generating.Add(-1)
	sess.states.Store(b, StateReady)

	select {
	case sess.chunks <- c:
		profiling.Count("world.chunks_streamed", 1)
		return true
	case <-ctx.Done():
		return false
	}
}

// TryReceive returns the next finished chunk without blocking.
func (sess *Session) TryReceive() (*Chunk, bool) {
	select {
	case c := <-sess.chunks:
		sess.states.Delete(c.Bounds)
		return c, true
	default:
		return nil, false
	}
}

// State reports where a chunk of this session is: requested, generating,
// or ready and waiting to be received. Received and skipped chunks are not
// tracked.
func (sess *Session) State(b ChunkBounds) (ChunkState, bool) {
	v, ok := sess.states.Load(b)
	if !ok {
		return 0, false
	}
	return v.(ChunkState), true
}

// Cancel tells the workers to give up and returns at once. Generations in
// flight finish on the pool and their chunks are dropped with the session.
func (sess *Session) Cancel() {
	sess.cancel()
}

// Stop cancels the session and waits for its workers. Chunks still queued
// are dropped. Safe to call more than once.
func (sess *Session) Stop() {
	sess.stopOnce.Do(func() {
		sess.cancel()
		sess.wg.Wait()
		log.Printf("streaming stopped around %v, %d chunks unclaimed", sess.Center, len(sess.chunks))
	})
}

// Pending is the number of finished chunks waiting to be received.
func (sess *Session) Pending() int {
	return len(sess.chunks)
}

// Generating is the number of chunks being built right now.
func (sess *Session) Generating() int {
	return int(sess.generating.Load())
}

// quadrantOffsets lists the (dx, dz) chunk offsets quadrant q visits, ring
// by ring out to radius. Ring r contributes one side of the ring square:
// offsets (r, t) for t = 0, 1, -1, 2, -2, ..., r-1, -(r-1), r, rotated a
// quarter turn q times. The four quadrants together cover every ring
// exactly once, nearest the side's middle first.
func quadrantOffsets(q, radius int) [][2]int {
	out := make([][2]int, 0, radius*(radius+1))
	for r := 1; r <= radius; r++ {
		for i := 0; i < 2*r; i++ {
			t := (i + 1) / 2
			if i%2 == 0 {
				t = -t
			}
			x, z := r, t
			for n := 0; n < q; n++ {
				x, z = -z, x
			}
			out = append(out, [2]int{x, z})
		}
	}
	return out
}
