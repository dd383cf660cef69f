package world

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/culling"
	"voxel-terrain/internal/density"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/profiling"
)

// Shader is the program terrain chunks are drawn with.
type Shader interface {
	// Bind makes the program current and returns a func restoring the
	// previous one.
	Bind() (release func())
	SetUniformMat4(name string, m mgl32.Mat4)
	SetUniform3f(name string, v mgl32.Vec3)
	SetUniform1i(name string, v int32)
}

var lightDir = mgl32.Vec3{0.4, 1, 0.3}.Normalize()

// Stats describes the last rendered frame and the streaming backlog.
type Stats struct {
	Loaded     int
	Buffered   int
	Drawn      int
	Culled     int
	Triangles  int
	Pending    int
	Generating int
}

func (s Stats) String() string {
	return fmt.Sprintf("chunks %d (gpu %d, drawn %d, culled %d) tris %d queue %d/%d",
		s.Loaded, s.Buffered, s.Drawn, s.Culled, s.Triangles, s.Pending, s.Generating)
}

// Terrain ties the store, the streamer and rendering together. All methods
// must be called from the render goroutine.
type Terrain struct {
	cfg      config.Config
	gen      *Generator
	store    *ChunkStore
	streamer *Streamer
	session  *Session
	center   ChunkCoord

	shader   Shader
	uploader meshing.Uploader
	culler   culling.Culler
	stats    Stats
}

// NewTerrain validates cfg and prepares a terrain. Nothing is generated
// until Start.
func NewTerrain(cfg config.Config, field density.Field, shader Shader, uploader meshing.Uploader) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new terrain: %w", err)
	}
	kind, err := ParseKind(cfg.Terrain.Kind)
	if err != nil {
		return nil, fmt.Errorf("new terrain: %w", err)
	}
	gen := NewGenerator(kind, cfg.Terrain, field)
	return &Terrain{
		cfg:      cfg,
		gen:      gen,
		store:    NewChunkStore(cfg.Terrain.ChunkSize),
		streamer: NewStreamer(gen, cfg.Terrain.Workers, cfg.Terrain.StreamRadius),
		shader:   shader,
		uploader: uploader,
	}, nil
}

func (t *Terrain) Kind() Kind {
	return t.gen.Kind
}

func (t *Terrain) Store() *ChunkStore {
	return t.store
}

func (t *Terrain) Center() ChunkCoord {
	return t.center
}

// centerFor returns the streaming centre for a viewer position.
func (t *Terrain) centerFor(viewer mgl32.Vec3) ChunkCoord {
	c := CoordAt(viewer, t.cfg.Terrain.ChunkSize)
	c.Y = 0
	return c
}

// Start begins streaming around the viewer.
func (t *Terrain) Start(viewer mgl32.Vec3) {
	if t.session != nil {
		t.session.Cancel()
	}
	t.center = t.centerFor(viewer)
	t.session = t.streamer.Start(t.center, t.store.Keys())
}

// Update moves at most one finished chunk into the store. It never blocks
// and reports whether a chunk was added.
func (t *Terrain) Update() bool {
	if t.session == nil {
		return false
	}
	c, ok := t.session.TryReceive()
	if !ok {
		return false
	}
	if !t.store.Insert(c) {
		c.release()
		return false
	}
	return true
}

// Recenter restarts streaming when the viewer has moved into another chunk
// column. Chunks beyond the evict radius are dropped; chunks still queued in
// the old session are discarded and regenerated if still wanted. The old
// session is only cancelled, so a slow generation never stalls the caller.
func (t *Terrain) Recenter(viewer mgl32.Vec3) bool {
	center := t.centerFor(viewer)
	if t.session != nil && center == t.center {
		return false
	}
	defer profiling.Track("world.Recenter")()
	if t.session != nil {
		t.session.Cancel()
	}
	if n := t.store.EvictFar(center, t.cfg.Terrain.EvictRadius); n > 0 {
		log.Printf("evicted %d chunks beyond ring %d", n, t.cfg.Terrain.EvictRadius)
	}
	t.center = center
	t.session = t.streamer.Start(center, t.store.Keys())
	return true
}

// Render draws every loaded chunk inside the render distance and the view
// frustum. Meshes are uploaded on their first visible frame.
func (t *Terrain) Render(view, projection mgl32.Mat4) {
	defer profiling.Track("world.Render")()

	release := t.shader.Bind()
	defer release()
	t.shader.SetUniformMat4("view", view)
	t.shader.SetUniformMat4("projection", projection)
	t.shader.SetUniform3f("lightDir", lightDir)
	blockMode := int32(0)
	if t.gen.Kind == KindBlocks {
		blockMode = 1
	}
	t.shader.SetUniform1i("blockMode", blockMode)

	cull := config.GetFrustumCulling()
	var frustum culling.Frustum
	if cull {
		frustum = t.culler.Frustum(projection, view)
	}
	distance := config.GetRenderDistance()

	stats := Stats{Loaded: t.store.Len()}
	t.store.Each(func(c *Chunk) {
		if c.Coord.Ring(t.center) > distance || c.mesh.Empty() {
			return
		}
		if cull && !frustum.IntersectsAABB(c.Bounds.MinVec(), c.Bounds.MaxVec()) {
			stats.Culled++
			return
		}
		if !c.mesh.Buffered() {
			if err := c.mesh.EnsureBuffered(t.uploader); err != nil {
				log.Printf("chunk %v: %v", c.Coord, err)
				return
			}
			profiling.Count("world.chunks_uploaded", 1)
		}
		t.shader.SetUniformMat4("model", mgl32.Translate3D(c.Origin().Elem()))
		c.mesh.Draw()
		stats.Drawn++
		stats.Triangles += c.mesh.TriangleCount()
	})
	t.store.Each(func(c *Chunk) {
		if c.State() == StateBuffered {
			stats.Buffered++
		}
	})
	profiling.Count("world.chunks_culled", int64(stats.Culled))
	t.stats = stats
}

// StateOf reports the state of the chunk at b. Loaded chunks report ready
// or buffered; chunks of the current streaming pass report requested,
// generating or ready.
func (t *Terrain) StateOf(b ChunkBounds) (ChunkState, bool) {
	if c := t.store.Get(b); c != nil {
		return c.State(), true
	}
	if t.session == nil {
		return 0, false
	}
	return t.session.State(b)
}

// Stats returns counters from the last Render plus the live backlog.
func (t *Terrain) Stats() Stats {
	s := t.stats
	s.Loaded = t.store.Len()
	if t.session != nil {
		s.Pending = t.session.Pending()
		s.Generating = t.session.Generating()
	}
	return s
}

// Close stops streaming and frees every GPU buffer. It waits for sessions
// cancelled by Recenter as well, since they share the pool.
func (t *Terrain) Close() {
	if t.session != nil {
		t.session.Stop()
		t.session = nil
	}
	t.streamer.Close()
	for b := range t.store.Keys() {
		t.store.Remove(b)
	}
}
