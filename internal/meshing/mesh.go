package meshing

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNotBuffered is the panic value when a mesh is drawn before upload.
var ErrNotBuffered = errors.New("mesh is not buffered")

// Vertex positions are chunk-local. Color is used by isosurface meshes,
// Block by block meshes.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	Block    uint16
}

// Layout selects the third vertex attribute uploaded to the GPU.
type Layout int

const (
	// LayoutColor is position, normal, color.
	LayoutColor Layout = iota
	// LayoutBlock is position, normal, block type id.
	LayoutBlock
)

// Stride returns floats per interleaved vertex.
func (l Layout) Stride() int {
	if l == LayoutBlock {
		return 7
	}
	return 9
}

// Buffer is a GPU resident copy of a mesh.
type Buffer interface {
	Draw()
	Delete()
}

// Uploader creates GPU buffers. Only the render thread may call it.
type Uploader interface {
	Upload(m *Mesh) (Buffer, error)
}

// Mesh owns its vertices, optional indices and at most one GPU buffer.
// Indices are nil for triangle soup.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Layout   Layout

	buffer Buffer
}

func (m *Mesh) Indexed() bool {
	return m.Indices != nil
}

func (m *Mesh) Empty() bool {
	return m == nil || len(m.Vertices) == 0
}

func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	if m.Indexed() {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// Interleave flattens vertices in Layout order.
func (m *Mesh) Interleave() []float32 {
	stride := m.Layout.Stride()
	out := make([]float32, 0, len(m.Vertices)*stride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Normal.X(), v.Normal.Y(), v.Normal.Z(),
		)
		if m.Layout == LayoutBlock {
			out = append(out, float32(v.Block))
		} else {
			out = append(out, v.Color.X(), v.Color.Y(), v.Color.Z())
		}
	}
	return out
}

func (m *Mesh) Buffered() bool {
	return m.buffer != nil
}

// EnsureBuffered uploads the mesh on first call. Later calls are no-ops;
// a mesh never goes back to unbuffered.
func (m *Mesh) EnsureBuffered(u Uploader) error {
	if m.buffer != nil {
		return nil
	}
	buf, err := u.Upload(m)
	if err != nil {
		return fmt.Errorf("upload mesh: %w", err)
	}
	m.buffer = buf
	return nil
}

// Draw issues the draw call. Drawing an unbuffered mesh is a programming
// error and panics with ErrNotBuffered.
func (m *Mesh) Draw() {
	if m.buffer == nil {
		panic(ErrNotBuffered)
	}
	m.buffer.Draw()
}

// Release frees the GPU buffer of a mesh that is being discarded.
// The mesh must not be drawn afterwards.
func (m *Mesh) Release() {
	if m == nil || m.buffer == nil {
		return
	}
	m.buffer.Delete()
}

// shade picks a vertex color from the surface slope: flat ground is grass,
// steep faces are rock.
func shade(normal mgl32.Vec3) mgl32.Vec3 {
	grass := mgl32.Vec3{0.33, 0.55, 0.22}
	rock := mgl32.Vec3{0.45, 0.42, 0.38}
	t := mgl32.Clamp((normal.Y()-0.55)/0.3, 0, 1)
	return rock.Mul(1 - t).Add(grass.Mul(t))
}
