package meshing

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeBuffer struct {
	draws   int
	deleted bool
}

func (b *fakeBuffer) Draw()   { b.draws++ }
func (b *fakeBuffer) Delete() { b.deleted = true }

type fakeUploader struct {
	uploads int
	err     error
	last    *fakeBuffer
}

func (u *fakeUploader) Upload(m *Mesh) (Buffer, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.uploads++
	u.last = &fakeBuffer{}
	return u.last, nil
}

func triangleMesh(layout Layout) *Mesh {
	return &Mesh{
		Layout: layout,
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec3{1, 0, 0}, Block: 3},
			{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec3{0, 1, 0}, Block: 3},
			{Position: mgl32.Vec3{0, 0, 1}, Normal: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec3{0, 0, 1}, Block: 3},
		},
	}
}

func TestInterleaveLayouts(t *testing.T) {
	color := triangleMesh(LayoutColor).Interleave()
	if len(color) != 3*9 {
		t.Fatalf("color layout: got %d floats, want %d", len(color), 27)
	}
	if color[6] != 1 || color[7] != 0 {
		t.Fatalf("color attribute not after normal: %v", color[:9])
	}

	block := triangleMesh(LayoutBlock).Interleave()
	if len(block) != 3*7 {
		t.Fatalf("block layout: got %d floats, want %d", len(block), 21)
	}
	if block[6] != 3 {
		t.Fatalf("block id = %v, want 3", block[6])
	}
}

func TestTriangleCount(t *testing.T) {
	m := triangleMesh(LayoutColor)
	if m.TriangleCount() != 1 {
		t.Fatalf("soup: got %d triangles, want 1", m.TriangleCount())
	}
	m.Indices = []uint32{0, 1, 2, 2, 1, 0}
	if m.TriangleCount() != 2 {
		t.Fatalf("indexed: got %d triangles, want 2", m.TriangleCount())
	}
	var nilMesh *Mesh
	if nilMesh.TriangleCount() != 0 || !nilMesh.Empty() {
		t.Fatalf("nil mesh should be empty")
	}
}

func TestEnsureBufferedUploadsOnce(t *testing.T) {
	m := triangleMesh(LayoutColor)
	up := &fakeUploader{}
	for i := 0; i < 3; i++ {
		if err := m.EnsureBuffered(up); err != nil {
			t.Fatalf("EnsureBuffered: %v", err)
		}
	}
	if up.uploads != 1 {
		t.Fatalf("uploaded %d times, want 1", up.uploads)
	}
	m.Draw()
	if up.last.draws != 1 {
		t.Fatalf("draw not forwarded to buffer")
	}
	m.Release()
	if !up.last.deleted {
		t.Fatalf("Release did not delete the buffer")
	}
}

func TestEnsureBufferedError(t *testing.T) {
	m := triangleMesh(LayoutColor)
	boom := errors.New("no context")
	err := m.EnsureBuffered(&fakeUploader{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("error %v does not wrap upload failure", err)
	}
	if m.Buffered() {
		t.Fatalf("failed upload must leave mesh unbuffered")
	}
}

func TestDrawUnbufferedPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNotBuffered) {
			t.Fatalf("expected ErrNotBuffered panic, got %v", r)
		}
	}()
	triangleMesh(LayoutColor).Draw()
}
