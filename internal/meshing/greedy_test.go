package meshing

import (
	"math/rand"
	"testing"
)

type face struct {
	axis  int
	back  bool
	pos   [3]int
	block uint16
}

// naiveFaces lists every exposed unit face by checking each voxel's six
// neighbours.
func naiveFaces(g *VoxelGrid) map[face]bool {
	faces := make(map[face]bool)
	for z := 0; z < g.Dims[2]; z++ {
		for y := 0; y < g.Dims[1]; y++ {
			for x := 0; x < g.Dims[0]; x++ {
				b := g.At(x, y, z)
				if b == 0 {
					continue
				}
				p := [3]int{x, y, z}
				for axis := 0; axis < 3; axis++ {
					for _, back := range []bool{false, true} {
						n := p
						if back {
							n[axis]--
						} else {
							n[axis]++
						}
						if g.At(n[0], n[1], n[2]) != 0 {
							continue
						}
						fp := p
						if !back {
							fp[axis]++
						}
						faces[face{axis: axis, back: back, pos: fp, block: b}] = true
					}
				}
			}
		}
	}
	return faces
}

func quadFaces(t *testing.T, quads []Quad) map[face]bool {
	t.Helper()
	faces := make(map[face]bool)
	for _, q := range quads {
		u, v := (q.Axis+1)%3, (q.Axis+2)%3
		for i := 0; i < q.W; i++ {
			for j := 0; j < q.H; j++ {
				p := q.Pos
				p[u] += i
				p[v] += j
				f := face{axis: q.Axis, back: q.Back, pos: p, block: q.Block}
				if faces[f] {
					t.Fatalf("face %+v emitted twice", f)
				}
				faces[f] = true
			}
		}
	}
	return faces
}

func TestSingleBlockMesh(t *testing.T) {
	g := NewVoxelGrid(4, 4, 4)
	g.Set(1, 1, 1, 1)
	m := BuildBlockMesh(g)
	// 6 quads, 12 triangles
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("single block: got %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
}

func TestTwoBlocksSeparated(t *testing.T) {
	g := NewVoxelGrid(4, 4, 4)
	g.Set(0, 0, 0, 1)
	g.Set(2, 0, 0, 1)
	if quads := GreedyQuads(g); len(quads) != 12 {
		t.Fatalf("two separated blocks: got %d quads, want 12", len(quads))
	}
}

func TestTwoBlocksTouchingGreedy(t *testing.T) {
	g := NewVoxelGrid(4, 4, 4)
	g.Set(0, 0, 0, 1)
	g.Set(1, 0, 0, 1)
	// Union is a 2x1x1 cuboid => 6 quads
	if quads := GreedyQuads(g); len(quads) != 6 {
		t.Fatalf("two touching blocks (greedy merge): got %d quads, want 6", len(quads))
	}
}

func TestDifferentTypesDoNotMerge(t *testing.T) {
	g := NewVoxelGrid(4, 4, 4)
	g.Set(0, 0, 0, 1)
	g.Set(1, 0, 0, 2)
	// shared face hidden, the four long sides split by type
	if quads := GreedyQuads(g); len(quads) != 10 {
		t.Fatalf("two touching blocks of different type: got %d quads, want 10", len(quads))
	}
}

func TestFullGridIsSixQuads(t *testing.T) {
	g := NewVoxelGrid(5, 3, 4)
	for i := range g.Blocks {
		g.Blocks[i] = 3
	}
	quads := GreedyQuads(g)
	if len(quads) != 6 {
		t.Fatalf("solid grid: got %d quads, want 6", len(quads))
	}
	for _, q := range quads {
		u, v := (q.Axis+1)%3, (q.Axis+2)%3
		if q.W != g.Dims[u] || q.H != g.Dims[v] {
			t.Fatalf("quad %+v does not span its face", q)
		}
	}
}

func TestGreedyCoversExposedFacesExactly(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	for trial := 0; trial < 25; trial++ {
		g := NewVoxelGrid(6+trial%3, 5, 7)
		for i := range g.Blocks {
			if rnd.Intn(3) != 0 {
				g.Blocks[i] = uint16(1 + rnd.Intn(2))
			}
		}
		want := naiveFaces(g)
		got := quadFaces(t, GreedyQuads(g))
		if len(got) != len(want) {
			t.Fatalf("trial %d: %d faces from quads, %d exposed", trial, len(got), len(want))
		}
		for f := range want {
			if !got[f] {
				t.Fatalf("trial %d: exposed face %+v not covered", trial, f)
			}
		}
	}
}

func TestBlockMeshWinding(t *testing.T) {
	g := NewVoxelGrid(3, 3, 3)
	g.Set(1, 1, 1, 2)
	m := BuildBlockMesh(g)
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if n.Dot(a.Normal) <= 0 {
			t.Fatalf("triangle %d wound against normal %v", i/3, a.Normal)
		}
		if a.Block != 2 {
			t.Fatalf("block id lost: %d", a.Block)
		}
	}
}

func BenchmarkGreedyQuads_FullSurface(b *testing.B) {
	g := NewVoxelGrid(32, 32, 32)
	// Fill a full top surface
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			g.Set(x, 31, z, 1)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GreedyQuads(g)
	}
}
