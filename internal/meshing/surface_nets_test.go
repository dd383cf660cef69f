package meshing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"voxel-terrain/internal/density"
)

func sphereField(cx, cy, cz, r float64) density.Field {
	return density.FieldFunc(func(x, y, z float64) float32 {
		dx, dy, dz := x-cx, y-cy, z-cz
		return float32(r - math.Sqrt(dx*dx+dy*dy+dz*dz))
	})
}

func TestCellVertexUniformCellEmitsNothing(t *testing.T) {
	var above, below [8]float32
	for i := range above {
		above[i] = 1
		below[i] = -1
	}
	if _, _, ok := CellVertex(above, 0); ok {
		t.Fatalf("fully solid cell emitted a vertex")
	}
	if _, _, ok := CellVertex(below, 0); ok {
		t.Fatalf("fully empty cell emitted a vertex")
	}
}

func TestCellVertexInsideCellWithUnitNormal(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	emitted := 0
	for i := 0; i < 5000; i++ {
		var corners [8]float32
		for c := range corners {
			corners[c] = rnd.Float32()*2 - 1
		}
		pos, n, ok := CellVertex(corners, 0)
		if !ok {
			continue
		}
		emitted++
		for axis := 0; axis < 3; axis++ {
			if pos[axis] < 0 || pos[axis] > 1 {
				t.Fatalf("vertex %v outside unit cell for corners %v", pos, corners)
			}
		}
		if d := math.Abs(float64(n.Len()) - 1); d > 1e-4 {
			t.Fatalf("normal %v has length %v", n, n.Len())
		}
	}
	if emitted == 0 {
		t.Fatalf("no random cell straddled the iso value")
	}
}

func TestCellVertexHalfSolidCell(t *testing.T) {
	// bottom four corners solid, surface halfway up
	corners := [8]float32{1, 1, -1, -1, 1, 1, -1, -1}
	pos, n, ok := CellVertex(corners, 0)
	if !ok {
		t.Fatalf("expected a vertex")
	}
	if !pos.ApproxEqualThreshold(mgl32.Vec3{0.5, 0.5, 0.5}, 1e-6) {
		t.Fatalf("pos = %v, want cell centre", pos)
	}
	if !n.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Fatalf("normal = %v, want +Y", n)
	}
}

func TestSurfaceNetsFlatFieldAboveGround(t *testing.T) {
	g := SampleGrid(density.FlatField{Height: 0}, mgl64.Vec3{0, 16, 0}, 8, 1)
	m := SurfaceNets{}.Extract(g, 0, 1)
	if len(m.Vertices) != 0 || m.TriangleCount() != 0 {
		t.Fatalf("chunk above ground: got %d vertices, %d triangles", len(m.Vertices), m.TriangleCount())
	}
}

func TestSurfaceNetsFlatFieldSheet(t *testing.T) {
	const res = 8
	g := SampleGrid(density.FlatField{Height: 0.5}, mgl64.Vec3{0, -4, 0}, res, 1)
	m := SurfaceNets{}.Extract(g, 0, 1)

	if want := (res + 1) * (res + 1); len(m.Vertices) != want {
		t.Fatalf("got %d vertices, want %d", len(m.Vertices), want)
	}
	if want := 2 * res * res; m.TriangleCount() != want {
		t.Fatalf("got %d triangles, want %d", m.TriangleCount(), want)
	}
	for _, v := range m.Vertices {
		if math.Abs(float64(v.Position.Y())-4.5) > 1e-5 {
			t.Fatalf("vertex off the sheet: %v", v.Position)
		}
		if !v.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
			t.Fatalf("normal %v, want +Y", v.Normal)
		}
	}
	// winding agrees with the normal
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		if b.Sub(a).Cross(c.Sub(a)).Y() <= 0 {
			t.Fatalf("triangle %d wound away from its normal", i/3)
		}
	}
}

func TestSurfaceNetsLODKeepsFootprint(t *testing.T) {
	field := density.FlatField{Height: 5.5}
	fine := SurfaceNets{}.Extract(SampleGrid(field, mgl64.Vec3{}, 16, 1), 0, 1)
	coarse := SurfaceNets{}.Extract(SampleGrid(field, mgl64.Vec3{}, 8, 2), 0, 2)

	for name, tc := range map[string]struct {
		m    *Mesh
		step float32
	}{"fine": {fine, 1}, "coarse": {coarse, 2}} {
		minX, maxX := float32(math.MaxFloat32), float32(0)
		for _, v := range tc.m.Vertices {
			minX = min(minX, v.Position.X())
			maxX = max(maxX, v.Position.X())
			if math.Abs(float64(v.Position.Y())-5.5) > 1e-5 {
				t.Fatalf("%s: surface at y=%v, want 5.5", name, v.Position.Y())
			}
		}
		if minX > tc.step || maxX < 16 {
			t.Fatalf("%s: mesh spans [%v, %v], want the whole chunk", name, minX, maxX)
		}
	}
	if len(coarse.Vertices) >= len(fine.Vertices) {
		t.Fatalf("coarse LOD should have fewer vertices")
	}
}

func TestSurfaceNetsClosedSurface(t *testing.T) {
	g := SampleGrid(sphereField(5.3, 5.6, 5.1, 3.7), mgl64.Vec3{}, 10, 1)
	m := SurfaceNets{}.Extract(g, 0, 1)
	if m.TriangleCount() == 0 {
		t.Fatalf("sphere produced no triangles")
	}
	edges := make(map[[2]uint32]int)
	for i := 0; i < len(m.Indices); i += 3 {
		tri := m.Indices[i : i+3]
		for k := 0; k < 3; k++ {
			edges[[2]uint32{tri[k], tri[(k+1)%3]}]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[[2]uint32{e[1], e[0]}] != 1 {
			t.Fatalf("edge %v is not shared by exactly two consistently wound triangles", e)
		}
	}
	for _, v := range m.Vertices {
		if d := math.Abs(float64(v.Normal.Len()) - 1); d > 1e-4 {
			t.Fatalf("normal %v not unit length", v.Normal)
		}
		out := v.Position.Sub(mgl32.Vec3{5.3, 5.6, 5.1})
		if v.Normal.Dot(out) <= 0 {
			t.Fatalf("normal %v at %v points into the sphere", v.Normal, v.Position)
		}
	}
}

func TestSurfaceNetsDeterministic(t *testing.T) {
	field := sphereField(4, 4, 4, 3.3)
	a := SurfaceNets{}.Extract(SampleGrid(field, mgl64.Vec3{}, 8, 1), 0, 1)
	b := SurfaceNets{}.Extract(SampleGrid(field, mgl64.Vec3{}, 8, 1), 0, 1)
	if len(a.Vertices) != len(b.Vertices) || len(a.Indices) != len(b.Indices) {
		t.Fatalf("re-extraction changed counts: %d/%d vs %d/%d",
			len(a.Vertices), len(a.Indices), len(b.Vertices), len(b.Indices))
	}
}
