package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/profiling"
)

// SurfaceNets places one vertex per sign-changing cell at the mean of its
// edge crossings and joins neighbouring cell vertices into quads.
type SurfaceNets struct {
	// Color overrides slope shading when set.
	Color func(position, normal mgl32.Vec3) mgl32.Vec3
}

// CellVertex computes the vertex of a single cell, relative to the cell's
// min corner. ok is false when the corners do not straddle iso.
func CellVertex(corners [8]float32, iso float32) (pos, normal mgl32.Vec3, ok bool) {
	mask := solidMask(corners, iso)
	if mask == 0 || mask == 0xff {
		return pos, normal, false
	}

	var sum mgl32.Vec3
	crossings := 0
	for _, e := range cubeEdges {
		a, b := e[0], e[1]
		if (mask>>a)&1 == (mask>>b)&1 {
			continue
		}
		va, vb := corners[a], corners[b]
		t := (iso - va) / (vb - va)
		pa := cornerVec(a)
		sum = sum.Add(pa.Add(cornerVec(b).Sub(pa).Mul(t)))
		crossings++
	}
	if crossings == 0 {
		return pos, normal, false
	}
	pos = sum.Mul(1 / float32(crossings))
	return pos, cellNormal(corners, pos), true
}

// cellNormal blends per-corner gradient estimates at pos and flips the
// result so it points from solid to empty.
func cellNormal(corners [8]float32, pos mgl32.Vec3) mgl32.Vec3 {
	var n mgl32.Vec3
	for i := range corners {
		pi := cornerVec(i)
		var grad mgl32.Vec3
		for j := range corners {
			if j == i {
				continue
			}
			dir := cornerVec(j).Sub(pi)
			grad = grad.Add(dir.Mul((corners[j] - corners[i]) / dir.Dot(dir)))
		}
		if grad.Len() > 0 {
			grad = grad.Normalize()
		}
		d := pos.Sub(pi)
		w := (1 - abs32(d.X())) * (1 - abs32(d.Y())) * (1 - abs32(d.Z()))
		n = n.Add(grad.Mul(w))
	}
	if n.Len() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize().Mul(-1)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s SurfaceNets) Extract(g *DensityGrid, iso, step float32) *Mesh {
	defer profiling.Track("meshing.SurfaceNets")()

	cells := g.Size - 1
	res := g.Resolution()
	cellIndex := func(x, y, z int) int { return x + cells*(y+cells*z) }
	index := make([]int32, cells*cells*cells)
	for i := range index {
		index[i] = -1
	}

	color := s.Color
	if color == nil {
		color = func(_, n mgl32.Vec3) mgl32.Vec3 { return shade(n) }
	}

	mesh := &Mesh{Layout: LayoutColor, Indices: []uint32{}}
	for z := 0; z < cells; z++ {
		for y := 0; y < cells; y++ {
			for x := 0; x < cells; x++ {
				rel, normal, ok := CellVertex(cellCorners(g, x, y, z), iso)
				if !ok {
					continue
				}
				p := mgl32.Vec3{float32(x), float32(y), float32(z)}.Add(rel).Mul(step)
				index[cellIndex(x, y, z)] = int32(len(mesh.Vertices))
				mesh.Vertices = append(mesh.Vertices, Vertex{
					Position: p,
					Normal:   normal,
					Color:    color(p, normal),
				})
			}
		}
	}

	// Each sign-changing lattice edge is shared by four cells; their
	// vertices form one quad. Edges are owned so that adjacent chunks
	// never emit the same quad.
	for z := 0; z < cells; z++ {
		for y := 0; y < cells; y++ {
			for x := 0; x < cells; x++ {
				if index[cellIndex(x, y, z)] < 0 {
					continue
				}
				p := [3]int{x, y, z}
				solid := g.At(x, y, z) > iso
				for axis := 0; axis < 3; axis++ {
					j, k := (axis+1)%3, (axis+2)%3
					if p[axis] >= res || p[j] < 1 || p[k] < 1 {
						continue
					}
					q := p
					q[axis]++
					if (g.At(q[0], q[1], q[2]) > iso) == solid {
						continue
					}
					pj, pk, pjk := p, p, p
					pj[j]--
					pk[k]--
					pjk[j]--
					pjk[k]--
					a := index[cellIndex(p[0], p[1], p[2])]
					b := index[cellIndex(pj[0], pj[1], pj[2])]
					c := index[cellIndex(pjk[0], pjk[1], pjk[2])]
					d := index[cellIndex(pk[0], pk[1], pk[2])]
					if b < 0 || c < 0 || d < 0 {
						continue
					}
					if solid {
						mesh.Indices = append(mesh.Indices, uint32(a), uint32(b), uint32(c), uint32(a), uint32(c), uint32(d))
					} else {
						mesh.Indices = append(mesh.Indices, uint32(a), uint32(d), uint32(c), uint32(a), uint32(c), uint32(b))
					}
				}
			}
		}
	}
	profiling.Count("meshing.triangles", int64(mesh.TriangleCount()))
	return mesh
}
