package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/profiling"
)

// Quad is a merged rectangle of block faces. Pos is the min corner on the
// face plane; W spans axis (Axis+1)%3 and H spans (Axis+2)%3.
type Quad struct {
	Axis  int
	Back  bool // normal points toward -Axis
	Pos   [3]int
	W, H  int
	Block uint16
}

type maskCell struct {
	block uint16
	back  bool
}

// GreedyQuads sweeps each axis slice by slice, marking faces where block
// presence changes, and merges equal mask cells into maximal rectangles:
// first the widest run along u, then as many matching rows along v.
func GreedyQuads(g *VoxelGrid) []Quad {
	defer profiling.Track("meshing.Greedy")()

	var quads []Quad
	dims := g.Dims
	for d := 0; d < 3; d++ {
		u, v := (d+1)%3, (d+2)%3
		var x, q [3]int
		q[d] = 1
		mask := make([]maskCell, dims[u]*dims[v])

		for x[d] = -1; x[d] < dims[d]; {
			// Build the mask for the plane between slice x[d] and x[d]+1.
			n := 0
			for x[v] = 0; x[v] < dims[v]; x[v]++ {
				for x[u] = 0; x[u] < dims[u]; x[u]++ {
					a := g.At(x[0], x[1], x[2])
					b := g.At(x[0]+q[0], x[1]+q[1], x[2]+q[2])
					switch {
					case (a != 0) == (b != 0):
						mask[n] = maskCell{}
					case a != 0:
						mask[n] = maskCell{block: a}
					default:
						mask[n] = maskCell{block: b, back: true}
					}
					n++
				}
			}
			x[d]++

			n = 0
			for j := 0; j < dims[v]; j++ {
				for i := 0; i < dims[u]; {
					c := mask[n]
					if c.block == 0 {
						i++
						n++
						continue
					}
					w := 1
					for i+w < dims[u] && mask[n+w] == c {
						w++
					}
					h := 1
				grow:
					for ; j+h < dims[v]; h++ {
						for k := 0; k < w; k++ {
							if mask[n+k+h*dims[u]] != c {
								break grow
							}
						}
					}

					var pos [3]int
					pos[d] = x[d]
					pos[u] = i
					pos[v] = j
					quads = append(quads, Quad{Axis: d, Back: c.back, Pos: pos, W: w, H: h, Block: c.block})

					for l := 0; l < h; l++ {
						for k := 0; k < w; k++ {
							mask[n+k+l*dims[u]] = maskCell{}
						}
					}
					i += w
					n += w
				}
			}
		}
	}
	return quads
}

// BuildBlockMesh turns a voxel grid into an indexed mesh with four
// vertices and two triangles per merged quad.
func BuildBlockMesh(g *VoxelGrid) *Mesh {
	quads := GreedyQuads(g)
	mesh := &Mesh{
		Layout:   LayoutBlock,
		Vertices: make([]Vertex, 0, len(quads)*4),
		Indices:  make([]uint32, 0, len(quads)*6),
	}
	for _, q := range quads {
		u, v := (q.Axis+1)%3, (q.Axis+2)%3
		var du, dv mgl32.Vec3
		du[u] = float32(q.W)
		dv[v] = float32(q.H)
		var normal mgl32.Vec3
		normal[q.Axis] = 1
		if q.Back {
			normal[q.Axis] = -1
		}
		p := mgl32.Vec3{float32(q.Pos[0]), float32(q.Pos[1]), float32(q.Pos[2])}
		base := uint32(len(mesh.Vertices))
		for _, corner := range [4]mgl32.Vec3{p, p.Add(du), p.Add(du).Add(dv), p.Add(dv)} {
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: corner, Normal: normal, Block: q.Block})
		}
		// u x v points along +Axis, so the corner order is counter-clockwise
		// for front faces and must be reversed for back faces.
		if q.Back {
			mesh.Indices = append(mesh.Indices, base, base+3, base+2, base, base+2, base+1)
		} else {
			mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
		}
	}
	profiling.Count("meshing.triangles", int64(mesh.TriangleCount()))
	return mesh
}
