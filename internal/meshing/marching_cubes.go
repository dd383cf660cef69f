package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/profiling"
)

// MarchingCubes triangulates each cell from a lookup table over its solid
// corner configuration. Vertices sit on edge midpoints and normals are
// flat per triangle; the mesh is unindexed.
type MarchingCubes struct {
	Color func(position, normal mgl32.Vec3) mgl32.Vec3
}

// triTable maps a solid-corner mask to up to five triangles given as cube
// edge indices, terminated by -1.
var triTable = buildTriTable()

// MaxTriangles returns how many triangles a configuration produces.
func MaxTriangles(config int) int {
	n := 0
	for i := 0; i < 16 && triTable[config][i] >= 0; i += 3 {
		n++
	}
	return n
}

var edgeMidpoints = func() (mid [12]mgl32.Vec3) {
	for i, e := range cubeEdges {
		mid[i] = cornerVec(e[0]).Add(cornerVec(e[1])).Mul(0.5)
	}
	return mid
}()

// cubeFaces lists the corners of each face in cyclic order.
var cubeFaces = func() (faces [6][4]int) {
	i := 0
	for axis := 0; axis < 3; axis++ {
		j, k := (axis+1)%3, (axis+2)%3
		for side := 0; side < 2; side++ {
			for m, d := range [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
				faces[i][m] = side<<axis | d[0]<<j | d[1]<<k
			}
			i++
		}
	}
	return faces
}()

func edgeBetween(a, b int) int {
	for i, e := range cubeEdges {
		if (e[0] == a && e[1] == b) || (e[0] == b && e[1] == a) {
			return i
		}
	}
	return -1
}

// buildTriTable derives the triangulation from the face crossings of each
// configuration. Crossing edges on a face are joined into segments; on a
// face with two diagonal solid corners each solid corner is cut off on its
// own, so neighbouring cells always agree. Segments chain into closed
// loops, which are fanned and wound to face away from the solid corners.
func buildTriTable() (table [256][16]int8) {
	for config := 0; config < 256; config++ {
		for i := range table[config] {
			table[config][i] = -1
		}
		solid := func(c int) bool { return config>>c&1 == 1 }

		var adj [12][]int
		link := func(a, b int) {
			adj[a] = append(adj[a], b)
			adj[b] = append(adj[b], a)
		}
		for _, f := range cubeFaces {
			var crossing []int
			for m := 0; m < 4; m++ {
				a, b := f[m], f[(m+1)%4]
				if solid(a) != solid(b) {
					crossing = append(crossing, edgeBetween(a, b))
				}
			}
			switch len(crossing) {
			case 2:
				link(crossing[0], crossing[1])
			case 4:
				for m := 0; m < 4; m++ {
					if solid(f[m]) {
						link(edgeBetween(f[m], f[(m+1)%4]), edgeBetween(f[m], f[(m+3)%4]))
					}
				}
			}
		}

		n := 0
		var visited [12]bool
		for start := 0; start < 12; start++ {
			if visited[start] || len(adj[start]) == 0 {
				continue
			}
			var loop []int
			prev, cur := -1, start
			for {
				visited[cur] = true
				loop = append(loop, cur)
				next := adj[cur][0]
				if next == prev {
					next = adj[cur][1]
				}
				prev, cur = cur, next
				if cur == start {
					break
				}
			}

			if loopNormal(loop).Dot(outward(loop, solid)) < 0 {
				for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
					loop[i], loop[j] = loop[j], loop[i]
				}
			}
			for i := 1; i+1 < len(loop); i++ {
				table[config][n] = int8(loop[0])
				table[config][n+1] = int8(loop[i])
				table[config][n+2] = int8(loop[i+1])
				n += 3
			}
		}
	}
	return table
}

// loopNormal is the Newell normal of a polygon over edge midpoints.
func loopNormal(loop []int) mgl32.Vec3 {
	var n mgl32.Vec3
	for i := range loop {
		a := edgeMidpoints[loop[i]]
		b := edgeMidpoints[loop[(i+1)%len(loop)]]
		n[0] += (a.Y() - b.Y()) * (a.Z() + b.Z())
		n[1] += (a.Z() - b.Z()) * (a.X() + b.X())
		n[2] += (a.X() - b.X()) * (a.Y() + b.Y())
	}
	return n
}

// outward sums the solid-to-empty direction of every edge in the loop.
func outward(loop []int, solid func(int) bool) mgl32.Vec3 {
	var out mgl32.Vec3
	for _, e := range loop {
		a, b := cubeEdges[e][0], cubeEdges[e][1]
		if !solid(a) {
			a, b = b, a
		}
		out = out.Add(cornerVec(b).Sub(cornerVec(a)))
	}
	return out
}

func (mc MarchingCubes) Extract(g *DensityGrid, iso, step float32) *Mesh {
	defer profiling.Track("meshing.MarchingCubes")()

	color := mc.Color
	if color == nil {
		color = func(_, n mgl32.Vec3) mgl32.Vec3 { return shade(n) }
	}

	res := g.Resolution()
	mesh := &Mesh{Layout: LayoutColor}
	for z := 0; z < res; z++ {
		for y := 0; y < res; y++ {
			for x := 0; x < res; x++ {
				config := solidMask(cellCorners(g, x, y, z), iso)
				if config == 0 || config == 0xff {
					continue
				}
				origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
				tris := &triTable[config]
				for i := 0; i < 16 && tris[i] >= 0; i += 3 {
					a := origin.Add(edgeMidpoints[tris[i]]).Mul(step)
					b := origin.Add(edgeMidpoints[tris[i+1]]).Mul(step)
					c := origin.Add(edgeMidpoints[tris[i+2]]).Mul(step)
					n := b.Sub(a).Cross(c.Sub(a))
					if n.Len() == 0 {
						continue
					}
					n = n.Normalize()
					col := color(a.Add(b).Add(c).Mul(1.0/3), n)
					mesh.Vertices = append(mesh.Vertices,
						Vertex{Position: a, Normal: n, Color: col},
						Vertex{Position: b, Normal: n, Color: col},
						Vertex{Position: c, Normal: n, Color: col},
					)
				}
			}
		}
	}
	profiling.Count("meshing.triangles", int64(mesh.TriangleCount()))
	return mesh
}
