package meshing

import "github.com/go-gl/mathgl/mgl32"

// Extractor turns a density lattice into a mesh. Samples above iso are
// solid. Output positions are chunk-local, scaled by step.
type Extractor interface {
	Extract(g *DensityGrid, iso, step float32) *Mesh
}

// Corner c of a cell sits at (c&1, c>>1&1, c>>2&1).
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// cubeEdges lists corner pairs, grouped by axis (x, y, z).
var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func cornerVec(c int) mgl32.Vec3 {
	o := cornerOffsets[c]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

func cellCorners(g *DensityGrid, x, y, z int) (corners [8]float32) {
	for c, o := range cornerOffsets {
		corners[c] = g.At(x+o[0], y+o[1], z+o[2])
	}
	return corners
}

func solidMask(corners [8]float32, iso float32) int {
	mask := 0
	for c, v := range corners {
		if v > iso {
			mask |= 1 << c
		}
	}
	return mask
}
