// Package culling rejects chunk bounds outside the camera frustum.
package culling

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Margin in world units that inflates every AABB before testing, so
// rounding never culls a visible chunk.
const Margin float32 = 1.0

// Plane satisfies A*x + B*y + C*z + D >= 0 on the inside.
type Plane struct {
	A, B, C, D float32
}

func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.A*v.X() + p.B*v.Y() + p.C*v.Z() + p.D
}

// Frustum holds the six planes in order left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts planes from the combined projection*view matrix.
func NewFrustum(projection, view mgl32.Mat4) Frustum {
	clip := projection.Mul4(view)
	// Matrix is in column-major order in mgl32
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	var f Frustum
	f.Planes[0] = normalizePlane(Plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03})
	f.Planes[1] = normalizePlane(Plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03})
	f.Planes[2] = normalizePlane(Plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13})
	f.Planes[3] = normalizePlane(Plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13})
	f.Planes[4] = normalizePlane(Plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23})
	f.Planes[5] = normalizePlane(Plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23})
	return f
}

func normalizePlane(p Plane) Plane {
	l := float32(math.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if l == 0 {
		return p
	}
	return Plane{p.A / l, p.B / l, p.C / l, p.D / l}
}

// IntersectsAABB reports whether the inflated box may be visible. For each
// plane only the corner furthest along the plane normal is tested; if even
// that corner is outside, the whole box is.
func (f Frustum) IntersectsAABB(min, max mgl32.Vec3) bool {
	m := mgl32.Vec3{Margin, Margin, Margin}
	min, max = min.Sub(m), max.Add(m)
	for _, p := range f.Planes {
		px := max.X()
		if p.A < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.B < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.C < 0 {
			pz = min.Z()
		}
		if p.A*px+p.B*py+p.C*pz+p.D < 0 {
			return false
		}
	}
	return true
}

// IsBoundsInFrustum is the one-shot form of NewFrustum + IntersectsAABB.
func IsBoundsInFrustum(projection, view mgl32.Mat4, min, max mgl32.Vec3) bool {
	return NewFrustum(projection, view).IntersectsAABB(min, max)
}

// Culler caches the frustum between frames with unchanged matrices.
type Culler struct {
	projection, view mgl32.Mat4
	frustum          Frustum
	valid            bool
}

func (c *Culler) Frustum(projection, view mgl32.Mat4) Frustum {
	if c.valid && matrixNearEqual(c.projection, projection, 1e-6) && matrixNearEqual(c.view, view, 1e-6) {
		return c.frustum
	}
	c.projection, c.view = projection, view
	c.frustum = NewFrustum(projection, view)
	c.valid = true
	return c.frustum
}

func matrixNearEqual(a, b mgl32.Mat4, epsilon float32) bool {
	for i := 0; i < 16; i++ {
		if float32(math.Abs(float64(a[i]-b[i]))) > epsilon {
			return false
		}
	}
	return true
}
