package culling

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testCamera() (proj, view mgl32.Mat4) {
	proj = mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 200)
	// at origin looking down -Z
	view = mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj, view
}

func box(center mgl32.Vec3, half float32) (mgl32.Vec3, mgl32.Vec3) {
	h := mgl32.Vec3{half, half, half}
	return center.Sub(h), center.Add(h)
}

func TestVisibleAndHiddenBoxes(t *testing.T) {
	proj, view := testCamera()
	tests := []struct {
		name   string
		center mgl32.Vec3
		want   bool
	}{
		{"straight ahead", mgl32.Vec3{0, 0, -20}, true},
		{"behind", mgl32.Vec3{0, 0, 30}, false},
		{"far left", mgl32.Vec3{-200, 0, -10}, false},
		{"far above", mgl32.Vec3{0, 150, -10}, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -400}, false},
		{"containing camera", mgl32.Vec3{0, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := box(tt.center, 4)
			if got := IsBoundsInFrustum(proj, view, min, max); got != tt.want {
				t.Fatalf("IsBoundsInFrustum(%v) = %v, want %v", tt.center, got, tt.want)
			}
		})
	}
}

// A box with any corner strictly inside clip space must never be culled.
func TestNeverCullsVisibleBox(t *testing.T) {
	proj, view := testCamera()
	clip := proj.Mul4(view)
	f := NewFrustum(proj, view)
	rnd := rand.New(rand.NewSource(1))

	checked := 0
	for i := 0; i < 20000; i++ {
		center := mgl32.Vec3{
			rnd.Float32()*240 - 120,
			rnd.Float32()*240 - 120,
			rnd.Float32()*240 - 200,
		}
		min, max := box(center, 1+rnd.Float32()*8)
		visible := false
		for c := 0; c < 8 && !visible; c++ {
			p := min
			if c&1 != 0 {
				p[0] = max[0]
			}
			if c&2 != 0 {
				p[1] = max[1]
			}
			if c&4 != 0 {
				p[2] = max[2]
			}
			v := clip.Mul4x1(p.Vec4(1))
			w := v.W()
			visible = w > 0 && v.X() > -w && v.X() < w && v.Y() > -w && v.Y() < w && v.Z() > -w && v.Z() < w
		}
		if !visible {
			continue
		}
		checked++
		if !f.IntersectsAABB(min, max) {
			t.Fatalf("visible box [%v %v] was culled", min, max)
		}
	}
	if checked == 0 {
		t.Fatalf("no visible boxes sampled")
	}
}

func TestCullerCachesFrustum(t *testing.T) {
	proj, view := testCamera()
	var c Culler
	a := c.Frustum(proj, view)
	if b := c.Frustum(proj, view); b != a {
		t.Fatalf("cached frustum changed")
	}
	moved := mgl32.Translate3D(10, 0, 0).Mul4(view)
	if b := c.Frustum(proj, moved); b == a {
		t.Fatalf("frustum not rebuilt after camera moved")
	}
}
