package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/physics"
)

// Camera is a free-fly camera. Yaw and pitch are in degrees; yaw 0 looks
// along +X.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Speed       float32
	Sensitivity float32
}

func NewCamera(w config.WindowConfig, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         -90,
		AspectRatio: float32(w.Width) / float32(w.Height),
		FOV:         w.FOV,
		NearPlane:   w.Near,
		FarPlane:    w.Far,
		Speed:       20,
		Sensitivity: 0.1,
	}
}

func (c *Camera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Right is horizontal, so strafing never changes height.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Look applies a mouse delta. Pitch is clamped short of straight up/down.
func (c *Camera) Look(dx, dy float64) {
	c.Yaw += float32(dx) * c.Sensitivity
	c.Pitch += float32(dy) * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -89, 89)
}

// Move translates the camera. forward and right follow the view heading
// on the horizontal plane; up is world Y.
func (c *Camera) Move(forward, right, up, dt float32) {
	front := c.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 1e-6 {
		flat = flat.Normalize()
	}
	d := flat.Mul(forward).Add(c.Right().Mul(right)).Add(mgl32.Vec3{0, up, 0})
	if d.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(d.Normalize().Mul(c.Speed * dt))
}

// Ray is a ray from the eye through the screen centre.
func (c *Camera) Ray(length float32) physics.Ray {
	return physics.NewRay(c.Position, c.Front(), length)
}

// MouseRay is a ray from the eye through a cursor position given in window
// coordinates (origin top left).
func (c *Camera) MouseRay(x, y float64, width, height int, length float32) physics.Ray {
	if width <= 0 || height <= 0 {
		return c.Ray(length)
	}
	view, proj := c.GetViewMatrix(), c.GetProjectionMatrix()
	winY := float32(height) - float32(y)
	near, err1 := mgl32.UnProject(mgl32.Vec3{float32(x), winY, 0}, view, proj, 0, 0, width, height)
	far, err2 := mgl32.UnProject(mgl32.Vec3{float32(x), winY, 1}, view, proj, 0, 0, width, height)
	if err1 != nil || err2 != nil {
		return c.Ray(length)
	}
	return physics.NewRay(c.Position, far.Sub(near), length)
}
