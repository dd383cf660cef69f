package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/graphics"
	"voxel-terrain/internal/input"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/world"
)

// Frames slower than this are logged with their most expensive buckets.
const slowFrame = 50 * time.Millisecond

// Loop drives one frame at a time on the main thread.
type Loop struct {
	window  *glfw.Window
	cfg     *config.Config
	terrain *world.Terrain
	camera  *graphics.Camera
	input   *input.InputManager
	stop    <-chan struct{}

	paused bool
	fps    FPSLimiter

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func NewLoop(window *glfw.Window, cfg *config.Config, terrain *world.Terrain, camera *graphics.Camera, im *input.InputManager, stop <-chan struct{}) *Loop {
	return &Loop{
		window:           window,
		cfg:              cfg,
		terrain:          terrain,
		camera:           camera,
		input:            im,
		stop:             stop,
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

// Run returns when the window is closed or a stop is requested.
func (l *Loop) Run() {
	for !l.window.ShouldClose() {
		select {
		case <-l.stop:
			return
		default:
		}
		l.tick()
	}
}

func (l *Loop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := float32(now.Sub(l.lastTime).Seconds())
	l.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	l.handleToggles()
	if !l.paused {
		l.moveCamera(dt)
	}
	l.handleEdits()

	l.terrain.Recenter(l.camera.Position)
	l.terrain.Update()

	l.renderFrame()

	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()
	l.input.PostUpdate()

	l.updateProfiling(now)
	l.fps.Wait(limitFor(l.cfg.Window.FPSLimit, l.paused))
}

func (l *Loop) handleToggles() {
	im := l.input
	if im.JustPressed(input.ActionPause) {
		l.paused = !l.paused
		if l.paused {
			l.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			l.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		}
		im.ResetCursor()
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		log.Printf("wireframe: %v", config.ToggleWireframe())
	}
	if im.JustPressed(input.ActionToggleCulling) {
		config.SetFrustumCulling(!config.GetFrustumCulling())
		log.Printf("frustum culling: %v", config.GetFrustumCulling())
	}
	if im.JustPressed(input.ActionRenderDistanceUp) {
		config.SetRenderDistance(config.GetRenderDistance() + 1)
	}
	if im.JustPressed(input.ActionRenderDistanceDown) {
		config.SetRenderDistance(config.GetRenderDistance() - 1)
	}
}

func (l *Loop) moveCamera(dt float32) {
	im := l.input
	l.camera.Look(im.LookDelta())

	var forward, right, up float32
	if im.IsActive(input.ActionMoveForward) {
		forward++
	}
	if im.IsActive(input.ActionMoveBackward) {
		forward--
	}
	if im.IsActive(input.ActionMoveRight) {
		right++
	}
	if im.IsActive(input.ActionMoveLeft) {
		right--
	}
	if im.IsActive(input.ActionMoveUp) {
		up++
	}
	if im.IsActive(input.ActionMoveDown) {
		up--
	}
	if im.IsActive(input.ActionFast) {
		dt *= 4
	}
	l.camera.Move(forward, right, up, dt)
}

func (l *Loop) renderFrame() {
	defer profiling.Track("renderer.Frame")()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	defer graphics.Enable(gl.DEPTH_TEST)()
	defer graphics.Enable(gl.CULL_FACE)()
	if config.GetWireframe() {
		defer graphics.PolygonMode(gl.LINE)()
		defer graphics.Disable(gl.CULL_FACE)()
	}

	l.terrain.Render(l.camera.GetViewMatrix(), l.camera.GetProjectionMatrix())
	l.frames++
}

func (l *Loop) updateProfiling(frameStart time.Time) {
	if d := time.Since(frameStart); d > slowFrame {
		log.Printf("slow frame %.1fms: %s", float64(d.Microseconds())/1000, profiling.TopN(5))
	}
	if time.Since(l.lastFPSCheckTime) < time.Second {
		return
	}
	l.window.SetTitle(fmt.Sprintf("%s | %d fps | %s", l.cfg.Window.Title, l.frames, l.terrain.Stats()))
	l.frames = 0
	l.lastFPSCheckTime = time.Now()
}
