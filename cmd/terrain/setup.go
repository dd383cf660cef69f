package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/density"
	"voxel-terrain/internal/graphics"
)

func setupWindow(w config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	if w.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	fbW, fbH := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0.55, 0.72, 0.9, 1)

	return window, nil
}

func attachViewport(window *glfw.Window, camera *graphics.Camera) {
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		camera.SetViewport(width, height)
	})
}

// spawnPoint puts the camera above the ground at the centre of the first
// chunk.
func spawnPoint(cfg config.Config, field *density.TerrainField) mgl32.Vec3 {
	half := float64(cfg.Terrain.ChunkSize) / 2
	ground := field.Height(half, half)
	return mgl32.Vec3{float32(half), float32(ground) + 12, float32(half)}
}
