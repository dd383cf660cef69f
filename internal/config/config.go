package config

import "sync"

// RenderSettings holds settings the render loop may change at runtime.
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	wireframe      bool
	culling        bool
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 8,
	culling:        true,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < 1 {
		distance = 1
	}
	if distance > 32 {
		distance = 32
	}

	globalRenderSettings.renderDistance = distance
}

// GetWireframe reports whether chunks are drawn as wireframe.
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframe flips wireframe mode and returns the new value.
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}

// GetFrustumCulling reports whether the view culler is active.
func GetFrustumCulling() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.culling
}

// SetFrustumCulling enables or disables the view culler (debugging aid).
func SetFrustumCulling(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.culling = enabled
}
