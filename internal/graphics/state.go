package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// The helpers below change one piece of global GL state and return a func
// that puts it back. Callers defer the returned func.

// UseProgram binds program and restores the previous program.
func UseProgram(program uint32) func() {
	var prev int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &prev)
	gl.UseProgram(program)
	return func() { gl.UseProgram(uint32(prev)) }
}

// Enable turns a capability on, restoring it only if it was off.
func Enable(capability uint32) func() {
	was := gl.IsEnabled(capability)
	if !was {
		gl.Enable(capability)
	}
	return func() {
		if !was {
			gl.Disable(capability)
		}
	}
}

// Disable turns a capability off, restoring it only if it was on.
func Disable(capability uint32) func() {
	was := gl.IsEnabled(capability)
	if was {
		gl.Disable(capability)
	}
	return func() {
		if was {
			gl.Enable(capability)
		}
	}
}

// PolygonMode sets the fill mode for both faces.
func PolygonMode(mode uint32) func() {
	var prev [2]int32
	gl.GetIntegerv(gl.POLYGON_MODE, &prev[0])
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	return func() { gl.PolygonMode(gl.FRONT_AND_BACK, uint32(prev[0])) }
}
