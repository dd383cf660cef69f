package main

import (
	"voxel-terrain/internal/input"
	"voxel-terrain/internal/physics"
	"voxel-terrain/internal/profiling"
)

// handleEdits turns clicks into line casts. With the cursor captured the
// ray goes through the screen centre, otherwise through the cursor.
func (l *Loop) handleEdits() {
	var intent physics.Intent
	switch {
	case l.input.JustPressed(input.ActionRemove):
		intent = physics.IntentRemove
	case l.input.JustPressed(input.ActionPlace):
		intent = physics.IntentPlace
	default:
		return
	}
	defer profiling.Track("player.Edit")()

	ray := l.camera.Ray(l.cfg.Edit.Reach)
	if l.paused {
		x, y := l.window.GetCursorPos()
		w, h := l.window.GetSize()
		ray = l.camera.MouseRay(x, y, w, h, l.cfg.Edit.Reach)
	}
	l.terrain.ProcessLine(ray, intent)
}
