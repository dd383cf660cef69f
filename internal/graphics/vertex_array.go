package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/profiling"
)

var errEmptyMesh = errors.New("mesh has no vertices")

// Uploader creates vertex arrays on the current GL context.
type Uploader struct{}

// VertexArray is a VAO with its vertex buffer and, for indexed meshes, its
// element buffer.
type VertexArray struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// Upload copies an interleaved mesh to the GPU. Attribute 0 is position,
// 1 the normal and 2 either the color (3 floats) or the block id (1 float).
func (Uploader) Upload(m *meshing.Mesh) (meshing.Buffer, error) {
	defer profiling.Track("graphics.Upload")()
	if m.Empty() {
		return nil, errEmptyMesh
	}
	data := m.Interleave()
	stride := int32(m.Layout.Stride() * 4)

	va := &VertexArray{indexed: m.Indexed()}
	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)
	defer gl.BindVertexArray(0)

	gl.GenBuffers(1, &va.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	if m.Layout == meshing.LayoutBlock {
		gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 6*4)
	} else {
		gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 6*4)
	}

	if va.indexed {
		gl.GenBuffers(1, &va.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		va.count = int32(len(m.Indices))
	} else {
		va.count = int32(len(m.Vertices))
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		va.Delete()
		return nil, fmt.Errorf("gl error 0x%x", code)
	}
	return va, nil
}

func (va *VertexArray) Draw() {
	gl.BindVertexArray(va.vao)
	if va.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, va.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, va.count)
	}
	gl.BindVertexArray(0)
}

// Delete frees the GL objects. Further calls are no-ops.
func (va *VertexArray) Delete() {
	if va.ebo != 0 {
		gl.DeleteBuffers(1, &va.ebo)
		va.ebo = 0
	}
	if va.vbo != 0 {
		gl.DeleteBuffers(1, &va.vbo)
		va.vbo = 0
	}
	if va.vao != 0 {
		gl.DeleteVertexArrays(1, &va.vao)
		va.vao = 0
	}
}
