package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

const lineVertexSize = int32(unsafe.Sizeof(debug.LineVertex{}))

// LineRenderer draws colored line lists from a streamed vertex buffer.
type LineRenderer struct {
	program  *shader.Program
	vao      uint32
	vbo      uint32
	capacity int
}

// NewLineRenderer compiles the line program and allocates an empty buffer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.NewProgram("line", shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, err
	}
	lr := &LineRenderer{program: program}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)

	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, lineVertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, lineVertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return lr, nil
}

// Draw uploads vertices and draws them as GL_LINES.
func (lr *LineRenderer) Draw(viewProj math.Mat4, vertices []debug.LineVertex) {
	if len(vertices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	size := len(vertices) * int(lineVertexSize)
	if len(vertices) > lr.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		lr.capacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}

	lr.program.Use()
	lr.program.SetMat4("uViewProj", viewProj)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))
	gl.BindVertexArray(0)
}

// Destroy releases the GPU resources.
func (lr *LineRenderer) Destroy() {
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	lr.program.Delete()
}
