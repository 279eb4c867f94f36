package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/mesh"
)

const (
	floatSize  = 4
	vertexSize = mesh.VertexStride * floatSize
	mat4Size   = 16 * floatSize
)

// Attribute locations shared by the surface and instance shaders.
const (
	attribPosition = 0
	attribNormal   = 1
	attribInstance = 2 // mat4, uses 2..5
)

// meshBuffer holds interleaved position+normal triangles.
type meshBuffer struct {
	vao, vbo uint32
	count    int32
}

func newMeshBuffer() *meshBuffer {
	b := &meshBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	setupVertexAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func setupVertexAttribs() {
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, vertexSize, nil)
	gl.EnableVertexAttribArray(attribPosition)
	//nolint:govet // Valid OpenGL offset pointer usage
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, vertexSize, unsafe.Pointer(uintptr(3*floatSize)))
	gl.EnableVertexAttribArray(attribNormal)
}

func (b *meshBuffer) upload(vertices []float32) {
	b.count = int32(len(vertices) / mesh.VertexStride)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *meshBuffer) draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *meshBuffer) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}

// instanceBuffer draws a reference mesh once per mat4 in a second buffer
// whose attributes advance per instance.
type instanceBuffer struct {
	ref         *meshBuffer
	instanceVBO uint32
	instances   int32
}

func newInstanceBuffer(ref *mesh.Mesh) *instanceBuffer {
	b := &instanceBuffer{ref: newMeshBuffer()}
	b.ref.upload(ref.Interleave())

	gl.GenBuffers(1, &b.instanceVBO)
	gl.BindVertexArray(b.ref.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	for col := uint32(0); col < 4; col++ {
		loc := attribInstance + col
		gl.EnableVertexAttribArray(loc)
		//nolint:govet // Valid OpenGL offset pointer usage
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, mat4Size, unsafe.Pointer(uintptr(col*4*floatSize)))
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func (b *instanceBuffer) setReference(ref *mesh.Mesh) {
	b.ref.upload(ref.Interleave())
}

func (b *instanceBuffer) setInstances(transforms []mgl32.Mat4) {
	b.instances = int32(len(transforms))
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	if len(transforms) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(transforms)*mat4Size, gl.Ptr(&transforms[0][0]), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *instanceBuffer) draw() {
	gl.BindVertexArray(b.ref.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, b.ref.count, b.instances)
	gl.BindVertexArray(0)
}

func (b *instanceBuffer) destroy() {
	b.ref.destroy()
	if b.instanceVBO != 0 {
		gl.DeleteBuffers(1, &b.instanceVBO)
		b.instanceVBO = 0
	}
}

// lineBuffer holds GL_LINES positions.
type lineBuffer struct {
	vao, vbo uint32
	count    int32
}

func newLineBuffer() *lineBuffer {
	b := &lineBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 3*floatSize, nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func (b *lineBuffer) upload(vertices []float32) {
	b.count = int32(len(vertices) / 3)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *lineBuffer) draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *lineBuffer) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}
