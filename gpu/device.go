// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the graphics device interface used by widgets
// and the window compositor, independent of the underlying driver.
// The OpenGL implementation lives in package glgpu, and a recording
// fake for tests in package gputest.
//
// All handles are uint32 object names, with 0 meaning "not allocated".
// Every method must be called on the thread that owns the graphics context.
package gpu

// Device is the graphics device: the thin set of driver operations
// that widgets use to compile shaders, manage vertex buffers and
// textures, and issue draw calls. Bound state (current program,
// vertex array, buffer, texture unit) is global to the device,
// so callers must bind before use.
type Device interface {

	// CreateShader creates a new shader object for the given stage,
	// returning 0 on failure.
	CreateShader(stage ShaderStages) uint32

	// CompileShader sets the source of the shader and compiles it,
	// returning false and the driver's info log on failure.
	CompileShader(shader uint32, src string) (ok bool, log string)

	// DeleteShader deletes the given shader object.
	DeleteShader(shader uint32)

	// CreateProgram creates a new, empty program object, returning 0 on failure.
	CreateProgram() uint32

	// AttachShader attaches the shader to the program.
	AttachShader(program, shader uint32)

	// DetachShader detaches the shader from the program.
	DetachShader(program, shader uint32)

	// LinkProgram links the program, returning false and the
	// driver's info log on failure.
	LinkProgram(program uint32) (ok bool, log string)

	// DeleteProgram deletes the given program object.
	DeleteProgram(program uint32)

	// UniformLocation returns the location of the named uniform
	// in the linked program, or -1 if there is no such active uniform.
	UniformLocation(program uint32, name string) int32

	// UseProgram makes the program the current program.
	UseProgram(program uint32)

	// UniformMatrix4 sets the mat4 uniform at the given location
	// of the current program, from a column-major matrix.
	UniformMatrix4(location int32, m *[16]float32)

	// UniformInt sets the int (or sampler) uniform at the given location
	// of the current program.
	UniformInt(location int32, v int32)

	// GenVertexArray creates a new vertex array object, returning 0 on failure.
	GenVertexArray() uint32

	// DeleteVertexArray deletes the given vertex array object.
	DeleteVertexArray(vao uint32)

	// BindVertexArray binds the vertex array, 0 to unbind.
	BindVertexArray(vao uint32)

	// GenBuffer creates a new buffer object, returning 0 on failure.
	GenBuffer() uint32

	// DeleteBuffer deletes the given buffer object.
	DeleteBuffer(vbo uint32)

	// BindArrayBuffer binds the buffer as the current vertex (array) buffer.
	BindArrayBuffer(vbo uint32)

	// BufferData replaces the entire contents of the bound array buffer
	// with the given bytes, using a static draw usage pattern.
	BufferData(data []byte)

	// VertexAttrib defines and enables the given float vertex attribute
	// of the bound vertex array, reading from the bound array buffer
	// with the given stride in bytes.
	VertexAttrib(attr Attrib, stride int)

	// DrawArrays draws count vertices starting at first from the bound
	// vertex array, as the given primitive kind.
	DrawArrays(mode Primitives, first, count int)

	// GenTexture creates a new texture object, returning 0 on failure.
	GenTexture() uint32

	// DeleteTexture deletes the given texture object.
	DeleteTexture(tex uint32)

	// ActiveTexture selects the active texture unit (0-based).
	ActiveTexture(unit int)

	// BindTexture binds the texture to the 2D target of the active unit, 0 to unbind.
	BindTexture(tex uint32)

	// TexImage2D uploads tightly packed 8-bit RGBA pixels to the bound 2D texture.
	TexImage2D(width, height int, pix []byte)

	// GenerateMipmap generates the mipmap chain of the bound 2D texture.
	GenerateMipmap()

	// TexParams sets the wrap and filter parameters of the bound 2D texture.
	TexParams(p TexParams)

	// Viewport sets the viewport rectangle in framebuffer pixels.
	Viewport(x, y, width, height int)

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear clears the color and / or depth buffers of the current framebuffer.
	Clear(color, depth bool)

	// DepthTest turns depth testing on or off.
	DepthTest(on bool)

	// CheckError drains the driver error queue, returning a [*GLError]
	// labeled with the given label if any errors were pending.
	CheckError(label string) error

	// Version returns the driver version string.
	Version() string
}

// ShaderStages are the programmable pipeline stages supported.
type ShaderStages int32

const (
	VertexShader ShaderStages = iota
	FragmentShader
)

func (st ShaderStages) String() string {
	switch st {
	case VertexShader:
		return "Vertex"
	case FragmentShader:
		return "Fragment"
	}
	return "ShaderStages(?)"
}

// Primitives are the kinds of primitive drawn by DrawArrays.
type Primitives int32

const (
	// Lines draws disjoint pairs of vertices.
	Lines Primitives = iota

	// Triangles draws disjoint triples of vertices.
	Triangles

	// Points draws each vertex individually.
	Points
)

func (pr Primitives) String() string {
	switch pr {
	case Lines:
		return "Lines"
	case Triangles:
		return "Triangles"
	case Points:
		return "Points"
	}
	return "Primitives(?)"
}

// Attrib describes one float vertex attribute within a vertex record.
type Attrib struct {

	// Index is the attribute location in the vertex shader.
	Index uint32

	// Size is the number of float32 components (1-4).
	Size int

	// Offset is the byte offset of the attribute within the vertex record.
	Offset int
}

// Wraps are texture coordinate wrap modes.
type Wraps int32

const (
	ClampToEdge Wraps = iota
	Repeat
)

// Filters are texture sampling filters.
type Filters int32

const (
	Nearest Filters = iota
	Linear
	LinearMipmapLinear
)

// TexParams are the wrap and filter settings of a 2D texture.
type TexParams struct {
	WrapS, WrapT Wraps
	Min, Mag     Filters
}
