// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"testing"

	"github.com/octronic/pidash/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ gpu.Device = (*Device)(nil)

const vert = `#version 330 core
uniform mat4 model;
uniform mat4 view;
void main() { gl_Position = view * model * vec4(0); }
`

const frag = `#version 330 core
uniform sampler2D tex;
out vec4 FragColor;
void main() { FragColor = vec4(1); }
`

func link(t *testing.T, dv *Device, vs, fs string) (uint32, bool, string) {
	t.Helper()
	v := dv.CreateShader(gpu.VertexShader)
	ok, lg := dv.CompileShader(v, vs)
	require.True(t, ok, lg)
	f := dv.CreateShader(gpu.FragmentShader)
	ok, lg = dv.CompileShader(f, fs)
	require.True(t, ok, lg)
	p := dv.CreateProgram()
	dv.AttachShader(p, v)
	dv.AttachShader(p, f)
	ok, lg = dv.LinkProgram(p)
	return p, ok, lg
}

func TestCompile(t *testing.T) {
	dv := NewDevice()
	sh := dv.CreateShader(gpu.VertexShader)
	ok, lg := dv.CompileShader(sh, "void main() {}")
	assert.False(t, ok)
	assert.Contains(t, lg, "#version")

	ok, lg = dv.CompileShader(sh, "#version 330\nvoid main() {")
	assert.False(t, ok)
	assert.Contains(t, lg, "unbalanced")

	ok, _ = dv.CompileShader(sh, vert)
	assert.True(t, ok)
	assert.Equal(t, 1, dv.Live(KindShader))
	dv.DeleteShader(sh)
	assert.Equal(t, 0, dv.Live(KindShader))
}

func TestLinkAndUniforms(t *testing.T) {
	dv := NewDevice()
	p, ok, lg := link(t, dv, vert, frag)
	require.True(t, ok, lg)
	assert.GreaterOrEqual(t, dv.UniformLocation(p, "model"), int32(0))
	assert.GreaterOrEqual(t, dv.UniformLocation(p, "tex"), int32(0))
	assert.Equal(t, int32(-1), dv.UniformLocation(p, "missing"))

	dv.UseProgram(p)
	m := [16]float32{0: 1, 5: 1, 10: 1, 15: 1}
	dv.UniformMatrix4(dv.UniformLocation(p, "view"), &m)
	v, ok := dv.UniformValue(p, "view")
	assert.True(t, ok)
	assert.Equal(t, m, v)
}

func TestLinkNoMain(t *testing.T) {
	dv := NewDevice()
	_, ok, lg := link(t, dv, "#version 330\nuniform mat4 model;\n", frag)
	assert.False(t, ok)
	assert.Contains(t, lg, "main")
}

func TestFailGen(t *testing.T) {
	dv := NewDevice()
	dv.FailGen[KindBuffer] = true
	assert.Equal(t, uint32(0), dv.GenBuffer())
	assert.NotEqual(t, uint32(0), dv.GenVertexArray())
	assert.Equal(t, 1, dv.LiveTotal())
}

func TestBufferAndDraw(t *testing.T) {
	dv := NewDevice()
	vao := dv.GenVertexArray()
	vbo := dv.GenBuffer()
	dv.BindVertexArray(vao)
	dv.BindArrayBuffer(vbo)
	dv.BufferData([]byte{1, 2, 3})
	dv.VertexAttrib(gpu.Attrib{Index: 0, Size: 3}, 24)
	dv.DrawArrays(gpu.Lines, 0, 2)

	assert.Equal(t, []byte{1, 2, 3}, dv.Buffers[vbo])
	assert.Len(t, dv.Attribs[vao], 1)
	require.Len(t, dv.Draws, 1)
	assert.Equal(t, Draw{Mode: gpu.Lines, Count: 2, VAO: vao}, dv.Draws[0])
	assert.Equal(t, 1, dv.Count("DrawArrays"))

	dv.DeleteBuffer(vbo)
	dv.DeleteVertexArray(vao)
	assert.Equal(t, 0, dv.LiveTotal())
	assert.Panics(t, func() { dv.DeleteBuffer(vbo) })
}

func TestCheckError(t *testing.T) {
	dv := NewDevice()
	assert.NoError(t, dv.CheckError("ok"))
	dv.Errors = []uint32{gpu.InvalidValue}
	err := dv.CheckError("TexImage2D")
	assert.EqualError(t, err, "gpu: TexImage2D: GL_INVALID_VALUE")
	assert.NoError(t, dv.CheckError("again"))
}
