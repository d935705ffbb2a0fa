// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glgpu implements [gpu.Device] on OpenGL 3.3 core,
// using the go-gl bindings. The GL context must be current on
// the calling thread before [Init] and every Device call.
package glgpu

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/octronic/pidash/gpu"
)

// Device is the OpenGL [gpu.Device].
type Device struct {
	version string
}

// Init loads the OpenGL function pointers for the current context
// and checks that the context is at least [gpu.MinVersion].
func Init() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glgpu: initializing OpenGL: %w", err)
	}
	dv := &Device{version: gl.GoStr(gl.GetString(gl.VERSION))}
	slog.Info("glgpu: OpenGL", "version", dv.version,
		"shading", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	if err := gpu.CheckVersion(dv.version, gpu.MinVersion); err != nil {
		return nil, err
	}
	return dv, nil
}

var glStages = map[gpu.ShaderStages]uint32{
	gpu.VertexShader:   gl.VERTEX_SHADER,
	gpu.FragmentShader: gl.FRAGMENT_SHADER,
}

var glPrimitives = map[gpu.Primitives]uint32{
	gpu.Lines:     gl.LINES,
	gpu.Triangles: gl.TRIANGLES,
	gpu.Points:    gl.POINTS,
}

var glWraps = map[gpu.Wraps]int32{
	gpu.ClampToEdge: gl.CLAMP_TO_EDGE,
	gpu.Repeat:      gl.REPEAT,
}

var glFilters = map[gpu.Filters]int32{
	gpu.Nearest:            gl.NEAREST,
	gpu.Linear:             gl.LINEAR,
	gpu.LinearMipmapLinear: gl.LINEAR_MIPMAP_LINEAR,
}

func (dv *Device) CreateShader(stage gpu.ShaderStages) uint32 {
	return gl.CreateShader(glStages[stage])
}

func (dv *Device) CompileShader(shader uint32, src string) (bool, string) {
	csources, free := gl.Strs(cString(src))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(msg))
		return false, goString(msg)
	}
	return true, ""
}

func (dv *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (dv *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (dv *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (dv *Device) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (dv *Device) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		lg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(lg))
		return false, goString(lg)
	}
	return true, ""
}

func (dv *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (dv *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(cString(name)))
}

func (dv *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (dv *Device) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (dv *Device) UniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (dv *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (dv *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (dv *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (dv *Device) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (dv *Device) DeleteBuffer(vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
}

func (dv *Device) BindArrayBuffer(vbo uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
}

func (dv *Device) BufferData(data []byte) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

func (dv *Device) VertexAttrib(attr gpu.Attrib, stride int) {
	gl.VertexAttribPointer(attr.Index, int32(attr.Size), gl.FLOAT, false, int32(stride), gl.PtrOffset(attr.Offset))
	gl.EnableVertexAttribArray(attr.Index)
}

func (dv *Device) DrawArrays(mode gpu.Primitives, first, count int) {
	gl.DrawArrays(glPrimitives[mode], int32(first), int32(count))
}

func (dv *Device) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (dv *Device) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (dv *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (dv *Device) BindTexture(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (dv *Device) TexImage2D(width, height int, pix []byte) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

func (dv *Device) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (dv *Device) TexParams(p gpu.TexParams) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWraps[p.WrapS])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWraps[p.WrapT])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilters[p.Min])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilters[p.Mag])
}

func (dv *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (dv *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (dv *Device) Clear(color, depth bool) {
	bits := uint32(0)
	if color {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (dv *Device) DepthTest(on bool) {
	if on {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// maxErrors bounds the error drain loop; a lost context
// can report GL_CONTEXT_LOST forever.
const maxErrors = 16

func (dv *Device) CheckError(label string) error {
	var codes []uint32
	for range maxErrors {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	return gpu.NewGLError(label, codes)
}

func (dv *Device) Version() string {
	return dv.version
}

// cString returns a null-terminated version of the given string.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// goString returns s up to the first null terminator.
func goString(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}
