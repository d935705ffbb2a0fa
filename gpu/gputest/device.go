// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides a recording [gpu.Device] that runs
// without a GPU or a window, for use in tests.
package gputest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/octronic/pidash/gpu"
)

// Kinds of GPU objects tracked by [Device].
const (
	KindShader  = "shader"
	KindProgram = "program"
	KindVAO     = "vao"
	KindBuffer  = "buffer"
	KindTexture = "texture"
)

// Draw records one DrawArrays call.
type Draw struct {
	Mode    gpu.Primitives
	First   int
	Count   int
	Program uint32
	VAO     uint32
	Texture uint32
}

// Texture records the contents of an uploaded texture.
type Texture struct {
	Width, Height int
	Pix           []byte
	Mipmapped     bool
	Params        gpu.TexParams
}

// Device is a [gpu.Device] that keeps its objects in maps and
// records every call. Shader compilation is simulated with a
// few simple checks on the source text.
type Device struct {
	// FailGen makes the Gen / Create call of the given kind
	// return the zero handle.
	FailGen map[string]bool

	// Errors are returned, in order, by CheckError.
	Errors []uint32

	// VersionString is returned by Version.
	VersionString string

	// Calls is the log of every call by method name.
	Calls []string

	// Draws records every DrawArrays call.
	Draws []Draw

	// Buffers holds the last data uploaded to each buffer.
	Buffers map[uint32][]byte

	// Attribs holds the vertex attributes set on each VAO.
	Attribs map[uint32][]gpu.Attrib

	// Textures holds the uploaded texture contents.
	Textures map[uint32]*Texture

	// Uniforms holds the last value set on each uniform location
	// of each program.
	Uniforms map[uint32]map[int32]any

	// ViewportSize is the last viewport set.
	ViewportSize [4]int

	// ClearRGBA is the last clear color set.
	ClearRGBA [4]float32

	// Depth is whether depth testing is enabled.
	Depth bool

	next     uint32
	live     map[string]map[uint32]bool
	sources  map[uint32]string
	stages   map[uint32]gpu.ShaderStages
	compiled map[uint32]bool
	attached map[uint32][]uint32
	linked   map[uint32]map[string]int32

	program uint32
	vao     uint32
	buffer  uint32
	texture uint32
}

// NewDevice returns a new fake device reporting OpenGL 3.3.
func NewDevice() *Device {
	return &Device{
		FailGen:       map[string]bool{},
		VersionString: "3.3.0 gputest",
		Buffers:       map[uint32][]byte{},
		Attribs:       map[uint32][]gpu.Attrib{},
		Textures:      map[uint32]*Texture{},
		Uniforms:      map[uint32]map[int32]any{},
		live:          map[string]map[uint32]bool{},
		sources:       map[uint32]string{},
		stages:        map[uint32]gpu.ShaderStages{},
		compiled:      map[uint32]bool{},
		attached:      map[uint32][]uint32{},
		linked:        map[uint32]map[string]int32{},
	}
}

// Live returns the number of live objects of the given kind.
func (dv *Device) Live(kind string) int {
	return len(dv.live[kind])
}

// LiveTotal returns the number of live objects of all kinds.
func (dv *Device) LiveTotal() int {
	n := 0
	for _, m := range dv.live {
		n += len(m)
	}
	return n
}

// IsLive returns whether the given handle of the given kind is live.
func (dv *Device) IsLive(kind string, handle uint32) bool {
	return dv.live[kind][handle]
}

// Count returns the number of recorded calls to the given method.
func (dv *Device) Count(method string) int {
	n := 0
	for _, c := range dv.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// Reset clears the call and draw logs, keeping all objects.
func (dv *Device) Reset() {
	dv.Calls = nil
	dv.Draws = nil
}

func (dv *Device) call(method string) {
	dv.Calls = append(dv.Calls, method)
}

func (dv *Device) gen(kind string) uint32 {
	if dv.FailGen[kind] {
		return 0
	}
	dv.next++
	if dv.live[kind] == nil {
		dv.live[kind] = map[uint32]bool{}
	}
	dv.live[kind][dv.next] = true
	return dv.next
}

func (dv *Device) del(kind string, handle uint32) {
	if handle == 0 {
		return
	}
	if !dv.live[kind][handle] {
		panic(fmt.Sprintf("gputest: delete of unknown %s %d", kind, handle))
	}
	delete(dv.live[kind], handle)
}

func (dv *Device) CreateShader(stage gpu.ShaderStages) uint32 {
	dv.call("CreateShader")
	sh := dv.gen(KindShader)
	if sh != 0 {
		dv.stages[sh] = stage
	}
	return sh
}

func (dv *Device) CompileShader(shader uint32, src string) (bool, string) {
	dv.call("CompileShader")
	dv.sources[shader] = src
	if !strings.Contains(src, "#version") {
		return false, "0:1(1): error: missing #version directive"
	}
	if strings.Count(src, "{") != strings.Count(src, "}") {
		return false, "0:1(1): error: syntax error, unbalanced braces"
	}
	dv.compiled[shader] = true
	return true, ""
}

func (dv *Device) DeleteShader(shader uint32) {
	dv.call("DeleteShader")
	dv.del(KindShader, shader)
	delete(dv.sources, shader)
	delete(dv.stages, shader)
	delete(dv.compiled, shader)
}

func (dv *Device) CreateProgram() uint32 {
	dv.call("CreateProgram")
	return dv.gen(KindProgram)
}

func (dv *Device) AttachShader(program, shader uint32) {
	dv.call("AttachShader")
	dv.attached[program] = append(dv.attached[program], shader)
}

func (dv *Device) DetachShader(program, shader uint32) {
	dv.call("DetachShader")
	dv.attached[program] = slices.DeleteFunc(dv.attached[program], func(s uint32) bool { return s == shader })
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

func (dv *Device) LinkProgram(program uint32) (bool, string) {
	dv.call("LinkProgram")
	var haveVert, haveFrag bool
	locs := map[string]int32{}
	for _, sh := range dv.attached[program] {
		if !dv.compiled[sh] {
			return false, fmt.Sprintf("error: shader %d not compiled", sh)
		}
		src := dv.sources[sh]
		if !strings.Contains(src, "void main") {
			return false, fmt.Sprintf("error: %s shader has no main function", dv.stages[sh])
		}
		switch dv.stages[sh] {
		case gpu.VertexShader:
			haveVert = true
		case gpu.FragmentShader:
			haveFrag = true
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := locs[m[1]]; !ok {
				locs[m[1]] = int32(len(locs))
			}
		}
	}
	if !haveVert || !haveFrag {
		return false, "error: program needs a vertex and a fragment shader"
	}
	dv.linked[program] = locs
	return true, ""
}

func (dv *Device) DeleteProgram(program uint32) {
	dv.call("DeleteProgram")
	dv.del(KindProgram, program)
	delete(dv.attached, program)
	delete(dv.linked, program)
	delete(dv.Uniforms, program)
}

func (dv *Device) UniformLocation(program uint32, name string) int32 {
	dv.call("UniformLocation")
	loc, ok := dv.linked[program][name]
	if !ok {
		return -1
	}
	return loc
}

func (dv *Device) UseProgram(program uint32) {
	dv.call("UseProgram")
	dv.program = program
}

func (dv *Device) setUniform(loc int32, v any) {
	if dv.Uniforms[dv.program] == nil {
		dv.Uniforms[dv.program] = map[int32]any{}
	}
	dv.Uniforms[dv.program][loc] = v
}

func (dv *Device) UniformMatrix4(location int32, m *[16]float32) {
	dv.call("UniformMatrix4")
	dv.setUniform(location, *m)
}

func (dv *Device) UniformInt(location int32, v int32) {
	dv.call("UniformInt")
	dv.setUniform(location, v)
}

// UniformValue returns the value last set on the named uniform
// of the given program.
func (dv *Device) UniformValue(program uint32, name string) (any, bool) {
	loc, ok := dv.linked[program][name]
	if !ok {
		return nil, false
	}
	v, ok := dv.Uniforms[program][loc]
	return v, ok
}

func (dv *Device) GenVertexArray() uint32 {
	dv.call("GenVertexArray")
	return dv.gen(KindVAO)
}

func (dv *Device) DeleteVertexArray(vao uint32) {
	dv.call("DeleteVertexArray")
	dv.del(KindVAO, vao)
	delete(dv.Attribs, vao)
}

func (dv *Device) BindVertexArray(vao uint32) {
	dv.call("BindVertexArray")
	dv.vao = vao
}

func (dv *Device) GenBuffer() uint32 {
	dv.call("GenBuffer")
	return dv.gen(KindBuffer)
}

func (dv *Device) DeleteBuffer(vbo uint32) {
	dv.call("DeleteBuffer")
	dv.del(KindBuffer, vbo)
	delete(dv.Buffers, vbo)
}

func (dv *Device) BindArrayBuffer(vbo uint32) {
	dv.call("BindArrayBuffer")
	dv.buffer = vbo
}

func (dv *Device) BufferData(data []byte) {
	dv.call("BufferData")
	dv.Buffers[dv.buffer] = slices.Clone(data)
}

func (dv *Device) VertexAttrib(attr gpu.Attrib, stride int) {
	dv.call("VertexAttrib")
	dv.Attribs[dv.vao] = append(dv.Attribs[dv.vao], attr)
}

func (dv *Device) DrawArrays(mode gpu.Primitives, first, count int) {
	dv.call("DrawArrays")
	dv.Draws = append(dv.Draws, Draw{Mode: mode, First: first, Count: count,
		Program: dv.program, VAO: dv.vao, Texture: dv.texture})
}

func (dv *Device) GenTexture() uint32 {
	dv.call("GenTexture")
	return dv.gen(KindTexture)
}

func (dv *Device) DeleteTexture(tex uint32) {
	dv.call("DeleteTexture")
	dv.del(KindTexture, tex)
	delete(dv.Textures, tex)
}

func (dv *Device) ActiveTexture(unit int) {
	dv.call("ActiveTexture")
}

func (dv *Device) BindTexture(tex uint32) {
	dv.call("BindTexture")
	dv.texture = tex
}

func (dv *Device) boundTexture() *Texture {
	tx := dv.Textures[dv.texture]
	if tx == nil {
		tx = &Texture{}
		dv.Textures[dv.texture] = tx
	}
	return tx
}

func (dv *Device) TexImage2D(width, height int, pix []byte) {
	dv.call("TexImage2D")
	tx := dv.boundTexture()
	tx.Width, tx.Height = width, height
	tx.Pix = slices.Clone(pix)
}

func (dv *Device) GenerateMipmap() {
	dv.call("GenerateMipmap")
	dv.boundTexture().Mipmapped = true
}

func (dv *Device) TexParams(p gpu.TexParams) {
	dv.call("TexParams")
	dv.boundTexture().Params = p
}

func (dv *Device) Viewport(x, y, width, height int) {
	dv.call("Viewport")
	dv.ViewportSize = [4]int{x, y, width, height}
}

func (dv *Device) ClearColor(r, g, b, a float32) {
	dv.call("ClearColor")
	dv.ClearRGBA = [4]float32{r, g, b, a}
}

func (dv *Device) Clear(color, depth bool) {
	dv.call("Clear")
}

func (dv *Device) DepthTest(on bool) {
	dv.call("DepthTest")
	dv.Depth = on
}

func (dv *Device) CheckError(label string) error {
	dv.call("CheckError")
	if len(dv.Errors) == 0 {
		return nil
	}
	codes := dv.Errors
	dv.Errors = nil
	return gpu.NewGLError(label, codes)
}

func (dv *Device) Version() string {
	return dv.VersionString
}
