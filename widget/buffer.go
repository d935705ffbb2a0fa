// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"log/slog"

	"github.com/octronic/pidash/gpu"
)

// Buffer is a CPU side list of vertices of one primitive class
// together with the vertex array and vertex buffer they are
// uploaded to. The CPU list can be cleared and refilled any
// number of times; the GPU objects are created once by
// [Buffer.Alloc] and reused by every [Buffer.Submit].
type Buffer[V VertexType] struct {
	// Name is used in errors and logging.
	Name string

	// Mode is the primitive that Draw issues.
	Mode gpu.Primitives

	dev      gpu.Device
	vao      gpu.Owned
	vbo      gpu.Owned
	verts    []V
	uploaded int
}

// NewBuffer returns a new unallocated buffer drawing the given primitive.
func NewBuffer[V VertexType](dev gpu.Device, name string, mode gpu.Primitives) *Buffer[V] {
	return &Buffer[V]{Name: name, Mode: mode, dev: dev}
}

// Alloc creates the vertex array and buffer and sets up
// the vertex attributes with a stride of one vertex.
// The vertex array and buffer are either both allocated or,
// on error, both left unallocated.
func (bf *Buffer[V]) Alloc() error {
	if bf.vao.Valid() {
		return nil
	}
	vao := bf.dev.GenVertexArray()
	if vao == 0 {
		return &BufferError{Kind: AllocationFailed, Buffer: bf.Name, Object: "vao"}
	}
	vbo := bf.dev.GenBuffer()
	if vbo == 0 {
		bf.dev.DeleteVertexArray(vao)
		return &BufferError{Kind: AllocationFailed, Buffer: bf.Name, Object: "vbo"}
	}
	bf.vao = gpu.Own(vao, bf.dev.DeleteVertexArray)
	bf.vbo = gpu.Own(vbo, bf.dev.DeleteBuffer)

	bf.dev.BindVertexArray(vao)
	bf.dev.BindArrayBuffer(vbo)
	var v V
	st := stride[V]()
	for _, at := range v.Attribs() {
		bf.dev.VertexAttrib(at, st)
	}
	bf.dev.BindVertexArray(0)
	slog.Debug("Buffer: Alloc", "buffer", bf.Name, "vao", vao, "vbo", vbo)
	return nil
}

// Allocated returns whether the GPU objects exist.
func (bf *Buffer[V]) Allocated() bool {
	return bf.vao.Valid()
}

// Append adds a vertex to the CPU side list.
func (bf *Buffer[V]) Append(v V) {
	bf.verts = append(bf.verts, v)
}

// AppendMany adds vertices to the CPU side list.
func (bf *Buffer[V]) AppendMany(vs ...V) {
	bf.verts = append(bf.verts, vs...)
}

// Clear empties the CPU side list. The GPU contents are
// unchanged until the next [Buffer.Submit].
func (bf *Buffer[V]) Clear() {
	bf.verts = bf.verts[:0]
}

// Len returns the number of vertices in the CPU side list.
func (bf *Buffer[V]) Len() int {
	return len(bf.verts)
}

// Vertices returns the CPU side list. It must not be modified.
func (bf *Buffer[V]) Vertices() []V {
	return bf.verts
}

// Submit uploads the whole CPU side list to the GPU buffer,
// replacing its previous contents.
func (bf *Buffer[V]) Submit() error {
	if !bf.vbo.Valid() {
		return &BufferError{Kind: NotAllocated, Buffer: bf.Name}
	}
	bf.dev.BindVertexArray(bf.vao.Handle())
	bf.dev.BindArrayBuffer(bf.vbo.Handle())
	bf.dev.BufferData(vertexBytes(bf.verts))
	bf.dev.BindVertexArray(0)
	bf.uploaded = len(bf.verts)
	return bf.dev.CheckError(bf.Name + " Submit")
}

// Draw draws the vertices last submitted. An empty buffer
// draws nothing and issues no draw call.
func (bf *Buffer[V]) Draw() {
	if bf.uploaded == 0 || len(bf.verts) == 0 || !bf.vao.Valid() {
		return
	}
	n := min(bf.uploaded, len(bf.verts))
	bf.dev.BindVertexArray(bf.vao.Handle())
	bf.dev.DrawArrays(bf.Mode, 0, n)
	bf.dev.BindVertexArray(0)
}

// Release deletes the GPU objects and drops the CPU side list.
// It is safe to call on a buffer that was never allocated
// and to call more than once.
func (bf *Buffer[V]) Release() {
	bf.vbo.Release()
	bf.vao.Release()
	bf.verts = nil
	bf.uploaded = 0
}
