// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu"
)

// Vertex is a coloured vertex of a line, triangle or point.
// It is laid out as six tightly packed float32 values,
// which must match the attributes returned by [Vertex.Attribs].
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Attribs returns position at location 0 then color at location 1.
func (Vertex) Attribs() []gpu.Attrib {
	return []gpu.Attrib{
		{Index: 0, Size: 3, Offset: 0},
		{Index: 1, Size: 3, Offset: int(unsafe.Offsetof(Vertex{}.Color))},
	}
}

// ImageVertex is a textured vertex of an [Image] quad.
type ImageVertex struct {
	Position mgl32.Vec2
	UV       mgl32.Vec2
}

// Attribs returns position at location 0 then uv at location 1.
func (ImageVertex) Attribs() []gpu.Attrib {
	return []gpu.Attrib{
		{Index: 0, Size: 2, Offset: 0},
		{Index: 1, Size: 2, Offset: int(unsafe.Offsetof(ImageVertex{}.UV))},
	}
}

// VertexType is the constraint satisfied by the vertex types
// a [Buffer] can hold.
type VertexType interface {
	Vertex | ImageVertex
	Attribs() []gpu.Attrib
}

// vertexBytes returns the raw bytes of the given vertices,
// sharing memory with them.
func vertexBytes[V VertexType](verts []V) []byte {
	if len(verts) == 0 {
		return nil
	}
	var v V
	return unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), len(verts)*int(unsafe.Sizeof(v)))
}

// stride returns the size in bytes of one vertex.
func stride[V VertexType]() int {
	var v V
	return int(unsafe.Sizeof(v))
}
