// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import "github.com/octronic/pidash/gpu"

// Primitives is the set of independent line, triangle and point
// buffers of a 3D widget.
type Primitives struct {
	Lines     *Buffer[Vertex]
	Triangles *Buffer[Vertex]
	Points    *Buffer[Vertex]
}

// NewPrimitives returns an unallocated buffer set whose buffers
// are named after the given widget name.
func NewPrimitives(dev gpu.Device, name string) *Primitives {
	return &Primitives{
		Lines:     NewBuffer[Vertex](dev, name+" lines", gpu.Lines),
		Triangles: NewBuffer[Vertex](dev, name+" triangles", gpu.Triangles),
		Points:    NewBuffer[Vertex](dev, name+" points", gpu.Points),
	}
}

// All returns the buffers in draw order.
func (pr *Primitives) All() []*Buffer[Vertex] {
	return []*Buffer[Vertex]{pr.Lines, pr.Triangles, pr.Points}
}

// Alloc allocates all three buffers, stopping at the first error.
// Buffers allocated before the error stay allocated until
// [Primitives.Release].
func (pr *Primitives) Alloc() error {
	for _, bf := range pr.All() {
		if err := bf.Alloc(); err != nil {
			return err
		}
	}
	return nil
}

// Submit uploads every buffer.
func (pr *Primitives) Submit() error {
	for _, bf := range pr.All() {
		if err := bf.Submit(); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws each non-empty buffer.
func (pr *Primitives) Draw() {
	for _, bf := range pr.All() {
		bf.Draw()
	}
}

// Release releases all three buffers.
func (pr *Primitives) Release() {
	for _, bf := range pr.All() {
		bf.Release()
	}
}
