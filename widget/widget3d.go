// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu"
)

// DefaultVertexShader transforms coloured vertices by the
// model, view and projection matrices.
const DefaultVertexShader = `#version 330 core
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_color;

out vec3 Color;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
	gl_Position = projection * view * model * vec4(in_position, 1.0);
	Color = in_color;
}
`

// DefaultFragmentShader outputs the interpolated vertex color.
const DefaultFragmentShader = `#version 330 core
in vec3 Color;
out vec4 FragColor;

void main() {
	FragColor = vec4(Color, 1.0);
}
`

// Widget3D is a widget drawing coloured lines, triangles and
// points from its [Primitives]. Callers fill the buffers, then
// call [Widget3D.Submit].
type Widget3D struct {
	Base

	// VertexShader and FragmentShader are the shader sources,
	// defaulting to [DefaultVertexShader] and [DefaultFragmentShader].
	// They must declare the model, view and projection uniforms.
	VertexShader   string
	FragmentShader string
}

// NewWidget3D returns a new Uninitialized Widget3D.
func NewWidget3D(dev gpu.Device, name string) *Widget3D {
	w := &Widget3D{}
	w.init3D(dev, KindWidget3D, name)
	return w
}

func (w *Widget3D) init3D(dev gpu.Device, kind Kinds, name string) {
	w.Base = NewBase(dev, kind, name)
	w.VertexShader = DefaultVertexShader
	w.FragmentShader = DefaultFragmentShader
	w.Prims = NewPrimitives(dev, w.name)
}

// Init compiles the shader program and allocates the buffers.
func (w *Widget3D) Init() error {
	if err := w.begin(); err != nil {
		return err
	}
	slog.Debug("Widget3D: Init", "widget", w.name)
	w.Program = NewProgram(w.dev, w.name)
	if err := w.Program.Compile(w.VertexShader, w.FragmentShader, "model", "view", "projection"); err != nil {
		return w.fail(err)
	}
	w.state = ShaderReady
	if err := w.Prims.Alloc(); err != nil {
		return w.fail(err)
	}
	w.state = BuffersReady
	w.state = Ready
	return nil
}

// Lines returns the line buffer.
func (w *Widget3D) Lines() *Buffer[Vertex] { return w.Prims.Lines }

// Triangles returns the triangle buffer.
func (w *Widget3D) Triangles() *Buffer[Vertex] { return w.Prims.Triangles }

// Points returns the point buffer.
func (w *Widget3D) Points() *Buffer[Vertex] { return w.Prims.Points }

// AddLine appends a line from a to b in the given color.
func (w *Widget3D) AddLine(a, b, color mgl32.Vec3) {
	w.Prims.Lines.AppendMany(Vertex{a, color}, Vertex{b, color})
}

// AddTriangle appends a triangle in the given color.
func (w *Widget3D) AddTriangle(a, b, c, color mgl32.Vec3) {
	w.Prims.Triangles.AppendMany(Vertex{a, color}, Vertex{b, color}, Vertex{c, color})
}

// AddPoint appends a point in the given color.
func (w *Widget3D) AddPoint(p, color mgl32.Vec3) {
	w.Prims.Points.Append(Vertex{p, color})
}

// Submit uploads all three buffers.
func (w *Widget3D) Submit() error {
	return w.Prims.Submit()
}

func (w *Widget3D) Update() {}

// Draw binds the program, sets the matrices and draws each
// non-empty buffer.
func (w *Widget3D) Draw(view, projection mgl32.Mat4) error {
	if err := w.drawable(); err != nil {
		return err
	}
	w.Program.Use()
	if err := w.Program.SetMVP(w.model, view, projection); err != nil {
		return err
	}
	w.Prims.Draw()
	return w.dev.CheckError(w.name + " Draw")
}

func (w *Widget3D) Destroy() {
	if w.state == Destroyed {
		return
	}
	slog.Debug("Widget3D: Destroy", "widget", w.name, "state", w.state)
	w.release()
}
