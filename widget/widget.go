// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package widget provides the drawable units of a scene: a
// reference [Grid], textured [Image] quads and general [Widget3D]
// geometry, together with the shader [Program] and vertex [Buffer]
// machinery they are built from.
//
// All widget methods must be called on the thread that owns the
// graphics context.
package widget

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu"
)

// Widget is the interface that all widgets satisfy.
// The common widget functionality is defined on [Base],
// which every widget type embeds. You can call [Widget.AsBase]
// to get the [Base] of a Widget.
type Widget interface {
	// AsBase returns the [Base] of this Widget.
	AsBase() *Base

	// Init creates the GPU resources of the widget, moving it
	// from Uninitialized to Ready. On error the widget is Failed
	// and must be destroyed; it must not be drawn.
	Init() error

	// Update is called once per frame before Draw while the
	// widget is visible. Widgets that change their geometry
	// here must submit it before Draw.
	Update()

	// Draw draws the widget with the given camera matrices.
	// An error aborts only this draw.
	Draw(view, projection mgl32.Mat4) error

	// Destroy releases every GPU resource the widget holds,
	// whatever state it reached. It is safe to call more than once.
	Destroy()
}

// Base is the common state of every widget: a name, a lifecycle
// state, a model transform, visibility, and the optional shader
// program and primitive buffers the widget owns.
type Base struct {
	// Program is the shader program, if the widget has one.
	Program *Program

	// Prims holds the line, triangle and point buffers of a 3D widget.
	Prims *Primitives

	dev     gpu.Device
	name    string
	kind    Kinds
	state   States
	visible bool
	model   mgl32.Mat4
}

// NewBase returns a visible Uninitialized base with an identity
// model matrix.
func NewBase(dev gpu.Device, kind Kinds, name string) Base {
	if name == "" {
		name = kind.String()
	}
	return Base{dev: dev, name: name, kind: kind, visible: true, model: mgl32.Ident4()}
}

func (wb *Base) AsBase() *Base { return wb }

// Device returns the graphics device the widget draws with.
func (wb *Base) Device() gpu.Device { return wb.dev }

// Name returns the name of the widget.
func (wb *Base) Name() string { return wb.name }

// Kind returns the kind of the widget.
func (wb *Base) Kind() Kinds { return wb.kind }

// State returns the lifecycle state of the widget.
func (wb *Base) State() States { return wb.state }

// Visible returns whether the widget is drawn.
func (wb *Base) Visible() bool { return wb.visible }

// SetVisible sets whether the widget is drawn.
func (wb *Base) SetVisible(v bool) { wb.visible = v }

// Model returns the model matrix.
func (wb *Base) Model() mgl32.Mat4 { return wb.model }

// SetModel sets the model matrix.
func (wb *Base) SetModel(m mgl32.Mat4) { wb.model = m }

// SetPosition sets the model matrix to a translation to pos.
func (wb *Base) SetPosition(pos mgl32.Vec3) {
	wb.model = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
}

// Position returns the translation part of the model matrix.
func (wb *Base) Position() mgl32.Vec3 {
	return wb.model.Col(3).Vec3()
}

// begin checks that the widget may start Init.
func (wb *Base) begin() error {
	if wb.state != Uninitialized {
		return &StateError{Widget: wb.name, Op: "Init", State: wb.state}
	}
	return nil
}

// fail moves the widget to Failed and returns err.
func (wb *Base) fail(err error) error {
	wb.state = Failed
	return err
}

// drawable checks that the widget may be drawn.
func (wb *Base) drawable() error {
	if wb.state != Ready {
		return &StateError{Widget: wb.name, Op: "Draw", State: wb.state}
	}
	return nil
}

// release releases the program and buffers and moves the widget
// to Destroyed.
func (wb *Base) release() {
	if wb.Prims != nil {
		wb.Prims.Release()
	}
	if wb.Program != nil {
		wb.Program.Release()
	}
	wb.state = Destroyed
}
