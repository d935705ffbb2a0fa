// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window composes widgets into a [system.Window]:
// it owns the camera and the ordered widget list and runs
// the per-frame loop.
package window

import (
	"fmt"
	"image"
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/base/errors"
	"github.com/octronic/pidash/gpu"
	"github.com/octronic/pidash/system"
	"github.com/octronic/pidash/widget"
)

// Looper is the run loop that a close request stops.
type Looper interface {
	SetLooping(looping bool)
}

// Window draws the registered widgets into a system window each
// frame. It holds references to widgets; the caller owns them.
type Window struct {
	// Camera defines the view and projection matrices.
	Camera Camera

	// ClearColor is the background color.
	ClearColor mgl32.Vec4

	sys     system.Window
	dev     gpu.Device
	looper  Looper
	widgets []widget.Widget
	size    image.Point
	frames  int
}

// New returns a new window drawing into sys with dev, with the
// default camera and a grey background.
func New(sys system.Window, dev gpu.Device, looper Looper) *Window {
	w := &Window{sys: sys, dev: dev, looper: looper, ClearColor: mgl32.Vec4{0.5, 0.5, 0.5, 1}}
	w.Camera.Defaults()
	return w
}

// Init sets up depth testing, the viewport and the projection
// for the current framebuffer size.
func (w *Window) Init() error {
	slog.Debug("Window: Init")
	w.dev.DepthTest(true)
	w.resize(w.sys.FramebufferSize())
	return w.dev.CheckError("Window Init")
}

func (w *Window) resize(size image.Point) {
	w.size = size
	w.dev.Viewport(0, 0, size.X, size.Y)
	w.Camera.UpdateProjection(size)
	slog.Debug("Window: resize", "size", size)
}

// Size returns the framebuffer size.
func (w *Window) Size() image.Point { return w.size }

// Frames returns the number of frames drawn.
func (w *Window) Frames() int { return w.frames }

// System returns the system window.
func (w *Window) System() system.Window { return w.sys }

// Update runs one frame: it polls events, stops the looper on a
// close request, follows framebuffer resizes, clears, draws the
// widgets and presents.
func (w *Window) Update() {
	w.sys.PollEvents()
	fr := w.sys.Events().Drain()
	if fr.Close {
		slog.Info("Window: close requested")
		w.looper.SetLooping(false)
	}
	if fr.Resized && fr.Size != w.size {
		w.resize(fr.Size)
	}
	c := w.ClearColor
	w.dev.ClearColor(c[0], c[1], c[2], c[3])
	w.dev.Clear(true, true)
	w.DrawWidgets()
	w.sys.SwapBuffers()
	w.frames++
}

// DrawWidgets updates and draws each visible widget in the order
// they were added. A widget that fails to draw is logged and
// skipped for this frame.
func (w *Window) DrawWidgets() {
	view, proj := w.Camera.View, w.Camera.Proj
	for _, wd := range w.widgets {
		wb := wd.AsBase()
		if !wb.Visible() {
			continue
		}
		wd.Update()
		if err := wd.Draw(view, proj); err != nil {
			errors.Log(fmt.Errorf("Window: drawing %s: %w", wb.Name(), err))
		}
	}
}

// AddWidget adds a widget to the end of the draw order.
// Adding a widget that is already present does nothing.
func (w *Window) AddWidget(wd widget.Widget) {
	if slices.Contains(w.widgets, wd) {
		return
	}
	slog.Debug("Window: AddWidget", "widget", wd.AsBase().Name())
	w.widgets = append(w.widgets, wd)
}

// RemoveWidget removes a widget, keeping the order of the others.
// Removing a widget that is not present does nothing.
func (w *Window) RemoveWidget(wd widget.Widget) {
	i := slices.Index(w.widgets, wd)
	if i < 0 {
		return
	}
	w.widgets = slices.Delete(w.widgets, i, i+1)
}

// Widgets returns the widgets in draw order.
func (w *Window) Widgets() []widget.Widget {
	return w.widgets
}

// SetCameraPosition moves the camera, keeping it pointed at its target.
func (w *Window) SetCameraPosition(pos mgl32.Vec3) {
	w.Camera.Position = pos
	w.Camera.UpdateView()
}

// SetProjection sets the projection type and updates the projection.
func (w *Window) SetProjection(pt ProjectionTypes) {
	w.Camera.Projection = pt
	w.Camera.UpdateProjection(w.size)
}

// ViewMatrix returns the camera view matrix.
func (w *Window) ViewMatrix() mgl32.Mat4 { return w.Camera.View }

// ProjectionMatrix returns the camera projection matrix.
func (w *Window) ProjectionMatrix() mgl32.Mat4 { return w.Camera.Proj }

// Destroy destroys the system window. Widgets are not destroyed.
func (w *Window) Destroy() {
	w.widgets = nil
	if w.sys != nil {
		w.sys.Destroy()
		w.sys = nil
	}
}
