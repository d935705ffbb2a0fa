// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements [system.Window] with GLFW,
// creating an OpenGL 3.3 core profile context.
//
// GLFW must only be used from the main thread, so the program
// must call runtime.LockOSThread from an init function.
package desktop

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/octronic/pidash/system"
)

// Driver is the GLFW [system.Driver].
type Driver struct{}

// Window is a GLFW window.
type Window struct {
	glw    *glfw.Window
	events system.Queue
}

func (Driver) NewWindow(opts system.Options) (system.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: failed to initialize glfw: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfwBool(opts.Resizable))
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	glw, err := glfw.CreateWindow(opts.Size.X, opts.Size.Y, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("desktop: failed to create window: %w", err)
	}
	glw.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{glw: glw}
	w.events.Init()
	glw.SetFramebufferSizeCallback(w.fbResized)
	glw.SetCloseCallback(w.closeReq)
	slog.Info("desktop: window created", "title", opts.Title, "size", opts.Size, "framebuffer", w.FramebufferSize())
	return w, nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *Window) fbResized(gw *glfw.Window, width, height int) {
	w.events.Send(system.Event{Type: system.Resize, Size: image.Pt(width, height)})
}

func (w *Window) closeReq(gw *glfw.Window) {
	w.events.Send(system.Event{Type: system.Close})
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Events() *system.Queue {
	return &w.events
}

func (w *Window) FramebufferSize() image.Point {
	if w.glw == nil {
		return image.Point{}
	}
	width, height := w.glw.GetFramebufferSize()
	return image.Pt(width, height)
}

func (w *Window) ShouldClose() bool {
	return w.glw == nil || w.glw.ShouldClose()
}

func (w *Window) SwapBuffers() {
	w.glw.SwapBuffers()
}

func (w *Window) Destroy() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
	glfw.Terminate()
}
