// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system defines the window system that the renderer
// draws into: a [Window] with a current graphics context, and
// the [Event] queue its callbacks feed.
package system

import "image"

// Options are the options for creating a window.
type Options struct {
	// Size is the initial window size in screen coordinates.
	Size image.Point

	// Title is the window title.
	Title string

	// VSync is whether buffer swaps wait for the display refresh.
	VSync bool

	// Resizable is whether the user can resize the window.
	Resizable bool
}

// Driver creates windows.
type Driver interface {
	// NewWindow creates a window and makes its graphics context
	// current on the calling thread.
	NewWindow(opts Options) (Window, error)
}

// Window is a window with a graphics context.
// All methods must be called on the thread that created it.
type Window interface {
	// PollEvents processes pending window system events,
	// queueing a [Event] for each resize or close request.
	PollEvents()

	// Events returns the event queue.
	Events() *Queue

	// FramebufferSize returns the size of the framebuffer in pixels.
	FramebufferSize() image.Point

	// ShouldClose returns whether a close has been requested.
	ShouldClose() bool

	// SwapBuffers presents the frame.
	SwapBuffers()

	// Destroy destroys the window and its context.
	// It is safe to call more than once.
	Destroy()
}
