// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package systemtest provides a [system.Window] that needs no
// display, for use in tests.
package systemtest

import (
	"errors"
	"image"

	"github.com/octronic/pidash/system"
)

// ErrCreate is returned by [Driver.NewWindow] when Fail is set.
var ErrCreate = errors.New("systemtest: window creation failed")

// Driver creates [Window]s.
type Driver struct {
	// Fail makes NewWindow fail.
	Fail bool

	// Windows are the windows created so far.
	Windows []*Window
}

func (d *Driver) NewWindow(opts system.Options) (system.Window, error) {
	if d.Fail {
		return nil, ErrCreate
	}
	w := NewWindow(opts)
	d.Windows = append(d.Windows, w)
	return w, nil
}

// Window is a fake window. Events sent with [Window.Pending]
// are delivered by the next PollEvents, the way a real window
// system delivers input.
type Window struct {
	Options system.Options

	// Size is the framebuffer size.
	Size image.Point

	// Polls, Swaps and Destroys count the calls of each method.
	Polls    int
	Swaps    int
	Destroys int

	// OnPoll is called at each PollEvents.
	OnPoll func(w *Window)

	closing bool
	pending []system.Event
	events  system.Queue
}

// NewWindow returns a fake window with the given options.
func NewWindow(opts system.Options) *Window {
	w := &Window{Options: opts, Size: opts.Size}
	w.events.Init()
	return w
}

// Pending queues an event for the next PollEvents.
func (w *Window) Pending(ev system.Event) {
	w.pending = append(w.pending, ev)
}

// RequestClose queues a close request.
func (w *Window) RequestClose() {
	w.Pending(system.Event{Type: system.Close})
}

// Resize queues a resize to the given framebuffer size.
func (w *Window) Resize(size image.Point) {
	w.Pending(system.Event{Type: system.Resize, Size: size})
}

func (w *Window) PollEvents() {
	w.Polls++
	if w.OnPoll != nil {
		w.OnPoll(w)
	}
	for _, ev := range w.pending {
		switch ev.Type {
		case system.Resize:
			w.Size = ev.Size
		case system.Close:
			w.closing = true
		}
		w.events.Send(ev)
	}
	w.pending = nil
}

func (w *Window) Events() *system.Queue { return &w.events }

func (w *Window) FramebufferSize() image.Point { return w.Size }

func (w *Window) ShouldClose() bool { return w.closing }

func (w *Window) SwapBuffers() { w.Swaps++ }

func (w *Window) Destroy() { w.Destroys++ }
