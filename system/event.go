// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"fmt"
	"image"
)

// EventTypes are the types of window [Event].
type EventTypes int32

const (
	// UnknownEvent is the zero value.
	UnknownEvent EventTypes = iota

	// Resize is sent when the framebuffer size changes.
	// Size is the new framebuffer size in pixels.
	// Resize events are not unique: of several queued resizes
	// only the last one matters.
	Resize

	// Close is sent when the user asks to close the window.
	Close
)

func (et EventTypes) String() string {
	switch et {
	case UnknownEvent:
		return "UnknownEvent"
	case Resize:
		return "Resize"
	case Close:
		return "Close"
	}
	return fmt.Sprintf("EventTypes(%d)", int32(et))
}

// Event is a window system event.
type Event struct {
	Type EventTypes
	Size image.Point
}

func (ev Event) String() string {
	if ev.Type == Resize {
		return fmt.Sprintf("Resize %dx%d", ev.Size.X, ev.Size.Y)
	}
	return ev.Type.String()
}
