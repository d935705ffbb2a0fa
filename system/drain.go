// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import "image"

// Frame is the result of draining a queue for one frame.
type Frame struct {
	// Close is whether a close was requested.
	Close bool

	// Resized is whether the framebuffer was resized,
	// and Size the last size reported.
	Resized bool
	Size    image.Point
}

// Drain removes every queued event and compresses them into a
// [Frame]: resizes collapse into the last one and any number of
// close requests into one.
func (q *Queue) Drain() Frame {
	var fr Frame
	for {
		ev, ok := q.NextEvent()
		if !ok {
			return fr
		}
		switch ev.Type {
		case Close:
			fr.Close = true
		case Resize:
			fr.Resized = true
			fr.Size = ev.Size
		}
	}
}
