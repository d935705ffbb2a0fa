// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import "fmt"

// States are the lifecycle states of a widget.
//
//	Uninitialized -> ShaderReady -> BuffersReady -> Ready
//
// Any step of Init can instead move to Failed, and Destroy
// moves any state to Destroyed.
type States int32

const (
	Uninitialized States = iota
	ShaderReady
	BuffersReady
	Ready
	Failed
	Destroyed
)

func (st States) String() string {
	switch st {
	case Uninitialized:
		return "Uninitialized"
	case ShaderReady:
		return "ShaderReady"
	case BuffersReady:
		return "BuffersReady"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	case Destroyed:
		return "Destroyed"
	}
	return fmt.Sprintf("States(%d)", int32(st))
}

// Kinds are the kinds of widget.
type Kinds int32

const (
	// KindWidget3D is a plain [Widget3D] with caller supplied geometry.
	KindWidget3D Kinds = iota

	// KindGrid is a [Grid].
	KindGrid

	// KindImage is an [Image].
	KindImage
)

func (k Kinds) String() string {
	switch k {
	case KindWidget3D:
		return "Widget3D"
	case KindGrid:
		return "Grid"
	case KindImage:
		return "Image"
	}
	return fmt.Sprintf("Kinds(%d)", int32(k))
}
