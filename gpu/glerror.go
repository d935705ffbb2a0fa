// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// OpenGL error codes, as returned by glGetError.
const (
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506
)

var glErrorNames = map[uint32]string{
	InvalidEnum:                 "GL_INVALID_ENUM",
	InvalidValue:                "GL_INVALID_VALUE",
	InvalidOperation:            "GL_INVALID_OPERATION",
	OutOfMemory:                 "GL_OUT_OF_MEMORY",
	InvalidFramebufferOperation: "GL_INVALID_FRAMEBUFFER_OPERATION",
}

// GLError is one or more driver errors reported after the labeled operation.
// Driver errors are not returned by the calls that cause them,
// so they must be polled with [Device.CheckError].
type GLError struct {
	Label string
	Codes []uint32
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		if nm, ok := glErrorNames[c]; ok {
			names[i] = nm
		} else {
			names[i] = fmt.Sprintf("0x%04X", c)
		}
	}
	return fmt.Sprintf("gpu: %s: %s", e.Label, strings.Join(names, ", "))
}

// NewGLError returns a [*GLError] for the given codes,
// or nil if there are none.
func NewGLError(label string, codes []uint32) error {
	if len(codes) == 0 {
		return nil
	}
	return &GLError{Label: label, Codes: codes}
}
