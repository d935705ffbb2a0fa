// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"fmt"
	"strings"

	"github.com/octronic/pidash/base/errors"
)

// ShaderErrors are the kinds of [ShaderError].
type ShaderErrors int32

const (
	// VertexCompile is a vertex stage compile failure.
	VertexCompile ShaderErrors = iota

	// FragmentCompile is a fragment stage compile failure.
	FragmentCompile

	// Link is a program link failure.
	Link

	// UniformNotFound is a required uniform that the linked
	// program does not expose.
	UniformNotFound
)

func (k ShaderErrors) String() string {
	switch k {
	case VertexCompile:
		return "VertexCompile"
	case FragmentCompile:
		return "FragmentCompile"
	case Link:
		return "Link"
	case UniformNotFound:
		return "UniformNotFound"
	}
	return fmt.Sprintf("ShaderErrors(%d)", int32(k))
}

// ShaderError is returned when a [Program] fails to build or
// a uniform cannot be resolved.
type ShaderError struct {
	Kind ShaderErrors

	// Program is the name of the program.
	Program string

	// Log is the driver's info log for compile and link failures.
	Log string

	// Uniform is the missing uniform for UniformNotFound.
	Uniform string
}

func (e *ShaderError) Error() string {
	switch e.Kind {
	case UniformNotFound:
		return fmt.Sprintf("%s: uniform %q not found in shader program", e.Program, e.Uniform)
	case VertexCompile:
		return fmt.Sprintf("%s: vertex shader error: %s", e.Program, strings.TrimSpace(e.Log))
	case FragmentCompile:
		return fmt.Sprintf("%s: fragment shader error: %s", e.Program, strings.TrimSpace(e.Log))
	}
	return fmt.Sprintf("%s: shader linking error: %s", e.Program, strings.TrimSpace(e.Log))
}

// BufferErrors are the kinds of [BufferError].
type BufferErrors int32

const (
	// AllocationFailed is returned when the device could not
	// create a vertex array or buffer.
	AllocationFailed BufferErrors = iota

	// NotAllocated is returned when submitting to a buffer
	// that was never allocated or has been released.
	NotAllocated
)

func (k BufferErrors) String() string {
	switch k {
	case AllocationFailed:
		return "AllocationFailed"
	case NotAllocated:
		return "NotAllocated"
	}
	return fmt.Sprintf("BufferErrors(%d)", int32(k))
}

// BufferError is returned by vertex buffer operations.
type BufferError struct {
	Kind BufferErrors

	// Buffer names the buffer, such as "Grid lines".
	Buffer string

	// Object is the object that failed, "vao" or "vbo".
	Object string
}

func (e *BufferError) Error() string {
	if e.Kind == NotAllocated {
		return fmt.Sprintf("%s: buffer not allocated", e.Buffer)
	}
	return fmt.Sprintf("%s: error creating %s", e.Buffer, e.Object)
}

// ImageDecodeError is returned when an [Image] cannot
// load its file.
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image %q: decode: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// TextureUploadError is returned when the decoded pixels of an
// [Image] cannot be uploaded to a texture.
type TextureUploadError struct {
	Path string
	Err  error
}

func (e *TextureUploadError) Error() string {
	return fmt.Sprintf("image %q: texture upload: %v", e.Path, e.Err)
}

func (e *TextureUploadError) Unwrap() error { return e.Err }

// StateError is returned when a lifecycle operation is called
// in a state that does not permit it.
type StateError struct {
	Widget string
	Op     string
	State  States
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s not permitted in state %v", e.Widget, e.Op, e.State)
}

var (
	errEmptyPath = errors.New("empty path")
	errNoPixels  = errors.New("image has no pixels")
)
