// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionTypes are the types of camera projection.
type ProjectionTypes int32

const (
	// Perspective is a perspective projection with the camera FOV.
	Perspective ProjectionTypes = iota

	// Ortho is an orthographic projection of the framebuffer
	// rectangle (0, width) x (0, height).
	Ortho
)

func (pt ProjectionTypes) String() string {
	switch pt {
	case Perspective:
		return "Perspective"
	case Ortho:
		return "Ortho"
	}
	return fmt.Sprintf("ProjectionTypes(%d)", int32(pt))
}

// ProjectionTypeFromString returns the projection type with the
// given name, as returned by String, ignoring case.
func ProjectionTypeFromString(s string) (ProjectionTypes, error) {
	switch {
	case s == "" || strings.EqualFold(s, "perspective"):
		return Perspective, nil
	case strings.EqualFold(s, "ortho"):
		return Ortho, nil
	}
	return Perspective, fmt.Errorf("window: unknown projection %q", s)
}

// Camera defines the view and projection of the scene.
type Camera struct {
	// Position is the camera location.
	Position mgl32.Vec3

	// Target is the point the camera looks at.
	Target mgl32.Vec3

	// Up is the up direction.
	Up mgl32.Vec3

	// Projection is the projection type.
	Projection ProjectionTypes

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Near and Far are the clip plane distances.
	Near float32
	Far  float32

	// View is the view matrix, updated by UpdateView.
	View mgl32.Mat4

	// Proj is the projection matrix, updated by UpdateProjection.
	Proj mgl32.Mat4
}

// Defaults sets the camera at (0, 10, 10) looking at the origin
// with +Z up, and a 45 degree perspective projection.
func (cm *Camera) Defaults() {
	cm.Position = mgl32.Vec3{0, 10, 10}
	cm.Target = mgl32.Vec3{}
	cm.Up = mgl32.Vec3{0, 0, 1}
	cm.Projection = Perspective
	cm.FOV = 45
	cm.Near = 0.1
	cm.Far = 1000
	cm.UpdateView()
	cm.Proj = mgl32.Ident4()
}

// UpdateView updates the view matrix from the position, target and up.
func (cm *Camera) UpdateView() {
	cm.View = mgl32.LookAtV(cm.Position, cm.Target, cm.Up)
}

// UpdateProjection updates the projection matrix for a
// framebuffer of the given size.
func (cm *Camera) UpdateProjection(size image.Point) {
	w, h := float32(max(size.X, 1)), float32(max(size.Y, 1))
	if cm.Projection == Ortho {
		cm.Proj = mgl32.Ortho(0, w, 0, h, cm.Near, cm.Far)
		return
	}
	cm.Proj = mgl32.Perspective(mgl32.DegToRad(cm.FOV), w/h, cm.Near, cm.Far)
}
