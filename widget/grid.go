// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu"
)

const (
	// MinMajorSpacing is the smallest major line spacing.
	MinMajorSpacing float32 = 1

	// MinMinorSpacing is the smallest minor line spacing.
	MinMinorSpacing float32 = 0.1

	// MaxGridSteps is the most steps taken along one axis for one
	// spacing. Beyond it the lines stop short of the area, which
	// also bounds the loop once a float32 step no longer grows
	// when the spacing is added.
	MaxGridSteps = 10000
)

// Grid is a reference grid of major and minor lines in the
// z = 0 plane, covering [0, Area.X] x [0, Area.Y].
//
// Setters only store the new values; call [Grid.Recalculate]
// to rebuild and resubmit the lines.
type Grid struct {
	Widget3D

	area         mgl32.Vec2
	majorSpacing float32
	minorSpacing float32
	majorColor   mgl32.Vec3
	minorColor   mgl32.Vec3
}

// NewGrid returns a new 300 x 300 grid with the given spacings
// and colors. The spacings are clamped as by the setters.
func NewGrid(dev gpu.Device, majorSpacing, minorSpacing float32, majorColor, minorColor mgl32.Vec3) *Grid {
	g := &Grid{area: mgl32.Vec2{300, 300}, majorColor: majorColor, minorColor: minorColor}
	g.init3D(dev, KindGrid, "Grid")
	g.SetMajorSpacing(majorSpacing)
	g.SetMinorSpacing(minorSpacing)
	return g
}

// Init initializes the underlying [Widget3D] and computes the lines.
func (g *Grid) Init() error {
	slog.Debug("Grid: Init")
	if err := g.Widget3D.Init(); err != nil {
		return err
	}
	if err := g.Recalculate(); err != nil {
		return g.fail(err)
	}
	return nil
}

// Area returns the extent of the grid.
func (g *Grid) Area() mgl32.Vec2 { return g.area }

// SetArea sets the extent of the grid. Negative extents are
// treated as zero. An extent needing more than [MaxGridSteps]
// steps of a spacing is only covered up to that many steps.
func (g *Grid) SetArea(area mgl32.Vec2) {
	g.area = mgl32.Vec2{max(area.X(), 0), max(area.Y(), 0)}
}

// MajorSpacing returns the distance between major lines.
func (g *Grid) MajorSpacing() float32 { return g.majorSpacing }

// SetMajorSpacing sets the distance between major lines,
// clamped to at least [MinMajorSpacing].
func (g *Grid) SetMajorSpacing(s float32) {
	g.majorSpacing = max(s, MinMajorSpacing)
}

// MinorSpacing returns the distance between minor lines.
func (g *Grid) MinorSpacing() float32 { return g.minorSpacing }

// SetMinorSpacing sets the distance between minor lines,
// clamped to at least [MinMinorSpacing].
func (g *Grid) SetMinorSpacing(s float32) {
	g.minorSpacing = max(s, MinMinorSpacing)
}

// MajorColor returns the color of major lines.
func (g *Grid) MajorColor() mgl32.Vec3 { return g.majorColor }

// SetMajorColor sets the color of major lines.
func (g *Grid) SetMajorColor(c mgl32.Vec3) { g.majorColor = c }

// MinorColor returns the color of minor lines.
func (g *Grid) MinorColor() mgl32.Vec3 { return g.minorColor }

// SetMinorColor sets the color of minor lines.
func (g *Grid) SetMinorColor(c mgl32.Vec3) { g.minorColor = c }

// SetTranslation moves the grid origin to t.
func (g *Grid) SetTranslation(t mgl32.Vec3) { g.SetPosition(t) }

// Recalculate clears the line buffer, adds the major lines and
// then the minor lines, and submits the result.
//
// Steps are accumulated by repeated float32 addition and a minor
// step p is skipped when math32.Mod(p, majorSpacing) is exactly 0,
// so accumulated rounding can keep a minor line close to a major
// one, or drop one that is not.
func (g *Grid) Recalculate() error {
	lines := g.Prims.Lines
	lines.Clear()
	g.addLines(g.majorSpacing, g.majorColor, false)
	g.addLines(g.minorSpacing, g.minorColor, true)
	slog.Debug("Grid: Recalculate", "lines", lines.Len()/2)
	if !lines.Allocated() {
		return nil
	}
	return lines.Submit()
}

// addLines adds lines parallel to the y axis at each step along x,
// then lines parallel to the x axis at each step along y.
func (g *Grid) addLines(spacing float32, color mgl32.Vec3, skipMajor bool) {
	skip := func(step float32) bool {
		return skipMajor && math32.Mod(step, g.majorSpacing) == 0
	}
	g.eachStep(g.area.X(), spacing, func(step float32) {
		if !skip(step) {
			g.AddLine(mgl32.Vec3{step, 0, 0}, mgl32.Vec3{step, g.area.Y(), 0}, color)
		}
	})
	g.eachStep(g.area.Y(), spacing, func(step float32) {
		if !skip(step) {
			g.AddLine(mgl32.Vec3{0, step, 0}, mgl32.Vec3{g.area.X(), step, 0}, color)
		}
	})
}

// eachStep calls fn for 0, spacing, 2*spacing, ... up to extent,
// accumulating the step in float32, for at most [MaxGridSteps] steps.
func (g *Grid) eachStep(extent, spacing float32, fn func(step float32)) {
	n := 0
	for step := float32(0); step <= extent; step += spacing {
		if n == MaxGridSteps {
			slog.Warn("Grid: too many lines, grid truncated", "extent", extent, "spacing", spacing, "max", MaxGridSteps)
			return
		}
		fn(step)
		n++
	}
}
