// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu/gputest"
	"github.com/octronic/pidash/system"
	"github.com/octronic/pidash/system/systemtest"
	"github.com/octronic/pidash/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a widget that counts its Update and Draw calls.
type counter struct {
	widget.Base
	updates int
	draws   int
	order   *[]string
	err     error
}

func newCounter(name string, order *[]string) *counter {
	return &counter{Base: widget.NewBase(nil, widget.KindWidget3D, name), order: order}
}

func (c *counter) Init() error { return nil }
func (c *counter) Update()     { c.updates++ }
func (c *counter) Destroy()    {}

func (c *counter) Draw(view, projection mgl32.Mat4) error {
	c.draws++
	if c.order != nil {
		*c.order = append(*c.order, c.Name())
	}
	return c.err
}

type looper struct{ looping bool }

func (l *looper) SetLooping(b bool) { l.looping = b }

func newWindow(t *testing.T) (*Window, *systemtest.Window, *gputest.Device, *looper) {
	t.Helper()
	sw := systemtest.NewWindow(system.Options{Size: image.Pt(800, 480), Title: "PiDash"})
	dv := gputest.NewDevice()
	lp := &looper{looping: true}
	w := New(sw, dv, lp)
	require.NoError(t, w.Init())
	return w, sw, dv, lp
}

func TestAddRemoveWidget(t *testing.T) {
	w, _, _, _ := newWindow(t)
	a, b, c := newCounter("a", nil), newCounter("b", nil), newCounter("c", nil)
	w.AddWidget(a)
	w.AddWidget(a)
	assert.Len(t, w.Widgets(), 1)

	w.AddWidget(b)
	w.AddWidget(c)
	w.RemoveWidget(newCounter("a", nil))
	assert.Equal(t, []widget.Widget{a, b, c}, w.Widgets())

	w.RemoveWidget(b)
	assert.Equal(t, []widget.Widget{a, c}, w.Widgets())
	w.RemoveWidget(b)
	assert.Equal(t, []widget.Widget{a, c}, w.Widgets())
}

func TestDrawWidgetsOrderAndVisibility(t *testing.T) {
	w, _, _, _ := newWindow(t)
	var order []string
	a, b, c := newCounter("a", &order), newCounter("b", &order), newCounter("c", &order)
	w.AddWidget(a)
	w.AddWidget(b)
	w.AddWidget(c)
	b.SetVisible(false)

	w.DrawWidgets()
	assert.Equal(t, []string{"a", "c"}, order)
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, a.draws)
	assert.Equal(t, 0, b.updates)
	assert.Equal(t, 0, b.draws)

	b.SetVisible(true)
	w.DrawWidgets()
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 1, b.draws)
}

func TestDrawErrorSkipsOnlyThatWidget(t *testing.T) {
	w, _, _, _ := newWindow(t)
	a, b := newCounter("a", nil), newCounter("b", nil)
	a.err = errors.New("uniform lost")
	w.AddWidget(a)
	w.AddWidget(b)
	w.DrawWidgets()
	assert.Equal(t, 1, b.draws)
}

func TestUpdateFrame(t *testing.T) {
	w, sw, dv, lp := newWindow(t)
	assert.Equal(t, [4]int{0, 0, 800, 480}, dv.ViewportSize)
	assert.True(t, dv.Depth)

	a := newCounter("a", nil)
	w.AddWidget(a)
	w.Update()
	assert.Equal(t, 1, sw.Polls)
	assert.Equal(t, 1, sw.Swaps)
	assert.Equal(t, 1, a.draws)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, dv.ClearRGBA)
	assert.True(t, lp.looping)
	assert.Equal(t, 1, w.Frames())
}

func TestUpdateResize(t *testing.T) {
	w, sw, dv, _ := newWindow(t)
	before := w.ProjectionMatrix()
	sw.Resize(image.Pt(640, 640))
	sw.Resize(image.Pt(1024, 600))
	w.Update()
	assert.Equal(t, [4]int{0, 0, 1024, 600}, dv.ViewportSize)
	assert.Equal(t, image.Pt(1024, 600), w.Size())
	assert.NotEqual(t, before, w.ProjectionMatrix())
	assert.Equal(t, 2, dv.Count("Viewport"), "resizes are coalesced")
}

func TestUpdateClose(t *testing.T) {
	w, sw, _, lp := newWindow(t)
	sw.RequestClose()
	w.Update()
	assert.False(t, lp.looping)
	assert.Equal(t, 1, sw.Swaps)
	assert.Equal(t, 0, sw.Destroys, "close only stops the loop")
}

func TestCamera(t *testing.T) {
	w, _, _, _ := newWindow(t)
	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, 10, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}), w.ViewMatrix())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 800.0/480.0, 0.1, 1000), w.ProjectionMatrix())

	w.SetCameraPosition(mgl32.Vec3{0, -20, 5})
	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, -20, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}), w.ViewMatrix())

	w.SetProjection(Ortho)
	assert.Equal(t, mgl32.Ortho(0, 800, 0, 480, 0.1, 1000), w.ProjectionMatrix())

	pt, err := ProjectionTypeFromString("ORTHO")
	assert.NoError(t, err)
	assert.Equal(t, Ortho, pt)
	_, err = ProjectionTypeFromString("fisheye")
	assert.Error(t, err)
}

func TestGridInWindow(t *testing.T) {
	w, _, dv, _ := newWindow(t)
	g := widget.NewGrid(dv, 100, 10, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.5, 0.5, 0.5})
	require.NoError(t, g.Init())
	w.AddWidget(g)
	dv.Reset()
	w.Update()
	require.Len(t, dv.Draws, 1)
	v, _ := dv.UniformValue(g.Program.Handle(), "view")
	assert.Equal(t, [16]float32(w.ViewMatrix()), v)

	w.Destroy()
	g.Destroy()
	assert.Equal(t, 0, dv.LiveTotal())
}
