// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/base/iox/imagex"
	"github.com/octronic/pidash/config"
	"github.com/octronic/pidash/gpu"
	"github.com/octronic/pidash/gpu/gputest"
	"github.com/octronic/pidash/system/systemtest"
	"github.com/octronic/pidash/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg *config.Config) (*App, *systemtest.Driver, *gputest.Device) {
	drv := &systemtest.Driver{}
	dv := gputest.NewDevice()
	a := New(cfg, drv, func() (gpu.Device, error) { return dv, nil })
	return a, drv, dv
}

func savePNG(t *testing.T) string {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range 8 {
		im.Set(i, i, color.RGBA{255, 255, 255, 255})
	}
	fn := filepath.Join(t.TempDir(), "gauge.png")
	require.NoError(t, imagex.Save(im, fn))
	return fn
}

// source is a ConfigSource fed by the test.
type source struct {
	pending []*config.Config
	closed  int
}

func (s *source) Next() (*config.Config, bool) {
	if len(s.pending) == 0 {
		return nil, false
	}
	c := s.pending[0]
	s.pending = s.pending[1:]
	return c, true
}

func (s *source) Close() error {
	s.closed++
	return nil
}

func TestInitRunDestroy(t *testing.T) {
	cfg := config.Defaults()
	cfg.Images = []config.Image{{Path: savePNG(t), Scale: 20, Position: [3]float32{5, 5, 0}}}
	a, drv, dv := newApp(cfg)
	require.NoError(t, a.Init())
	assert.True(t, a.Looping())

	require.Len(t, drv.Windows, 1)
	sw := drv.Windows[0]
	assert.Equal(t, image.Pt(800, 480), sw.Options.Size)
	assert.Equal(t, "PiDash", sw.Options.Title)

	ws := a.Window().Widgets()
	require.Len(t, ws, 2)
	assert.Same(t, a.Grid(), ws[0])
	assert.Same(t, a.Images()[0], ws[1])
	assert.Equal(t, widget.Ready, a.Grid().State())
	assert.Equal(t, widget.Ready, a.Images()[0].State())
	assert.Equal(t, mgl32.Vec3{5, 5, 0}, a.Images()[0].Position())

	// close after three frames
	sw.OnPoll = func(w *systemtest.Window) {
		if w.Polls == 3 {
			w.RequestClose()
		}
	}
	require.NoError(t, a.Run())
	assert.False(t, a.Looping())
	assert.Equal(t, 3, sw.Swaps)
	assert.Equal(t, 3, a.Window().Frames())
	assert.NotEmpty(t, dv.Draws)

	a.Destroy()
	assert.Equal(t, 1, sw.Destroys)
	assert.Equal(t, 0, dv.LiveTotal())
	a.Destroy()
	assert.Equal(t, 1, sw.Destroys)
}

func TestInitWindowFails(t *testing.T) {
	a, drv, _ := newApp(config.Defaults())
	drv.Fail = true
	assert.ErrorIs(t, a.Init(), systemtest.ErrCreate)
	assert.False(t, a.Looping())
	assert.Error(t, a.Run())
}

func TestInitDeviceFails(t *testing.T) {
	drv := &systemtest.Driver{}
	errGL := errors.New("gpu: OpenGL 3.3 required, have 2.1.0")
	a := New(config.Defaults(), drv, func() (gpu.Device, error) { return nil, errGL })
	assert.ErrorIs(t, a.Init(), errGL)
	require.Len(t, drv.Windows, 1)
	assert.Equal(t, 1, drv.Windows[0].Destroys)
}

func TestInitImageFails(t *testing.T) {
	cfg := config.Defaults()
	cfg.Images = []config.Image{
		{Path: savePNG(t), Scale: 1},
		{Path: filepath.Join(t.TempDir(), "missing.png"), Scale: 1},
	}
	a, drv, dv := newApp(cfg)
	err := a.Init()
	var de *widget.ImageDecodeError
	require.ErrorAs(t, err, &de)
	assert.False(t, a.Looping())
	assert.Nil(t, a.Window())
	assert.Equal(t, 0, dv.LiveTotal(), "everything created is released")
	assert.Equal(t, 1, drv.Windows[0].Destroys)
}

func TestInitBadProjection(t *testing.T) {
	cfg := config.Defaults()
	cfg.Camera.Projection = "fisheye"
	a, drv, _ := newApp(cfg)
	assert.Error(t, a.Init())
	assert.Equal(t, 1, drv.Windows[0].Destroys)
}

func TestApply(t *testing.T) {
	cfg := config.Defaults()
	cfg.Images = []config.Image{{Path: savePNG(t), Scale: 1}}
	a, _, _ := newApp(cfg)
	src := &source{}
	a.Configs = src
	require.NoError(t, a.Init())
	defer a.Destroy()
	n := a.Grid().Lines().Len()

	next := config.Defaults()
	next.Window.ClearColor = [3]float32{0, 0, 0}
	next.Camera.Position = [3]float32{0, -10, 10}
	next.Grid.MinorSpacing = 50
	next.Images = []config.Image{{Path: cfg.Images[0].Path, Scale: 3, Hidden: true}, {Path: "new.png"}}
	src.pending = append(src.pending, next)

	a.poll()
	assert.Same(t, next, a.Config)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, a.Window().ClearColor)
	assert.Equal(t, mgl32.Vec3{0, -10, 10}, a.Window().Camera.Position)
	assert.Equal(t, float32(50), a.Grid().MinorSpacing())
	assert.Less(t, a.Grid().Lines().Len(), n)
	assert.Equal(t, float32(3), a.Images()[0].Scale())
	assert.False(t, a.Images()[0].Visible())
	assert.Len(t, a.Images(), 1)

	a.poll()
	assert.Same(t, next, a.Config)
}

func TestDestroyClosesConfigs(t *testing.T) {
	a, _, _ := newApp(config.Defaults())
	src := &source{}
	a.Configs = src
	require.NoError(t, a.Init())
	a.Destroy()
	a.Destroy()
	assert.Equal(t, 1, src.closed)
}
