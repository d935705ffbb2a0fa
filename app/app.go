// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app ties the dashboard together: it creates the window
// and the widgets from a [config.Config], runs the frame loop and
// tears everything down again.
package app

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/base/errors"
	"github.com/octronic/pidash/config"
	"github.com/octronic/pidash/gpu"
	"github.com/octronic/pidash/system"
	"github.com/octronic/pidash/widget"
	"github.com/octronic/pidash/window"
)

// ConfigSource provides reloaded configs, such as a [config.Watcher].
type ConfigSource interface {
	// Next returns the latest new config without blocking.
	Next() (*config.Config, bool)

	// Close stops the source.
	Close() error
}

// App is the dashboard application.
type App struct {
	// Config is the configuration the app is built from.
	Config *config.Config

	// Driver creates the window.
	Driver system.Driver

	// NewDevice returns the graphics device for the context of
	// the newly created window.
	NewDevice func() (gpu.Device, error)

	// Configs, if set, is polled once per frame and each new
	// config is applied with [App.Apply]. The app closes it
	// in [App.Destroy].
	Configs ConfigSource

	window  *window.Window
	dev     gpu.Device
	grid    *widget.Grid
	images  []*widget.Image
	looping bool
}

// New returns a new app for the given config.
func New(cfg *config.Config, drv system.Driver, newDevice func() (gpu.Device, error)) *App {
	return &App{Config: cfg, Driver: drv, NewDevice: newDevice}
}

// Window returns the window, or nil before Init.
func (a *App) Window() *window.Window { return a.window }

// Grid returns the grid widget, or nil before Init.
func (a *App) Grid() *widget.Grid { return a.grid }

// Images returns the image widgets.
func (a *App) Images() []*widget.Image { return a.images }

// Looping returns whether Run keeps running frames.
func (a *App) Looping() bool { return a.looping }

// SetLooping sets whether Run keeps running frames;
// setting it to false stops Run after the current frame.
func (a *App) SetLooping(looping bool) { a.looping = looping }

// Init creates the window and the graphics device, then creates
// and initializes the grid and the image widgets in order,
// adding each to the window once it is ready. On error
// everything created so far is destroyed.
func (a *App) Init() error {
	slog.Debug("App: Init")
	if err := a.init(); err != nil {
		a.Destroy()
		return err
	}
	a.looping = true
	return nil
}

func (a *App) init() error {
	cfg := a.Config
	sys, err := a.Driver.NewWindow(system.Options{
		Size:      windowSize(cfg.Window),
		Title:     cfg.Window.Title,
		VSync:     cfg.Window.VSync,
		Resizable: cfg.Window.Resizable,
	})
	if err != nil {
		return err
	}
	a.dev, err = a.NewDevice()
	if err != nil {
		sys.Destroy()
		return err
	}
	a.window = window.New(sys, a.dev, a)
	if err := a.applyWindow(cfg); err != nil {
		return err
	}
	if err := a.window.Init(); err != nil {
		return err
	}
	return a.createWidgets()
}

func (a *App) createWidgets() error {
	slog.Debug("App: CreateWidgets")
	gc := a.Config.Grid
	a.grid = widget.NewGrid(a.dev, gc.MajorSpacing, gc.MinorSpacing, gc.MajorColor, gc.MinorColor)
	a.grid.SetArea(gc.Area)
	a.grid.SetTranslation(gc.Position)
	a.grid.SetVisible(!gc.Hidden)
	if err := a.grid.Init(); err != nil {
		return fmt.Errorf("App: grid: %w", err)
	}
	a.window.AddWidget(a.grid)

	for i, ic := range a.Config.Images {
		im := widget.NewImage(a.dev, ic.Path)
		a.images = append(a.images, im)
		applyImage(im, ic)
		if err := im.Init(); err != nil {
			return fmt.Errorf("App: image %d: %w", i, err)
		}
		a.window.AddWidget(im)
	}
	return nil
}

// Run runs frames until [App.SetLooping] is called with false,
// typically by the window on a close request.
func (a *App) Run() error {
	if a.window == nil {
		return errors.New("App: Run called before Init")
	}
	slog.Debug("App: Run")
	for a.looping {
		a.poll()
		a.window.Update()
		runtime.Gosched()
	}
	slog.Debug("App: Run done", "frames", a.window.Frames())
	return nil
}

func (a *App) poll() {
	if a.Configs == nil {
		return
	}
	if cfg, ok := a.Configs.Next(); ok {
		errors.Log(a.Apply(cfg))
	}
}

// Apply updates the running app to match the given config:
// the background, the camera, the grid, and the position, scale
// and visibility of the images. Images cannot be added, removed
// or given a new file while running.
func (a *App) Apply(cfg *config.Config) error {
	if a.window == nil {
		a.Config = cfg
		return nil
	}
	slog.Info("App: applying config")
	if err := a.applyWindow(cfg); err != nil {
		return err
	}

	gc := cfg.Grid
	a.grid.SetArea(gc.Area)
	a.grid.SetMajorSpacing(gc.MajorSpacing)
	a.grid.SetMinorSpacing(gc.MinorSpacing)
	a.grid.SetMajorColor(gc.MajorColor)
	a.grid.SetMinorColor(gc.MinorColor)
	a.grid.SetTranslation(gc.Position)
	a.grid.SetVisible(!gc.Hidden)
	if err := a.grid.Recalculate(); err != nil {
		return err
	}

	for i, im := range a.images {
		if i >= len(cfg.Images) || cfg.Images[i].Path != im.Path() {
			slog.Warn("App: image list changed; restart to load new images", "index", i)
			continue
		}
		applyImage(im, cfg.Images[i])
	}
	if len(cfg.Images) > len(a.images) {
		slog.Warn("App: image list changed; restart to load new images", "added", len(cfg.Images)-len(a.images))
	}
	a.Config = cfg
	return nil
}

func (a *App) applyWindow(cfg *config.Config) error {
	cc := cfg.Window.ClearColor
	a.window.ClearColor = mgl32.Vec4{cc[0], cc[1], cc[2], 1}

	pt, err := window.ProjectionTypeFromString(cfg.Camera.Projection)
	if err != nil {
		return err
	}
	cm := &a.window.Camera
	cm.Target = cfg.Camera.Target
	cm.Up = cfg.Camera.Up
	cm.FOV = cfg.Camera.FOV
	cm.Near = cfg.Camera.Near
	cm.Far = cfg.Camera.Far
	a.window.SetCameraPosition(cfg.Camera.Position)
	a.window.SetProjection(pt)
	return nil
}

func applyImage(im *widget.Image, ic config.Image) {
	im.SetScale(ic.Scale)
	im.SetPosition(ic.Position)
	im.SetVisible(!ic.Hidden)
}

// Destroy destroys the widgets, then the window.
// It is safe to call more than once.
func (a *App) Destroy() {
	slog.Debug("App: Destroy")
	a.looping = false
	if a.Configs != nil {
		errors.Log(a.Configs.Close())
		a.Configs = nil
	}
	for i := len(a.images) - 1; i >= 0; i-- {
		a.images[i].Destroy()
	}
	a.images = nil
	if a.grid != nil {
		a.grid.Destroy()
		a.grid = nil
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
	a.dev = nil
}
