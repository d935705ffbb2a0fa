// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pidash draws a dashboard of a reference grid and
// image gauges in an OpenGL window.
package main

import (
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/octronic/pidash/app"
	"github.com/octronic/pidash/base/errors"
	"github.com/octronic/pidash/base/logx"
	"github.com/octronic/pidash/config"
	"github.com/octronic/pidash/gpu"
	"github.com/octronic/pidash/gpu/glgpu"
	"github.com/octronic/pidash/system/desktop"
	"github.com/octronic/pidash/widget"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW and the OpenGL context must stay on the main thread.
	runtime.LockOSThread()
}

// flags are the command line flags.
type flags struct {
	config  string
	vv      bool
	verbose bool
	quiet   bool
	images  []string
	ortho   bool
	watch   bool
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var fl flags
	cmd := &cobra.Command{
		Use:           "pidash",
		Short:         "Draw a grid and image gauges in an OpenGL window",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&fl)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fl.config, "config", "c", "", "config file (.toml, .yaml or .yml)")
	f.BoolVar(&fl.vv, "vv", false, "show debug messages")
	f.BoolVarP(&fl.verbose, "verbose", "v", false, "show info messages")
	f.BoolVarP(&fl.quiet, "quiet", "q", false, "only show errors")
	f.StringArrayVar(&fl.images, "image", nil, "add an image widget for the given file (repeatable)")
	f.BoolVar(&fl.ortho, "ortho", false, "use an orthographic projection")
	f.BoolVar(&fl.watch, "watch", false, "reload the config file when it changes")
	return cmd
}

func run(fl *flags) error {
	logx.UserLevel = logx.LevelFromFlags(fl.vv, fl.verbose, fl.quiet)
	logx.SetDefaultLogger()

	cfg, err := loadConfig(fl)
	if err != nil {
		slog.Error("Main: loading config failed", errorAttrs(err)...)
		return errors.Log(err)
	}
	a := app.New(cfg, desktop.Driver{}, func() (gpu.Device, error) {
		dv, err := glgpu.Init()
		if err != nil {
			return nil, err
		}
		return dv, nil
	})
	if fl.config != "" && (cfg.Watch || fl.watch) {
		w, err := config.Watch(fl.config)
		if err != nil {
			return errors.Log(err)
		}
		a.Configs = w
	}
	if err := a.Init(); err != nil {
		slog.Error("Main: App initialisation failed", errorAttrs(err)...)
		return errors.Log(err)
	}
	defer a.Destroy()
	return errors.Log(a.Run())
}

// loadConfig returns the config file, or the defaults, with the
// command line flags applied on top.
func loadConfig(fl *flags) (*config.Config, error) {
	cfg := config.Defaults()
	if fl.config != "" {
		var err error
		cfg, err = config.Open(fl.config)
		if err != nil {
			return nil, err
		}
	}
	for _, path := range fl.images {
		im := config.Image{Path: path}
		im.Defaults()
		cfg.Images = append(cfg.Images, im)
	}
	if fl.ortho {
		cfg.Camera.Projection = "ortho"
	}
	return cfg, nil
}

// errorAttrs returns slog attributes describing the kind of
// failure behind err, for the startup errors users can act on.
func errorAttrs(err error) []any {
	var attrs []any
	if errors.Is(err, fs.ErrNotExist) {
		attrs = append(attrs, "cause", "file not found")
	}
	var se *widget.ShaderError
	if errors.As(err, &se) {
		attrs = append(attrs, "program", se.Program, "shader", se.Kind.String())
	}
	var de *widget.ImageDecodeError
	if errors.As(err, &de) {
		attrs = append(attrs, "image", de.Path)
	}
	var te *widget.TextureUploadError
	if errors.As(err, &te) {
		attrs = append(attrs, "texture", te.Path)
	}
	return attrs
}
