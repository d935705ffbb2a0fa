// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the dashboard:
// the window, the camera, the grid and the image widgets.
// Configuration files are TOML or YAML, selected by extension.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the main config struct.
type Config struct {

	// the window options
	Window Window `toml:"window" yaml:"window"`

	// the camera options
	Camera Camera `toml:"camera" yaml:"camera"`

	// the reference grid options
	Grid Grid `toml:"grid" yaml:"grid"`

	// the image widgets, drawn after the grid in this order
	Images []Image `toml:"images" yaml:"images"`

	// whether to reload the config file when it changes
	Watch bool `toml:"watch" yaml:"watch"`
}

type Window struct {

	// the window width in screen coordinates
	Width int `toml:"width" yaml:"width"`

	// the window height in screen coordinates
	Height int `toml:"height" yaml:"height"`

	// the window title
	Title string `toml:"title" yaml:"title"`

	// the background color
	ClearColor [3]float32 `toml:"clear_color" yaml:"clear_color"`

	// whether buffer swaps wait for the display refresh
	VSync bool `toml:"vsync" yaml:"vsync"`

	// whether the window can be resized
	Resizable bool `toml:"resizable" yaml:"resizable"`
}

type Camera struct {

	// the camera location
	Position [3]float32 `toml:"position" yaml:"position"`

	// the point the camera looks at
	Target [3]float32 `toml:"target" yaml:"target"`

	// the up direction
	Up [3]float32 `toml:"up" yaml:"up"`

	// perspective or ortho
	Projection string `toml:"projection" yaml:"projection"`

	// the vertical field of view in degrees
	FOV float32 `toml:"fov" yaml:"fov"`

	// the near clip distance
	Near float32 `toml:"near" yaml:"near"`

	// the far clip distance
	Far float32 `toml:"far" yaml:"far"`
}

type Grid struct {

	// whether the grid is drawn
	Hidden bool `toml:"hidden" yaml:"hidden"`

	// the extent of the grid along x and y
	Area [2]float32 `toml:"area" yaml:"area"`

	// the distance between major lines, at least 1
	MajorSpacing float32 `toml:"major_spacing" yaml:"major_spacing"`

	// the distance between minor lines, at least 0.1
	MinorSpacing float32 `toml:"minor_spacing" yaml:"minor_spacing"`

	// the color of major lines
	MajorColor [3]float32 `toml:"major_color" yaml:"major_color"`

	// the color of minor lines
	MinorColor [3]float32 `toml:"minor_color" yaml:"minor_color"`

	// the location of the grid origin
	Position [3]float32 `toml:"position" yaml:"position"`
}

type Image struct {

	// the image file; ~ is expanded to the home directory
	Path string `toml:"path" yaml:"path"`

	// the location of the image center
	Position [3]float32 `toml:"position" yaml:"position"`

	// the half width of the image in world units
	Scale float32 `toml:"scale" yaml:"scale"`

	// whether the image is drawn
	Hidden bool `toml:"hidden" yaml:"hidden"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	c := &Config{}
	c.Window.Defaults()
	c.Camera.Defaults()
	c.Grid.Defaults()
	return c
}

func (w *Window) Defaults() {
	w.Width = 800
	w.Height = 480
	w.Title = "PiDash"
	w.ClearColor = [3]float32{0.5, 0.5, 0.5}
	w.VSync = true
	w.Resizable = true
}

func (c *Camera) Defaults() {
	c.Position = [3]float32{0, 10, 10}
	c.Target = [3]float32{0, 0, 0}
	c.Up = [3]float32{0, 0, 1}
	c.Projection = "perspective"
	c.FOV = 45
	c.Near = 0.1
	c.Far = 1000
}

func (g *Grid) Defaults() {
	g.Area = [2]float32{300, 300}
	g.MajorSpacing = 100
	g.MinorSpacing = 10
	g.MajorColor = [3]float32{0.9, 0.9, 0.9}
	g.MinorColor = [3]float32{0.65, 0.65, 0.65}
}

// Defaults sets the defaults of an image that a config file
// does not give.
func (im *Image) Defaults() {
	if im.Scale == 0 {
		im.Scale = 1
	}
}

// Formats are the config file formats.
type Formats int32

const (
	TOML Formats = iota
	YAML
)

func (f Formats) String() string {
	if f == YAML {
		return "YAML"
	}
	return "TOML"
}

// FormatFromPath returns the format of the given config file
// from its extension.
func FormatFromPath(path string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("config: %s: unknown config file extension (want .toml, .yaml or .yml)", path)
}

// Open reads the config file at the given path on top of the
// defaults. The path may start with ~.
func Open(path string) (*Config, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	c, err := Read(b, f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Read decodes config data in the given format on top of the defaults.
func Read(b []byte, f Formats) (*Config, error) {
	c := Defaults()
	var err error
	if f == YAML {
		err = yaml.Unmarshal(b, c)
	} else {
		err = toml.Unmarshal(b, c)
	}
	if err != nil {
		return nil, err
	}
	for i := range c.Images {
		c.Images[i].Defaults()
	}
	return c, nil
}

// Write encodes the config in the given format.
func (c *Config) Write(f Formats) ([]byte, error) {
	if f == YAML {
		return yaml.Marshal(c)
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the config to the given path in the format of
// its extension.
func (c *Config) Save(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	b, err := c.Write(f)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
