// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/base/iox/imagex"
	"github.com/octronic/pidash/gpu"
)

// ImageVertexShader places the unit quad with the model, view
// and projection matrices and passes the uv through.
const ImageVertexShader = `#version 330 core
layout (location = 0) in vec2 in_position;
layout (location = 1) in vec2 in_uv;

out vec2 out_texCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
	gl_Position = projection * view * model * vec4(in_position.x, in_position.y, 0.0, 1.0);
	out_texCoord = in_uv;
}
`

// ImageFragmentShader samples the image texture.
const ImageFragmentShader = `#version 330 core
in vec2 out_texCoord;
out vec4 FragColor;

uniform sampler2D ImgTexture;

void main() {
	FragColor = texture(ImgTexture, out_texCoord);
}
`

// Quad is the fixed geometry of every [Image]: the square
// [-1,1] x [-1,1] as two triangles.
var Quad = []ImageVertex{
	{Position: mgl32.Vec2{-1, 1}, UV: mgl32.Vec2{0, 1}},
	{Position: mgl32.Vec2{1, -1}, UV: mgl32.Vec2{1, 0}},
	{Position: mgl32.Vec2{-1, -1}, UV: mgl32.Vec2{0, 0}},

	{Position: mgl32.Vec2{1, 1}, UV: mgl32.Vec2{1, 1}},
	{Position: mgl32.Vec2{1, -1}, UV: mgl32.Vec2{1, 0}},
	{Position: mgl32.Vec2{-1, 1}, UV: mgl32.Vec2{0, 1}},
}

// Decoder loads an image file into RGBA pixels.
type Decoder func(path string) (*imagex.Pixels, error)

// DefaultDecoder decodes with [imagex.Load], flipping rows so the
// first row is the bottom of the image.
func DefaultDecoder(path string) (*imagex.Pixels, error) {
	return imagex.Load(path, true)
}

// Image is a widget drawing an image file on a textured quad.
type Image struct {
	Base

	// Decoder loads the image; [DefaultDecoder] if nil.
	Decoder Decoder

	path    string
	scale   float32
	pos     mgl32.Vec3
	texture *Texture
	quad    *Buffer[ImageVertex]
}

// NewImage returns a new Uninitialized image widget for the given file.
func NewImage(dev gpu.Device, path string) *Image {
	im := &Image{Base: NewBase(dev, KindImage, "Image"), path: path, scale: 1}
	im.quad = NewBuffer[ImageVertex](dev, im.name+" quad", gpu.Triangles)
	return im
}

// Path returns the image file path.
func (im *Image) Path() string { return im.path }

// SetPath sets the image file path. It takes effect at Init.
func (im *Image) SetPath(path string) { im.path = path }

// Texture returns the texture, or nil before Init.
func (im *Image) Texture() *Texture { return im.texture }

// Quad returns the quad buffer.
func (im *Image) Quad() *Buffer[ImageVertex] { return im.quad }

// Scale returns the uniform scale of the quad.
func (im *Image) Scale() float32 { return im.scale }

// SetScale sets a uniform scale of the quad, which spans
// 2 * scale world units.
func (im *Image) SetScale(s float32) {
	im.scale = s
	im.updateModel()
}

// SetPosition moves the quad center to pos, keeping the scale.
func (im *Image) SetPosition(pos mgl32.Vec3) {
	im.pos = pos
	im.updateModel()
}

// Position returns the quad center.
func (im *Image) Position() mgl32.Vec3 { return im.pos }

func (im *Image) updateModel() {
	im.model = mgl32.Translate3D(im.pos.X(), im.pos.Y(), im.pos.Z()).Mul4(mgl32.Scale3D(im.scale, im.scale, im.scale))
}

// Init compiles the image program, decodes the image and uploads
// it to a texture, then allocates and submits the quad.
func (im *Image) Init() error {
	if err := im.begin(); err != nil {
		return err
	}
	slog.Debug("Image: Init", "path", im.path)
	im.Program = NewProgram(im.dev, im.name)
	if err := im.Program.Compile(ImageVertexShader, ImageFragmentShader, "model", "view", "projection", "ImgTexture"); err != nil {
		return im.fail(err)
	}
	im.state = ShaderReady

	if err := im.loadTexture(); err != nil {
		return im.fail(err)
	}

	if err := im.quad.Alloc(); err != nil {
		return im.fail(err)
	}
	im.state = BuffersReady
	im.quad.Clear()
	im.quad.AppendMany(Quad...)
	if err := im.quad.Submit(); err != nil {
		return im.fail(err)
	}
	im.state = Ready
	return nil
}

func (im *Image) loadTexture() error {
	dec := im.Decoder
	if dec == nil {
		dec = DefaultDecoder
	}
	if im.path == "" {
		return &ImageDecodeError{Path: im.path, Err: errEmptyPath}
	}
	px, err := dec(im.path)
	if err != nil {
		return &ImageDecodeError{Path: im.path, Err: err}
	}
	if px == nil {
		return &ImageDecodeError{Path: im.path, Err: errNoPixels}
	}
	defer px.Release()
	if px.Width <= 0 || px.Height <= 0 || len(px.Pix) < px.Width*px.Height*4 {
		return &ImageDecodeError{Path: im.path, Err: errNoPixels}
	}
	tx, err := NewTexture(im.dev, px)
	if err != nil {
		return &TextureUploadError{Path: im.path, Err: err}
	}
	im.texture = tx
	slog.Debug("Image: texture", "path", im.path, "width", px.Width, "height", px.Height, "texture", tx.Handle())
	return nil
}

func (im *Image) Update() {}

// Draw binds the program and the texture on unit 0 and draws the quad.
func (im *Image) Draw(view, projection mgl32.Mat4) error {
	if err := im.drawable(); err != nil {
		return err
	}
	im.Program.Use()
	if err := im.Program.SetMVP(im.model, view, projection); err != nil {
		return err
	}
	if err := im.Program.SetInt("ImgTexture", 0); err != nil {
		return err
	}
	im.texture.Bind(0)
	im.quad.Draw()
	return im.dev.CheckError(im.name + " Draw")
}

func (im *Image) Destroy() {
	if im.state == Destroyed {
		return
	}
	slog.Debug("Image: Destroy", "path", im.path, "state", im.state)
	if im.texture != nil {
		im.texture.Release()
		im.texture = nil
	}
	im.quad.Release()
	im.release()
}
