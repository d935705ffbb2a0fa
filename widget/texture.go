// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"github.com/octronic/pidash/base/errors"
	"github.com/octronic/pidash/base/iox/imagex"
	"github.com/octronic/pidash/gpu"
)

// ImageTexParams are the sampling parameters of image textures:
// clamp to edge, with trilinear minification.
var ImageTexParams = gpu.TexParams{
	WrapS: gpu.ClampToEdge,
	WrapT: gpu.ClampToEdge,
	Min:   gpu.LinearMipmapLinear,
	Mag:   gpu.Linear,
}

// ErrTextureGen is returned by [NewTexture] when the device
// could not create a texture.
var ErrTextureGen = errors.New("error creating texture")

// Texture is a 2D RGBA texture on the device.
type Texture struct {
	Width, Height int

	dev    gpu.Device
	handle gpu.Owned
}

// NewTexture uploads the given pixels to a new mipmapped texture.
// The pixels are not retained.
func NewTexture(dev gpu.Device, px *imagex.Pixels) (*Texture, error) {
	tex := dev.GenTexture()
	if tex == 0 {
		return nil, ErrTextureGen
	}
	tx := &Texture{Width: px.Width, Height: px.Height, dev: dev, handle: gpu.Own(tex, dev.DeleteTexture)}
	dev.BindTexture(tex)
	dev.TexImage2D(px.Width, px.Height, px.Pix)
	dev.GenerateMipmap()
	dev.TexParams(ImageTexParams)
	dev.BindTexture(0)
	if err := dev.CheckError("TexImage2D"); err != nil {
		tx.Release()
		return nil, err
	}
	return tx, nil
}

// Handle returns the GPU texture, or 0 once released.
func (tx *Texture) Handle() uint32 {
	return tx.handle.Handle()
}

// Bind binds the texture to the given texture unit.
func (tx *Texture) Bind(unit int) {
	tx.dev.ActiveTexture(unit)
	tx.dev.BindTexture(tx.handle.Handle())
}

// Release deletes the texture. It is safe to call more than once.
func (tx *Texture) Release() {
	tx.handle.Release()
}
