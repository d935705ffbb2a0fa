// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

// Pixels is a decoded image as tightly packed 8-bit RGBA rows.
// The caller owns Pix and calls [Pixels.Release] once it has
// been uploaded.
type Pixels struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int

	// Format is the encoding the pixels were decoded from.
	Format Formats
}

// Release drops the pixel data. It is safe to call more than once.
func (px *Pixels) Release() {
	px.Pix = nil
}

// Released returns whether [Pixels.Release] has been called.
func (px *Pixels) Released() bool {
	return px.Pix == nil
}

// ToPixels converts the image to RGBA. When flipV is set the rows
// are reversed so that the first row is the bottom of the image,
// which is the order OpenGL expects texture data in.
func ToPixels(im image.Image, flipV bool) *Pixels {
	var rgba *image.RGBA
	if flipV {
		rgba = transform.FlipV(im)
	} else {
		rgba = clone.AsRGBA(im)
	}
	sz := rgba.Rect.Size()
	pix := rgba.Pix
	if rgba.Stride != 4*sz.X {
		pix = make([]byte, 0, 4*sz.X*sz.Y)
		for y := range sz.Y {
			off := y * rgba.Stride
			pix = append(pix, rgba.Pix[off:off+4*sz.X]...)
		}
	}
	return &Pixels{Pix: pix, Width: sz.X, Height: sz.Y, Channels: 4}
}

// Load opens and decodes the given image file into RGBA pixels.
// An image with a zero dimension is an error.
func Load(filename string, flipV bool) (*Pixels, error) {
	im, f, err := Open(filename)
	if err != nil {
		return nil, err
	}
	sz := im.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return nil, fmt.Errorf("imagex: %s has no pixels (%dx%d)", filename, sz.X, sz.Y)
	}
	px := ToPixels(im, flipV)
	px.Format = f
	return px, nil
}
