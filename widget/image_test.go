// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/base/iox/imagex"
	"github.com/octronic/pidash/gpu"
	"github.com/octronic/pidash/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savePNG(t *testing.T, w, h int) string {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			im.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	fn := filepath.Join(t.TempDir(), "gauge.png")
	require.NoError(t, imagex.Save(im, fn))
	return fn
}

func TestImageInit(t *testing.T) {
	dv := gputest.NewDevice()
	im := NewImage(dv, savePNG(t, 4, 2))
	require.NoError(t, im.Init())
	assert.Equal(t, Ready, im.State())
	assert.Equal(t, KindImage, im.Kind())

	tx := im.Texture()
	require.NotNil(t, tx)
	assert.Equal(t, 4, tx.Width)
	assert.Equal(t, 2, tx.Height)
	up := dv.Textures[tx.Handle()]
	require.NotNil(t, up)
	assert.Len(t, up.Pix, 4*2*4)
	assert.True(t, up.Mipmapped)
	assert.Equal(t, ImageTexParams, up.Params)

	assert.Equal(t, Quad, im.Quad().Vertices())
	assert.Equal(t, ImageVertex{}.Attribs(), dv.Attribs[im.Quad().vao.Handle()])
	assert.Len(t, dv.Buffers[im.Quad().vbo.Handle()], 6*16)

	require.NoError(t, im.Draw(mgl32.Ident4(), mgl32.Ident4()))
	require.Len(t, dv.Draws, 1)
	assert.Equal(t, gpu.Triangles, dv.Draws[0].Mode)
	assert.Equal(t, 6, dv.Draws[0].Count)
	assert.Equal(t, tx.Handle(), dv.Draws[0].Texture)
	v, ok := dv.UniformValue(im.Program.Handle(), "ImgTexture")
	assert.True(t, ok)
	assert.Equal(t, int32(0), v)

	im.Destroy()
	assert.Equal(t, 0, dv.LiveTotal())
	assert.Equal(t, uint32(0), tx.Handle())
}

func TestImageMissingFile(t *testing.T) {
	dv := gputest.NewDevice()
	im := NewImage(dv, filepath.Join(t.TempDir(), "missing.png"))
	err := im.Init()
	var de *ImageDecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, Failed, im.State())
	assert.Equal(t, 0, dv.Count("GenTexture"))
	assert.Equal(t, 0, dv.Live(gputest.KindTexture))
	assert.Nil(t, im.Texture())

	im.Destroy()
	assert.Equal(t, 0, dv.LiveTotal())
	assert.NotPanics(t, im.Destroy)
}

func TestImageEmptyPath(t *testing.T) {
	im := NewImage(gputest.NewDevice(), "")
	var de *ImageDecodeError
	require.ErrorAs(t, im.Init(), &de)
	im.Destroy()
}

func TestImageZeroSize(t *testing.T) {
	dv := gputest.NewDevice()
	im := NewImage(dv, "gauge.png")
	im.Decoder = func(path string) (*imagex.Pixels, error) {
		return &imagex.Pixels{Width: 0, Height: 10, Channels: 4}, nil
	}
	var de *ImageDecodeError
	require.ErrorAs(t, im.Init(), &de)
	assert.Equal(t, "gauge.png", de.Path)
	assert.Equal(t, 0, dv.Live(gputest.KindTexture))
	im.Destroy()
}

func TestImageNilDecode(t *testing.T) {
	dv := gputest.NewDevice()
	im := NewImage(dv, "gauge.png")
	im.Decoder = func(path string) (*imagex.Pixels, error) {
		return nil, nil
	}
	var err error
	require.NotPanics(t, func() { err = im.Init() })
	var de *ImageDecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, errNoPixels)
	assert.Equal(t, Failed, im.State())
	assert.Equal(t, 0, dv.Count("GenTexture"))
	im.Destroy()
	assert.Equal(t, 0, dv.LiveTotal())
}

func TestImageTextureGenFailure(t *testing.T) {
	dv := gputest.NewDevice()
	dv.FailGen[gputest.KindTexture] = true
	im := NewImage(dv, "gauge.png")
	im.Decoder = func(path string) (*imagex.Pixels, error) {
		return &imagex.Pixels{Pix: make([]byte, 16), Width: 2, Height: 2, Channels: 4}, nil
	}
	err := im.Init()
	var te *TextureUploadError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, ErrTextureGen)
	var be *BufferError
	assert.NotErrorAs(t, err, &be)
	assert.Equal(t, Failed, im.State())
	im.Destroy()
	assert.Equal(t, 0, dv.LiveTotal())
}

func TestImageTextureUploadError(t *testing.T) {
	dv := gputest.NewDevice()
	im := NewImage(dv, "gauge.png")
	px := &imagex.Pixels{Pix: make([]byte, 16), Width: 2, Height: 2, Channels: 4}
	im.Decoder = func(path string) (*imagex.Pixels, error) {
		dv.Errors = []uint32{gpu.OutOfMemory}
		return px, nil
	}
	var te *TextureUploadError
	require.ErrorAs(t, im.Init(), &te)
	assert.Equal(t, Failed, im.State())
	assert.Equal(t, 0, dv.Live(gputest.KindTexture))
	assert.True(t, px.Released(), "pixels are released after upload")
	im.Destroy()
	assert.Equal(t, 0, dv.LiveTotal())
}

func TestImageTransform(t *testing.T) {
	im := NewImage(gputest.NewDevice(), "a.png")
	assert.Equal(t, "a.png", im.Path())
	im.SetPath("b.png")
	assert.Equal(t, "b.png", im.Path())

	im.SetScale(50)
	im.SetPosition(mgl32.Vec3{10, 20, 0})
	assert.Equal(t, mgl32.Vec3{10, 20, 0}, im.Position())
	assert.Equal(t, float32(50), im.Scale())
	p := im.Model().Mul4x1(mgl32.Vec4{1, 1, 0, 1})
	assert.Equal(t, mgl32.Vec4{60, 70, 0, 1}, p)
}
