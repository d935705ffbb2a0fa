// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"image"

	"github.com/octronic/pidash/config"
)

func windowSize(wc config.Window) image.Point {
	sz := image.Pt(wc.Width, wc.Height)
	if sz.X <= 0 || sz.Y <= 0 {
		var def config.Window
		def.Defaults()
		sz = image.Pt(def.Width, def.Height)
	}
	return sz
}
