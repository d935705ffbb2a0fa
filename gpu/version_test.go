// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("3.3.0 NVIDIA 535.54.03")
	require.NoError(t, err)
	assert.Equal(t, "3.3.0", v.String())

	v, err = ParseVersion("4.6 (Core Profile) Mesa 23.2.1")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), v.Major())
	assert.Equal(t, uint64(6), v.Minor())

	_, err = ParseVersion("")
	assert.Error(t, err)
	_, err = ParseVersion("OpenGL")
	assert.Error(t, err)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, CheckVersion("3.3.0 NVIDIA", MinVersion))
	assert.NoError(t, CheckVersion("4.1 Metal - 88", MinVersion))
	assert.Error(t, CheckVersion("3.2.0 Mesa", MinVersion))
	assert.Error(t, CheckVersion("2.1 INTEL", MinVersion))
}
