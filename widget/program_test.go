// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramCompile(t *testing.T) {
	dv := gputest.NewDevice()
	pr := NewProgram(dv, "test")
	require.NoError(t, pr.Compile(DefaultVertexShader, DefaultFragmentShader, "model", "view", "projection"))
	assert.True(t, pr.Valid())
	assert.Equal(t, 1, dv.Live(gputest.KindProgram))
	assert.Equal(t, 0, dv.Live(gputest.KindShader))

	loc, err := pr.Uniform("view")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, loc, int32(0))
	_, err = pr.Uniform("nope")
	assert.Error(t, err)

	pr.Use()
	m := mgl32.Translate3D(1, 2, 3)
	require.NoError(t, pr.SetMat4("model", m))
	v, ok := dv.UniformValue(pr.Handle(), "model")
	assert.True(t, ok)
	assert.Equal(t, [16]float32(m), v)

	pr.Release()
	assert.False(t, pr.Valid())
	assert.Equal(t, 0, dv.LiveTotal())
	pr.Release()
}

func TestProgramErrors(t *testing.T) {
	tests := []struct {
		name     string
		vert     string
		frag     string
		uniforms []string
		kind     ShaderErrors
	}{
		{"vertex", "void main() {}", DefaultFragmentShader, nil, VertexCompile},
		{"fragment", DefaultVertexShader, "#version 330 core\nvoid main() {", nil, FragmentCompile},
		{"link", DefaultVertexShader, "#version 330 core\nout vec4 FragColor;\n", nil, Link},
		{"uniform", DefaultVertexShader, DefaultFragmentShader, []string{"model", "ImgTexture"}, UniformNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dv := gputest.NewDevice()
			pr := NewProgram(dv, "test")
			err := pr.Compile(tt.vert, tt.frag, tt.uniforms...)
			var se *ShaderError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.Equal(t, "test", se.Program)
			assert.False(t, pr.Valid())
			assert.Equal(t, 0, dv.LiveTotal(), "no objects left after a failed compile")
			if tt.kind == UniformNotFound {
				assert.Equal(t, "ImgTexture", se.Uniform)
			} else {
				assert.NotEmpty(t, se.Log)
			}
		})
	}
}
