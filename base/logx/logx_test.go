// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	prev := UserLevel
	defer func() { UserLevel = prev }()
	UserLevel = slog.LevelInfo

	var buf bytes.Buffer
	h := NewHandler(&buf)
	h.NoTime = true
	lg := slog.New(h)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.Info("Grid: Recalculate", "lines", 62)
	assert.Equal(t, "INFO Grid: Recalculate lines=62\n", buf.String())

	buf.Reset()
	lg.With("widget", "grid").WithGroup("draw").Warn("skipped", "count", 1)
	assert.Equal(t, "WARN skipped widget=grid draw.count=1\n", buf.String())
}

func TestDefaultLogger(t *testing.T) {
	prev := UserLevel
	defer func() { UserLevel = prev }()
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}
