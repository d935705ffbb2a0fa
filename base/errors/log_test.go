// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type kindError struct{ kind string }

func (e *kindError) Error() string { return e.kind }

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
}

func TestIsAs(t *testing.T) {
	base := New("boom")
	wrapped := fmt.Errorf("frame: %w", base)
	assert.True(t, Is(wrapped, base))
	assert.False(t, Is(wrapped, New("boom")))

	var ke *kindError
	assert.True(t, As(fmt.Errorf("draw: %w", &kindError{"link"}), &ke))
	assert.Equal(t, "link", ke.kind)
	assert.False(t, As(wrapped, &ke))
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.True(t, strings.Contains(info, "log_test.go"), info)
}
