// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinVersion is the minimum OpenGL core version required.
const MinVersion = "3.3"

// ParseVersion parses the leading version number of a driver version
// string such as "3.3.0 NVIDIA 535.54.03" or "4.6 (Core Profile) Mesa 23.2.1".
func ParseVersion(s string) (*semver.Version, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("gpu: empty version string")
	}
	v, err := semver.NewVersion(fields[0])
	if err != nil {
		return nil, fmt.Errorf("gpu: invalid version string %q: %w", s, err)
	}
	return v, nil
}

// CheckVersion returns an error if the given driver version string
// is older than min (for example [MinVersion]).
func CheckVersion(s, min string) error {
	v, err := ParseVersion(s)
	if err != nil {
		return err
	}
	c, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("gpu: OpenGL %s required, have %s", min, v)
	}
	return nil
}
