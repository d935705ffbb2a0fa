// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Releaser is implemented by anything that owns GPU resources.
// Release must be safe to call any number of times.
type Releaser interface {
	Release()
}

// Owned is a GPU object handle together with the function that
// deletes it. The handle is released exactly once: after Release
// the handle is reset to 0 and further calls do nothing.
// The zero value is an unallocated handle.
type Owned struct {
	handle  uint32
	release func(uint32)
}

// Own returns an [Owned] for the given handle. A 0 handle is
// never passed to the release function.
func Own(handle uint32, release func(uint32)) Owned {
	return Owned{handle: handle, release: release}
}

// Handle returns the handle, 0 if not allocated or already released.
func (o *Owned) Handle() uint32 {
	return o.handle
}

// Valid returns whether the handle is allocated.
func (o *Owned) Valid() bool {
	return o.handle != 0
}

// Release deletes the handle if it is allocated.
func (o *Owned) Release() {
	if o.handle == 0 || o.release == nil {
		o.handle = 0
		return
	}
	o.release(o.handle)
	o.handle = 0
	o.release = nil
}
