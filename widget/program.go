// Copyright (c) 2026, The PiDash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package widget

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/octronic/pidash/gpu"
)

// Program is a linked vertex and fragment shader pair
// together with the locations of its required uniforms.
// A Program is either fully built, with every required uniform
// resolved, or holds no GPU program at all.
type Program struct {
	// Name is used in errors and logging.
	Name string

	dev      gpu.Device
	handle   gpu.Owned
	uniforms map[string]int32
}

// NewProgram returns a new unbuilt program.
func NewProgram(dev gpu.Device, name string) *Program {
	return &Program{Name: name, dev: dev}
}

// Compile compiles the two stages, links them and resolves the
// given uniforms. The intermediate shader objects are deleted
// whether or not linking succeeds, and on any error the program
// object is deleted too, so a failed Compile holds nothing.
func (pr *Program) Compile(vertex, fragment string, uniforms ...string) error {
	pr.Release()
	vs, err := pr.compileStage(gpu.VertexShader, vertex)
	if err != nil {
		return err
	}
	defer pr.dev.DeleteShader(vs)
	fs, err := pr.compileStage(gpu.FragmentShader, fragment)
	if err != nil {
		return err
	}
	defer pr.dev.DeleteShader(fs)

	prog := pr.dev.CreateProgram()
	pr.dev.AttachShader(prog, vs)
	pr.dev.AttachShader(prog, fs)
	ok, log := pr.dev.LinkProgram(prog)
	pr.dev.DetachShader(prog, vs)
	pr.dev.DetachShader(prog, fs)
	if !ok {
		pr.dev.DeleteProgram(prog)
		return &ShaderError{Kind: Link, Program: pr.Name, Log: log}
	}

	locs := make(map[string]int32, len(uniforms))
	for _, nm := range uniforms {
		loc := pr.dev.UniformLocation(prog, nm)
		if loc < 0 {
			pr.dev.DeleteProgram(prog)
			return &ShaderError{Kind: UniformNotFound, Program: pr.Name, Uniform: nm}
		}
		locs[nm] = loc
	}
	pr.handle = gpu.Own(prog, pr.dev.DeleteProgram)
	pr.uniforms = locs
	slog.Debug("Program: Compile", "program", pr.Name, "handle", prog, "uniforms", locs)
	return nil
}

func (pr *Program) compileStage(stage gpu.ShaderStages, src string) (uint32, error) {
	sh := pr.dev.CreateShader(stage)
	ok, log := pr.dev.CompileShader(sh, src)
	if ok {
		return sh, nil
	}
	pr.dev.DeleteShader(sh)
	kind := VertexCompile
	if stage == gpu.FragmentShader {
		kind = FragmentCompile
	}
	return 0, &ShaderError{Kind: kind, Program: pr.Name, Log: log}
}

// Valid returns whether the program is built.
func (pr *Program) Valid() bool {
	return pr.handle.Valid()
}

// Handle returns the GPU program, or 0 if not built.
func (pr *Program) Handle() uint32 {
	return pr.handle.Handle()
}

// Uniform returns the location of a uniform resolved by Compile.
func (pr *Program) Uniform(name string) (int32, error) {
	loc, ok := pr.uniforms[name]
	if !ok || loc < 0 {
		return -1, &ShaderError{Kind: UniformNotFound, Program: pr.Name, Uniform: name}
	}
	return loc, nil
}

// Use makes this the current program.
func (pr *Program) Use() {
	pr.dev.UseProgram(pr.handle.Handle())
}

// SetMat4 sets a matrix uniform of the current program.
func (pr *Program) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := pr.Uniform(name)
	if err != nil {
		return err
	}
	arr := [16]float32(m)
	pr.dev.UniformMatrix4(loc, &arr)
	return nil
}

// SetInt sets an integer or sampler uniform of the current program.
func (pr *Program) SetInt(name string, v int32) error {
	loc, err := pr.Uniform(name)
	if err != nil {
		return err
	}
	pr.dev.UniformInt(loc, v)
	return nil
}

// SetMVP uploads the model, view and projection matrices,
// stopping at the first uniform that is not resolved.
func (pr *Program) SetMVP(model, view, projection mgl32.Mat4) error {
	if err := pr.SetMat4("model", model); err != nil {
		return err
	}
	if err := pr.SetMat4("view", view); err != nil {
		return err
	}
	return pr.SetMat4("projection", projection)
}

// Release deletes the program. It is safe to call more than once.
func (pr *Program) Release() {
	pr.handle.Release()
	pr.uniforms = nil
}
