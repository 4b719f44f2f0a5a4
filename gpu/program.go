// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is the capability-query interface on a compiled shader
// program: whether it declares a given vertex attribute or uniform by
// name.  The vertex array assembler and the viewport consult this
// interface instead of branching on program internals, so that an
// attribute or uniform absent from a given program is simply skipped.
type Program interface {
	HasAttribute(name string) bool
	HasUniform(name string) bool
}

// CompiledProgram is a linked GL program compiled from a vertex +
// fragment shader pair, with its active attributes and uniforms
// enumerated by name at link time.  A new GL program object is
// created on every compile, so program identity (pointer) changes on
// every successful recompilation even for byte-identical source.
type CompiledProgram struct {
	init       bool
	handle     uint32
	name       string
	attributes map[string]uint32
	uniforms   map[string]int32
}

// CompileProgram compiles and links the given vertex and fragment
// shader sources into a new program, and enumerates its active
// attribute and uniform names.  The GL context must be current.
func CompileProgram(name, vertSrc, fragSrc string) (*CompiledProgram, error) {
	vsh, err := compileShader(gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return nil, fmt.Errorf("program %s: vertex shader: %w", name, err)
	}
	fsh, err := compileShader(gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		gl.DeleteShader(vsh)
		return nil, fmt.Errorf("program %s: fragment shader: %w", name, err)
	}

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vsh)
	gl.AttachShader(handle, fsh)
	gl.LinkProgram(handle)

	gl.DetachShader(handle, vsh)
	gl.DetachShader(handle, fsh)
	gl.DeleteShader(vsh)
	gl.DeleteShader(fsh)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var lgLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &lgLength)
		lg := strings.Repeat("\x00", int(lgLength+1))
		gl.GetProgramInfoLog(handle, lgLength, nil, gl.Str(lg))
		gl.DeleteProgram(handle)
		return nil, fmt.Errorf("program %s: failed to link: %s", name, goString(lg))
	}

	pr := &CompiledProgram{
		init:   true,
		handle: handle,
		name:   name,
	}
	pr.reflect()
	return pr, nil
}

func compileShader(typ uint32, src string) (uint32, error) {
	handle := gl.CreateShader(typ)
	csources, free := gl.Strs(cString(src))
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("failed to compile: %s", goString(msg))
	}
	return handle, nil
}

// reflect enumerates the active attributes and uniforms of the linked
// program into the name lookup maps.
func (pr *CompiledProgram) reflect() {
	const bufSize = 256
	buf := [bufSize]byte{}

	var nattr int32
	gl.GetProgramiv(pr.handle, gl.ACTIVE_ATTRIBUTES, &nattr)
	pr.attributes = make(map[string]uint32, nattr)
	for i := range nattr {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(pr.handle, uint32(i), bufSize, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		loc := gl.GetAttribLocation(pr.handle, gl.Str(cString(name)))
		if loc >= 0 {
			pr.attributes[name] = uint32(loc)
		}
	}

	var nuni int32
	gl.GetProgramiv(pr.handle, gl.ACTIVE_UNIFORMS, &nuni)
	pr.uniforms = make(map[string]int32, nuni)
	for i := range nuni {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(pr.handle, uint32(i), bufSize, &length, &size, &xtype, &buf[0])
		// arrays are reported as "name[0]"
		name := strings.TrimSuffix(string(buf[:length]), "[0]")
		loc := gl.GetUniformLocation(pr.handle, gl.Str(cString(name)))
		if loc >= 0 {
			pr.uniforms[name] = loc
		}
	}
}

// Name returns the name the program was compiled under.
func (pr *CompiledProgram) Name() string {
	return pr.name
}

// Handle returns the GL handle of the linked program.
func (pr *CompiledProgram) Handle() uint32 {
	return pr.handle
}

// HasAttribute returns whether the program declares (and actively
// uses) a vertex attribute of given name.
func (pr *CompiledProgram) HasAttribute(name string) bool {
	_, has := pr.attributes[name]
	return has
}

// HasUniform returns whether the program declares (and actively uses)
// a uniform of given name.
func (pr *CompiledProgram) HasUniform(name string) bool {
	_, has := pr.uniforms[name]
	return has
}

// AttributeLocation returns the location of given active attribute.
func (pr *CompiledProgram) AttributeLocation(name string) (uint32, bool) {
	loc, has := pr.attributes[name]
	return loc, has
}

// Activate makes this the program used by subsequent draw calls.
func (pr *CompiledProgram) Activate() {
	if !pr.init {
		return
	}
	gl.UseProgram(pr.handle)
}

// SetMatrix4 writes a 4x4 matrix uniform if the program declares it,
// returning whether it was written.  Absence is not an error: shader
// variants freely omit uniforms they do not use.  The program must be
// active.
func (pr *CompiledProgram) SetMatrix4(name string, m *math32.Matrix4) bool {
	loc, has := pr.uniforms[name]
	if !has {
		return false
	}
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return true
}

// SetVector3 writes a vec3 uniform if the program declares it,
// returning whether it was written.  The program must be active.
func (pr *CompiledProgram) SetVector3(name string, v math32.Vector3) bool {
	loc, has := pr.uniforms[name]
	if !has {
		return false
	}
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
	return true
}

// SetVector4 writes a vec4 uniform if the program declares it,
// returning whether it was written.  The program must be active.
func (pr *CompiledProgram) SetVector4(name string, v math32.Vector4) bool {
	loc, has := pr.uniforms[name]
	if !has {
		return false
	}
	gl.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	return true
}

// Release deletes the GPU program object.  The program must not be
// used afterward; recompile to obtain a new one.
func (pr *CompiledProgram) Release() {
	if !pr.init {
		return
	}
	gl.DeleteProgram(pr.handle)
	pr.handle = 0
	pr.init = false
}
