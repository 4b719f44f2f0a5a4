// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArray is a GL vertex array object binding a program to the
// subset of named buffers whose attribute names the program actually
// declares, plus an index buffer.  Two vertex arrays may reference
// the same buffers against different programs (e.g. the shaded mesh
// program and the wireframe overlay program), each independently
// filtered.
//
// A vertex array must be re-assembled whenever the mesh buffers are
// replaced or the program identity changes (including a swap to the
// fallback program).
type VertexArray struct {
	init   bool
	handle uint32
	count  int32 // number of indices drawn
}

// AssembleVertexArray builds a VertexArray for the given program from
// the named buffers, binding only the (buffer, attribute) pairs whose
// name the program's reflection reports as present.  An attribute
// declared by the program but absent from the supplied buffers is not
// bound, leaving the shader-side default.  The index buffer provides
// the element indices for drawing.
func AssembleVertexArray(pr *CompiledProgram, bufs []NamedBuffer, index *Buffer) *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.handle)
	gl.BindVertexArray(va.handle)

	bound := bindingPlan(pr.HasAttribute, bufs)
	for _, nb := range bound {
		loc, _ := pr.AttributeLocation(nb.Name)
		nb.Buffer.Bind()
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, nb.Components, gl.FLOAT, false, 0, 0)
	}
	if index != nil {
		index.Bind()
		va.count = int32(index.Len())
	}
	gl.BindVertexArray(0)
	va.init = true
	slog.Debug("gpu: vertex array assembled", "program", pr.Name(), "buffers", len(bound))
	return va
}

// bindingPlan returns the subset of buffers whose attribute name the
// given declaration predicate reports as present, in input order.
func bindingPlan(declared func(string) bool, bufs []NamedBuffer) []NamedBuffer {
	var bound []NamedBuffer
	for _, nb := range bufs {
		if declared(nb.Name) {
			bound = append(bound, nb)
		}
	}
	return bound
}

// DrawTriangles draws the vertex array as indexed triangles.
// The program it was assembled for must be active.
func (va *VertexArray) DrawTriangles() {
	if !va.init || va.count == 0 {
		return
	}
	gl.BindVertexArray(va.handle)
	gl.DrawElementsWithOffset(gl.TRIANGLES, va.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// DrawLines draws the vertex array as indexed lines, using an index
// buffer holding (a, b) endpoint pairs.
func (va *VertexArray) DrawLines() {
	if !va.init || va.count == 0 {
		return
	}
	gl.BindVertexArray(va.handle)
	gl.DrawElementsWithOffset(gl.LINES, va.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Release deletes the vertex array object.  The underlying buffers
// are owned by the caller and are not released.
func (va *VertexArray) Release() {
	if !va.init {
		return
	}
	gl.DeleteVertexArrays(1, &va.handle)
	va.handle = 0
	va.init = false
}
