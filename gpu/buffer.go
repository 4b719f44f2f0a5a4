// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/go-gl/gl/v4.1-core/gl"

// Buffer wraps a GL buffer object holding either float32 vertex data
// (ARRAY_BUFFER) or uint32 index data (ELEMENT_ARRAY_BUFFER).
// Buffers are uploaded once at creation; a replaced mesh gets fresh
// buffers and releases the old ones.
type Buffer struct {
	init   bool
	handle uint32
	target uint32
	ln     int // number of elements (floats or indices)
}

// NewVertexBuffer creates an ARRAY_BUFFER and uploads the given
// float32 data to the GPU.
func NewVertexBuffer(data []float32) *Buffer {
	b := &Buffer{target: gl.ARRAY_BUFFER, ln: len(data)}
	gl.GenBuffers(1, &b.handle)
	gl.BindBuffer(b.target, b.handle)
	gl.BufferData(b.target, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	b.init = true
	return b
}

// NewIndexBuffer creates an ELEMENT_ARRAY_BUFFER and uploads the
// given uint32 index data to the GPU.
func NewIndexBuffer(data []uint32) *Buffer {
	b := &Buffer{target: gl.ELEMENT_ARRAY_BUFFER, ln: len(data)}
	gl.GenBuffers(1, &b.handle)
	gl.BindBuffer(b.target, b.handle)
	gl.BufferData(b.target, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	b.init = true
	return b
}

// Bind binds the buffer to its target.
func (b *Buffer) Bind() {
	gl.BindBuffer(b.target, b.handle)
}

// Len returns the number of elements in the buffer.
func (b *Buffer) Len() int {
	return b.ln
}

// Release deletes the GPU buffer object.
func (b *Buffer) Release() {
	if !b.init {
		return
	}
	gl.DeleteBuffers(1, &b.handle)
	b.handle = 0
	b.init = false
}

// NamedBuffer associates a vertex buffer with the shader attribute
// name it feeds ("in_vert", "in_norm") and the number of float32
// components per vertex.
type NamedBuffer struct {
	Name       string
	Components int32
	Buffer     *Buffer
}
