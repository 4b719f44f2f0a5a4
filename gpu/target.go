// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// RenderTarget is an offscreen render destination: a color texture
// and a depth renderbuffer attached to a framebuffer object.  The
// color texture handle is exposed for display by the UI layer; it is
// re-issued on every resize, so the consumer must re-register it.
type RenderTarget struct {
	init  bool
	size  image.Point
	fbo   uint32
	tex   uint32 // color texture
	depth uint32 // depth renderbuffer
}

// NewRenderTarget returns a new render target of given size
// (both dimensions must be > 0).  The GL context must be current.
func NewRenderTarget(size image.Point) (*RenderTarget, error) {
	rt := &RenderTarget{}
	if err := rt.alloc(size); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTarget) alloc(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("gpu.RenderTarget: invalid size %v", size)
	}
	szx := int32(size.X)
	szy := int32(size.Y)

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)

	gl.GenTextures(1, &rt.tex)
	gl.BindTexture(gl.TEXTURE_2D, rt.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, szx, szy, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex, 0)

	gl.GenRenderbuffers(1, &rt.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT32F, szx, szy)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		rt.release()
		return fmt.Errorf("gpu.RenderTarget: framebuffer not complete: 0x%x", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	rt.size = size
	rt.init = true
	return nil
}

// SetSize reallocates the target at the new size, releasing the prior
// GPU resources.  Does nothing if already that size.  The texture
// handle changes, so any registered consumer must re-register it.
func (rt *RenderTarget) SetSize(size image.Point) error {
	if rt.size == size {
		return nil
	}
	rt.release()
	return rt.alloc(size)
}

// Size returns the current size.
func (rt *RenderTarget) Size() image.Point {
	return rt.size
}

// Aspect returns the width / height aspect ratio.
func (rt *RenderTarget) Aspect() float32 {
	return float32(rt.size.X) / float32(rt.size.Y)
}

// Activate binds the framebuffer as the current render destination
// and sets the viewport to cover it.
func (rt *RenderTarget) Activate() {
	if !rt.init {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.Viewport(0, 0, int32(rt.size.X), int32(rt.size.Y))
}

// Texture returns the GL handle of the color texture holding the
// rendered output.  Only valid until the next SetSize or Release.
func (rt *RenderTarget) Texture() uint32 {
	return rt.tex
}

// Handle returns the GL framebuffer handle, for blitting the
// rendered result to another framebuffer.
func (rt *RenderTarget) Handle() uint32 {
	return rt.fbo
}

// Release frees the GPU resources associated with this target.
func (rt *RenderTarget) Release() {
	rt.release()
}

func (rt *RenderTarget) release() {
	if !rt.init {
		return
	}
	gl.DeleteRenderbuffers(1, &rt.depth)
	gl.DeleteTextures(1, &rt.tex)
	gl.DeleteFramebuffers(1, &rt.fbo)
	rt.depth = 0
	rt.tex = 0
	rt.fbo = 0
	rt.init = false
}
