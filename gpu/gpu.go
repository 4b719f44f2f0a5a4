// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu implements the OpenGL resource layer for the mesh
// inspection viewport: offscreen render targets and the target stack,
// compiled shader programs with name-based reflection, vertex array
// assembly, and hot-reloadable shader pairs.
//
// Everything in this package issues OpenGL commands and therefore must
// be called from the single render thread that owns the GL context.
// The one exception is the Shader file watcher, which only reads files
// and never touches the GPU.
package gpu

import "github.com/go-gl/gl/v4.1-core/gl"

// Target is a render destination that can be made the active GL
// framebuffer. RenderTarget implements it for offscreen rendering,
// ScreenTarget for the default window framebuffer.
type Target interface {
	// Activate makes this the current GL render destination,
	// binding its framebuffer and setting the viewport rect.
	Activate()
}

// ScreenTarget is the default window framebuffer, used as the base of
// a TargetStack.  Size must be kept in sync with the window size.
type ScreenTarget struct {
	Width, Height int
}

func (st *ScreenTarget) Activate() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(st.Width), int32(st.Height))
}

// cString returns a null-terminated version of given string,
// as required by the gl.Str* functions.
func cString(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\x00' {
		return s
	}
	return s + "\x00"
}

// goString returns a Go string with any null terminator removed.
func goString(s string) string {
	for i := range len(s) {
		if s[i] == '\x00' {
			return s[:i]
		}
	}
	return s
}
