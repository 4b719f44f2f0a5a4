// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"runtime"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/require"

	"github.com/graphicslab/graphicslab/shaders"
)

func init() {
	runtime.LockOSThread()
}

// TestOffscreenTriangle renders one triangle into an offscreen target
// through the target stack and checks that pixels were written.
func TestOffscreenTriangle(t *testing.T) {
	t.Skip("Need software GPU on CI")

	require.NoError(t, glfw.Init())
	defer glfw.Terminate()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(64, 64, "test", nil, nil)
	require.NoError(t, err)
	defer win.Destroy()
	win.MakeContextCurrent()
	require.NoError(t, gl.Init())

	ts := NewTargetStack(&ScreenTarget{Width: 64, Height: 64})
	rt, err := NewRenderTarget(image.Point{X: 32, Y: 32})
	require.NoError(t, err)
	defer rt.Release()

	pr, err := CompileProgram("error", shaders.ErrorVertex, shaders.ErrorFragment)
	require.NoError(t, err)
	defer pr.Release()

	vb := NewVertexBuffer([]float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0, 0.5, 0,
	})
	defer vb.Release()
	ib := NewIndexBuffer([]uint32{0, 1, 2})
	defer ib.Release()
	va := AssembleVertexArray(pr, []NamedBuffer{{Name: "in_vert", Components: 3, Buffer: vb}}, ib)
	defer va.Release()

	ts.Push(rt)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	pr.Activate()
	var ident math32.Matrix4
	ident.SetIdentity()
	pr.SetMatrix4("mat_MVP", &ident)
	va.DrawTriangles()

	pix := make([]uint8, 4*32*32)
	gl.ReadPixels(0, 0, 32, 32, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	ts.Pop()

	var lit bool
	for i := 0; i < len(pix); i += 4 {
		if pix[i] > 0 {
			lit = true
			break
		}
	}
	require.True(t, lit, "triangle should cover some pixels")
}
