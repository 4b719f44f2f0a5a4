// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewport composes the offscreen render target, camera,
// mesh pipeline, and shader programs into a single mesh inspection
// view.  All methods must run on the render thread except where
// noted; the mesh loader does its parsing off-thread and the viewport
// picks results up at the start of each frame.
package viewport

import (
	"image"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/graphicslab/graphicslab/camera"
	"github.com/graphicslab/graphicslab/gpu"
	"github.com/graphicslab/graphicslab/mesh"
	"github.com/graphicslab/graphicslab/shaders"
)

// Viewport renders one mesh into an offscreen texture.  Construct
// with NewViewport; the zero value is not usable.
type Viewport struct {
	// Wireframe toggles the edge overlay drawn on top of the shaded
	// mesh.
	Wireframe bool

	// BaseColor is the mesh fill color handed to shaders that
	// declare a base_color uniform.
	BaseColor math32.Vector3

	// WireColor is the edge overlay color.
	WireColor math32.Vector3

	// ClearColor is the background, RGBA.
	ClearColor math32.Vector4

	stack  *gpu.TargetStack
	cam    *camera.Camera
	loader *mesh.Loader

	target *gpu.RenderTarget

	meshShader *gpu.Shader
	wireProg   *gpu.CompiledProgram

	vertBuf *gpu.Buffer
	normBuf *gpu.Buffer
	triIdx  *gpu.Buffer
	wireIdx *gpu.Buffer
	meshVA  *gpu.VertexArray
	wireVA  *gpu.VertexArray

	model math32.Matrix4
}

// NewViewport builds a viewport of the given initial size.  vertPath
// and fragPath name the on-disk mesh shader sources, which are watched
// for changes and hot reloaded.  The wire overlay program is built
// from embedded sources and is fixed for the viewport's lifetime.
func NewViewport(stack *gpu.TargetStack, cam *camera.Camera, loader *mesh.Loader, size image.Point, vertPath, fragPath string) (*Viewport, error) {
	target, err := gpu.NewRenderTarget(size)
	if err != nil {
		return nil, err
	}
	meshShader, err := gpu.NewShader("mesh", vertPath, fragPath)
	if err != nil {
		target.Release()
		return nil, err
	}
	wireProg, err := gpu.CompileProgram("wireframe", shaders.WireframeVertex, shaders.WireframeFragment)
	if err != nil {
		meshShader.Release()
		target.Release()
		return nil, err
	}
	vp := &Viewport{
		Wireframe:  true,
		BaseColor:  math32.Vec3(0.8, 0.8, 0.8),
		WireColor:  math32.Vec3(0.1, 0.1, 0.1),
		ClearColor: math32.Vec4(0, 0, 0, 1),
		stack:      stack,
		cam:        cam,
		loader:     loader,
		target:     target,
		meshShader: meshShader,
		wireProg:   wireProg,
	}
	vp.model.SetIdentity()
	cam.SetAspect(target.Aspect())
	return vp, nil
}

// SetModelMatrix replaces the model transform applied to the mesh.
func (vp *Viewport) SetModelMatrix(m *math32.Matrix4) {
	vp.model.CopyFrom(m)
}

// SetMesh installs a pre-built buffer, bypassing the file pipeline.
// The upload happens at the start of the next Render call.
func (vp *Viewport) SetMesh(mb *mesh.MeshBuffer) {
	vp.loader.SetBuffer(mb)
}

// Texture returns the color texture holding the last rendered frame,
// for compositing into a UI.
func (vp *Viewport) Texture() uint32 {
	return vp.target.Texture()
}

// Target returns the underlying render target.
func (vp *Viewport) Target() *gpu.RenderTarget {
	return vp.target
}

// Resize changes the offscreen target size and the camera aspect.
func (vp *Viewport) Resize(size image.Point) error {
	if err := vp.target.SetSize(size); err != nil {
		return err
	}
	vp.cam.SetAspect(vp.target.Aspect())
	return nil
}

// Render draws one frame into the offscreen target.  elapsed is the
// time since program start and dt the previous frame's duration, both
// in seconds; they are currently unused by the built-in shaders but
// part of the frame contract.
func (vp *Viewport) Render(elapsed, dt float32) {
	vp.upkeep()

	vp.stack.Push(vp.target)
	defer vp.stack.Pop()

	gl.ClearColor(vp.ClearColor.X, vp.ClearColor.Y, vp.ClearColor.Z, vp.ClearColor.W)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)

	if vp.meshVA == nil {
		return
	}

	pr := vp.meshShader.Program()
	pr.Activate()
	vp.writeUniforms(pr)
	vp.meshVA.DrawTriangles()

	if vp.Wireframe && vp.wireVA != nil {
		vp.wireProg.Activate()
		vp.writeUniforms(vp.wireProg)
		vp.wireVA.DrawLines()
	}
}

// upkeep applies pending cross-thread state at a frame boundary:
// freshly loaded meshes are uploaded and changed shader sources are
// recompiled, with vertex arrays reassembled against the new program.
func (vp *Viewport) upkeep() {
	if vp.loader.IsLoaded() {
		vp.uploadMesh(vp.loader.Buffer())
	}
	if vp.meshShader.Reload() {
		vp.assemble()
	}
}

// uploadMesh replaces the GPU-side buffers with mb's data and
// reassembles both vertex arrays.
func (vp *Viewport) uploadMesh(mb *mesh.MeshBuffer) {
	if mb == nil {
		return
	}
	vp.releaseMesh()
	vp.vertBuf = gpu.NewVertexBuffer(mb.Positions)
	vp.normBuf = gpu.NewVertexBuffer(mb.Normals)
	vp.triIdx = gpu.NewIndexBuffer(mb.Indices)
	vp.wireIdx = gpu.NewIndexBuffer(mb.WireEdges)
	vp.assemble()
	slog.Info("viewport: mesh uploaded", "vertices", mb.NumVertices(), "triangles", mb.NumTriangles(), "wireEdges", mb.NumWireEdges())
}

// assemble rebuilds both vertex arrays against the current programs.
// Attributes a program does not declare are skipped.
func (vp *Viewport) assemble() {
	if vp.vertBuf == nil {
		return
	}
	bufs := []gpu.NamedBuffer{
		{Name: "in_vert", Components: 3, Buffer: vp.vertBuf},
		{Name: "in_norm", Components: 3, Buffer: vp.normBuf},
	}
	if vp.meshVA != nil {
		vp.meshVA.Release()
	}
	if vp.wireVA != nil {
		vp.wireVA.Release()
	}
	vp.meshVA = gpu.AssembleVertexArray(vp.meshShader.Program(), bufs, vp.triIdx)
	vp.wireVA = gpu.AssembleVertexArray(vp.wireProg, bufs, vp.wireIdx)
}

// writeUniforms sends the standard uniform set to pr.  Every uniform
// is optional; programs take whichever subset they declare.
func (vp *Viewport) writeUniforms(pr *gpu.CompiledProgram) {
	var mv, mvp math32.Matrix4
	view := vp.cam.ViewMatrix()
	proj := vp.cam.ProjectionMatrix()
	mv.MulMatrices(view, &vp.model)
	mvp.MulMatrices(proj, &mv)

	pr.SetMatrix4("mat_M", &vp.model)
	pr.SetMatrix4("mat_V", view)
	pr.SetMatrix4("mat_P", proj)
	pr.SetMatrix4("mat_MV", &mv)
	pr.SetMatrix4("mat_MVP", &mvp)
	pr.SetVector3("base_color", vp.BaseColor)
	pr.SetVector3("wire_color", vp.WireColor)
}

func (vp *Viewport) releaseMesh() {
	for _, b := range []*gpu.Buffer{vp.vertBuf, vp.normBuf, vp.triIdx, vp.wireIdx} {
		if b != nil {
			b.Release()
		}
	}
	vp.vertBuf, vp.normBuf, vp.triIdx, vp.wireIdx = nil, nil, nil, nil
	if vp.meshVA != nil {
		vp.meshVA.Release()
		vp.meshVA = nil
	}
	if vp.wireVA != nil {
		vp.wireVA.Release()
		vp.wireVA = nil
	}
}

// Release frees all GPU resources owned by the viewport.
func (vp *Viewport) Release() {
	vp.releaseMesh()
	vp.meshShader.Release()
	vp.wireProg.Release()
	vp.target.Release()
}
