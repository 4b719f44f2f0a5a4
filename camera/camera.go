// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera implements the spherical-coordinate camera model for
// the mesh inspection viewport: pure matrix math, no GPU state.
//
// The camera always looks at the origin from a position given by
// spherical coordinates (rho, theta, phi) in a z-up convention.
// Mutating an extrinsic parameter (rho, theta, phi) recomputes only
// the view matrix; mutating an intrinsic one (mode, near, far, scale,
// fov, aspect) recomputes only the projection matrix.
package camera

import (
	"log/slog"

	"cogentcore.org/core/math32"
)

// Mode is the projection mode of the camera.
type Mode int32

const (
	// Orthogonal is a parallel projection with a world-space width
	// given by the orthographic scale.
	Orthogonal Mode = iota

	// Perspective is a standard perspective projection with a
	// vertical field of view in degrees.
	Perspective
)

func (m Mode) String() string {
	switch m {
	case Orthogonal:
		return "Orthogonal"
	case Perspective:
		return "Perspective"
	}
	return "Unknown"
}

// Zoom limits for the interactive Zoom method, matching the range of
// the camera control sliders.
const (
	ZoomMin = 1
	ZoomMax = 20
)

var (
	worldUp = math32.Vec3(0, 0, 1)
	one     = math32.Vec3(1, 1, 1)
)

// Camera holds the spherical camera state and the view and projection
// matrices derived from it.  Construct with NewCamera; each viewport
// owns its own instance.
type Camera struct {
	// Rho is the distance from the origin, > 0.
	Rho float32

	// Theta is the rotation in the xy plane, in (-pi, pi].
	Theta float32

	// Phi is the rotation from the +z axis, in (-pi, pi].
	Phi float32

	// Mode is the projection mode.
	Mode Mode

	// Near and Far are the clipping plane distances, 0 < Near < Far.
	Near float32
	Far  float32

	// OrthoScale is the world-space frustum width in Orthogonal
	// mode, > 0.
	OrthoScale float32

	// FOV is the vertical field of view in degrees in Perspective
	// mode, in (0, 180).
	FOV float32

	// Aspect is the width / height ratio of the render target.
	Aspect float32

	viewMatrix       math32.Matrix4
	projectionMatrix math32.Matrix4
}

// NewCamera returns a camera with default parameters and both
// matrices computed.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

// Defaults resets the camera parameters to their defaults and
// recomputes both matrices.
func (cm *Camera) Defaults() {
	cm.Rho = 3
	cm.Theta = math32.Pi / 2
	cm.Phi = math32.Pi / 4
	cm.Mode = Perspective
	cm.Near = 0.1
	cm.Far = 100
	cm.OrthoScale = 10
	cm.FOV = 90
	cm.Aspect = 1
	cm.updateView()
	cm.updateProjection()
}

// WrapAngle normalizes an angle into (-pi, pi].
func WrapAngle(x float32) float32 {
	x = math32.Mod(x+math32.Pi, 2*math32.Pi)
	if x <= 0 {
		x += 2 * math32.Pi
	}
	return x - math32.Pi
}

// Position returns the cartesian camera position for the current
// spherical coordinates, z up:
//
//	x = rho * sin(phi) * cos(theta)
//	y = rho * sin(phi) * sin(theta)
//	z = rho * cos(phi)
func (cm *Camera) Position() math32.Vector3 {
	sp, cp := math32.Sincos(cm.Phi)
	st, ct := math32.Sincos(cm.Theta)
	return math32.Vec3(cm.Rho*sp*ct, cm.Rho*sp*st, cm.Rho*cp)
}

// updateView recomputes the view matrix from the spherical
// parameters.  The up vector is the horizontal forward direction
// rotated about the camera right axis by phi, which stays well
// defined at phi = 0 where a world-up cross product degenerates.
func (cm *Camera) updateView() {
	pos := cm.Position()
	forward := math32.Vec3(-math32.Cos(cm.Theta), -math32.Sin(cm.Theta), 0)
	right := forward.Cross(worldUp)
	up := forward.MulQuat(math32.NewQuatAxisAngle(right, cm.Phi))

	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(pos, math32.Vector3{}, up))
	var cam math32.Matrix4
	cam.SetTransform(pos, lookq, one)
	view, err := cam.Inverse()
	if err != nil {
		slog.Error("camera: view matrix not invertible", "err", err)
		return
	}
	cm.viewMatrix.CopyFrom(view)
}

// updateProjection recomputes the projection matrix from the
// intrinsic parameters and aspect ratio.
func (cm *Camera) updateProjection() {
	switch cm.Mode {
	case Orthogonal:
		width := cm.OrthoScale
		height := width / cm.Aspect
		cm.projectionMatrix.SetOrthographic(width, height, cm.Near, cm.Far)
	case Perspective:
		cm.projectionMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
}

// ViewMatrix returns the current view matrix.  Valid until the next
// extrinsic mutation.
func (cm *Camera) ViewMatrix() *math32.Matrix4 {
	return &cm.viewMatrix
}

// ProjectionMatrix returns the current projection matrix.  Valid
// until the next intrinsic mutation.
func (cm *Camera) ProjectionMatrix() *math32.Matrix4 {
	return &cm.projectionMatrix
}

// SetRho sets the camera distance, which must be > 0, and recomputes
// the view matrix.
func (cm *Camera) SetRho(rho float32) {
	if rho <= 0 {
		slog.Error("camera: rho must be > 0", "rho", rho)
		return
	}
	cm.Rho = rho
	cm.updateView()
}

// SetTheta sets the xy-plane rotation, wrapped into (-pi, pi], and
// recomputes the view matrix.
func (cm *Camera) SetTheta(theta float32) {
	cm.Theta = WrapAngle(theta)
	cm.updateView()
}

// SetPhi sets the rotation from +z, wrapped into (-pi, pi], and
// recomputes the view matrix.
func (cm *Camera) SetPhi(phi float32) {
	cm.Phi = WrapAngle(phi)
	cm.updateView()
}

// Orbit rotates the camera by the given angle deltas (radians),
// wrapping both angles, and recomputes the view matrix.
func (cm *Camera) Orbit(dTheta, dPhi float32) {
	cm.Theta = WrapAngle(cm.Theta + dTheta)
	cm.Phi = WrapAngle(cm.Phi + dPhi)
	cm.updateView()
}

// Zoom moves the camera toward (delta > 0) or away from the mesh,
// proportionally to the current distance.  In Perspective mode it
// scales rho and recomputes the view matrix; in Orthogonal mode it
// scales OrthoScale and recomputes the projection matrix.  Both are
// clamped to [ZoomMin, ZoomMax].
func (cm *Camera) Zoom(delta float32) {
	switch cm.Mode {
	case Perspective:
		cm.Rho = math32.Clamp(cm.Rho-delta*math32.Abs(cm.Rho), ZoomMin, ZoomMax)
		cm.updateView()
	case Orthogonal:
		cm.OrthoScale = math32.Clamp(cm.OrthoScale-delta*math32.Abs(cm.OrthoScale), ZoomMin, ZoomMax)
		cm.updateProjection()
	}
}

// SetMode sets the projection mode and recomputes the projection
// matrix.
func (cm *Camera) SetMode(mode Mode) {
	cm.Mode = mode
	cm.updateProjection()
}

// SetNear sets the near clipping distance, which must stay in
// 0 < near < far, and recomputes the projection matrix.
func (cm *Camera) SetNear(near float32) {
	if near <= 0 || near >= cm.Far {
		slog.Error("camera: need 0 < near < far", "near", near, "far", cm.Far)
		return
	}
	cm.Near = near
	cm.updateProjection()
}

// SetFar sets the far clipping distance, which must be > near, and
// recomputes the projection matrix.
func (cm *Camera) SetFar(far float32) {
	if far <= cm.Near {
		slog.Error("camera: need far > near", "near", cm.Near, "far", far)
		return
	}
	cm.Far = far
	cm.updateProjection()
}

// SetOrthoScale sets the orthographic frustum width, which must be
// > 0, and recomputes the projection matrix.
func (cm *Camera) SetOrthoScale(scale float32) {
	if scale <= 0 {
		slog.Error("camera: ortho scale must be > 0", "scale", scale)
		return
	}
	cm.OrthoScale = scale
	cm.updateProjection()
}

// SetFOV sets the vertical field of view in degrees, which must be in
// (0, 180), and recomputes the projection matrix.
func (cm *Camera) SetFOV(fov float32) {
	if fov <= 0 || fov >= 180 {
		slog.Error("camera: fov must be in (0, 180)", "fov", fov)
		return
	}
	cm.FOV = fov
	cm.updateProjection()
}

// SetAspect sets the render target aspect ratio and recomputes the
// projection matrix; the view matrix is aspect independent.
func (cm *Camera) SetAspect(aspect float32) {
	cm.Aspect = aspect
	cm.updateProjection()
}
