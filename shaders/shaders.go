// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaders holds the built-in GLSL shader sources: the
// wireframe overlay program, the error fallback program swapped in
// when a user shader fails to compile, and the default mesh shading
// program used when no user shader pair is supplied.
package shaders

import _ "embed"

// ErrorVertex is the vertex stage of the fallback program used when
// compilation of a user shader fails.
//
//go:embed error.vert
var ErrorVertex string

// ErrorFragment renders everything in a uniform, visibly wrong color
// so a broken shader is immediately apparent.
//
//go:embed error.frag
var ErrorFragment string

// WireframeVertex is the vertex stage of the wireframe overlay.
//
//go:embed wireframe.vert
var WireframeVertex string

// WireframeFragment colors wireframe lines with the wire_color
// uniform.
//
//go:embed wireframe.frag
var WireframeFragment string

// MeshVertex is the default mesh shading vertex stage.
//
//go:embed mesh.vert
var MeshVertex string

// MeshFragment is the default mesh shading fragment stage: simple
// view-space lambert shading of base_color.
//
//go:embed mesh.frag
var MeshFragment string
