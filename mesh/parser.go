// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "errors"

var (
	// ErrLoadPending is returned by Loader.Load while another load
	// is still in flight; the pipeline has exactly one job slot and
	// does not queue or cancel.
	ErrLoadPending = errors.New("mesh: a load is already in progress")

	// ErrUnsupported indicates the parser produced a result kind
	// this viewer cannot display.
	ErrUnsupported = errors.New("mesh: unsupported mesh type")

	// ErrMultiMesh indicates the file contained more than one
	// sub-mesh; the viewer renders exactly one mesh at a time.
	ErrMultiMesh = errors.New("mesh: multiple sub-meshes not supported")

	// ErrWorkerFailure indicates the parser crashed inside the
	// isolated load worker.
	ErrWorkerFailure = errors.New("mesh: load worker failed")
)

// SubMesh is one mesh as reported by a parser: raw positions and
// (possibly empty) normals, 3 floats per vertex, and triangle faces,
// 3 indices per triangle.
type SubMesh struct {
	Positions []float32
	Normals   []float32
	Faces     []uint32
}

// Result is what a parser returns for one file: its reported kind and
// the sub-meshes it found.  The pipeline accepts exactly one sub-mesh.
type Result struct {
	Kind   string
	Meshes []SubMesh
}

// Parser is the external mesh-parsing collaborator: it turns a file
// path into vertices, normals, and faces.  Implementations run inside
// the isolated load worker and may panic without taking down the
// process.
type Parser interface {
	Parse(path string) (*Result, error)
}
