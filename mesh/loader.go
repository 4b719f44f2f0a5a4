// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"path/filepath"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/graphicslab/graphicslab/status"
)

// StatusKey is the key the loader publishes progress under.
const StatusKey = "Mesh Viewer"

// Loader is the mesh ingestion pipeline.  It runs a single load at a
// time on a background worker, isolates parser crashes, and exposes
// the completed MeshBuffer to the render loop through a read-and-clear
// loaded flag.  Safe for concurrent use.
type Loader struct {
	parser Parser
	status *status.Channel

	mu      sync.Mutex
	loading bool
	loaded  bool
	buffer  *MeshBuffer
	err     error
}

// NewLoader returns a Loader using the given parser.  ch may be nil
// if no progress reporting is wanted.
func NewLoader(parser Parser, ch *status.Channel) *Loader {
	return &Loader{parser: parser, status: ch}
}

// Load starts parsing path on a background worker.  It returns
// ErrLoadPending if a previous load has not finished yet; a successful
// return means the job was accepted, not that parsing succeeded.
func (l *Loader) Load(path string) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadPending
	}
	l.loading = true
	l.mu.Unlock()
	l.update(fmt.Sprintf("Loading %s...", filepath.Base(path)), 0)
	go l.work(path)
	return nil
}

// LoadSync parses path on the calling goroutine and returns the load
// outcome directly.  Mostly useful at startup and in tests.
func (l *Loader) LoadSync(path string) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadPending
	}
	l.loading = true
	l.mu.Unlock()
	l.update(fmt.Sprintf("Loading %s...", filepath.Base(path)), 0)
	l.work(path)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// IsLoading reports whether a load is currently in flight.
func (l *Loader) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// IsLoaded reports whether a load completed successfully since the
// last call, clearing the flag.  Each successful load is observed
// exactly once; the render loop polls this to know when to re-upload.
func (l *Loader) IsLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	v := l.loaded
	l.loaded = false
	return v
}

// Buffer returns the most recently loaded MeshBuffer, or nil if no
// load has succeeded yet.  Failed loads keep the prior buffer.
func (l *Loader) Buffer() *MeshBuffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer
}

// SetBuffer installs a pre-built buffer, such as a demo shape, as if
// it had been loaded, setting the loaded flag.
func (l *Loader) SetBuffer(mb *MeshBuffer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buffer = mb
	l.loaded = true
	l.err = nil
}

// work runs one load.  The parser executes on its own goroutine with
// a recover so that a crashing parser surfaces as ErrWorkerFailure
// instead of taking down the process.
func (l *Loader) work(path string) {
	type outcome struct {
		res *Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("%w: %v", ErrWorkerFailure, r)}
			}
		}()
		res, err := l.parser.Parse(path)
		ch <- outcome{res: res, err: err}
	}()
	out := <-ch
	l.finish(path, out.res, out.err)
}

func (l *Loader) finish(path string, res *Result, err error) {
	var mb *MeshBuffer
	if err == nil {
		mb, err = buildBuffer(res)
	}
	l.mu.Lock()
	l.loading = false
	l.err = err
	if err == nil {
		l.buffer = mb
		l.loaded = true
	}
	l.mu.Unlock()
	if err != nil {
		errors.Log(fmt.Errorf("mesh: load %s: %w", path, err))
		l.update(fmt.Sprintf("Failed to load %s", filepath.Base(path)), 1)
		return
	}
	l.update(fmt.Sprintf("Loaded %s (%d triangles)", filepath.Base(path), mb.NumTriangles()), 1)
}

func buildBuffer(res *Result) (*MeshBuffer, error) {
	switch {
	case len(res.Meshes) == 0:
		return nil, fmt.Errorf("%w: %q file contains no triangle meshes", ErrUnsupported, res.Kind)
	case len(res.Meshes) > 1:
		return nil, fmt.Errorf("%w: file contains %d", ErrMultiMesh, len(res.Meshes))
	}
	sm := res.Meshes[0]
	return NewMeshBuffer(sm.Positions, sm.Normals, sm.Faces)
}

func (l *Loader) update(msg string, progress float32) {
	if l.status == nil {
		return
	}
	if progress >= 1 {
		l.status.Finish(StatusKey, msg)
	} else {
		l.status.UpdateProgress(StatusKey, msg, progress)
	}
}
