// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/graphicslab/graphicslab/shaders"
)

// Shader is a hot-reloadable vertex + fragment shader pair backed by
// two source files.  A background watcher observes both files for
// edits and re-reads their text; actual GPU compilation only ever
// happens on the render thread, in Reload.
//
// If recompilation fails, the built-in error fallback program is
// swapped in so rendering continues with a visibly wrong color, and
// the next detected source change triggers another attempt.
type Shader struct {
	name     string
	vertPath string
	fragPath string

	// program is the active compiled program; either the last
	// successful compile or the fallback.  Render thread only.
	program *CompiledProgram

	// fallback is the built-in error program, compiled once at
	// construction and never released until Release.
	fallback *CompiledProgram

	usingFallback bool

	// compile produces a program from sources; replaced in tests.
	compile func(name, vertSrc, fragSrc string) (*CompiledProgram, error)

	watcher *fsnotify.Watcher
	done    chan struct{}

	// mu guards the source texts and the changed flag, which are
	// written by the watcher goroutine and consumed by Reload.
	mu      sync.Mutex
	vertSrc string
	fragSrc string
	changed bool
}

// NewShader reads and compiles the given vertex and fragment shader
// files and starts watching both for changes.  Any read or compile
// failure here is returned as an error: a viewport cannot be
// constructed without a working shader.  The GL context must be
// current.
func NewShader(name, vertPath, fragPath string) (*Shader, error) {
	sh, err := newShader(name, vertPath, fragPath, CompileProgram)
	if err != nil {
		return nil, err
	}
	sh.fallback, err = CompileProgram(name+"-fallback", shaders.ErrorVertex, shaders.ErrorFragment)
	if err != nil {
		sh.program.Release()
		return nil, fmt.Errorf("shader %s: fallback: %w", name, err)
	}
	if err := sh.startWatcher(); err != nil {
		sh.program.Release()
		sh.fallback.Release()
		return nil, err
	}
	return sh, nil
}

// newShader reads both source files and compiles the initial program
// using the given compile function.  No watcher is started.
func newShader(name, vertPath, fragPath string, compile func(name, vertSrc, fragSrc string) (*CompiledProgram, error)) (*Shader, error) {
	sh := &Shader{
		name:     name,
		vertPath: vertPath,
		fragPath: fragPath,
		compile:  compile,
	}
	vsrc, err := os.ReadFile(vertPath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: vertex source: %w", name, err)
	}
	fsrc, err := os.ReadFile(fragPath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: fragment source: %w", name, err)
	}
	sh.vertSrc = string(vsrc)
	sh.fragSrc = string(fsrc)
	sh.program, err = compile(name, sh.vertSrc, sh.fragSrc)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// startWatcher starts the background goroutine watching both source
// files.  The containing directories are watched rather than the
// files themselves, so editors that save via rename are still seen.
func (sh *Shader) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dirs := map[string]bool{
		filepath.Dir(sh.vertPath): true,
		filepath.Dir(sh.fragPath): true,
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return fmt.Errorf("shader %s: watch %s: %w", sh.name, dir, err)
		}
	}
	sh.watcher = w
	sh.done = make(chan struct{})
	go func() {
		for {
			select {
			case <-sh.done:
				return
			case event := <-w.Events:
				switch {
				case event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create ||
					event.Op&fsnotify.Rename == fsnotify.Rename:
					sh.fileChanged(event.Name)
				}
			case err := <-w.Errors:
				if err != nil {
					slog.Error("gpu.Shader: watcher error", "shader", sh.name, "err", err)
				}
			}
		}
	}()
	return nil
}

// fileChanged re-reads a changed source file and marks the shader for
// recompilation on the next Reload.  Watcher goroutine only; never
// touches the GPU.  A file that has gone missing is skipped, keeping
// the prior source.
func (sh *Shader) fileChanged(path string) {
	var isVert bool
	switch {
	case sameFile(path, sh.vertPath):
		isVert = true
	case sameFile(path, sh.fragPath):
		isVert = false
	default:
		return
	}
	src, err := os.ReadFile(path)
	if err != nil {
		slog.Error("gpu.Shader: re-read failed, keeping prior source", "shader", sh.name, "path", path, "err", err)
		return
	}
	sh.mu.Lock()
	if isVert {
		sh.vertSrc = string(src)
	} else {
		sh.fragSrc = string(src)
	}
	sh.changed = true
	sh.mu.Unlock()
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// markChanged flags the shader for recompilation, as the watcher does
// on a file event.
func (sh *Shader) markChanged() {
	sh.mu.Lock()
	sh.changed = true
	sh.mu.Unlock()
}

// Program returns the active compiled program: the last successful
// compile, or the fallback after a failed one.  Render thread only;
// valid until the next Reload that returns true.
func (sh *Shader) Program() *CompiledProgram {
	return sh.program
}

// UsingFallback returns whether the error fallback program is active.
func (sh *Shader) UsingFallback() bool {
	return sh.usingFallback
}

// Reload is called once per frame from the render thread.  It tests
// and clears the change flag; if set, it recompiles from the current
// sources.  On compile failure the fallback program becomes active and
// the shader remains eligible to retry on the next detected change.
// Returns true whenever program identity changed, so dependents can
// rebuild their vertex array bindings.
func (sh *Shader) Reload() bool {
	sh.mu.Lock()
	changed := sh.changed
	sh.changed = false
	vsrc := sh.vertSrc
	fsrc := sh.fragSrc
	sh.mu.Unlock()
	if !changed {
		return false
	}
	slog.Info("gpu.Shader: source change detected, recompiling", "shader", sh.name)
	prog, err := sh.compile(sh.name, vsrc, fsrc)
	if err != nil {
		errors.Log(err)
		if !sh.usingFallback {
			sh.program.Release()
		}
		sh.program = sh.fallback
		sh.usingFallback = true
		return true
	}
	if !sh.usingFallback {
		sh.program.Release()
	}
	sh.program = prog
	sh.usingFallback = false
	return true
}

// Release stops the watcher and frees the GPU programs.
func (sh *Shader) Release() {
	if sh.done != nil {
		close(sh.done)
		sh.done = nil
	}
	if sh.watcher != nil {
		sh.watcher.Close()
		sh.watcher = nil
	}
	if sh.program != nil && !sh.usingFallback {
		sh.program.Release()
	}
	if sh.fallback != nil {
		sh.fallback.Release()
	}
	sh.program = nil
	sh.fallback = nil
}
