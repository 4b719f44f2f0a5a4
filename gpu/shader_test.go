// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompile builds an uninitialized program without a GL context,
// failing whenever a source contains the marker "BROKEN".
func stubCompile(name, vertSrc, fragSrc string) (*CompiledProgram, error) {
	if strings.Contains(vertSrc, "BROKEN") || strings.Contains(fragSrc, "BROKEN") {
		return nil, errors.New("stub: compile failed")
	}
	return &CompiledProgram{name: name}, nil
}

func writeShaderFiles(t *testing.T, vertSrc, fragSrc string) (vertPath, fragPath string) {
	t.Helper()
	dir := t.TempDir()
	vertPath = filepath.Join(dir, "test.vert")
	fragPath = filepath.Join(dir, "test.frag")
	require.NoError(t, os.WriteFile(vertPath, []byte(vertSrc), 0o666))
	require.NoError(t, os.WriteFile(fragPath, []byte(fragSrc), 0o666))
	return vertPath, fragPath
}

func testShader(t *testing.T, vertSrc, fragSrc string) *Shader {
	t.Helper()
	vertPath, fragPath := writeShaderFiles(t, vertSrc, fragSrc)
	sh, err := newShader("test", vertPath, fragPath, stubCompile)
	require.NoError(t, err)
	sh.fallback = &CompiledProgram{name: "test-fallback"}
	return sh
}

func TestShaderReloadWithoutChange(t *testing.T) {
	sh := testShader(t, "void main() {}", "void main() {}")
	assert.False(t, sh.Reload())
	assert.False(t, sh.UsingFallback())
}

func TestShaderReloadNewIdentity(t *testing.T) {
	sh := testShader(t, "void main() {}", "void main() {}")
	before := sh.Program()
	sh.markChanged()
	assert.True(t, sh.Reload())
	assert.NotSame(t, before, sh.Program(), "recompile must produce a new program identity")
	assert.False(t, sh.Reload(), "change flag is cleared by Reload")
}

func TestShaderFallbackAndRecover(t *testing.T) {
	sh := testShader(t, "void main() {}", "void main() {}")
	good := sh.Program()

	// Break the fragment source on disk and notify.
	require.NoError(t, os.WriteFile(sh.fragPath, []byte("BROKEN"), 0o666))
	sh.fileChanged(sh.fragPath)
	assert.True(t, sh.Reload())
	assert.True(t, sh.UsingFallback())
	assert.Same(t, sh.fallback, sh.Program())
	assert.NotSame(t, good, sh.Program())

	// No further edits: stays on the fallback without recompiling.
	assert.False(t, sh.Reload())
	assert.True(t, sh.UsingFallback())

	// Fix the source: recovers to a fresh program.
	require.NoError(t, os.WriteFile(sh.fragPath, []byte("void main() {}"), 0o666))
	sh.fileChanged(sh.fragPath)
	assert.True(t, sh.Reload())
	assert.False(t, sh.UsingFallback())
	assert.NotSame(t, sh.fallback, sh.Program())
}

func TestShaderInitialCompileFailure(t *testing.T) {
	vertPath, fragPath := writeShaderFiles(t, "BROKEN", "void main() {}")
	_, err := newShader("test", vertPath, fragPath, stubCompile)
	assert.Error(t, err, "construction requires a working shader")
}

func TestShaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := newShader("test", filepath.Join(dir, "no.vert"), filepath.Join(dir, "no.frag"), stubCompile)
	assert.Error(t, err)
}

func TestShaderWatcherDetectsEdit(t *testing.T) {
	sh := testShader(t, "void main() {}", "void main() {}")
	require.NoError(t, sh.startWatcher())
	defer sh.Release()

	require.NoError(t, os.WriteFile(sh.vertPath, []byte("// edited\nvoid main() {}"), 0o666))
	assert.Eventually(t, func() bool {
		sh.mu.Lock()
		defer sh.mu.Unlock()
		return sh.changed
	}, 2*time.Second, 10*time.Millisecond, "watcher should flag the edit")

	assert.True(t, sh.Reload())
	sh.mu.Lock()
	assert.Contains(t, sh.vertSrc, "edited")
	sh.mu.Unlock()
}

func TestShaderWatcherIgnoresSiblingFiles(t *testing.T) {
	sh := testShader(t, "void main() {}", "void main() {}")
	require.NoError(t, sh.startWatcher())
	defer sh.Release()

	other := filepath.Join(filepath.Dir(sh.vertPath), "unrelated.txt")
	require.NoError(t, os.WriteFile(other, []byte("hi"), 0o666))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, sh.Reload())
}
