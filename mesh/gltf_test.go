// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGLTFParseTriangle(t *testing.T) {
	res, err := GLTFParser{}.Parse(filepath.Join("testdata", "triangle.gltf"))
	require.NoError(t, err)
	assert.Equal(t, "gltf", res.Kind)
	require.Len(t, res.Meshes, 1)

	sm := res.Meshes[0]
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, sm.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, sm.Normals)
	assert.Equal(t, []uint32{0, 1, 2}, sm.Faces)
}

func TestGLTFParseMissingFile(t *testing.T) {
	_, err := GLTFParser{}.Parse(filepath.Join("testdata", "nope.gltf"))
	assert.Error(t, err)
}

func TestGLTFThroughLoader(t *testing.T) {
	l := NewLoader(GLTFParser{}, nil)
	require.NoError(t, l.LoadSync(filepath.Join("testdata", "triangle.gltf")))
	require.True(t, l.IsLoaded())
	mb := l.Buffer()
	assert.Equal(t, 3, mb.NumVertices())
	assert.Equal(t, 1, mb.NumTriangles())
	assert.Equal(t, 3, mb.NumWireEdges())
}
