// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshBufferTriangle(t *testing.T) {
	mb, err := NewMeshBuffer(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		nil,
		[]uint32{0, 1, 2},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, mb.NumVertices())
	assert.Equal(t, 1, mb.NumTriangles())
	assert.Equal(t, 3, mb.NumWireEdges())
	assert.Equal(t, []uint32{0, 1, 0, 2, 1, 2}, mb.WireEdges)
	// Flat triangle in the xy plane: all normals +z.
	require.Len(t, mb.Normals, 9)
	for i := 0; i < 9; i += 3 {
		assert.InDelta(t, 0, mb.Normals[i], 1e-6)
		assert.InDelta(t, 0, mb.Normals[i+1], 1e-6)
		assert.InDelta(t, 1, mb.Normals[i+2], 1e-6)
	}
}

func TestNewMeshBufferValidation(t *testing.T) {
	_, err := NewMeshBuffer(nil, nil, []uint32{0, 1, 2})
	assert.Error(t, err, "empty positions")

	_, err = NewMeshBuffer([]float32{0, 0}, nil, []uint32{0, 1, 2})
	assert.Error(t, err, "positions not a multiple of 3")

	_, err = NewMeshBuffer([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, nil, []uint32{0, 1})
	assert.Error(t, err, "indices not a multiple of 3")

	_, err = NewMeshBuffer([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, nil, []uint32{0, 1, 3})
	assert.Error(t, err, "index out of range")

	_, err = NewMeshBuffer([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []float32{0, 0, 1}, []uint32{0, 1, 2})
	assert.Error(t, err, "normals length mismatch")
}

func TestWireEdgeSetSharedEdge(t *testing.T) {
	// Two triangles sharing edge (0, 2): 5 unique edges, not 6.
	edges := WireEdgeSet([]uint32{0, 1, 2, 0, 2, 3})
	assert.Len(t, edges, 10)
	assert.Equal(t, []uint32{0, 1, 0, 2, 0, 3, 1, 2, 2, 3}, edges)
}

func TestWireEdgeSetCanonical(t *testing.T) {
	// Winding must not affect the edge set.
	a := WireEdgeSet([]uint32{0, 1, 2})
	b := WireEdgeSet([]uint32{2, 1, 0})
	assert.Equal(t, a, b)
}

func TestZeroNormalsRecomputed(t *testing.T) {
	mb, err := NewMeshBuffer(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]float32{0, 0, 0, 0, 0, 0, 0, 0, 0},
		[]uint32{0, 1, 2},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1, mb.Normals[2], 1e-6, "all-zero normals are replaced by computed ones")
}

func TestSuppliedNormalsKept(t *testing.T) {
	normals := []float32{1, 0, 0, 1, 0, 0, 1, 0, 0}
	mb, err := NewMeshBuffer(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		normals,
		[]uint32{0, 1, 2},
	)
	require.NoError(t, err)
	assert.Equal(t, normals, mb.Normals)
}
