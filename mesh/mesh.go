// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the CPU side of mesh handling for the
// viewport: the vertex / normal / index buffers uploaded to the GPU,
// the derived wireframe edge set, and the asynchronous ingestion
// pipeline that keeps file parsing off the render thread.
package mesh

import (
	"fmt"
	"sort"

	"cogentcore.org/core/math32"
)

// MeshBuffer holds the contiguous CPU-side buffers for one mesh:
// positions (3 floats per vertex), unit normals (3 floats per
// vertex), triangle indices (3 per triangle), and the derived
// wireframe edge indices (2 per edge, deduplicated).  A MeshBuffer is
// immutable once built; a new load replaces it wholesale.
type MeshBuffer struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32

	// WireEdges is the flattened WireEdgeSet: for every triangle
	// (a,b,c), the undirected edges (a,b), (b,c), (a,c),
	// canonicalized as (min,max) and deduplicated, giving at most
	// 3 * NumTriangles edges.
	WireEdges []uint32
}

// NewMeshBuffer builds a MeshBuffer from raw positions, normals, and
// triangle indices, computing the wireframe edge set.  If normals is
// nil or all-zero, area-weighted vertex normals are computed from the
// triangles.  Returns an error if the buffer sizes are inconsistent
// or an index is out of range.
func NewMeshBuffer(positions, normals []float32, indices []uint32) (*MeshBuffer, error) {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return nil, fmt.Errorf("mesh: position buffer length %d is not a positive multiple of 3", len(positions))
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: index buffer length %d is not a positive multiple of 3", len(indices))
	}
	nv := uint32(len(positions) / 3)
	for _, ix := range indices {
		if ix >= nv {
			return nil, fmt.Errorf("mesh: index %d out of range for %d vertices", ix, nv)
		}
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("mesh: normal buffer length %d != position buffer length %d", len(normals), len(positions))
	}
	if !hasNonzero(normals) {
		normals = computeNormals(positions, indices)
	}
	mb := &MeshBuffer{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		WireEdges: WireEdgeSet(indices),
	}
	return mb, nil
}

// NumVertices returns the number of vertices.
func (mb *MeshBuffer) NumVertices() int {
	return len(mb.Positions) / 3
}

// NumTriangles returns the number of triangles.
func (mb *MeshBuffer) NumTriangles() int {
	return len(mb.Indices) / 3
}

// NumWireEdges returns the number of deduplicated wireframe edges.
func (mb *MeshBuffer) NumWireEdges() int {
	return len(mb.WireEdges) / 2
}

// WireEdgeSet computes the deduplicated undirected edge set of the
// given triangle indices, returned as a flattened list of (a, b)
// pairs with a < b, sorted.  Ordering is deterministic so repeated
// loads of the same mesh produce identical wire buffers.
func WireEdgeSet(indices []uint32) []uint32 {
	edges := make(map[[2]uint32]struct{}, len(indices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		edges[edgeKey(a, b)] = struct{}{}
		edges[edgeKey(b, c)] = struct{}{}
		edges[edgeKey(a, c)] = struct{}{}
	}
	keys := make([][2]uint32, 0, len(edges))
	for e := range edges {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	wire := make([]uint32, 0, 2*len(keys))
	for _, e := range keys {
		wire = append(wire, e[0], e[1])
	}
	return wire
}

func edgeKey(a, b uint32) [2]uint32 {
	if a > b {
		a, b = b, a
	}
	return [2]uint32{a, b}
}

// computeNormals returns area-weighted vertex normals for the given
// triangles: each triangle's cross-product normal (whose length is
// proportional to its area) is accumulated on its three vertices,
// then each vertex normal is normalized.
func computeNormals(positions []float32, indices []uint32) []float32 {
	acc := make([]math32.Vector3, len(positions)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa := vertex(positions, a)
		pb := vertex(positions, b)
		pc := vertex(positions, c)
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	normals := make([]float32, len(positions))
	for i, n := range acc {
		n = n.Normal()
		normals[3*i] = n.X
		normals[3*i+1] = n.Y
		normals[3*i+2] = n.Z
	}
	return normals
}

func vertex(positions []float32, i uint32) math32.Vector3 {
	return math32.Vec3(positions[3*i], positions[3*i+1], positions[3*i+2])
}

func hasNonzero(vals []float32) bool {
	for _, v := range vals {
		if v != 0 {
			return true
		}
	}
	return false
}
