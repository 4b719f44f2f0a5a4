// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// Plane returns a size x size quad centered on the origin in the XY
// plane, facing +Z.  Useful as a ground reference and in tests.
func Plane(size float32) *MeshBuffer {
	h := size / 2
	positions := []float32{
		-h, -h, 0,
		h, -h, 0,
		h, h, 0,
		-h, h, 0,
	}
	normals := []float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	mb, err := NewMeshBuffer(positions, normals, indices)
	if err != nil {
		panic("mesh: plane construction: " + err.Error())
	}
	return mb
}

// Box returns an axis-aligned box of the given extents centered on
// the origin, with flat per-face normals.
func Box(sx, sy, sz float32) *MeshBuffer {
	x, y, z := sx/2, sy/2, sz/2
	type face struct {
		corners [4][3]float32
		normal  [3]float32
	}
	faces := []face{
		{[4][3]float32{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}, [3]float32{0, 0, 1}},
		{[4][3]float32{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}, [3]float32{0, 0, -1}},
		{[4][3]float32{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}}, [3]float32{1, 0, 0}},
		{[4][3]float32{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}, [3]float32{-1, 0, 0}},
		{[4][3]float32{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}}, [3]float32{0, 1, 0}},
		{[4][3]float32{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}, [3]float32{0, -1, 0}},
	}
	var positions, normals []float32
	var indices []uint32
	for fi, f := range faces {
		for _, c := range f.corners {
			positions = append(positions, c[0], c[1], c[2])
			normals = append(normals, f.normal[0], f.normal[1], f.normal[2])
		}
		base := uint32(4 * fi)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	mb, err := NewMeshBuffer(positions, normals, indices)
	if err != nil {
		panic("mesh: box construction: " + err.Error())
	}
	return mb
}
