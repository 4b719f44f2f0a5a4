// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFParser parses .gltf and .glb files.  Each triangles-mode
// primitive becomes one SubMesh; other primitive modes are skipped.
type GLTFParser struct{}

// Parse opens a glTF document and flattens its mesh primitives.
func (GLTFParser) Parse(path string) (*Result, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: open %s: %w", path, err)
	}
	res := &Result{Kind: "gltf"}
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			// An absent mode field decodes to the zero value and
			// means triangles per the glTF default.
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			sm, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", mi, pi, err)
			}
			res.Meshes = append(res.Meshes, sm)
		}
	}
	return res, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (SubMesh, error) {
	var sm SubMesh

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return sm, fmt.Errorf("primitive has no %s attribute", gltf.POSITION)
	}
	pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return sm, err
	}
	sm.Positions = flatten3(pos)

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		norm, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return sm, err
		}
		sm.Normals = flatten3(norm)
	}

	if prim.Indices != nil {
		sm.Faces, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return sm, err
		}
	} else {
		// Non-indexed geometry: sequential triangles.
		sm.Faces = make([]uint32, len(pos))
		for i := range sm.Faces {
			sm.Faces[i] = uint32(i)
		}
	}
	return sm, nil
}

func flatten3(v [][3]float32) []float32 {
	out := make([]float32, 0, 3*len(v))
	for _, p := range v {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}
