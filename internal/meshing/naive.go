package meshing

import (
	"sort"

	"voxmesh/internal/palette"
	"voxmesh/internal/voxel"
)

// blockRef locates one voxel instance inside the chunk.
type blockRef struct {
	x, y, z int32
}

// mergeNaive merges all geometry variants of the given voxels into one
// category mesh. Voxels are visited grouped by type index ascending, in input
// order within a group. Each variant instance is culled per triangle with the
// geometry-driven test; instances left with no triangles are dropped before
// any vertex is copied. Surviving instances copy their full local vertex set
// translated into chunk-local space, and consecutive same-material instances
// share one draw group.
func mergeNaive(pal *palette.Palette, g *voxel.Grid, category string, byType map[int][]blockRef, origin [3]int32) *meshWriter {
	w := newMeshWriter(category)

	types := make([]int, 0, len(byType))
	for ti := range byType {
		types = append(types, ti)
	}
	sort.Ints(types)

	var valid []uint32
	for _, ti := range types {
		entry := pal.Entry(ti)
		if entry == nil {
			continue
		}
		for _, ref := range byType[ti] {
			for vi := range entry.Variants {
				variant := &entry.Variants[vi]
				numVerts := variant.VertexCount()
				if numVerts == 0 {
					continue
				}

				valid = valid[:0]
				for j := 0; j+2 < len(variant.Indices); j += 3 {
					if triangleVisible(g, pal, variant, variant.Indices[j], ref.x, ref.y, ref.z) {
						valid = append(valid, variant.Indices[j], variant.Indices[j+1], variant.Indices[j+2])
					}
				}
				if len(valid) == 0 {
					continue
				}

				base := uint32(w.vertexCount)
				attrs := variantAttrs{normals: variant.Normals, uvs: variant.UVs}
				ox := float32(ref.x - origin[0])
				oy := float32(ref.y - origin[1])
				oz := float32(ref.z - origin[2])
				for v := 0; v < numVerts; v++ {
					w.appendVertex(
						ox+variant.Positions[v*3],
						oy+variant.Positions[v*3+1],
						oz+variant.Positions[v*3+2],
						&attrs, v,
					)
				}
				w.appendIndices(valid, base, variant.MaterialIndex)
			}
		}
	}
	return w
}
