package meshing

import (
	"testing"

	"voxmesh/internal/palette"
)

// cubeVariant builds a unit cube with four vertices per face, axis-aligned
// normals, and every face flush with its 0/1 boundary plane.
func cubeVariant(material uint32) palette.Variant {
	v := palette.Variant{MaterialIndex: material}
	corners := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	planeAxes := [3][2]int{{1, 2}, {0, 2}, {0, 1}}
	for dir := 0; dir < DirCount; dir++ {
		axis := dir / 2
		base := uint32(len(v.Positions) / 3)
		for _, c := range corners {
			var p [3]float32
			p[axis] = float32(dir & 1)
			p[planeAxes[axis][0]] = c[0]
			p[planeAxes[axis][1]] = c[1]
			v.Positions = append(v.Positions, p[0], p[1], p[2])

			var n [3]float32
			if dir&1 == 1 {
				n[axis] = 1
			} else {
				n[axis] = -1
			}
			v.Normals = append(v.Normals, n[0], n[1], n[2])
			v.UVs = append(v.UVs, c[0], c[1])
		}
		v.Indices = append(v.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return v
}

// solidCube is a fully occluding cube entry for the given type index.
func solidCube(index int, material uint32) palette.Entry {
	return palette.Entry{
		Index:          index,
		OcclusionFlags: 0b111111,
		Category:       palette.CategorySolid,
		Variants:       []palette.Variant{cubeVariant(material)},
	}
}

func newTestBuilder(entries ...palette.Entry) *Builder {
	b := NewBuilder()
	b.UpdatePalette(entries)
	return b
}

// singleMesh asserts the result holds exactly one mesh and returns it.
func singleMesh(t *testing.T, res BuildResult) *MergedMesh {
	t.Helper()
	if len(res.Meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(res.Meshes))
	}
	return &res.Meshes[0]
}

// checkGroupPartition asserts that groups cover the index buffer exactly,
// contiguously from zero, with no two adjacent groups sharing a material.
func checkGroupPartition(t *testing.T, m *MergedMesh) {
	t.Helper()
	next := 0
	for i, g := range m.Groups {
		if g.Start != next {
			t.Fatalf("group %d starts at %d, want %d", i, g.Start, next)
		}
		if g.Count <= 0 {
			t.Fatalf("group %d has count %d", i, g.Count)
		}
		if i > 0 && m.Groups[i-1].MaterialIndex == g.MaterialIndex {
			t.Fatalf("groups %d and %d share material %d without coalescing", i-1, i, g.MaterialIndex)
		}
		next += g.Count
	}
	if next != m.IndexCount() {
		t.Fatalf("groups cover %d indices, want %d", next, m.IndexCount())
	}
}
