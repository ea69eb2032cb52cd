package meshing

// Group marks a contiguous run of the index buffer drawn with one material.
// Groups partition the index buffer exactly and never overlap.
type Group struct {
	Start         int
	Count         int
	MaterialIndex uint32
}

// MergedMesh is one render-ready mesh for a single category. Positions are
// quantized to signed 16-bit at PositionScale, normals to signed 8-bit at
// NormalScale, UVs stay float. Exactly one of Indices16/Indices32 is set:
// 16-bit when VertexCount fits in an unsigned 16-bit index, 32-bit otherwise.
type MergedMesh struct {
	Category    string
	Positions   []int16
	Normals     []int8
	UVs         []float32
	Indices16   []uint16
	Indices32   []uint32
	Groups      []Group
	VertexCount int
}

// IndexCount returns the length of whichever index buffer is present.
func (m *MergedMesh) IndexCount() int {
	if m.Indices32 != nil {
		return len(m.Indices32)
	}
	return len(m.Indices16)
}

// Index returns the i-th index regardless of storage width.
func (m *MergedMesh) Index(i int) uint32 {
	if m.Indices32 != nil {
		return m.Indices32[i]
	}
	return uint32(m.Indices16[i])
}

// BuildResult is the outcome of one chunk build (or batch flush): one mesh
// per non-empty category plus the chunk origin the build was requested for.
type BuildResult struct {
	Meshes []MergedMesh
	Origin [3]int32
}
