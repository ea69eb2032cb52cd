package meshio

// GeometryDoc is the JSON shape of one cached geometry variant.
type GeometryDoc struct {
	Positions     []float32 `json:"positions"`
	Normals       []float32 `json:"normals"`
	UVs           []float32 `json:"uvs"`
	Indices       []uint32  `json:"indices"`
	MaterialIndex uint32    `json:"materialIndex"`
}

// PaletteEntryDoc is the JSON shape of one palette entry. Missing fields keep
// their zero values and are defaulted during ingest (occlusionFlags 0,
// category "solid").
type PaletteEntryDoc struct {
	Index          int           `json:"index"`
	OcclusionFlags uint32        `json:"occlusionFlags"`
	Category       string        `json:"category"`
	Geometries     []GeometryDoc `json:"geometries"`
}

// ChunkDoc is the JSON shape of one chunk: a flat (x,y,z,typeIndex) quadruple
// list plus the chunk origin. Documents without an id get one assigned at
// load time.
type ChunkDoc struct {
	ID     string   `json:"id"`
	Origin [3]int32 `json:"origin"`
	Blocks []int32  `json:"blocks"`
}

// GroupDoc is the JSON shape of one material draw group.
type GroupDoc struct {
	Start         int    `json:"start"`
	Count         int    `json:"count"`
	MaterialIndex uint32 `json:"materialIndex"`
}

// MeshDoc is the JSON shape of one merged mesh. Indices are widened to 32-bit
// for transport; IndexFormat records the width the core selected.
type MeshDoc struct {
	Category    string     `json:"category"`
	Positions   []int16    `json:"positions"`
	Normals     []int8     `json:"normals"`
	UVs         []float32  `json:"uvs"`
	Indices     []uint32   `json:"indices"`
	IndexFormat int        `json:"indexFormat"`
	Groups      []GroupDoc `json:"groups"`
	VertexCount int        `json:"vertexCount"`
}

// ResultDoc is the JSON shape of one build result.
type ResultDoc struct {
	Meshes []MeshDoc `json:"meshes"`
	Origin [3]int32  `json:"origin"`
}
