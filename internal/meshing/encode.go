package meshing

import "math"

const (
	// PositionScale is the fixed-point scale for quantized positions. With
	// signed 16-bit storage this bounds local coordinates to roughly ±32
	// units from the chunk origin; staying inside that range is a caller
	// precondition, values beyond it wrap.
	PositionScale = 1024

	// NormalScale is the fixed-point scale for quantized unit normals.
	NormalScale = 127

	// MaxUint16Vertices is the largest vertex count representable with
	// 16-bit indices; one more and the mesh switches to 32-bit.
	MaxUint16Vertices = 65535
)

// QuantizePosition encodes one local position component.
func QuantizePosition(v float32) int16 {
	return int16(int32(math.Round(float64(v) * PositionScale)))
}

// QuantizeNormal encodes one unit normal component.
func QuantizeNormal(v float32) int8 {
	return int8(int32(math.Round(float64(v) * NormalScale)))
}

// DecodePosition reverses QuantizePosition to within 1/PositionScale.
func DecodePosition(q int16) float32 {
	return float32(q) / PositionScale
}

// DecodeNormal reverses QuantizeNormal approximately.
func DecodeNormal(q int8) float32 {
	return float32(q) / NormalScale
}

// meshWriter accumulates quantized vertex data, indices and material groups
// for one category. Both mergers write through it, and the batch accumulator
// keeps one per category across chunk folds. Indices are held 32-bit until
// finish picks the output width.
type meshWriter struct {
	category    string
	positions   []int16
	normals     []int8
	uvs         []float32
	indices     []uint32
	groups      []Group
	vertexCount int
}

func newMeshWriter(category string) *meshWriter {
	return &meshWriter{category: category}
}

func (w *meshWriter) empty() bool {
	return w.vertexCount == 0
}

// appendVertex quantizes and appends one vertex. (x,y,z) is the chunk-local
// position; the normal and UV are taken from the variant's buffers when
// present and default to (0,1,0) / (0,0) otherwise.
func (w *meshWriter) appendVertex(x, y, z float32, variant *variantAttrs, vi int) {
	w.positions = append(w.positions,
		QuantizePosition(x),
		QuantizePosition(y),
		QuantizePosition(z),
	)
	if ni := vi * 3; ni+2 < len(variant.normals) {
		w.normals = append(w.normals,
			QuantizeNormal(variant.normals[ni]),
			QuantizeNormal(variant.normals[ni+1]),
			QuantizeNormal(variant.normals[ni+2]),
		)
	} else {
		w.normals = append(w.normals, 0, NormalScale, 0)
	}
	if ui := vi * 2; ui+1 < len(variant.uvs) {
		w.uvs = append(w.uvs, variant.uvs[ui], variant.uvs[ui+1])
	} else {
		w.uvs = append(w.uvs, 0, 0)
	}
	w.vertexCount++
}

// appendRawVertex appends a vertex with explicit attributes, used by the
// greedy path where normals and UVs are synthesized per quad.
func (w *meshWriter) appendRawVertex(x, y, z float32, nx, ny, nz int8, u, v float32) {
	w.positions = append(w.positions,
		QuantizePosition(x),
		QuantizePosition(y),
		QuantizePosition(z),
	)
	w.normals = append(w.normals, nx, ny, nz)
	w.uvs = append(w.uvs, u, v)
	w.vertexCount++
}

// variantAttrs carries the source attribute buffers for appendVertex.
type variantAttrs struct {
	normals []float32
	uvs     []float32
}

// appendIndices appends local indices shifted by the given vertex offset and
// books the run under the material, coalescing with the previous group when
// the material matches.
func (w *meshWriter) appendIndices(local []uint32, vertexOffset uint32, material uint32) {
	start := len(w.indices)
	for _, idx := range local {
		w.indices = append(w.indices, idx+vertexOffset)
	}
	w.addGroupRange(start, len(local), material)
}

// addGroupRange records an index range for a material. Adjacent ranges with
// the same material merge into one group; a material change starts a new one.
func (w *meshWriter) addGroupRange(start, count int, material uint32) {
	if count == 0 {
		return
	}
	if n := len(w.groups); n > 0 {
		last := &w.groups[n-1]
		if last.MaterialIndex == material && last.Start+last.Count == start {
			last.Count += count
			return
		}
	}
	w.groups = append(w.groups, Group{Start: start, Count: count, MaterialIndex: material})
}

// fold appends another writer's buffers onto this one, offsetting indices by
// the running vertex count and group starts by the running index count. Used
// by the batch accumulator.
func (w *meshWriter) fold(src *meshWriter) {
	vertexOffset := uint32(w.vertexCount)
	indexOffset := len(w.indices)

	w.positions = append(w.positions, src.positions...)
	w.normals = append(w.normals, src.normals...)
	w.uvs = append(w.uvs, src.uvs...)
	for _, idx := range src.indices {
		w.indices = append(w.indices, idx+vertexOffset)
	}
	for _, g := range src.groups {
		w.addGroupRange(g.Start+indexOffset, g.Count, g.MaterialIndex)
	}
	w.vertexCount += src.vertexCount
}

// finish assembles the MergedMesh, selecting the index width from the final
// vertex count.
func (w *meshWriter) finish() MergedMesh {
	m := MergedMesh{
		Category:    w.category,
		Positions:   w.positions,
		Normals:     w.normals,
		UVs:         w.uvs,
		Groups:      w.groups,
		VertexCount: w.vertexCount,
	}
	if w.vertexCount > MaxUint16Vertices {
		m.Indices32 = w.indices
	} else {
		m.Indices16 = make([]uint16, len(w.indices))
		for i, idx := range w.indices {
			m.Indices16[i] = uint16(idx)
		}
	}
	return m
}
