package palette

// CategorySolid is the category that routes voxels through the greedy mesher.
// Entries registered without a category default to it.
const CategorySolid = "solid"

// Variant is one cached geometry blob for a voxel type. Positions are xyz
// triples, normals xyz triples, UVs uv pairs, indices a triangle list.
// Normals and UVs may be shorter than the position buffer (or empty); missing
// per-vertex attributes are defaulted at encode time, not here.
type Variant struct {
	Positions     []float32
	Normals       []float32
	UVs           []float32
	Indices       []uint32
	MaterialIndex uint32
}

// VertexCount returns the number of vertices described by the position buffer.
func (v *Variant) VertexCount() int {
	return len(v.Positions) / 3
}

// Entry describes one voxel type: which of its six faces occlude neighboring
// geometry, how its voxels are meshed, and the geometry variants instantiated
// for every voxel of that type.
type Entry struct {
	Index          int
	OcclusionFlags uint32
	Category       string
	Variants       []Variant
}

// IsSolid reports whether voxels of this type take the greedy meshing path.
func (e *Entry) IsSolid() bool {
	return e.Category == CategorySolid
}

// Occludes reports whether the entry blocks geometry through the given face.
// Face indices follow the fixed direction order (-X,+X,-Y,+Y,-Z,+Z).
func (e *Entry) Occludes(face int) bool {
	return e.OcclusionFlags&(1<<uint(face)) != 0
}

// Palette is an immutable snapshot of every registered voxel type, indexed
// densely by type index. Unused indices hold nil. A snapshot is only ever
// replaced wholesale; builders never observe a partial update.
type Palette struct {
	entries []*Entry
}

// New ingests a slice of entries into a snapshot, applying per-field defaults:
// an empty category becomes CategorySolid and entries with negative indices
// are dropped. Duplicate indices keep the last entry. Malformed geometry is
// accepted as-is; the encoder defaults missing vertex attributes later.
func New(entries []Entry) *Palette {
	p := &Palette{}
	for i := range entries {
		e := entries[i]
		if e.Index < 0 {
			continue
		}
		if e.Category == "" {
			e.Category = CategorySolid
		}
		for len(p.entries) <= e.Index {
			p.entries = append(p.entries, nil)
		}
		p.entries[e.Index] = &e
	}
	return p
}

// Entry returns the entry at the given type index, or nil when the index is
// out of range or unused. Lookups never panic.
func (p *Palette) Entry(index int) *Entry {
	if p == nil || index < 0 || index >= len(p.entries) {
		return nil
	}
	return p.entries[index]
}

// Len returns the size of the dense index space (highest used index + 1).
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}
