package meshing

import (
	"sort"

	"voxmesh/internal/palette"
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// Builder turns sparse voxel lists into merged chunk meshes using a palette
// snapshot of per-type cached geometry.
//
// A Builder is synchronous and non-reentrant: a build call runs to completion
// before the next call is accepted, and there is no cancellation primitive.
// The palette snapshot is replaced wholesale by UpdatePalette; a build never
// observes a mix of old and new entries. Hosts driving one Builder from
// multiple goroutines must serialize externally, or give each goroutine its
// own Builder sharing an immutable snapshot via UsePalette.
type Builder struct {
	pal          *palette.Palette
	accumulators map[string]*meshWriter
	batchMode    bool
}

// NewBuilder returns a Builder with an empty palette.
func NewBuilder() *Builder {
	return &Builder{pal: palette.New(nil)}
}

// UpdatePalette replaces the entire palette snapshot. Entries with missing
// fields are defaulted, never rejected.
func (b *Builder) UpdatePalette(entries []palette.Entry) {
	b.pal = palette.New(entries)
}

// UsePalette installs an already-built snapshot. Snapshots are immutable and
// may be shared between Builders.
func (b *Builder) UsePalette(p *palette.Palette) {
	if p == nil {
		p = palette.New(nil)
	}
	b.pal = p
}

// Palette returns the current snapshot.
func (b *Builder) Palette() *palette.Palette {
	return b.pal
}

// BuildChunk merges one chunk through the naive per-instance path for every
// category. Blocks are flat (x,y,z,typeIndex) int32 quadruples; the origin is
// subtracted from every voxel position so output coordinates are chunk-local.
//
// An empty block list yields an empty mesh set with the requested origin
// echoed. In batch mode the meshes are folded into the open batch instead of
// returned, and the result carries no meshes.
func (b *Builder) BuildChunk(blocks []int32, originX, originY, originZ int32) BuildResult {
	defer profiling.Track("meshing.BuildChunk")()
	return b.build(blocks, [3]int32{originX, originY, originZ}, false)
}

// BuildChunkGreedy is BuildChunk with the "solid" category routed through the
// greedy rectangle merger; all other categories still take the naive path and
// their meshes are appended unchanged.
func (b *Builder) BuildChunkGreedy(blocks []int32, originX, originY, originZ int32) BuildResult {
	defer profiling.Track("meshing.BuildChunkGreedy")()
	return b.build(blocks, [3]int32{originX, originY, originZ}, true)
}

func (b *Builder) build(blocks []int32, origin [3]int32, greedy bool) BuildResult {
	result := BuildResult{Origin: origin}
	if len(blocks) < 4 {
		return result
	}

	grid := voxel.Build(blocks)

	// Group voxels by category, then by type index. Voxels of unknown types
	// contribute no geometry.
	byCategory := make(map[string]map[int][]blockRef)
	for i := 0; i+3 < len(blocks); i += 4 {
		ti := int(blocks[i+3])
		entry := b.pal.Entry(ti)
		if entry == nil {
			continue
		}
		byType := byCategory[entry.Category]
		if byType == nil {
			byType = make(map[int][]blockRef)
			byCategory[entry.Category] = byType
		}
		byType[ti] = append(byType[ti], blockRef{x: blocks[i], y: blocks[i+1], z: blocks[i+2]})
	}

	// Categories are processed in lexicographic order so output mesh order
	// is reproducible across builds.
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		var w *meshWriter
		if greedy && cat == palette.CategorySolid {
			w = mergeGreedy(b.pal, grid, byCategory[cat], origin)
		} else {
			w = mergeNaive(b.pal, grid, cat, byCategory[cat], origin)
		}
		if w.empty() {
			continue
		}
		if b.batchMode {
			acc := b.accumulators[cat]
			if acc == nil {
				acc = newMeshWriter(cat)
				b.accumulators[cat] = acc
			}
			acc.fold(w)
		} else {
			result.Meshes = append(result.Meshes, w.finish())
		}
	}
	return result
}
