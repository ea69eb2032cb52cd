package meshing

import (
	"sort"

	"voxmesh/internal/profiling"
)

// StartBatch opens batch mode: subsequent chunk builds fold their per-category
// buffers into running accumulators instead of returning meshes, with indices
// offset by each category's cumulative vertex count. Starting a batch while
// one is already open discards the prior batch's unflushed data.
func (b *Builder) StartBatch() {
	b.accumulators = make(map[string]*meshWriter)
	b.batchMode = true
}

// FinishBatch closes batch mode and emits one merged mesh per non-empty
// category, in lexicographic category order. Accumulated state is cleared.
// The result origin is (0,0,0): a batch spans several chunk origins and has
// no single one of its own.
func (b *Builder) FinishBatch() BuildResult {
	defer profiling.Track("meshing.FinishBatch")()

	result := BuildResult{}
	categories := make([]string, 0, len(b.accumulators))
	for cat := range b.accumulators {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		acc := b.accumulators[cat]
		if acc.empty() {
			continue
		}
		result.Meshes = append(result.Meshes, acc.finish())
	}

	b.accumulators = nil
	b.batchMode = false
	return result
}

// ClearBatch drops all accumulated state without producing output and leaves
// batch mode.
func (b *Builder) ClearBatch() {
	b.accumulators = nil
	b.batchMode = false
}

// IsBatchMode reports whether a batch is currently open.
func (b *Builder) IsBatchMode() bool {
	return b.batchMode
}
