package meshio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"voxmesh/internal/logx"
	"voxmesh/internal/palette"
)

// LoadPalette reads a palette JSON document and converts it into strongly
// typed entries. Malformed geometry variants (indices referencing vertices
// that do not exist) are dropped with a warning; everything else degrades to
// defaults during palette ingest.
func LoadPalette(path string) ([]palette.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file: %w", err)
	}

	var docs []PaletteEntryDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("could not unmarshal palette json: %w", err)
	}

	entries := make([]palette.Entry, 0, len(docs))
	for _, doc := range docs {
		entry := palette.Entry{
			Index:          doc.Index,
			OcclusionFlags: doc.OcclusionFlags,
			Category:       doc.Category,
		}
		for gi, geom := range doc.Geometries {
			vertexCount := uint32(len(geom.Positions) / 3)
			ok := true
			for _, idx := range geom.Indices {
				if idx >= vertexCount {
					logx.Warn("palette entry %d geometry %d: index %d out of range (%d vertices), dropping variant",
						doc.Index, gi, idx, vertexCount)
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			entry.Variants = append(entry.Variants, palette.Variant{
				Positions:     geom.Positions,
				Normals:       geom.Normals,
				UVs:           geom.UVs,
				Indices:       geom.Indices,
				MaterialIndex: geom.MaterialIndex,
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadChunk reads a chunk JSON document. A trailing partial quadruple is
// truncated with a warning, and documents without an id get a fresh one.
func LoadChunk(path string) (*ChunkDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read chunk file: %w", err)
	}

	var doc ChunkDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal chunk json: %w", err)
	}

	if rem := len(doc.Blocks) % 4; rem != 0 {
		logx.Warn("chunk %s: %d trailing block values ignored (not a full x,y,z,type quadruple)", path, rem)
		doc.Blocks = doc.Blocks[:len(doc.Blocks)-rem]
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return &doc, nil
}
