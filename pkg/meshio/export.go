package meshio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"voxmesh/internal/meshing"
)

// ResultToDoc widens a build result into its transport shape.
func ResultToDoc(res meshing.BuildResult) ResultDoc {
	doc := ResultDoc{Origin: res.Origin}
	for i := range res.Meshes {
		m := &res.Meshes[i]
		md := MeshDoc{
			Category:    m.Category,
			Positions:   m.Positions,
			Normals:     m.Normals,
			UVs:         m.UVs,
			VertexCount: m.VertexCount,
			IndexFormat: 16,
		}
		if m.Indices32 != nil {
			md.IndexFormat = 32
		}
		md.Indices = make([]uint32, m.IndexCount())
		for j := range md.Indices {
			md.Indices[j] = m.Index(j)
		}
		for _, g := range m.Groups {
			md.Groups = append(md.Groups, GroupDoc{Start: g.Start, Count: g.Count, MaterialIndex: g.MaterialIndex})
		}
		doc.Meshes = append(doc.Meshes, md)
	}
	return doc
}

// WriteResultJSON writes a build result as a JSON document.
func WriteResultJSON(path string, res meshing.BuildResult) error {
	data, err := json.Marshal(ResultToDoc(res))
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write result file: %w", err)
	}
	return nil
}

// LoadResult reads a mesh document written by WriteResultJSON.
func LoadResult(path string) (*ResultDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read result file: %w", err)
	}
	var doc ResultDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal result json: %w", err)
	}
	return &doc, nil
}

// WriteOBJ exports a build result as a Wavefront OBJ file, de-quantizing
// positions and normals so the mesh can be eyeballed in external viewers.
// Each category becomes an object and each material group a usemtl switch.
func WriteOBJ(path string, res meshing.BuildResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create obj file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# voxmesh export, origin %d %d %d\n", res.Origin[0], res.Origin[1], res.Origin[2])

	vertexBase := 1 // OBJ indices are 1-based and global across objects
	for i := range res.Meshes {
		m := &res.Meshes[i]
		fmt.Fprintf(w, "o %s\n", m.Category)
		for v := 0; v < m.VertexCount; v++ {
			fmt.Fprintf(w, "v %g %g %g\n",
				meshing.DecodePosition(m.Positions[v*3]),
				meshing.DecodePosition(m.Positions[v*3+1]),
				meshing.DecodePosition(m.Positions[v*3+2]))
		}
		for v := 0; v < m.VertexCount; v++ {
			fmt.Fprintf(w, "vt %g %g\n", m.UVs[v*2], m.UVs[v*2+1])
		}
		for v := 0; v < m.VertexCount; v++ {
			fmt.Fprintf(w, "vn %g %g %g\n",
				meshing.DecodeNormal(m.Normals[v*3]),
				meshing.DecodeNormal(m.Normals[v*3+1]),
				meshing.DecodeNormal(m.Normals[v*3+2]))
		}
		for _, g := range m.Groups {
			fmt.Fprintf(w, "usemtl mat%d\n", g.MaterialIndex)
			for j := g.Start; j+2 < g.Start+g.Count; j += 3 {
				a := int(m.Index(j)) + vertexBase
				b := int(m.Index(j+1)) + vertexBase
				c := int(m.Index(j+2)) + vertexBase
				fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
			}
		}
		vertexBase += m.VertexCount
	}
	return w.Flush()
}
