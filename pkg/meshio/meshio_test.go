package meshio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxmesh/internal/meshing"
)

func TestLoadPalette(t *testing.T) {
	entries, err := LoadPalette("testdata-io/palette.json")
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].OcclusionFlags != 63 || entries[0].Category != "solid" {
		t.Errorf("Entry 0 loaded wrong: %+v", entries[0])
	}
	if len(entries[0].Variants) != 1 {
		t.Fatalf("Expected 1 variant on entry 0, got %d", len(entries[0].Variants))
	}
	if entries[0].Variants[0].MaterialIndex != 2 {
		t.Errorf("Expected material 2, got %d", entries[0].Variants[0].MaterialIndex)
	}

	// Entry 1's only variant references a vertex that does not exist and must
	// be dropped during load.
	if len(entries[1].Variants) != 0 {
		t.Errorf("Expected malformed variant to be dropped, got %d variants", len(entries[1].Variants))
	}
}

func TestLoadChunk(t *testing.T) {
	doc, err := LoadChunk("testdata-io/chunk.json")
	if err != nil {
		t.Fatalf("Failed to load chunk: %v", err)
	}
	if doc.ID != "chunk-7" {
		t.Errorf("Expected id 'chunk-7', got '%s'", doc.ID)
	}
	if doc.Origin != [3]int32{16, 0, -16} {
		t.Errorf("Expected origin [16 0 -16], got %v", doc.Origin)
	}
	if len(doc.Blocks) != 8 {
		t.Errorf("Expected 8 block values, got %d", len(doc.Blocks))
	}
}

func TestLoadChunkTruncatesPartialQuadruple(t *testing.T) {
	doc, err := LoadChunk("testdata-io/chunk_partial.json")
	if err != nil {
		t.Fatalf("Failed to load chunk: %v", err)
	}
	if len(doc.Blocks) != 4 {
		t.Errorf("Expected trailing values truncated to 4, got %d", len(doc.Blocks))
	}
	if doc.ID == "" {
		t.Error("Expected a generated id for a document without one")
	}
}

func TestWriteAndLoadResult(t *testing.T) {
	res := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "out.mesh.json")
	if err := WriteResultJSON(path, res); err != nil {
		t.Fatalf("Failed to write result: %v", err)
	}

	doc, err := LoadResult(path)
	if err != nil {
		t.Fatalf("Failed to load result back: %v", err)
	}
	if doc.Origin != res.Origin {
		t.Errorf("Expected origin %v, got %v", res.Origin, doc.Origin)
	}
	if len(doc.Meshes) != 1 {
		t.Fatalf("Expected 1 mesh, got %d", len(doc.Meshes))
	}
	m := doc.Meshes[0]
	src := res.Meshes[0]
	if m.VertexCount != src.VertexCount || len(m.Indices) != src.IndexCount() {
		t.Errorf("Mesh shrank in transit: %d/%d vs %d/%d",
			m.VertexCount, len(m.Indices), src.VertexCount, src.IndexCount())
	}
	if m.IndexFormat != 16 {
		t.Errorf("Expected index format 16, got %d", m.IndexFormat)
	}
	for i := range m.Indices {
		if m.Indices[i] != src.Index(i) {
			t.Fatalf("Index %d changed: %d vs %d", i, m.Indices[i], src.Index(i))
		}
	}
}

func TestWriteOBJ(t *testing.T) {
	res := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "out.obj")
	if err := WriteOBJ(path, res); err != nil {
		t.Fatalf("Failed to write obj: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)

	if !strings.Contains(body, "o solid\n") {
		t.Error("Expected an object per category")
	}
	if !strings.Contains(body, "usemtl mat0\n") {
		t.Error("Expected a usemtl switch per group")
	}
	src := res.Meshes[0]
	if got := strings.Count(body, "\nv "); got != src.VertexCount {
		t.Errorf("Expected %d position lines, got %d", src.VertexCount, got)
	}
	if got := strings.Count(body, "\nf "); got != src.IndexCount()/3 {
		t.Errorf("Expected %d face lines, got %d", src.IndexCount()/3, got)
	}
}

// buildTestResult meshes one cube through the real pipeline.
func buildTestResult(t *testing.T) meshing.BuildResult {
	t.Helper()
	entries, err := LoadPalette("testdata-io/palette.json")
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}
	b := meshing.NewBuilder()
	b.UpdatePalette(entries)
	res := b.BuildChunk([]int32{0, 0, 0, 0}, 0, 0, 0)
	if len(res.Meshes) == 0 {
		t.Fatal("Test palette produced no geometry")
	}
	return res
}

func TestMain(m *testing.M) {
	os.MkdirAll("testdata-io", 0755)

	// Entry 0 is a single valid quad; entry 1 carries an out-of-range index.
	writeTestFile("testdata-io/palette.json", `[
		{
			"index": 0,
			"occlusionFlags": 63,
			"category": "solid",
			"geometries": [ {
				"positions": [0,0,0, 1,0,0, 1,1,0, 0,1,0],
				"normals": [0,0,-1, 0,0,-1, 0,0,-1, 0,0,-1],
				"uvs": [0,0, 1,0, 1,1, 0,1],
				"indices": [0,1,2, 0,2,3],
				"materialIndex": 2
			} ]
		},
		{
			"index": 1,
			"geometries": [ {
				"positions": [0,0,0, 1,0,0, 1,1,0],
				"indices": [0,1,5]
			} ]
		}
	]`)

	writeTestFile("testdata-io/chunk.json", `{
		"id": "chunk-7",
		"origin": [16, 0, -16],
		"blocks": [16,0,-16,0, 17,0,-16,1]
	}`)

	writeTestFile("testdata-io/chunk_partial.json", `{
		"origin": [0, 0, 0],
		"blocks": [0,0,0,0, 1,0]
	}`)

	exitCode := m.Run()
	os.RemoveAll("testdata-io")
	os.Exit(exitCode)
}

func writeTestFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		panic(err)
	}
}
