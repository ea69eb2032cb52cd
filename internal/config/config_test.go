package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxmesh.toml")
	body := `
palette = "palette.json"
chunks = ["a.json", "b.json"]
format = "obj"
out_dir = "out"
greedy = true
workers = 8
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Palette != "palette.json" || len(s.Chunks) != 2 {
		t.Fatalf("inputs not loaded: %+v", s)
	}
	if s.Format != "obj" || s.OutDir != "out" || !s.Greedy || s.Workers != 8 {
		t.Fatalf("options not loaded: %+v", s)
	}
	if s.Batch || s.Watch {
		t.Fatalf("unset options should keep defaults: %+v", s)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("workers = [[["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed toml")
	}
}

func TestNormalizeClamps(t *testing.T) {
	s := &Settings{Format: "gltf", Workers: -3}
	s.Normalize()
	if s.Format != "json" {
		t.Fatalf("format %q, want json", s.Format)
	}
	if s.Workers != 1 {
		t.Fatalf("workers %d, want 1", s.Workers)
	}
	if s.OutDir != "." {
		t.Fatalf("out dir %q, want .", s.OutDir)
	}

	s.Workers = 500
	s.Normalize()
	if s.Workers != 64 {
		t.Fatalf("workers %d, want 64", s.Workers)
	}
}
