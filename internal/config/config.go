package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the CLI tool configuration, loadable from a TOML file and
// overridable by flags.
type Settings struct {
	// Palette is the path to the palette JSON document.
	Palette string `toml:"palette"`
	// Chunks lists chunk JSON documents to build.
	Chunks []string `toml:"chunks"`
	// Format selects mesh export: "json" or "obj".
	Format string `toml:"format"`
	// OutDir receives the exported mesh files.
	OutDir string `toml:"out_dir"`
	// Greedy routes solid voxels through the greedy mesher.
	Greedy bool `toml:"greedy"`
	// Batch folds all chunks into one accumulated result.
	Batch bool `toml:"batch"`
	// Watch rebuilds whenever an input file changes.
	Watch bool `toml:"watch"`
	// Workers sets the size of the build worker pool.
	Workers int `toml:"workers"`
	// PreviewDir, when set, receives top-down chunk preview PNGs.
	PreviewDir string `toml:"preview_dir"`
	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// Default returns the settings used when no config file is given.
func Default() *Settings {
	return &Settings{
		Format:  "json",
		OutDir:  ".",
		Workers: 1,
	}
}

// Load reads settings from a TOML file on top of the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}
	s.Normalize()
	return s, nil
}

// Normalize clamps settings to usable values.
func (s *Settings) Normalize() {
	if s.Format != "obj" {
		s.Format = "json"
	}
	if s.OutDir == "" {
		s.OutDir = "."
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	if s.Workers > 64 {
		s.Workers = 64
	}
}
