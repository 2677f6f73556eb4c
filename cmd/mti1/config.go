package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// encodeDefaults carries fallback encode parameters loaded from an
// optional YAML config file (--config), the same way the teacher
// loads its static tocalls table with yaml.v3 in src/deviceid.go. A
// config value is used only when the corresponding flag was not set
// on the command line.
type encodeDefaults struct {
	TileID      string `yaml:"tile_id"`
	MeshKind    string `yaml:"mesh_kind"`
	DType       string `yaml:"dtype"`
	Endianness  string `yaml:"endianness"`
	Compression string `yaml:"compression"`
	Rows        uint32 `yaml:"rows"`
	Cols        uint32 `yaml:"cols"`
	Bands       uint8  `yaml:"bands"`
}

func loadEncodeDefaults(path string) (*encodeDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}
	var d encodeDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return &d, nil
}
