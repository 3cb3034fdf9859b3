// Package config loads the settlement configuration from settlement.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "settlement.yaml"

// DefaultBuildingSize is the side length of the main building footprint.
const DefaultBuildingSize = 5

// Load reads a settlement configuration from a YAML file. Sections missing
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return cfg, nil
}

// LoadProject loads the configuration from a project directory.
// It looks for settlement.yaml in the given directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, FileName))
}

// Default returns the stock 35×35 map with B1 and B2 explored.
func Default() *Config {
	g := grid.DefaultConfig()
	return &Config{
		Version: "0.1.0",
		Map: MapDef{
			RegionSize:     g.RegionSize,
			RegionCount:    g.RegionCount,
			TileHalfWidth:  g.HalfWidth,
			TileHalfHeight: g.HalfHeight,
			Center:         CellDef{X: g.Center.X, Y: g.Center.Y},
			Explored:       g.Explored,
		},
		MainBuilding: BuildingDef{Size: DefaultBuildingSize},
	}
}
