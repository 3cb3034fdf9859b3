package config

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/placement"
)

// Config is the top-level settlement configuration.
type Config struct {
	Version      string      `yaml:"version" json:"version"`
	Map          MapDef      `yaml:"map" json:"map"`
	MainBuilding BuildingDef `yaml:"main_building" json:"main_building"`
	Palette      PaletteDef  `yaml:"palette" json:"palette"`
}

// MapDef describes the region layout and the isometric tile shape.
type MapDef struct {
	RegionSize     int      `yaml:"region_size" json:"region_size"`
	RegionCount    int      `yaml:"region_count" json:"region_count"`
	TileHalfWidth  float64  `yaml:"tile_half_width" json:"tile_half_width"`
	TileHalfHeight float64  `yaml:"tile_half_height" json:"tile_half_height"`
	Center         CellDef  `yaml:"center" json:"center"`
	Explored       []string `yaml:"explored" json:"explored"`
}

// Size returns the number of cells along one map side.
func (m MapDef) Size() int {
	return m.RegionSize * m.RegionCount
}

// CellDef is a grid cell in the config file.
type CellDef struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// BuildingDef sizes the main building footprint, in cells per side.
type BuildingDef struct {
	Size int `yaml:"size" json:"size"`
}

// PaletteDef overrides individual placement tints. Unset entries keep the
// built-in tint.
type PaletteDef struct {
	Preview         *ColorDef `yaml:"preview,omitempty" json:"preview,omitempty"`
	DeletePreview   *ColorDef `yaml:"delete_preview,omitempty" json:"delete_preview,omitempty"`
	DeleteFinal     *ColorDef `yaml:"delete_final,omitempty" json:"delete_final,omitempty"`
	Final           *ColorDef `yaml:"final,omitempty" json:"final,omitempty"`
	Inactive        *ColorDef `yaml:"inactive,omitempty" json:"inactive,omitempty"`
	Accept          *ColorDef `yaml:"accept,omitempty" json:"accept,omitempty"`
	Reject          *ColorDef `yaml:"reject,omitempty" json:"reject,omitempty"`
	BuildingPreview *ColorDef `yaml:"building_preview,omitempty" json:"building_preview,omitempty"`
}

// Entries returns every set entry keyed by its YAML name.
func (p PaletteDef) Entries() map[string]*ColorDef {
	all := map[string]*ColorDef{
		"preview":          p.Preview,
		"delete_preview":   p.DeletePreview,
		"delete_final":     p.DeleteFinal,
		"final":            p.Final,
		"inactive":         p.Inactive,
		"accept":           p.Accept,
		"reject":           p.Reject,
		"building_preview": p.BuildingPreview,
	}
	for k, v := range all {
		if v == nil {
			delete(all, k)
		}
	}
	return all
}

// ColorDef is either a named SVG color or an explicit rgb triple, with an
// optional opacity in [0, 1] that defaults to 1.
type ColorDef struct {
	Name  string   `yaml:"name,omitempty" json:"name,omitempty"`
	RGB   []uint8  `yaml:"rgb,omitempty" json:"rgb,omitempty"`
	Alpha *float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
}

// Resolve returns the tint described by d.
func (d ColorDef) Resolve() (color.NRGBA, error) {
	var base color.RGBA
	switch {
	case len(d.RGB) > 0:
		if len(d.RGB) != 3 {
			return color.NRGBA{}, fmt.Errorf("rgb needs 3 components, got %d", len(d.RGB))
		}
		base = color.RGBA{R: d.RGB[0], G: d.RGB[1], B: d.RGB[2], A: 255}
	case d.Name != "":
		c, ok := colornames.Map[strings.ToLower(d.Name)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color name %q", d.Name)
		}
		base = c
	default:
		return color.NRGBA{}, fmt.Errorf("color needs a name or rgb")
	}
	alpha := 1.0
	if d.Alpha != nil {
		alpha = *d.Alpha
	}
	return placement.Tint(base, alpha), nil
}

// GridConfig converts the map section for grid.New.
func (c *Config) GridConfig() grid.Config {
	explored := make([]string, len(c.Map.Explored))
	copy(explored, c.Map.Explored)
	return grid.Config{
		RegionSize:  c.Map.RegionSize,
		RegionCount: c.Map.RegionCount,
		HalfWidth:   c.Map.TileHalfWidth,
		HalfHeight:  c.Map.TileHalfHeight,
		Center:      grid.C(c.Map.Center.X, c.Map.Center.Y),
		Explored:    explored,
	}
}

// PlacementPalette resolves the palette overrides on top of the default tints.
func (c *Config) PlacementPalette() (placement.Palette, error) {
	p := placement.DefaultPalette()
	slots := map[string]*color.NRGBA{
		"preview":          &p.Preview,
		"delete_preview":   &p.DeletePreview,
		"delete_final":     &p.DeleteFinal,
		"final":            &p.Final,
		"inactive":         &p.Inactive,
		"accept":           &p.Accept,
		"reject":           &p.Reject,
		"building_preview": &p.BuildingPreview,
	}
	for name, def := range c.Palette.Entries() {
		tint, err := def.Resolve()
		if err != nil {
			return placement.Palette{}, fmt.Errorf("palette.%s: %w", name, err)
		}
		*slots[name] = tint
	}
	return p, nil
}
