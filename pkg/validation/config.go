package validation

import (
	"fmt"

	"github.com/Yuminaga-Ten/Ease/pkg/config"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
)

// maxRegionCount is bounded by the single column letter in region names.
const maxRegionCount = 26

// ValidateConfig performs schema validation on a parsed settlement config.
// It checks ranges and names before any session is built from it.
func ValidateConfig(c *config.Config) *Report {
	r := NewReport()

	validateVersion(c, r)
	mapOK := validateMap(c, r)
	if mapOK {
		validateExplored(c, r)
		validateBuilding(c, r)
	}
	validatePalette(c, r)

	return r
}

func validateVersion(c *config.Config, r *Report) {
	if c.Version == "" {
		r.AddWarning(Result{
			Level:    LevelSchema,
			Message:  "version is not set",
			Path:     "version",
			Expected: "semantic version, e.g. 0.1.0",
		})
	}
}

// validateMap reports whether the map section is usable by the later checks.
func validateMap(c *config.Config, r *Report) bool {
	m := c.Map
	ok := true

	if m.RegionSize <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "region_size must be greater than 0",
			Path:        "map.region_size",
			ActualValue: m.RegionSize,
			Expected:    "> 0",
		})
		ok = false
	}
	if m.RegionCount <= 0 || m.RegionCount > maxRegionCount {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "region_count out of range",
			Path:        "map.region_count",
			ActualValue: m.RegionCount,
			Expected:    fmt.Sprintf("1-%d", maxRegionCount),
		})
		ok = false
	}
	if m.TileHalfWidth <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "tile_half_width must be greater than 0",
			Path:        "map.tile_half_width",
			ActualValue: m.TileHalfWidth,
			Expected:    "> 0",
		})
		ok = false
	}
	if m.TileHalfHeight <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "tile_half_height must be greater than 0",
			Path:        "map.tile_half_height",
			ActualValue: m.TileHalfHeight,
			Expected:    "> 0",
		})
		ok = false
	}
	if !ok {
		return false
	}

	size := m.Size()
	if m.Center.X < 0 || m.Center.Y < 0 || m.Center.X >= size || m.Center.Y >= size {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "center cell lies outside the map",
			Path:        "map.center",
			ActualValue: grid.C(m.Center.X, m.Center.Y).String(),
			Expected:    fmt.Sprintf("0-%d on both axes", size-1),
		})
	}
	return true
}

func validateExplored(c *config.Config, r *Report) {
	sys := grid.New(c.GridConfig())
	seen := make(map[string]bool, len(c.Map.Explored))

	for i, name := range c.Map.Explored {
		path := fmt.Sprintf("map.explored[%d]", i)
		if _, ok := sys.Region(name); !ok {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("unknown region %q", name),
				Path:        path,
				ActualValue: name,
				Expected:    fmt.Sprintf("A0-%s", lastRegion(c.Map.RegionCount)),
			})
			continue
		}
		if seen[name] {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("region %q listed more than once", name),
				Path:        path,
				ActualValue: name,
			})
		}
		seen[name] = true
	}

	if len(seen) == 0 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "no explored regions, nothing can be built",
			Path:        "map.explored",
			Suggestions: []string{"explore at least one region, e.g. B1"},
		})
	}
}

func lastRegion(count int) string {
	return fmt.Sprintf("%c%d", rune('A'+count-1), count-1)
}

func validateBuilding(c *config.Config, r *Report) {
	size := c.MainBuilding.Size
	if size <= 0 || size > c.Map.Size() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "main_building.size out of range",
			Path:        "main_building.size",
			ActualValue: size,
			Expected:    fmt.Sprintf("1-%d", c.Map.Size()),
		})
		return
	}
	if size > c.Map.RegionSize {
		r.AddInfo(Result{
			Level:       LevelSchema,
			Message:     "main building is larger than a region and needs adjacent explored regions",
			Path:        "main_building.size",
			ActualValue: size,
		})
	}
}

func validatePalette(c *config.Config, r *Report) {
	for name, def := range c.Palette.Entries() {
		path := "palette." + name
		if _, err := def.Resolve(); err != nil {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     err.Error(),
				Path:        path,
				ActualValue: def.Name,
			})
		}
		if def.Alpha != nil && (*def.Alpha < 0 || *def.Alpha > 1) {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     "alpha is clamped to [0, 1]",
				Path:        path + ".alpha",
				ActualValue: *def.Alpha,
				Expected:    "0-1",
			})
		}
	}
}
