package validation

import (
	"testing"

	"github.com/Yuminaga-Ten/Ease/pkg/config"
)

func hasPath(results []Result, path string) bool {
	for _, r := range results {
		if r.Path == path {
			return true
		}
	}
	return false
}

func TestValidateConfigDefault(t *testing.T) {
	r := ValidateConfig(config.Default())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

func TestValidateConfigRegionSize(t *testing.T) {
	c := config.Default()
	c.Map.RegionSize = 0
	r := ValidateConfig(c)
	if r.Valid {
		t.Error("expected invalid for region_size 0")
	}
	if !hasPath(r.Errors, "map.region_size") {
		t.Errorf("missing map.region_size error: %v", r.Errors)
	}
}

func TestValidateConfigRegionCount(t *testing.T) {
	c := config.Default()
	c.Map.RegionCount = 27
	r := ValidateConfig(c)
	if !hasPath(r.Errors, "map.region_count") {
		t.Errorf("missing map.region_count error: %v", r.Errors)
	}
}

func TestValidateConfigTileShape(t *testing.T) {
	c := config.Default()
	c.Map.TileHalfHeight = -0.25
	r := ValidateConfig(c)
	if !hasPath(r.Errors, "map.tile_half_height") {
		t.Errorf("missing map.tile_half_height error: %v", r.Errors)
	}
}

func TestValidateConfigCenterOutside(t *testing.T) {
	c := config.Default()
	c.Map.Center = config.CellDef{X: 40, Y: 0}
	r := ValidateConfig(c)
	if !r.Valid {
		t.Error("an off-map center is a warning, not an error")
	}
	if !hasPath(r.Warnings, "map.center") {
		t.Errorf("missing map.center warning: %v", r.Warnings)
	}
}

func TestValidateConfigUnknownRegion(t *testing.T) {
	c := config.Default()
	c.Map.Explored = []string{"B1", "F9"}
	r := ValidateConfig(c)
	if r.Valid {
		t.Error("expected invalid for unknown region")
	}
	if !hasPath(r.Errors, "map.explored[1]") {
		t.Errorf("missing map.explored[1] error: %v", r.Errors)
	}
}

func TestValidateConfigDuplicateRegion(t *testing.T) {
	c := config.Default()
	c.Map.Explored = []string{"B1", "B1"}
	r := ValidateConfig(c)
	if !r.Valid {
		t.Error("duplicates should only warn")
	}
	if !hasPath(r.Warnings, "map.explored[1]") {
		t.Errorf("missing duplicate warning: %v", r.Warnings)
	}
}

func TestValidateConfigNothingExplored(t *testing.T) {
	c := config.Default()
	c.Map.Explored = nil
	r := ValidateConfig(c)
	if !hasPath(r.Warnings, "map.explored") {
		t.Errorf("missing map.explored warning: %v", r.Warnings)
	}
}

func TestValidateConfigBuildingSize(t *testing.T) {
	c := config.Default()
	c.MainBuilding.Size = 0
	if r := ValidateConfig(c); !hasPath(r.Errors, "main_building.size") {
		t.Errorf("missing main_building.size error: %v", r.Errors)
	}

	c.MainBuilding.Size = 9
	r := ValidateConfig(c)
	if !r.Valid {
		t.Errorf("size 9 should be valid, got %v", r.Errors)
	}
	if !hasPath(r.Info, "main_building.size") {
		t.Error("expected an info note for a building larger than a region")
	}
}

func TestValidateConfigPalette(t *testing.T) {
	c := config.Default()
	over := 1.5
	c.Palette.Accept = &config.ColorDef{Name: "chartreuse", Alpha: &over}
	c.Palette.Reject = &config.ColorDef{Name: "not-a-color"}
	r := ValidateConfig(c)
	if !hasPath(r.Errors, "palette.reject") {
		t.Errorf("missing palette.reject error: %v", r.Errors)
	}
	if !hasPath(r.Warnings, "palette.accept.alpha") {
		t.Errorf("missing palette.accept.alpha warning: %v", r.Warnings)
	}
}

func TestValidateConfigSkipsDependentChecks(t *testing.T) {
	c := config.Default()
	c.Map.RegionSize = -1
	c.Map.Explored = []string{"Q7"}
	r := ValidateConfig(c)
	if hasPath(r.Errors, "map.explored[0]") {
		t.Error("explored names should not be checked against a broken map")
	}
}
