package placement

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// Palette holds the tints applied to placement visuals.
type Palette struct {
	Preview         color.NRGBA // provisional road
	DeletePreview   color.NRGBA // provisional road queued for erase
	DeleteFinal     color.NRGBA // committed road marked for deletion
	Final           color.NRGBA // committed, connected road and placed building
	Inactive        color.NRGBA // committed road with no path to the main building
	Accept          color.NRGBA // footprint frame, placement allowed
	Reject          color.NRGBA // footprint frame, placement blocked
	BuildingPreview color.NRGBA // floating main building
}

// DefaultPalette returns the stock tints.
func DefaultPalette() Palette {
	return Palette{
		Preview:         Tint(colornames.White, 0.4),
		DeletePreview:   color.NRGBA{R: 255, G: 77, B: 77, A: 102},
		DeleteFinal:     color.NRGBA{R: 255, G: 77, B: 77, A: 255},
		Final:           Tint(colornames.White, 1),
		Inactive:        Tint(colornames.Darkgray, 1),
		Accept:          Tint(colornames.Lime, 0.4),
		Reject:          Tint(colornames.Red, 0.4),
		BuildingPreview: Tint(colornames.White, 0.5),
	}
}

// Tint returns c with the given opacity in [0, 1].
func Tint(c color.RGBA, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}
