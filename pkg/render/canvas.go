// Package render draws a headless snapshot of the settlement with gg.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/Yuminaga-Ten/Ease/pkg/autotile"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/placement"
)

// Visual is one live cell visual.
type Visual struct {
	Handle     placement.Handle `json:"handle"`
	Pos        grid.Vec2        `json:"pos"`
	Color      color.NRGBA      `json:"color"`
	Variant    autotile.Variant `json:"variant"`
	HasVariant bool             `json:"has_variant"`
}

// Options controls the output image.
type Options struct {
	Scale  float64 // pixels per world unit
	Margin float64 // pixels around the map
	Labels bool    // draw region names
}

// DefaultOptions gives 32×16 pixel tiles.
func DefaultOptions() Options {
	return Options{Scale: 32, Margin: 16, Labels: true}
}

var (
	exploredTile   = colornames.Darkolivegreen
	unexploredTile = colornames.Dimgray
	tileEdge       = colornames.Black
	roadSpoke      = colornames.Saddlebrown
	labelColor     = colornames.White
)

// Canvas records visuals created by the placement controllers and draws
// them over the map. It implements placement.Renderer.
type Canvas struct {
	grid    *grid.System
	opts    Options
	next    placement.Handle
	visuals map[placement.Handle]*Visual
}

// NewCanvas creates an empty canvas for g.
func NewCanvas(g *grid.System, opts Options) *Canvas {
	return &Canvas{
		grid:    g,
		opts:    opts,
		visuals: make(map[placement.Handle]*Visual),
	}
}

// CreateVisual adds an opaque black tile at pos.
func (c *Canvas) CreateVisual(pos grid.Vec2) placement.Handle {
	c.next++
	c.visuals[c.next] = &Visual{Handle: c.next, Pos: pos, Color: color.NRGBA{A: 255}}
	return c.next
}

// Move re-centres a visual. Unknown handles are ignored, as in the
// other Renderer methods.
func (c *Canvas) Move(h placement.Handle, pos grid.Vec2) {
	if v, ok := c.visuals[h]; ok {
		v.Pos = pos
	}
}

// SetColor sets the fill tint.
func (c *Canvas) SetColor(h placement.Handle, col color.NRGBA) {
	if v, ok := c.visuals[h]; ok {
		v.Color = col
	}
}

// SetVariant makes the visual draw road spokes for variant.
func (c *Canvas) SetVariant(h placement.Handle, variant autotile.Variant) {
	if v, ok := c.visuals[h]; ok {
		v.Variant = variant
		v.HasVariant = true
	}
}

// Destroy removes the visual.
func (c *Canvas) Destroy(h placement.Handle) {
	delete(c.visuals, h)
}

// Len returns the number of live visuals.
func (c *Canvas) Len() int {
	return len(c.visuals)
}

// Visuals returns a copy of every live visual ordered by handle.
func (c *Canvas) Visuals() []Visual {
	out := make([]Visual, 0, len(c.visuals))
	for _, v := range c.visuals {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// frame maps world coordinates to pixels.
type frame struct {
	min, max grid.Vec2
	scale    float64
	margin   float64
}

func (f frame) px(p grid.Vec2) (float64, float64) {
	return f.margin + (p.X-f.min.X)*f.scale, f.margin + (f.max.Y-p.Y)*f.scale
}

func (c *Canvas) frame() frame {
	n := c.grid.MapSize() - 1
	left := c.grid.GridToWorld(grid.C(0, 0))
	right := c.grid.GridToWorld(grid.C(n, n))
	top := c.grid.GridToWorld(grid.C(0, n))
	bottom := c.grid.GridToWorld(grid.C(n, 0))

	// half a cell step on each axis reaches the outer diamond tips
	half := c.grid.GridToWorld(grid.C(1, 1)).Sub(c.grid.GridToWorld(grid.C(0, 0))).Scale(0.5)
	vert := c.grid.GridToWorld(grid.C(0, 1)).Sub(c.grid.GridToWorld(grid.C(1, 0))).Scale(0.5)
	return frame{
		min:    grid.V(left.X-half.X, bottom.Y-vert.Y),
		max:    grid.V(right.X+half.X, top.Y+vert.Y),
		scale:  c.opts.Scale,
		margin: c.opts.Margin,
	}
}

// diamond traces the outline of the tile centred at p.
func (c *Canvas) diamond(dc *gg.Context, f frame, p grid.Vec2) {
	o := c.grid.GridToWorld(grid.C(0, 0))
	dx := c.grid.GridToWorld(grid.C(1, 1)).Sub(o).Scale(0.5) // right tip
	dy := c.grid.GridToWorld(grid.C(0, 1)).Sub(c.grid.GridToWorld(grid.C(1, 0))).Scale(0.5)

	tips := []grid.Vec2{p.Add(dx), p.Add(dy), p.Sub(dx), p.Sub(dy)}
	dc.NewSubPath()
	for i, t := range tips {
		x, y := f.px(t)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// Draw renders the map and every live visual.
func (c *Canvas) Draw() image.Image {
	f := c.frame()
	w, _ := f.px(f.max)
	_, h := f.px(f.min)
	dc := gg.NewContext(int(w+f.margin), int(h+f.margin))
	dc.SetColor(colornames.Black)
	dc.Clear()

	n := c.grid.MapSize()
	dc.SetLineWidth(1)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			cell := grid.C(x, y)
			c.diamond(dc, f, c.grid.GridToWorld(cell))
			if c.grid.IsCellBuildable(cell) {
				dc.SetColor(exploredTile)
			} else {
				dc.SetColor(unexploredTile)
			}
			dc.FillPreserve()
			dc.SetColor(tileEdge)
			dc.Stroke()
		}
	}

	for _, v := range c.Visuals() {
		c.diamond(dc, f, v.Pos)
		dc.SetColor(v.Color)
		dc.Fill()
		if v.HasVariant {
			c.spokes(dc, f, v)
		}
	}

	if c.opts.Labels {
		c.labels(dc, f)
	}
	return dc.Image()
}

// spokes draws a line from the centre toward every connected side.
func (c *Canvas) spokes(dc *gg.Context, f frame, v Visual) {
	up, down, left, right := v.Variant.Sides()
	sides := []struct {
		on  bool
		dir grid.Cell
	}{{up, grid.Up}, {down, grid.Down}, {left, grid.Left}, {right, grid.Right}}

	o := c.grid.GridToWorld(grid.C(0, 0))
	cx, cy := f.px(v.Pos)
	dc.SetColor(roadSpoke)
	dc.SetLineWidth(c.opts.Scale / 12)
	for _, s := range sides {
		if !s.on {
			continue
		}
		step := c.grid.GridToWorld(s.dir).Sub(o).Scale(0.5)
		x, y := f.px(v.Pos.Add(step))
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
	}
	if v.Variant == autotile.VariantIsolated {
		dc.DrawCircle(cx, cy, c.opts.Scale/16)
		dc.Fill()
	}
	dc.SetLineWidth(1)
}

func (c *Canvas) labels(dc *gg.Context, f frame) {
	half := float64(c.grid.RegionSize()-1) / 2
	dc.SetColor(labelColor)
	for _, r := range c.grid.Regions() {
		centre := c.grid.GridToWorld(r.Origin).Add(
			c.grid.GridToWorld(grid.C(1, 1)).Sub(c.grid.GridToWorld(grid.C(0, 0))).Scale(half),
		)
		x, y := f.px(centre)
		dc.DrawStringAnchored(r.Name, x, y, 0.5, 0.5)
	}
}

// WritePNG encodes the current drawing to w.
func (c *Canvas) WritePNG(w io.Writer) error {
	dc := gg.NewContextForImage(c.Draw())
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the current drawing to path.
func (c *Canvas) SavePNG(path string) error {
	if err := gg.SavePNG(path, c.Draw()); err != nil {
		return fmt.Errorf("saving png: %w", err)
	}
	return nil
}
