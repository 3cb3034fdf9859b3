package placement

import (
	"image/color"
	"testing"

	"github.com/Yuminaga-Ten/Ease/pkg/autotile"
	"github.com/Yuminaga-Ten/Ease/pkg/connectivity"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

const buildingSize = 5

type visual struct {
	pos     grid.Vec2
	color   color.NRGBA
	variant autotile.Variant
}

type fakeRenderer struct {
	next      Handle
	live      map[Handle]*visual
	destroyed int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{live: make(map[Handle]*visual)}
}

func (r *fakeRenderer) CreateVisual(pos grid.Vec2) Handle {
	r.next++
	r.live[r.next] = &visual{pos: pos}
	return r.next
}

func (r *fakeRenderer) Move(h Handle, pos grid.Vec2) {
	if v, ok := r.live[h]; ok {
		v.pos = pos
	}
}

func (r *fakeRenderer) SetColor(h Handle, c color.NRGBA) {
	if v, ok := r.live[h]; ok {
		v.color = c
	}
}

func (r *fakeRenderer) SetVariant(h Handle, variant autotile.Variant) {
	if v, ok := r.live[h]; ok {
		v.variant = variant
	}
}

func (r *fakeRenderer) Destroy(h Handle) {
	if _, ok := r.live[h]; ok {
		delete(r.live, h)
		r.destroyed++
	}
}

type fakeCamera struct {
	freeDrag   bool
	edgeScroll bool
	resets     int
}

func (c *fakeCamera) SetFreeDrag(enabled bool)   { c.freeDrag = enabled }
func (c *fakeCamera) SetEdgeScroll(enabled bool) { c.edgeScroll = enabled }
func (c *fakeCamera) ResetPosition()             { c.resets++ }

type harness struct {
	deps     Deps
	grid     *grid.System
	occ      *occupancy.Index
	engine   *connectivity.Engine
	renderer *fakeRenderer
	camera   *fakeCamera
	events   []Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	g := grid.New(grid.DefaultConfig())
	occ := occupancy.NewIndex()
	h := &harness{
		grid:     g,
		occ:      occ,
		engine:   connectivity.NewEngine(occ, buildingSize),
		renderer: newFakeRenderer(),
		camera:   &fakeCamera{freeDrag: true},
	}
	h.deps = Deps{
		Grid:      g,
		Occupancy: occ,
		Roads:     h.engine,
		Renderer:  h.renderer,
		Camera:    h.camera,
		Bus:       NewBus(),
		Scheduler: NewScheduler(),
		Palette:   DefaultPalette(),
	}
	for _, k := range []EventKind{EventMainBuildingPlaced, EventMainBuildingMoved, EventRoadsCommitted, EventRoadsErased} {
		h.deps.Bus.Subscribe(k, func(e Event) { h.events = append(h.events, e) })
	}
	return h
}

// pointer returns an input frame with the pointer over the centre of c.
func (h *harness) pointer(c grid.Cell) Input {
	return Input{Pointer: h.grid.GridToWorld(c), PointerHit: true}
}

func (h *harness) click(c grid.Cell) Input {
	in := h.pointer(c)
	in.PrimaryDown = true
	return in
}

func (h *harness) eventCount(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// colorAt returns the tint of the road visual at c.
func (h *harness) colorAt(t *testing.T, r *Roads, c grid.Cell) color.NRGBA {
	t.Helper()
	hd, ok := r.handle(c)
	if !ok {
		t.Fatalf("no road visual at %v", c)
	}
	v, ok := h.renderer.live[hd]
	if !ok {
		t.Fatalf("road visual at %v was destroyed", c)
	}
	return v.color
}

func sameCells(a, b []grid.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
