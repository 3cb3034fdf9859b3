package placement

import (
	"image/color"
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/Yuminaga-Ten/Ease/pkg/autotile"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

// RoadMode selects what a drag does.
type RoadMode int

const (
	RoadBuild RoadMode = iota
	RoadDelete
)

func (m RoadMode) String() string {
	if m == RoadDelete {
		return "delete"
	}
	return "build"
}

// Roads paints provisional roads while the pointer is dragged and turns them
// into committed roads on Confirm.
//
// Build drags add provisional cells. A build drag that starts on a
// provisional cell only queues provisional cells for erase. Delete drags
// queue provisional cells for erase and mark committed roads for deletion.
// Queued erases apply on pointer release; marked deletions apply on Confirm.
type Roads struct {
	d Deps

	inMode bool
	mode   RoadMode

	built    map[grid.Cell]Handle
	preview  map[grid.Cell]Handle
	variants map[grid.Cell]autotile.Variant

	marked       mapset.Set[grid.Cell] // committed roads pending deletion
	pendingErase mapset.Set[grid.Cell] // provisional roads erased on release

	dragging    bool
	eraseStroke bool
	last        grid.Cell
	hasLast     bool
}

// NewRoads creates the road tool and subscribes it to connectivity changes
// so committed roads show whether they are connected.
func NewRoads(d Deps) *Roads {
	r := &Roads{
		d:            d,
		built:        make(map[grid.Cell]Handle),
		preview:      make(map[grid.Cell]Handle),
		variants:     make(map[grid.Cell]autotile.Variant),
		marked:       mapset.New[grid.Cell](),
		pendingErase: mapset.New[grid.Cell](),
	}
	d.Bus.Subscribe(EventConnectivityChanged, func(Event) {
		r.refreshActivity()
	})
	return r
}

// InMode reports whether a build or delete session is open.
func (r *Roads) InMode() bool {
	return r.inMode
}

// Mode returns the current drag mode.
func (r *Roads) Mode() RoadMode {
	return r.mode
}

// Dragging reports whether a drag gesture is in progress.
func (r *Roads) Dragging() bool {
	return r.dragging
}

// EnterBuildMode opens a session in the given mode. Switching mode during
// an open session keeps its provisional cells and marks.
func (r *Roads) EnterBuildMode(mode RoadMode) {
	r.mode = mode
	r.resetDrag()
	if r.inMode {
		return
	}
	r.inMode = true
	r.d.enterMode()
	slog.Debug("road mode entered", "mode", mode.String())
}

// Tick turns pointer edges into Press, Drag and Release.
func (r *Roads) Tick(in Input) {
	if !r.inMode {
		return
	}
	cell := in.cell(r.d.Grid)
	switch {
	case in.PrimaryDown:
		r.Press(cell)
	case in.PrimaryHeld:
		r.Drag(cell)
	}
	if in.PrimaryUp {
		r.Release()
	}
}

// Press starts a drag gesture at c and draws its first point.
func (r *Roads) Press(c grid.Cell) {
	if !r.inMode {
		return
	}
	r.resetDrag()
	r.dragging = true
	_, provisional := r.preview[c]
	r.eraseStroke = r.mode == RoadBuild && provisional
	r.Drag(c)
}

// Drag draws a point at c if the pointer reached a new cell.
func (r *Roads) Drag(c grid.Cell) {
	if !r.inMode || !r.dragging {
		return
	}
	if r.hasLast && r.last == c {
		return
	}
	r.last = c
	r.hasLast = true
	r.draw(c)
}

func (r *Roads) draw(c grid.Cell) {
	if r.mode == RoadDelete || r.eraseStroke {
		r.drawErase(c)
		return
	}

	if _, ok := r.built[c]; ok {
		return
	}
	if _, ok := r.preview[c]; ok {
		return
	}
	if r.d.Occupancy.IsOccupied(c) || !r.d.Grid.IsCellBuildable(c) {
		return
	}

	h := r.d.Renderer.CreateVisual(r.d.Grid.GridToWorld(c))
	r.d.Renderer.SetColor(h, r.d.Palette.Preview)
	r.preview[c] = h
	r.refreshAround(c)
}

func (r *Roads) drawErase(c grid.Cell) {
	if h, ok := r.preview[c]; ok {
		if !r.pendingErase.Has(c) {
			r.pendingErase.Put(c)
			r.d.Renderer.SetColor(h, r.d.Palette.DeletePreview)
		}
		return
	}
	if r.mode != RoadDelete {
		return
	}
	if h, ok := r.built[c]; ok && !r.marked.Has(c) {
		r.marked.Put(c)
		r.d.Renderer.SetColor(h, r.d.Palette.DeleteFinal)
	}
}

// Release ends the drag, erases provisional cells queued during it and
// recomputes connectivity. Committed roads marked for deletion stay marked.
func (r *Roads) Release() {
	if !r.inMode {
		return
	}
	r.resetDrag()
	if erased := r.applyErase(); len(erased) > 0 {
		r.d.Bus.Emit(Event{Kind: EventRoadsErased, Cells: erased})
	}
	r.d.recompute()
}

// Confirm applies the session: queued erases, marked deletions, then every
// remaining provisional cell becomes a committed road. The session closes
// afterwards. It returns false when no session is open.
func (r *Roads) Confirm() bool {
	if !r.inMode {
		return false
	}

	erased := r.applyErase()

	removed := cellsOf(r.marked)
	for _, c := range removed {
		h, ok := r.built[c]
		if !ok {
			continue
		}
		r.d.Renderer.Destroy(h)
		delete(r.built, c)
		delete(r.variants, c)
		if r.d.Occupancy.OccupantKind(c) == occupancy.Road {
			r.d.Occupancy.UnmarkOccupied(c)
		}
	}

	var committed []grid.Cell
	for _, c := range sortedKeys(r.preview) {
		h := r.preview[c]
		delete(r.preview, c)
		// the cell may have been taken after it was painted
		if r.d.Occupancy.IsOccupied(c) || !r.d.Grid.IsCellBuildable(c) {
			r.d.Renderer.Destroy(h)
			delete(r.variants, c)
			removed = append(removed, c)
			continue
		}
		r.d.Occupancy.MarkOccupied(c, occupancy.Road)
		r.d.Renderer.SetColor(h, r.d.Palette.Final)
		r.built[c] = h
		committed = append(committed, c)
	}

	for _, c := range removed {
		r.refreshAround(c)
	}
	for _, c := range committed {
		r.refreshAround(c)
	}

	r.marked = mapset.New[grid.Cell]()
	r.resetDrag()
	r.inMode = false

	r.d.recompute()
	r.d.Bus.Emit(Event{Kind: EventRoadsCommitted, Cells: committed})
	r.d.exitMode()

	slog.Info("roads confirmed",
		"committed", len(committed),
		"deleted", len(removed),
		"erased", len(erased),
		"total", len(r.built),
	)
	return true
}

// ExitBuildMode closes the session without confirming. Queued erases are
// applied, unconfirmed paint is discarded, and deletion marks are dropped
// with their committed roads restored.
func (r *Roads) ExitBuildMode() {
	if !r.inMode {
		return
	}

	r.applyErase()

	discarded := sortedKeys(r.preview)
	for _, c := range discarded {
		r.d.Renderer.Destroy(r.preview[c])
		delete(r.preview, c)
		delete(r.variants, c)
	}
	for _, c := range discarded {
		r.refreshAround(c)
	}

	r.marked = mapset.New[grid.Cell]()
	r.resetDrag()
	r.inMode = false

	r.d.recompute()
	r.d.exitMode()
	slog.Debug("road mode exited", "discarded", len(discarded))
}

// applyErase destroys every provisional cell queued for erase.
func (r *Roads) applyErase() []grid.Cell {
	erased := cellsOf(r.pendingErase)
	r.pendingErase = mapset.New[grid.Cell]()
	for _, c := range erased {
		h, ok := r.preview[c]
		if !ok {
			continue
		}
		r.d.Renderer.Destroy(h)
		delete(r.preview, c)
		delete(r.variants, c)
		if _, committed := r.built[c]; !committed && r.d.Occupancy.OccupantKind(c) == occupancy.Road {
			r.d.Occupancy.UnmarkOccupied(c)
		}
		r.refreshAround(c)
	}
	return erased
}

func (r *Roads) resetDrag() {
	r.dragging = false
	r.eraseStroke = false
	r.hasLast = false
}

// handle returns the visual of a committed or provisional road at c.
func (r *Roads) handle(c grid.Cell) (Handle, bool) {
	if h, ok := r.built[c]; ok {
		return h, true
	}
	h, ok := r.preview[c]
	return h, ok
}

func (r *Roads) hasRoad(c grid.Cell) bool {
	_, ok := r.handle(c)
	return ok
}

// refreshAround re-selects the variant of c and its four neighbours.
func (r *Roads) refreshAround(c grid.Cell) {
	n := c.Neighbors()
	area := append([]grid.Cell{c}, n[:]...)
	for _, p := range area {
		h, ok := r.handle(p)
		if !ok {
			continue
		}
		v := autotile.VariantAt(p, r.hasRoad)
		r.variants[p] = v
		r.d.Renderer.SetVariant(h, v)
	}
}

// refreshActivity tints committed roads by whether they reach the main
// building. Roads marked for deletion keep their deletion tint.
func (r *Roads) refreshActivity() {
	for c, h := range r.built {
		if r.marked.Has(c) {
			continue
		}
		r.d.Renderer.SetColor(h, r.tint(c))
	}
}

func (r *Roads) tint(c grid.Cell) color.NRGBA {
	if r.d.Roads.IsActive(c) {
		return r.d.Palette.Final
	}
	return r.d.Palette.Inactive
}

// Built returns the committed roads.
func (r *Roads) Built() []grid.Cell {
	return sortedKeys(r.built)
}

// Provisional returns the painted, unconfirmed roads.
func (r *Roads) Provisional() []grid.Cell {
	return sortedKeys(r.preview)
}

// MarkedForDeletion returns committed roads awaiting Confirm.
func (r *Roads) MarkedForDeletion() []grid.Cell {
	return cellsOf(r.marked)
}

// PendingErase returns provisional roads that the next release erases.
func (r *Roads) PendingErase() []grid.Cell {
	return cellsOf(r.pendingErase)
}

// Variant returns the autotile variant shown at c.
func (r *Roads) Variant(c grid.Cell) (autotile.Variant, bool) {
	v, ok := r.variants[c]
	return v, ok
}

// Variants returns a copy of every shown variant.
func (r *Roads) Variants() map[grid.Cell]autotile.Variant {
	out := make(map[grid.Cell]autotile.Variant, len(r.variants))
	for c, v := range r.variants {
		out[c] = v
	}
	return out
}

func sortedKeys(m map[grid.Cell]Handle) []grid.Cell {
	out := make([]grid.Cell, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	grid.SortCells(out)
	return out
}

func cellsOf(s mapset.Set[grid.Cell]) []grid.Cell {
	out := make([]grid.Cell, 0, s.Size())
	s.Each(func(c grid.Cell) {
		out = append(out, c)
	})
	grid.SortCells(out)
	return out
}
