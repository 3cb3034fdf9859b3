// Package connectivity computes which road cells are reachable from the main
// building through orthogonally adjacent road cells.
package connectivity

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

// Occupancy is the read side of the occupancy index.
type Occupancy interface {
	OccupantKind(c grid.Cell) occupancy.Kind
	AllOccupied() map[grid.Cell]occupancy.Kind
}

// Engine holds the active-road snapshot from the last Recompute.
type Engine struct {
	occ       Occupancy
	size      int
	active    mapset.Set[grid.Cell]
	origin    grid.Cell
	hasOrigin bool
}

// NewEngine creates an engine for a main building of size×size cells.
func NewEngine(occ Occupancy, footprintSize int) *Engine {
	return &Engine{
		occ:    occ,
		size:   footprintSize,
		active: mapset.New[grid.Cell](),
	}
}

// Recompute replaces the active set with the roads reachable from the main
// building perimeter. Without a main building the set is empty.
// It returns the number of active roads.
func (e *Engine) Recompute() int {
	active := mapset.New[grid.Cell]()
	e.active = active
	e.hasOrigin = false

	origin, ok := e.findOrigin()
	if !ok {
		slog.Debug("road connectivity recomputed", "main_building", false, "active", 0)
		return 0
	}
	e.origin = origin
	e.hasOrigin = true

	visited := mapset.New[grid.Cell]()
	var queue []grid.Cell
	for _, c := range Perimeter(origin, e.size) {
		if e.isRoad(c) && !visited.Has(c) {
			visited.Put(c)
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		active.Put(current)

		for _, next := range current.Neighbors() {
			if visited.Has(next) || !e.isRoad(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	slog.Debug("road connectivity recomputed", "origin", origin.String(), "active", active.Size())
	return active.Size()
}

// findOrigin returns the lexicographically smallest main building cell.
func (e *Engine) findOrigin() (grid.Cell, bool) {
	var origin grid.Cell
	found := false
	for c, k := range e.occ.AllOccupied() {
		if k != occupancy.MainBuilding {
			continue
		}
		if !found || c.Less(origin) {
			origin = c
			found = true
		}
	}
	return origin, found
}

func (e *Engine) isRoad(c grid.Cell) bool {
	return e.occ.OccupantKind(c) == occupancy.Road
}

// IsActive reports whether c was reachable at the last Recompute.
func (e *Engine) IsActive(c grid.Cell) bool {
	return e.active.Has(c)
}

// Active returns the active roads sorted by x then y.
func (e *Engine) Active() []grid.Cell {
	out := make([]grid.Cell, 0, e.active.Size())
	e.active.Each(func(c grid.Cell) {
		out = append(out, c)
	})
	grid.SortCells(out)
	return out
}

// Len returns the number of active roads.
func (e *Engine) Len() int {
	return e.active.Size()
}

// Origin returns the main building origin used by the last Recompute.
func (e *Engine) Origin() (grid.Cell, bool) {
	return e.origin, e.hasOrigin
}

// Perimeter returns the ring one cell outside a size×size block anchored at
// origin, without its four diagonal corners.
func Perimeter(origin grid.Cell, size int) []grid.Cell {
	if size <= 0 {
		return nil
	}
	cells := make([]grid.Cell, 0, 4*size)
	for x := -1; x <= size; x++ {
		for y := -1; y <= size; y++ {
			inside := x >= 0 && x < size && y >= 0 && y < size
			corner := (x == -1 || x == size) && (y == -1 || y == size)
			if inside || corner {
				continue
			}
			cells = append(cells, origin.Add(grid.C(x, y)))
		}
	}
	return cells
}
