package placement

import "github.com/Yuminaga-Ten/Ease/pkg/grid"

// Key is a named key press.
type Key int

const (
	KeyConfirm Key = iota + 1
	KeyCancel
)

func (k Key) String() string {
	switch k {
	case KeyConfirm:
		return "confirm"
	case KeyCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Input is the pointer and key state sampled once per tick.
type Input struct {
	Pointer     grid.Vec2 `json:"pointer"`
	PointerHit  bool      `json:"pointer_hit"`  // pointer ray hit the ground plane
	PrimaryDown bool      `json:"primary_down"` // pressed this tick
	PrimaryHeld bool      `json:"primary_held"`
	PrimaryUp   bool      `json:"primary_up"` // released this tick
	Keys        []Key     `json:"keys,omitempty"`
}

// Pressed reports whether k was pressed this tick.
func (in Input) Pressed(k Key) bool {
	for _, key := range in.Keys {
		if key == k {
			return true
		}
	}
	return false
}

// offMap is returned for pointers that miss the ground plane.
var offMap = grid.C(-1, -1)

// cell resolves the pointer to a grid cell.
func (in Input) cell(g *grid.System) grid.Cell {
	if !in.PointerHit {
		return offMap
	}
	return g.WorldToGrid(in.Pointer)
}
