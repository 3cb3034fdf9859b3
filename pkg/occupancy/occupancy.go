package occupancy

import (
	"fmt"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
)

// Kind identifies what occupies a cell.
type Kind int

const (
	None Kind = iota
	MainBuilding
	Road
)

func (k Kind) String() string {
	switch k {
	case MainBuilding:
		return "main_building"
	case Road:
		return "road"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*k = None
	case "main_building":
		*k = MainBuilding
	case "road":
		*k = Road
	default:
		return fmt.Errorf("unknown occupant kind %q", text)
	}
	return nil
}

// Index maps grid cells to their occupant kind. It enforces no placement
// rules; callers validate footprints and regions before marking.
type Index struct {
	cells map[grid.Cell]Kind
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{cells: make(map[grid.Cell]Kind)}
}

// MarkOccupied records kind at c, overwriting any previous occupant.
// Marking None is the same as UnmarkOccupied.
func (x *Index) MarkOccupied(c grid.Cell, kind Kind) {
	if kind == None {
		x.UnmarkOccupied(c)
		return
	}
	x.cells[c] = kind
}

// UnmarkOccupied clears c. Clearing an empty cell is a no-op.
func (x *Index) UnmarkOccupied(c grid.Cell) {
	delete(x.cells, c)
}

// IsOccupied reports whether anything occupies c.
func (x *Index) IsOccupied(c grid.Cell) bool {
	_, ok := x.cells[c]
	return ok
}

// OccupantKind returns the occupant of c, or None.
func (x *Index) OccupantKind(c grid.Cell) Kind {
	return x.cells[c]
}

// AllOccupied returns a copy of every occupied cell and its kind.
func (x *Index) AllOccupied() map[grid.Cell]Kind {
	out := make(map[grid.Cell]Kind, len(x.cells))
	for c, k := range x.cells {
		out[c] = k
	}
	return out
}

// Cells returns the cells occupied by kind, sorted by x then y.
func (x *Index) Cells(kind Kind) []grid.Cell {
	var out []grid.Cell
	for c, k := range x.cells {
		if k == kind {
			out = append(out, c)
		}
	}
	grid.SortCells(out)
	return out
}

// Len returns the number of occupied cells.
func (x *Index) Len() int {
	return len(x.cells)
}
