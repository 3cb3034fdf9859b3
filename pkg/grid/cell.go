package grid

import (
	"fmt"
	"sort"
)

// Cell is one discrete grid coordinate. Identity is the coordinate pair itself.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Orthogonal unit offsets.
var (
	Up    = Cell{0, 1}
	Down  = Cell{0, -1}
	Left  = Cell{-1, 0}
	Right = Cell{1, 0}
)

// Directions lists the four orthogonal offsets in up, down, left, right order.
var Directions = [4]Cell{Up, Down, Left, Right}

// C is a shorthand constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Add returns c + d.
func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

// Sub returns c - d.
func (c Cell) Sub(d Cell) Cell {
	return Cell{c.X - d.X, c.Y - d.Y}
}

// Less orders cells by x, then by y.
func (c Cell) Less(d Cell) bool {
	if c.X != d.X {
		return c.X < d.X
	}
	return c.Y < d.Y
}

// Neighbors returns the four orthogonal neighbours in up, down, left, right order.
func (c Cell) Neighbors() [4]Cell {
	var n [4]Cell
	for i, d := range Directions {
		n[i] = c.Add(d)
	}
	return n
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Block returns the size×size cells anchored at origin, iterating x then y.
func Block(origin Cell, size int) []Cell {
	if size <= 0 {
		return nil
	}
	cells := make([]Cell, 0, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			cells = append(cells, origin.Add(Cell{x, y}))
		}
	}
	return cells
}

// SortCells sorts cells in place by x, then y.
func SortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}
