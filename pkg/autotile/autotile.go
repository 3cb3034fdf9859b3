// Package autotile picks the road sprite variant for a cell from which of its
// four orthogonal neighbours are also roads.
package autotile

import (
	"strings"

	"github.com/boljen/go-bitmap"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
)

// Variant is a road sprite id in [0, 11].
type Variant int

const (
	VariantDownRight        Variant = 0  // 0101
	VariantUpLeft           Variant = 1  // 1010
	VariantLeftRight        Variant = 2  // 0011
	VariantDownLeft         Variant = 3  // 0110
	VariantUpRight          Variant = 4  // 1001
	VariantUpDown           Variant = 5  // 1100
	VariantTeeUpDownLeft    Variant = 6  // 1110
	VariantTeeUpLeftRight   Variant = 7  // 1011
	VariantTeeDownLeftRight Variant = 8  // 0111
	VariantTeeUpDownRight   Variant = 9  // 1101
	VariantCross            Variant = 10 // 1111
	VariantIsolated         Variant = 11 // every other pattern
)

// VariantCount is the number of distinct variants.
const VariantCount = 12

// Bit positions in the neighbour mask, in pattern order.
const (
	bitUp = iota
	bitDown
	bitLeft
	bitRight
	maskBits
)

var variants = map[string]Variant{
	"0101": VariantDownRight,
	"1010": VariantUpLeft,
	"0011": VariantLeftRight,
	"0110": VariantDownLeft,
	"1001": VariantUpRight,
	"1100": VariantUpDown,
	"1110": VariantTeeUpDownLeft,
	"1011": VariantTeeUpLeftRight,
	"0111": VariantTeeDownLeftRight,
	"1101": VariantTeeUpDownRight,
	"1111": VariantCross,
}

var patterns = func() map[Variant]string {
	m := make(map[Variant]string, len(variants)+1)
	for p, v := range variants {
		m[v] = p
	}
	m[VariantIsolated] = "0000"
	return m
}()

// Mask packs the four neighbour flags into a bitmap.
func Mask(up, down, left, right bool) bitmap.Bitmap {
	bm := bitmap.New(maskBits)
	bm.Set(bitUp, up)
	bm.Set(bitDown, down)
	bm.Set(bitLeft, left)
	bm.Set(bitRight, right)
	return bm
}

// Pattern returns the neighbour key in up, down, left, right order, with "1"
// for a present neighbour, e.g. "0101".
func Pattern(up, down, left, right bool) string {
	bm := Mask(up, down, left, right)
	var sb strings.Builder
	for i := 0; i < maskBits; i++ {
		if bm.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// SelectVariant maps a neighbour pattern to its sprite variant. Patterns
// with fewer than two neighbours fall back to VariantIsolated.
func SelectVariant(up, down, left, right bool) Variant {
	if v, ok := variants[Pattern(up, down, left, right)]; ok {
		return v
	}
	return VariantIsolated
}

// Pattern returns the canonical neighbour pattern drawn by v.
func (v Variant) Pattern() string {
	if p, ok := patterns[v]; ok {
		return p
	}
	return "0000"
}

// Sides decodes the canonical pattern of v into neighbour flags.
func (v Variant) Sides() (up, down, left, right bool) {
	p := v.Pattern()
	return p[bitUp] == '1', p[bitDown] == '1', p[bitLeft] == '1', p[bitRight] == '1'
}

// Neighborhood samples the four sides of c with present.
func Neighborhood(c grid.Cell, present func(grid.Cell) bool) (up, down, left, right bool) {
	n := c.Neighbors()
	return present(n[0]), present(n[1]), present(n[2]), present(n[3])
}

// VariantAt is SelectVariant applied to the neighbourhood of c.
func VariantAt(c grid.Cell, present func(grid.Cell) bool) Variant {
	return SelectVariant(Neighborhood(c, present))
}
