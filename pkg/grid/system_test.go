package grid

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestGridToWorldCenterCell(t *testing.T) {
	s := New(DefaultConfig())
	p := s.GridToWorld(C(17, 17))
	if !approxEqual(p.X, 0, tolerance) || !approxEqual(p.Y, 0, tolerance) {
		t.Errorf("GridToWorld(17,17) = %v, want origin", p)
	}
}

func TestGridToWorldAxes(t *testing.T) {
	s := New(DefaultConfig())
	origin := s.GridToWorld(C(0, 0))

	// +x moves right and down, +y moves right and up.
	dx := s.GridToWorld(C(1, 0)).Sub(origin)
	if !approxEqual(dx.X, 0.5, tolerance) || !approxEqual(dx.Y, -0.25, tolerance) {
		t.Errorf("x step = %v, want (0.5,-0.25)", dx)
	}
	dy := s.GridToWorld(C(0, 1)).Sub(origin)
	if !approxEqual(dy.X, 0.5, tolerance) || !approxEqual(dy.Y, 0.25, tolerance) {
		t.Errorf("y step = %v, want (0.5,0.25)", dy)
	}
}

func TestWorldToGridRoundTrip(t *testing.T) {
	s := New(DefaultConfig())
	for x := 0; x < s.MapSize(); x++ {
		for y := 0; y < s.MapSize(); y++ {
			c := C(x, y)
			if got := s.WorldToGrid(s.GridToWorld(c)); got != c {
				t.Fatalf("WorldToGrid(GridToWorld(%v)) = %v", c, got)
			}
		}
	}
}

func TestWorldToGridInsideDiamond(t *testing.T) {
	s := New(DefaultConfig())
	c := C(10, 20)
	center := s.GridToWorld(c)

	offsets := []Vec2{
		V(0.2*0.5, 0.3*0.25),
		V(-0.45*0.5, 0.45*0.25),
		V(0.9*0.5, 0),
		V(0, -0.95*0.25),
	}
	for _, off := range offsets {
		if got := s.WorldToGrid(center.Add(off)); got != c {
			t.Errorf("WorldToGrid(center+%v) = %v, want %v", off, got, c)
		}
	}
}

func TestWorldToGridNeighbourDiamonds(t *testing.T) {
	s := New(DefaultConfig())
	c := C(10, 20)
	center := s.GridToWorld(c)

	cases := []struct {
		off  Vec2
		want Cell
	}{
		{V(1.1*0.5, 0), C(11, 21)},        // past the right tip
		{V(-1.1*0.5, 0), C(9, 19)},        // past the left tip
		{V(0, 1.1*0.25), C(9, 21)},        // past the top tip
		{V(0, -1.1*0.25), C(11, 19)},      // past the bottom tip
		{V(0.3*0.5, 0.8*0.25), C(10, 21)}, // across the upper-right edge
	}
	for _, tc := range cases {
		if got := s.WorldToGrid(center.Add(tc.off)); got != tc.want {
			t.Errorf("WorldToGrid(center+%v) = %v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestIsValidGrid(t *testing.T) {
	s := New(DefaultConfig())
	valid := []Cell{C(0, 0), C(34, 34), C(0, 34), C(17, 3)}
	for _, c := range valid {
		if !s.IsValidGrid(c) {
			t.Errorf("IsValidGrid(%v) = false, want true", c)
		}
	}
	invalid := []Cell{C(-1, 0), C(0, -1), C(35, 0), C(0, 35)}
	for _, c := range invalid {
		if s.IsValidGrid(c) {
			t.Errorf("IsValidGrid(%v) = true, want false", c)
		}
	}
}

func TestRegionName(t *testing.T) {
	s := New(DefaultConfig())
	cases := []struct {
		x, y int
		want string
	}{
		{0, 0, "A4"},
		{6, 6, "A4"},
		{7, 0, "B4"},
		{7, 21, "B1"},
		{13, 27, "B1"},
		{10, 14, "B2"},
		{34, 34, "E0"},
		{28, 0, "E4"},
	}
	for _, tc := range cases {
		if got := s.RegionName(tc.x, tc.y); got != tc.want {
			t.Errorf("RegionName(%d,%d) = %q, want %q", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRegionTable(t *testing.T) {
	s := New(DefaultConfig())
	regions := s.Regions()
	if len(regions) != 25 {
		t.Fatalf("regions = %d, want 25", len(regions))
	}
	if regions[0].Name != "A0" || regions[24].Name != "E4" {
		t.Errorf("regions not sorted: first %q last %q", regions[0].Name, regions[24].Name)
	}

	b1, ok := s.Region("B1")
	if !ok {
		t.Fatal("missing region B1")
	}
	if !b1.Explored || !b1.Buildable {
		t.Errorf("B1 explored=%v buildable=%v, want both true", b1.Explored, b1.Buildable)
	}
	if b1.Origin != C(7, 21) {
		t.Errorf("B1 origin = %v, want (7,21)", b1.Origin)
	}

	c3, _ := s.Region("C3")
	if c3.Buildable {
		t.Error("C3 should not be buildable")
	}
}

func TestIsRegionBuildable(t *testing.T) {
	s := New(DefaultConfig())
	if !s.IsRegionBuildable("B2") {
		t.Error("B2 should be buildable")
	}
	if s.IsRegionBuildable("A0") {
		t.Error("A0 should not be buildable")
	}
	if s.IsRegionBuildable("Z9") {
		t.Error("unknown region should not be buildable")
	}
	if s.IsRegionBuildable("") {
		t.Error("empty region name should not be buildable")
	}
}

func TestIsCellBuildable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Explored = []string{"A4"}
	s := New(cfg)

	if !s.IsCellBuildable(C(0, 0)) {
		t.Error("(0,0) in A4 should be buildable")
	}
	// Truncating division puts x=-1 in column A; the bounds check must reject it.
	if s.RegionName(-1, 0) != "A4" {
		t.Fatalf("RegionName(-1,0) = %q, want A4", s.RegionName(-1, 0))
	}
	if s.IsCellBuildable(C(-1, 0)) {
		t.Error("(-1,0) is off the map and must not be buildable")
	}
}

func TestBlock(t *testing.T) {
	cells := Block(C(2, 3), 2)
	want := []Cell{C(2, 3), C(2, 4), C(3, 3), C(3, 4)}
	if len(cells) != len(want) {
		t.Fatalf("Block len = %d, want %d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("Block[%d] = %v, want %v", i, cells[i], want[i])
		}
	}
	if Block(C(0, 0), 0) != nil {
		t.Error("Block with size 0 should be nil")
	}
}

func TestSortCells(t *testing.T) {
	cells := []Cell{C(2, 1), C(1, 5), C(2, 0), C(1, 2)}
	SortCells(cells)
	want := []Cell{C(1, 2), C(1, 5), C(2, 0), C(2, 1)}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, cells[i], want[i])
		}
	}
}
