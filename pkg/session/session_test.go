package session

import (
	"image/color"
	"testing"

	"github.com/Yuminaga-Ten/Ease/pkg/autotile"
	"github.com/Yuminaga-Ten/Ease/pkg/config"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
	"github.com/Yuminaga-Ten/Ease/pkg/placement"
	"github.com/Yuminaga-Ten/Ease/pkg/scene"
)

// countingRenderer only tracks how many visuals are alive.
type countingRenderer struct {
	next placement.Handle
	live map[placement.Handle]bool
}

func (r *countingRenderer) CreateVisual(grid.Vec2) placement.Handle {
	r.next++
	r.live[r.next] = true
	return r.next
}
func (r *countingRenderer) Move(placement.Handle, grid.Vec2)              {}
func (r *countingRenderer) SetColor(placement.Handle, color.NRGBA)        {}
func (r *countingRenderer) SetVariant(placement.Handle, autotile.Variant) {}
func (r *countingRenderer) Destroy(h placement.Handle)                    { delete(r.live, h) }

func newSession(t *testing.T, explored ...string) (*Session, *countingRenderer) {
	t.Helper()
	cfg := config.Default()
	if len(explored) > 0 {
		cfg.Map.Explored = explored
	}
	r := &countingRenderer{live: make(map[placement.Handle]bool)}
	s, err := New(cfg, r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, r
}

func hover(s *Session, c grid.Cell) placement.Input {
	return placement.Input{Pointer: s.Grid.GridToWorld(c), PointerHit: true}
}

func press(s *Session, c grid.Cell) placement.Input {
	in := hover(s, c)
	in.PrimaryDown = true
	return in
}

func drag(s *Session, c grid.Cell) placement.Input {
	in := hover(s, c)
	in.PrimaryHeld = true
	return in
}

func release(s *Session, c grid.Cell) placement.Input {
	in := hover(s, c)
	in.PrimaryUp = true
	return in
}

func keys(k ...placement.Key) placement.Input {
	return placement.Input{Keys: k}
}

// stroke drags the pointer over cells and lets go on the last one.
func stroke(s *Session, cells ...grid.Cell) {
	s.Tick(press(s, cells[0]))
	for _, c := range cells[1:] {
		s.Tick(drag(s, c))
	}
	s.Tick(release(s, cells[len(cells)-1]))
}

func placeBuilding(t *testing.T, s *Session, origin grid.Cell) {
	t.Helper()
	if !s.EnterBuildingMode() {
		t.Fatal("EnterBuildingMode refused")
	}
	half := s.Building.Size() / 2
	s.Tick(press(s, origin.Add(grid.C(half, half))))
	if got, ok := s.Building.Origin(); !ok || got != origin {
		t.Fatalf("building origin = %v %v, want %v", got, ok, origin)
	}
}

func assertHealthy(t *testing.T, s *Session) {
	t.Helper()
	r := s.Audit()
	if !r.Valid || len(r.Warnings) != 0 {
		t.Errorf("audit: %s", r.Summary)
		for _, e := range append(r.Errors, r.Warnings...) {
			t.Logf("  %s: %s", e.Location(), e.Message)
		}
	}
}

func TestNoBuildingNoActiveRoads(t *testing.T) {
	s, _ := newSession(t)
	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, grid.C(10, 22), grid.C(11, 22), grid.C(12, 22))
	s.Tick(keys(placement.KeyConfirm))

	if got := s.Occupancy.Cells(occupancy.Road); len(got) != 3 {
		t.Fatalf("roads = %v, want 3", got)
	}
	if s.Connectivity.Len() != 0 {
		t.Errorf("active = %v, want empty", s.Connectivity.Active())
	}
	assertHealthy(t, s)
}

func TestRoadNextToBuildingIsActive(t *testing.T) {
	s, _ := newSession(t, "A4")
	placeBuilding(t, s, grid.C(0, 0))

	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, grid.C(5, 2))
	s.Tick(keys(placement.KeyConfirm))

	if !s.Connectivity.IsActive(grid.C(5, 2)) {
		t.Error("(5,2) should be active")
	}
	if s.Connectivity.IsActive(grid.C(5, 5)) {
		t.Error("(5,5) was never placed and must not be active")
	}
	assertHealthy(t, s)
}

func TestDeleteUpdatesNeighbourPattern(t *testing.T) {
	s, _ := newSession(t)
	keep, drop := grid.C(10, 22), grid.C(10, 23)

	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, keep, drop)
	s.Tick(keys(placement.KeyConfirm))

	s.EnterRoadMode(placement.RoadDelete)
	stroke(s, drop)
	if !s.Occupancy.IsOccupied(drop) {
		t.Fatal("deletion must wait for confirm")
	}
	s.Tick(keys(placement.KeyConfirm))

	if s.Occupancy.IsOccupied(drop) {
		t.Errorf("%v still occupied", drop)
	}
	g := s.Scene()
	e, ok := g.Find("road-10-22")
	if !ok {
		t.Fatal("surviving road missing from scene")
	}
	if e.Metadata["pattern"] != "0000" {
		t.Errorf("surviving pattern = %v, want 0000", e.Metadata["pattern"])
	}
	assertHealthy(t, s)
}

func TestRedragOnProvisionalErases(t *testing.T) {
	s, r := newSession(t)
	before := s.Occupancy.Len()

	s.EnterRoadMode(placement.RoadBuild)
	c := grid.C(10, 22)
	stroke(s, c)
	stroke(s, c)

	if len(s.Roads.Provisional()) != 0 {
		t.Errorf("Provisional = %v, want empty", s.Roads.Provisional())
	}
	if s.Occupancy.Len() != before {
		t.Errorf("occupancy len = %d, want %d", s.Occupancy.Len(), before)
	}
	if len(r.live) != 0 {
		t.Errorf("live visuals = %d, want 0", len(r.live))
	}
	assertHealthy(t, s)
}

func TestTickRunsDeferredResetNextTick(t *testing.T) {
	s, _ := newSession(t)
	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, grid.C(10, 22))

	s.Tick(keys(placement.KeyConfirm))
	if s.Camera.Resets != 0 {
		t.Fatalf("reset ran in the confirming tick")
	}
	if !s.Camera.FreeDrag || s.Camera.EdgeScroll {
		t.Errorf("camera free=%v edge=%v, want true/false", s.Camera.FreeDrag, s.Camera.EdgeScroll)
	}
	s.Tick(placement.Input{})
	if s.Camera.Resets != 1 {
		t.Errorf("resets = %d, want 1", s.Camera.Resets)
	}
}

func TestCancelKeyRestoresMove(t *testing.T) {
	s, _ := newSession(t)
	origin := grid.C(7, 21)
	placeBuilding(t, s, origin)

	if !s.EnterMoveMode() {
		t.Fatal("EnterMoveMode refused")
	}
	s.Tick(hover(s, grid.C(10, 17)))
	s.Tick(keys(placement.KeyCancel))

	if s.Building.State() != placement.Committed {
		t.Errorf("state = %v, want committed", s.Building.State())
	}
	if got := s.Occupancy.Cells(occupancy.MainBuilding); len(got) != 25 || got[0] != origin {
		t.Errorf("footprint = %v, want 25 cells from %v", got, origin)
	}
	assertHealthy(t, s)
}

func TestMenuFollowsBuilding(t *testing.T) {
	s, _ := newSession(t)
	if !s.Menu.BuildVisible || s.Menu.MoveVisible {
		t.Errorf("menu before build = %+v", *s.Menu)
	}
	placeBuilding(t, s, grid.C(7, 21))
	if s.Menu.BuildVisible || !s.Menu.MoveVisible {
		t.Errorf("menu after build = %+v", *s.Menu)
	}
	if s.EnterBuildingMode() {
		t.Error("EnterBuildingMode should refuse once built")
	}
}

func TestModesAreExclusive(t *testing.T) {
	s, _ := newSession(t)
	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, grid.C(10, 22))

	s.EnterBuildingMode()
	if s.Roads.InMode() {
		t.Error("entering building mode should close the road session")
	}
	if len(s.Roads.Provisional()) != 0 {
		t.Error("unconfirmed paint should be discarded")
	}

	s.EnterRoadMode(placement.RoadBuild)
	if s.Building.State() != placement.Idle {
		t.Errorf("building state = %v, want idle", s.Building.State())
	}
}

func TestMoveBuildingReconnectsRoads(t *testing.T) {
	s, _ := newSession(t)
	placeBuilding(t, s, grid.C(7, 21))

	road := grid.C(8, 20) // below the footprint's bottom edge, in B2
	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, road)
	s.Tick(keys(placement.KeyConfirm))
	if !s.Connectivity.IsActive(road) {
		t.Fatal("road should be active next to the building")
	}

	s.EnterMoveMode()
	s.Tick(press(s, grid.C(10, 25))) // origin (8,23)
	if s.Connectivity.IsActive(road) {
		t.Error("road should be cut off after the move")
	}
	assertHealthy(t, s)
}

func TestSceneExport(t *testing.T) {
	s, _ := newSession(t)
	placeBuilding(t, s, grid.C(7, 21))
	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, grid.C(12, 23), grid.C(13, 23))

	g := s.Scene()
	if n := len(g.Groups.EntityTypes[scene.EntityMainBuilding]); n != 25 {
		t.Errorf("main building entities = %d, want 25", n)
	}
	if n := len(g.Groups.EntityTypes[scene.EntityRoadPreview]); n != 2 {
		t.Errorf("provisional road entities = %d, want 2", n)
	}
	if r := scene.ValidateGraph(g); !r.Valid {
		t.Errorf("scene invalid: %s", r.Summary)
	}
}

// confirm arrives while an erase stroke is still held down
func TestConfirmMidDragDestroysPendingErase(t *testing.T) {
	s, r := newSession(t)
	keep, erase := grid.C(10, 22), grid.C(11, 22)

	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, keep, erase)
	s.Tick(press(s, erase))
	if got := s.Roads.PendingErase(); len(got) != 1 || got[0] != erase {
		t.Fatalf("PendingErase = %v, want [%v]", got, erase)
	}

	s.Tick(keys(placement.KeyConfirm))

	if got := s.Roads.Built(); len(got) != 1 || got[0] != keep {
		t.Errorf("Built = %v, want [%v]", got, keep)
	}
	if len(s.Roads.Provisional()) != 0 {
		t.Errorf("Provisional = %v, want empty", s.Roads.Provisional())
	}
	if s.Occupancy.Len() != 1 || s.Occupancy.IsOccupied(erase) {
		t.Errorf("occupied = %v, want only %v", s.Occupancy.AllOccupied(), keep)
	}
	if len(r.live) != 1 {
		t.Errorf("live visuals = %d, want 1", len(r.live))
	}
	if v, _ := s.Roads.Variant(keep); v != autotile.VariantIsolated {
		t.Errorf("variant = %v, want %v", v, autotile.VariantIsolated)
	}
	assertHealthy(t, s)
}

func TestCancelMidDragDiscardsEverything(t *testing.T) {
	s, r := newSession(t)
	first, second := grid.C(10, 22), grid.C(11, 22)

	s.EnterRoadMode(placement.RoadBuild)
	stroke(s, first, second)
	s.Tick(press(s, second))

	s.Tick(keys(placement.KeyCancel))

	if s.Roads.InMode() {
		t.Error("cancel should close the road session")
	}
	if len(s.Roads.Provisional()) != 0 || len(s.Roads.PendingErase()) != 0 {
		t.Errorf("provisional=%v pending=%v, want both empty", s.Roads.Provisional(), s.Roads.PendingErase())
	}
	if s.Occupancy.Len() != 0 {
		t.Errorf("occupied = %v, want empty", s.Occupancy.AllOccupied())
	}
	if len(r.live) != 0 {
		t.Errorf("live visuals = %d, want 0", len(r.live))
	}
	assertHealthy(t, s)
}

func TestAuditFindsLeakedRoadMark(t *testing.T) {
	s, _ := newSession(t)
	leak := grid.C(12, 23)
	s.Occupancy.MarkOccupied(leak, occupancy.Road)

	r := s.Audit()
	if r.Valid {
		t.Fatal("audit should reject a road mark without a committed road")
	}
	if got := r.Cells(); len(got) != 1 || got[0] != leak {
		t.Errorf("Cells = %v, want [%v]", got, leak)
	}
	if r.Errors[0].Occupant != occupancy.Road {
		t.Errorf("Occupant = %v, want road", r.Errors[0].Occupant)
	}
}
