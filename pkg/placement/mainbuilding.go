package placement

import (
	"log/slog"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

// BuildingState is the main building controller state.
type BuildingState int

const (
	Idle BuildingState = iota
	Placing
	Committed
	Moving
)

func (s BuildingState) String() string {
	switch s {
	case Placing:
		return "placing"
	case Committed:
		return "committed"
	case Moving:
		return "moving"
	default:
		return "idle"
	}
}

// MainBuilding places, and later moves, the single size×size main building.
type MainBuilding struct {
	d     Deps
	size  int
	state BuildingState

	building    Handle
	hasBuilding bool
	frame       []Handle // footprint tiles, one per cell

	origin grid.Cell // committed footprint origin
	anchor grid.Vec2 // world position of the building visual

	preview       grid.Cell // footprint origin under the pointer
	previewAnchor grid.Vec2
	tracking      bool // pointer has hit the map since the mode began
	valid         bool

	moveFrom       grid.Cell
	moveFromAnchor grid.Vec2
}

// NewMainBuilding creates an idle controller for a size×size building.
func NewMainBuilding(d Deps, size int) *MainBuilding {
	return &MainBuilding{d: d, size: size}
}

// State returns the current controller state.
func (m *MainBuilding) State() BuildingState {
	return m.state
}

// HasBuilt reports whether the building has been committed.
func (m *MainBuilding) HasBuilt() bool {
	return m.state == Committed || m.state == Moving
}

// Origin returns the committed footprint origin.
func (m *MainBuilding) Origin() (grid.Cell, bool) {
	return m.origin, m.HasBuilt()
}

// Size returns the footprint side length.
func (m *MainBuilding) Size() int {
	return m.size
}

// Preview returns the footprint origin under the pointer and whether it can
// be placed there. It is only meaningful while placing or moving.
func (m *MainBuilding) Preview() (grid.Cell, bool) {
	return m.preview, m.valid
}

// Footprint returns every cell of the footprint anchored at origin.
func (m *MainBuilding) Footprint(origin grid.Cell) []grid.Cell {
	return grid.Block(origin, m.size)
}

// CanPlaceAt reports whether every footprint cell at origin is free and
// buildable. Placement is all or nothing.
func (m *MainBuilding) CanPlaceAt(origin grid.Cell) bool {
	for _, c := range m.Footprint(origin) {
		if m.d.Occupancy.IsOccupied(c) {
			return false
		}
		if !m.d.Grid.IsCellBuildable(c) {
			return false
		}
	}
	return true
}

// EnterBuildMode starts placing the building. It refuses once built.
func (m *MainBuilding) EnterBuildMode() bool {
	switch m.state {
	case Placing:
		return true
	case Committed, Moving:
		return false
	}
	m.state = Placing
	m.tracking = false
	m.valid = false
	m.d.enterMode()
	slog.Debug("main building placement started")
	return true
}

// EnterMoveMode lifts the committed building so it can be placed again. Its
// footprint is freed until the move is confirmed or cancelled, and no road
// is active meanwhile.
func (m *MainBuilding) EnterMoveMode() bool {
	if m.state != Committed {
		return false
	}
	m.clear(m.origin)
	m.d.recompute()
	m.moveFrom = m.origin
	m.moveFromAnchor = m.anchor
	m.state = Moving
	m.tracking = false
	m.valid = false
	m.d.enterMode()
	slog.Debug("main building move started", "from", m.origin.String())
	return true
}

// Tick follows the pointer while placing or moving and commits on a primary
// press over a valid footprint.
func (m *MainBuilding) Tick(in Input) {
	if m.state != Placing && m.state != Moving {
		return
	}

	m.track(in)

	if !in.PrimaryDown || !m.valid {
		return
	}
	if m.state == Placing {
		m.commit()
	} else {
		m.confirmMove()
	}
}

// track moves the preview to the pointer and re-evaluates validity.
func (m *MainBuilding) track(in Input) {
	if in.PointerHit {
		cell := m.d.Grid.WorldToGrid(in.Pointer)
		half := m.size / 2
		m.preview = cell.Sub(grid.C(half, half))
		m.previewAnchor = m.d.Grid.GridToWorld(cell)
		m.tracking = true
	}
	if !m.tracking {
		m.valid = false
		return
	}

	if !m.hasBuilding {
		m.building = m.d.Renderer.CreateVisual(m.previewAnchor)
		m.hasBuilding = true
		m.d.Renderer.SetColor(m.building, m.d.Palette.BuildingPreview)
	} else {
		m.d.Renderer.Move(m.building, m.previewAnchor)
	}

	m.valid = m.CanPlaceAt(m.preview)
	m.showFrame(m.preview, m.valid)
}

func (m *MainBuilding) commit() {
	m.origin = m.preview
	m.anchor = m.previewAnchor
	m.mark(m.origin, occupancy.MainBuilding)
	m.state = Committed

	m.d.Renderer.SetColor(m.building, m.d.Palette.Final)
	m.hideFrame()
	m.d.recompute()
	m.d.Bus.Emit(Event{Kind: EventMainBuildingPlaced, Cells: m.Footprint(m.origin)})
	m.d.exitMode()
	slog.Info("main building placed", "origin", m.origin.String())
}

func (m *MainBuilding) confirmMove() {
	// already freed by EnterMoveMode
	m.clear(m.origin)
	m.origin = m.preview
	m.anchor = m.previewAnchor
	m.mark(m.origin, occupancy.MainBuilding)
	m.state = Committed

	m.d.Renderer.SetColor(m.building, m.d.Palette.Final)
	m.hideFrame()
	m.d.recompute()
	m.d.Bus.Emit(Event{Kind: EventMainBuildingMoved, Cells: m.Footprint(m.origin)})
	m.d.exitMode()
	slog.Info("main building moved", "from", m.moveFrom.String(), "to", m.origin.String())
}

// ExitAllModes cancels placing or moving. A cancelled placement discards the
// preview; a cancelled move puts the building back where it was. Calling it
// outside those states does nothing.
func (m *MainBuilding) ExitAllModes() {
	switch m.state {
	case Placing:
		if m.hasBuilding {
			m.d.Renderer.Destroy(m.building)
			m.hasBuilding = false
		}
		m.hideFrame()
		m.state = Idle
		slog.Debug("main building placement cancelled")
	case Moving:
		m.origin = m.moveFrom
		m.anchor = m.moveFromAnchor
		m.d.Renderer.Move(m.building, m.anchor)
		m.d.Renderer.SetColor(m.building, m.d.Palette.Final)
		m.mark(m.origin, occupancy.MainBuilding)
		m.hideFrame()
		m.state = Committed
		m.d.recompute()
		slog.Debug("main building move cancelled", "origin", m.origin.String())
	default:
		return
	}
	m.tracking = false
	m.valid = false
	m.d.exitMode()
}

func (m *MainBuilding) mark(origin grid.Cell, kind occupancy.Kind) {
	for _, c := range m.Footprint(origin) {
		m.d.Occupancy.MarkOccupied(c, kind)
	}
}

// clear unmarks the footprint cells still held by the main building.
func (m *MainBuilding) clear(origin grid.Cell) {
	for _, c := range m.Footprint(origin) {
		if m.d.Occupancy.OccupantKind(c) == occupancy.MainBuilding {
			m.d.Occupancy.UnmarkOccupied(c)
		}
	}
}

func (m *MainBuilding) showFrame(origin grid.Cell, ok bool) {
	tint := m.d.Palette.Reject
	if ok {
		tint = m.d.Palette.Accept
	}
	cells := m.Footprint(origin)
	if m.frame == nil {
		m.frame = make([]Handle, len(cells))
		for i, c := range cells {
			m.frame[i] = m.d.Renderer.CreateVisual(m.d.Grid.GridToWorld(c))
		}
	} else {
		for i, c := range cells {
			m.d.Renderer.Move(m.frame[i], m.d.Grid.GridToWorld(c))
		}
	}
	for _, h := range m.frame {
		m.d.Renderer.SetColor(h, tint)
	}
}

func (m *MainBuilding) hideFrame() {
	for _, h := range m.frame {
		m.d.Renderer.Destroy(h)
	}
	m.frame = nil
}
