package session

import (
	"log/slog"

	"github.com/Yuminaga-Ten/Ease/pkg/placement"
)

// CameraState is an in-process camera that records what the placement
// controllers ask of it.
type CameraState struct {
	FreeDrag   bool `json:"free_drag"`
	EdgeScroll bool `json:"edge_scroll"`
	Resets     int  `json:"resets"`
}

func newCamera() *CameraState {
	return &CameraState{FreeDrag: true}
}

func (c *CameraState) SetFreeDrag(enabled bool)   { c.FreeDrag = enabled }
func (c *CameraState) SetEdgeScroll(enabled bool) { c.EdgeScroll = enabled }

func (c *CameraState) ResetPosition() {
	c.Resets++
	slog.Debug("camera reset", "count", c.Resets)
}

// MenuState mirrors the build menu buttons. The build button is shown until
// the main building exists; the move button only afterwards.
type MenuState struct {
	BuildVisible bool `json:"build_visible"`
	MoveVisible  bool `json:"move_visible"`

	hasBuilt func() bool
}

func newMenu(bus *placement.Bus, hasBuilt func() bool) *MenuState {
	m := &MenuState{hasBuilt: hasBuilt}
	m.Refresh()
	refresh := func(placement.Event) { m.Refresh() }
	bus.Subscribe(placement.EventMainBuildingPlaced, refresh)
	bus.Subscribe(placement.EventMainBuildingMoved, refresh)
	return m
}

// Refresh re-queries the building state.
func (m *MenuState) Refresh() {
	built := m.hasBuilt()
	m.BuildVisible = !built
	m.MoveVisible = built
}
