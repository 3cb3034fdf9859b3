// Package session wires the grid, occupancy index, connectivity engine and
// both placement controllers into one ticked settlement.
package session

import (
	"fmt"
	"log/slog"

	"github.com/Yuminaga-Ten/Ease/pkg/config"
	"github.com/Yuminaga-Ten/Ease/pkg/connectivity"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
	"github.com/Yuminaga-Ten/Ease/pkg/placement"
	"github.com/Yuminaga-Ten/Ease/pkg/scene"
)

// Session owns all mutable settlement state. It is not safe for concurrent
// use; callers serialize Tick and the action methods.
type Session struct {
	cfg *config.Config

	Grid         *grid.System
	Occupancy    *occupancy.Index
	Connectivity *connectivity.Engine
	Bus          *placement.Bus
	Scheduler    *placement.Scheduler
	Camera       *CameraState
	Menu         *MenuState

	Building *placement.MainBuilding
	Roads    *placement.Roads

	ticks int
}

// New builds a session from cfg, drawing through r.
func New(cfg *config.Config, r placement.Renderer) (*Session, error) {
	palette, err := cfg.PlacementPalette()
	if err != nil {
		return nil, fmt.Errorf("resolving palette: %w", err)
	}

	s := &Session{
		cfg:       cfg,
		Grid:      grid.New(cfg.GridConfig()),
		Occupancy: occupancy.NewIndex(),
		Bus:       placement.NewBus(),
		Scheduler: placement.NewScheduler(),
		Camera:    newCamera(),
	}
	s.Connectivity = connectivity.NewEngine(s.Occupancy, cfg.MainBuilding.Size)

	deps := placement.Deps{
		Grid:      s.Grid,
		Occupancy: s.Occupancy,
		Roads:     s.Connectivity,
		Renderer:  r,
		Camera:    s.Camera,
		Bus:       s.Bus,
		Scheduler: s.Scheduler,
		Palette:   palette,
	}
	s.Building = placement.NewMainBuilding(deps, cfg.MainBuilding.Size)
	s.Roads = placement.NewRoads(deps)
	s.Menu = newMenu(s.Bus, s.Building.HasBuilt)

	slog.Debug("session created",
		"map_size", s.Grid.MapSize(),
		"explored", cfg.Map.Explored,
		"building_size", cfg.MainBuilding.Size,
	)
	return s, nil
}

// Config returns the configuration the session was built from.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Ticks returns how many ticks have run.
func (s *Session) Ticks() int {
	return s.ticks
}

// Tick advances one frame: continuations deferred by the previous tick run
// first, then named keys, then the controllers consume the pointer.
func (s *Session) Tick(in placement.Input) {
	s.Scheduler.RunPending()

	if in.Pressed(placement.KeyCancel) {
		s.ExitAll()
	}
	if in.Pressed(placement.KeyConfirm) {
		s.Confirm()
	}

	s.Building.Tick(in)
	s.Roads.Tick(in)
	s.ticks++
}

// EnterRoadMode opens a road session, closing any building mode first.
func (s *Session) EnterRoadMode(mode placement.RoadMode) {
	s.Building.ExitAllModes()
	s.Roads.EnterBuildMode(mode)
}

// EnterBuildingMode starts placing the main building. It returns false once
// the building exists.
func (s *Session) EnterBuildingMode() bool {
	if s.Building.HasBuilt() {
		return false
	}
	s.Roads.ExitBuildMode()
	return s.Building.EnterBuildMode()
}

// EnterMoveMode lifts the committed main building.
func (s *Session) EnterMoveMode() bool {
	if s.Building.State() != placement.Committed {
		return false
	}
	s.Roads.ExitBuildMode()
	return s.Building.EnterMoveMode()
}

// ExitAll cancels whatever mode is open.
func (s *Session) ExitAll() {
	s.Roads.ExitBuildMode()
	s.Building.ExitAllModes()
}

// Confirm commits the open road session.
func (s *Session) Confirm() bool {
	return s.Roads.Confirm()
}

// Scene exports the current state.
func (s *Session) Scene() *scene.Graph {
	st := scene.State{
		Version:      s.cfg.Version,
		Grid:         s.Grid,
		Occupancy:    s.Occupancy,
		Roads:        s.Roads.Built(),
		Provisional:  s.Roads.Provisional(),
		Variants:     s.Roads.Variants(),
		Active:       s.Connectivity.IsActive,
		BuildingSize: s.Building.Size(),
	}
	if origin, ok := s.Building.Origin(); ok && s.Building.State() == placement.Committed {
		st.MainBuilding = &origin
	}
	return scene.Assemble(st)
}
