package session

import (
	"fmt"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
	"github.com/Yuminaga-Ten/Ease/pkg/placement"
	"github.com/Yuminaga-Ten/Ease/pkg/validation"
)

// Audit cross-checks the occupancy index against the committed structures.
// A healthy session yields a valid report with no warnings.
func (s *Session) Audit() *validation.Report {
	r := validation.NewReport()

	s.auditRoads(r)
	s.auditBuilding(r)
	s.auditActive(r)

	return r
}

func cellSet(cells []grid.Cell) map[grid.Cell]bool {
	m := make(map[grid.Cell]bool, len(cells))
	for _, c := range cells {
		m[c] = true
	}
	return m
}

func (s *Session) auditRoads(r *validation.Report) {
	built := s.Roads.Built()
	marked := s.Occupancy.Cells(occupancy.Road)
	builtSet, markedSet := cellSet(built), cellSet(marked)

	for _, c := range marked {
		if !builtSet[c] {
			res := validation.AtCell(validation.LevelConsistency, c, "occupancy marks a road that was never committed")
			res.Occupant = occupancy.Road
			r.AddError(res)
		}
	}
	for _, c := range built {
		if !markedSet[c] {
			res := validation.AtCell(validation.LevelConsistency, c, "committed road is missing from occupancy")
			res.Occupant = s.Occupancy.OccupantKind(c)
			res.Expected = occupancy.Road.String()
			r.AddError(res)
		}
		if !s.Grid.IsCellBuildable(c) {
			res := validation.AtCell(validation.LevelConsistency, c, "committed road outside a buildable region")
			res.Occupant = occupancy.Road
			r.AddError(res)
		}
	}
	for _, c := range s.Roads.Provisional() {
		if s.Occupancy.IsOccupied(c) && !builtSet[c] {
			res := validation.AtCell(validation.LevelConsistency, c, "provisional road overlaps an occupied cell")
			res.ConflictWith = s.Occupancy.OccupantKind(c)
			r.AddWarning(res)
		}
	}
	for _, c := range s.Roads.MarkedForDeletion() {
		if !builtSet[c] {
			res := validation.AtCell(validation.LevelConsistency, c, "deletion mark on a cell without a committed road")
			res.Occupant = s.Occupancy.OccupantKind(c)
			r.AddError(res)
		}
	}
}

func (s *Session) auditBuilding(r *validation.Report) {
	marked := s.Occupancy.Cells(occupancy.MainBuilding)

	var want []grid.Cell
	if origin, ok := s.Building.Origin(); ok && s.Building.State() == placement.Committed {
		want = s.Building.Footprint(origin)
	}

	if len(marked) != len(want) {
		r.AddError(validation.Result{
			Level:       validation.LevelConsistency,
			Message:     fmt.Sprintf("main building marks %d cells, expected %d", len(marked), len(want)),
			Path:        "main_building",
			ActualValue: len(marked),
			Expected:    fmt.Sprintf("%d", len(want)),
		})
		return
	}
	wantSet := cellSet(want)
	for _, c := range marked {
		if !wantSet[c] {
			res := validation.AtCell(validation.LevelConsistency, c, "main building mark outside the committed footprint")
			res.Occupant = occupancy.MainBuilding
			r.AddError(res)
		}
	}
}

func (s *Session) auditActive(r *validation.Report) {
	for _, c := range s.Connectivity.Active() {
		if s.Occupancy.OccupantKind(c) != occupancy.Road {
			res := validation.AtCell(validation.LevelConsistency, c, "active cell is not a road")
			res.Occupant = s.Occupancy.OccupantKind(c)
			r.AddError(res)
		}
	}
	r.AddInfo(validation.Result{
		Level:       validation.LevelConsistency,
		Message:     fmt.Sprintf("%d of %d roads reach the main building", s.Connectivity.Len(), len(s.Roads.Built())),
		Path:        "connectivity",
		ActualValue: s.Connectivity.Len(),
	})
}
