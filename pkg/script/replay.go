package script

import (
	"fmt"
	"log/slog"

	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
	"github.com/Yuminaga-Ten/Ease/pkg/placement"
	"github.com/Yuminaga-Ten/Ease/pkg/session"
	"github.com/Yuminaga-Ten/Ease/pkg/validation"
)

// Result summarizes a replay.
type Result struct {
	Steps int `json:"steps"`
	Ticks int `json:"ticks"`
}

// Run applies every step to sess in order.
func (s *Script) Run(sess *session.Session) Result {
	start := sess.Ticks()
	for i, st := range s.Steps {
		apply(sess, st)
		slog.Debug("script step", "script", s.Name, "step", i+1, "ticks", sess.Ticks())
	}
	return Result{Steps: len(s.Steps), Ticks: sess.Ticks() - start}
}

func pointer(sess *session.Session, p Point) placement.Input {
	return placement.Input{Pointer: sess.Grid.GridToWorld(p.Cell()), PointerHit: true}
}

func apply(sess *session.Session, st Step) {
	switch {
	case st.Do != "":
		do(sess, st.Do)
	case st.Press != nil:
		in := pointer(sess, *st.Press)
		in.PrimaryDown = true
		sess.Tick(in)
	case len(st.Drag) > 0:
		for _, p := range st.Drag {
			in := pointer(sess, p)
			in.PrimaryHeld = true
			sess.Tick(in)
		}
	case st.Release != nil:
		in := pointer(sess, *st.Release)
		in.PrimaryUp = true
		sess.Tick(in)
	case st.Hover != nil:
		sess.Tick(pointer(sess, *st.Hover))
	case st.Click != nil:
		in := pointer(sess, *st.Click)
		in.PrimaryDown = true
		sess.Tick(in)
		in.PrimaryDown = false
		in.PrimaryUp = true
		sess.Tick(in)
	default:
		for i := 0; i < st.Tick; i++ {
			sess.Tick(placement.Input{})
		}
	}
}

func do(sess *session.Session, action string) {
	switch action {
	case ActionEnterRoads:
		sess.EnterRoadMode(placement.RoadBuild)
	case ActionEnterRoadDelete:
		sess.EnterRoadMode(placement.RoadDelete)
	case ActionEnterBuilding:
		sess.EnterBuildingMode()
	case ActionEnterMove:
		sess.EnterMoveMode()
	case ActionConfirm:
		sess.Tick(placement.Input{Keys: []placement.Key{placement.KeyConfirm}})
	case ActionCancel:
		sess.Tick(placement.Input{Keys: []placement.Key{placement.KeyCancel}})
	case ActionExit:
		sess.ExitAll()
	}
}

// Check compares sess against the script's expectations. Scripts without
// an expect section always pass.
func (s *Script) Check(sess *session.Session) *validation.Report {
	r := validation.NewReport()
	e := s.Expect
	if e == nil {
		return r
	}

	if e.Roads != nil {
		compareCells(r, "road", cells(e.Roads), sess.Roads.Built())
	}
	if e.Provisional != nil {
		compareCells(r, "provisional road", cells(e.Provisional), sess.Roads.Provisional())
	}
	for _, c := range cells(e.Active) {
		if !sess.Connectivity.IsActive(c) {
			res := validation.AtCell(validation.LevelReplay, c, "road should reach the main building")
			res.Occupant = sess.Occupancy.OccupantKind(c)
			r.AddError(res)
		}
	}
	for _, c := range cells(e.Inactive) {
		if sess.Connectivity.IsActive(c) {
			res := validation.AtCell(validation.LevelReplay, c, "road should not reach the main building")
			res.Occupant = sess.Occupancy.OccupantKind(c)
			r.AddError(res)
		}
	}
	if e.MainBuilding != nil {
		want := e.MainBuilding.Cell()
		got, ok := sess.Building.Origin()
		if !ok || got != want {
			res := validation.AtCell(validation.LevelReplay, want, "main building origin mismatch")
			res.Occupant = sess.Occupancy.OccupantKind(want)
			res.Expected = occupancy.MainBuilding.String()
			if ok {
				res.ActualValue = got.String()
			}
			r.AddError(res)
		}
	}
	return r
}

// compareCells reports every cell missing from got and every cell in got
// that was not expected.
func compareCells(r *validation.Report, what string, want, got []grid.Cell) {
	wantSet := make(map[grid.Cell]bool, len(want))
	for _, c := range want {
		wantSet[c] = true
	}
	gotSet := make(map[grid.Cell]bool, len(got))
	for _, c := range got {
		gotSet[c] = true
	}

	grid.SortCells(want)
	for _, c := range want {
		if !gotSet[c] {
			r.AddError(validation.AtCell(validation.LevelReplay, c, fmt.Sprintf("expected %s is missing", what)))
		}
	}
	for _, c := range got {
		if !wantSet[c] {
			r.AddError(validation.AtCell(validation.LevelReplay, c, fmt.Sprintf("unexpected %s", what)))
		}
	}
}
