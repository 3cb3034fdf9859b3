// Package script replays recorded pointer and key input against a session.
//
// A script is a YAML document:
//
//	name: connect a road
//	explored: [A4]
//	steps:
//	  - do: enter_building
//	  - click: [2, 2]
//	  - do: enter_roads
//	  - press: [5, 2]
//	  - drag: [[5, 3], [5, 4]]
//	  - release: [5, 4]
//	  - do: confirm
//	expect:
//	  active: [[5, 2], [5, 3], [5, 4]]
//
// Cells go through GridToWorld and back, so replay drives the same pointer
// path as live input.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Yuminaga-Ten/Ease/pkg/config"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
)

// Action names accepted by the do step.
const (
	ActionEnterRoads      = "enter_roads"
	ActionEnterRoadDelete = "enter_road_delete"
	ActionEnterBuilding   = "enter_building"
	ActionEnterMove       = "enter_move"
	ActionConfirm         = "confirm"
	ActionCancel          = "cancel"
	ActionExit            = "exit"
)

var actions = map[string]bool{
	ActionEnterRoads:      true,
	ActionEnterRoadDelete: true,
	ActionEnterBuilding:   true,
	ActionEnterMove:       true,
	ActionConfirm:         true,
	ActionCancel:          true,
	ActionExit:            true,
}

// Script is a named sequence of steps with optional expectations.
type Script struct {
	Name     string   `yaml:"name"`
	Explored []string `yaml:"explored,omitempty"` // replaces the configured explored regions
	Steps    []Step   `yaml:"steps"`
	Expect   *Expect  `yaml:"expect,omitempty"`
}

// Configure returns the config a replay of s starts from: base itself, or a
// copy with the script's explored regions.
func (s *Script) Configure(base *config.Config) *config.Config {
	if len(s.Explored) == 0 {
		return base
	}
	cfg := *base
	cfg.Map.Explored = append([]string(nil), s.Explored...)
	return &cfg
}

// Step is one scripted input. Exactly one field is set.
type Step struct {
	Do      string  `yaml:"do,omitempty"`
	Press   *Point  `yaml:"press,omitempty"`
	Drag    []Point `yaml:"drag,omitempty"`
	Release *Point  `yaml:"release,omitempty"`
	Hover   *Point  `yaml:"hover,omitempty"`
	Click   *Point  `yaml:"click,omitempty"`
	Tick    int     `yaml:"tick,omitempty"`
}

// Expect lists state the session must be in after the last step. Unset
// lists are not checked.
type Expect struct {
	Roads        []Point `yaml:"roads,omitempty"`
	Active       []Point `yaml:"active,omitempty"`
	Inactive     []Point `yaml:"inactive,omitempty"`
	Provisional  []Point `yaml:"provisional,omitempty"`
	MainBuilding *Point  `yaml:"main_building,omitempty"`
}

// Point is a grid cell written either as [x, y] or as {x: .., y: ..}.
type Point grid.Cell

func (p Point) Cell() grid.Cell {
	return grid.Cell(p)
}

func (p *Point) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var xy []int
		if err := n.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: cell needs 2 coordinates, got %d", n.Line, len(xy))
		}
		*p = Point{X: xy[0], Y: xy[1]}
		return nil
	case yaml.MappingNode:
		var c grid.Cell
		if err := n.Decode(&c); err != nil {
			return err
		}
		*p = Point(c)
		return nil
	default:
		return fmt.Errorf("line %d: cell must be [x, y] or {x, y}", n.Line)
	}
}

func cells(ps []Point) []grid.Cell {
	out := make([]grid.Cell, len(ps))
	for i, p := range ps {
		out[i] = p.Cell()
	}
	return out
}

// Load reads a script from a YAML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and checks a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script YAML: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.check(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (st Step) check() error {
	set := 0
	if st.Do != "" {
		set++
		if !actions[st.Do] {
			return fmt.Errorf("unknown action %q", st.Do)
		}
	}
	for _, p := range []*Point{st.Press, st.Release, st.Hover, st.Click} {
		if p != nil {
			set++
		}
	}
	if len(st.Drag) > 0 {
		set++
	}
	if st.Tick < 0 {
		return fmt.Errorf("tick count %d is negative", st.Tick)
	}
	if st.Tick > 0 {
		set++
	}
	if set != 1 {
		return fmt.Errorf("step must set exactly one of do, press, drag, release, hover, click, tick (got %d)", set)
	}
	return nil
}
