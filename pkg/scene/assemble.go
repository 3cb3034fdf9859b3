package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/Yuminaga-Ten/Ease/pkg/autotile"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

// State is the read-only view of a session needed to assemble a graph.
type State struct {
	Version     string
	Grid        *grid.System
	Occupancy   *occupancy.Index
	Roads       []grid.Cell // committed
	Provisional []grid.Cell
	Variants    map[grid.Cell]autotile.Variant
	Active      func(grid.Cell) bool

	// MainBuilding is the committed footprint origin, nil before placement.
	MainBuilding *grid.Cell
	BuildingSize int
}

// Assemble converts a settlement snapshot into a scene graph.
func Assemble(s State) *Graph {
	g := NewGraph()

	assembleTiles(s, g)
	assembleBuilding(s, g)
	assembleRoads(s, g)

	active := 0
	for _, c := range s.Roads {
		if s.Active != nil && s.Active(c) {
			active++
		}
	}

	g.Metadata = Metadata{
		Version:      s.Version,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		MapSize:      s.Grid.MapSize(),
		RegionSize:   s.Grid.RegionSize(),
		Bounds:       computeBounds(g.Entities),
		ActiveRoads:  active,
		MainBuilding: s.MainBuilding,
	}

	return g
}

func assembleTiles(s State, g *Graph) {
	n := s.Grid.MapSize()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			c := grid.C(x, y)
			addEntity(g, Entity{
				ID:        cellID("tile", c),
				Type:      EntityTile,
				Cell:      c,
				Position:  s.Grid.GridToWorld(c),
				Region:    s.Grid.RegionName(x, y),
				Kind:      s.Occupancy.OccupantKind(c).String(),
				Buildable: s.Grid.IsCellBuildable(c),
			})
		}
	}
}

func assembleBuilding(s State, g *Graph) {
	if s.MainBuilding == nil {
		return
	}
	origin := *s.MainBuilding
	for _, c := range grid.Block(origin, s.BuildingSize) {
		addEntity(g, Entity{
			ID:       cellID("main-building", c),
			Type:     EntityMainBuilding,
			Cell:     c,
			Position: s.Grid.GridToWorld(c),
			Region:   s.Grid.RegionName(c.X, c.Y),
			Kind:     s.Occupancy.OccupantKind(c).String(),
			Metadata: map[string]any{
				"origin": origin.String(),
				"size":   s.BuildingSize,
			},
		})
	}
}

func assembleRoads(s State, g *Graph) {
	for _, c := range s.Roads {
		e := roadEntity(s, c, EntityRoad, "road")
		e.Active = s.Active != nil && s.Active(c)
		addEntity(g, e)
	}
	for _, c := range s.Provisional {
		addEntity(g, roadEntity(s, c, EntityRoadPreview, "road-preview"))
	}
}

func roadEntity(s State, c grid.Cell, t EntityType, prefix string) Entity {
	e := Entity{
		ID:       cellID(prefix, c),
		Type:     t,
		Cell:     c,
		Position: s.Grid.GridToWorld(c),
		Region:   s.Grid.RegionName(c.X, c.Y),
		Kind:     s.Occupancy.OccupantKind(c).String(),
	}
	if v, ok := s.Variants[c]; ok {
		id := int(v)
		e.Variant = &id
		e.Metadata = map[string]any{"pattern": v.Pattern()}
	}
	return e
}

func cellID(prefix string, c grid.Cell) string {
	return fmt.Sprintf("%s-%d-%d", prefix, c.X, c.Y)
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	if e.Region != "" {
		g.Groups.Regions[e.Region] = append(g.Groups.Regions[e.Region], id)
	}
	if e.Kind != "" {
		g.Groups.Kinds[e.Kind] = append(g.Groups.Kinds[e.Kind], id)
	}
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], id)
}

// computeBounds calculates the extent of all entity positions.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := grid.V(math.MaxFloat64, math.MaxFloat64)
	maxV := grid.V(-math.MaxFloat64, -math.MaxFloat64)

	for _, e := range entities {
		minV.X = math.Min(minV.X, e.Position.X)
		minV.Y = math.Min(minV.Y, e.Position.Y)
		maxV.X = math.Max(maxV.X, e.Position.X)
		maxV.Y = math.Max(maxV.Y, e.Position.Y)
	}
	return BoundingBox{Min: minV, Max: maxV}
}
