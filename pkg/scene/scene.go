// Package scene exports a settlement snapshot as a flat entity graph with
// group indices for fast filtering.
package scene

import "github.com/Yuminaga-Ten/Ease/pkg/grid"

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityTile         EntityType = "tile"
	EntityRoad         EntityType = "road"
	EntityRoadPreview  EntityType = "road_preview"
	EntityMainBuilding EntityType = "main_building"
)

// BoundingBox is the axis-aligned extent of a set of world positions.
type BoundingBox struct {
	Min grid.Vec2 `json:"min"`
	Max grid.Vec2 `json:"max"`
}

// Contains reports whether p lies in b, widened by tol on every side.
func (b BoundingBox) Contains(p grid.Vec2, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol
}

// Entity is a single element in the scene graph.
type Entity struct {
	ID        string         `json:"id"`
	Type      EntityType     `json:"type"`
	Cell      grid.Cell      `json:"cell"`
	Position  grid.Vec2      `json:"position"`
	Region    string         `json:"region"`
	Kind      string         `json:"kind"` // occupancy kind of the cell
	Buildable bool           `json:"buildable,omitempty"`
	Variant   *int           `json:"variant,omitempty"`
	Active    bool           `json:"active,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Graph is the complete exported state.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	Version      string      `json:"version"`
	GeneratedAt  string      `json:"generated_at"`
	MapSize      int         `json:"map_size"`
	RegionSize   int         `json:"region_size"`
	Bounds       BoundingBox `json:"bounds"`
	ActiveRoads  int         `json:"active_roads"`
	MainBuilding *grid.Cell  `json:"main_building,omitempty"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Regions     map[string][]string     `json:"regions"`
	Kinds       map[string][]string     `json:"kinds"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Regions:     make(map[string][]string),
			Kinds:       make(map[string][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// Find returns the entity with the given ID.
func (g *Graph) Find(id string) (Entity, bool) {
	for _, e := range g.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
