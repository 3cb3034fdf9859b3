package scene

import (
	"fmt"

	"github.com/Yuminaga-Ten/Ease/pkg/validation"
)

// boundsTolerance is in world units.
const boundsTolerance = 1e-6

// ValidateGraph performs structural validation on an exported scene graph.
// It checks entity integrity, group index consistency, and bounds enclosure.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelConsistency,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateBoundsEnclosure(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelConsistency,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelConsistency,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelConsistency,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range g.Groups.Regions {
		checkGroup("regions", name, ids)
	}
	for name, ids := range g.Groups.Kinds {
		checkGroup("kinds", name, ids)
	}
	for name, ids := range g.Groups.EntityTypes {
		checkGroup("entity_types", string(name), ids)
	}
}

func members(groups map[string][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(groups))
	for name, ids := range groups {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		out[name] = m
	}
	return out
}

func validateGroupMembership(g *Graph, r *validation.Report) {
	types := make(map[string][]string, len(g.Groups.EntityTypes))
	for t, ids := range g.Groups.EntityTypes {
		types[string(t)] = ids
	}

	axes := []struct {
		name    string
		members map[string]map[string]bool
		value   func(Entity) string
	}{
		{"regions", members(g.Groups.Regions), func(e Entity) string { return e.Region }},
		{"kinds", members(g.Groups.Kinds), func(e Entity) string { return e.Kind }},
		{"entity_types", members(types), func(e Entity) string { return string(e.Type) }},
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}
		for _, axis := range axes {
			v := axis.value(e)
			if v == "" {
				continue
			}
			m, ok := axis.members[v]
			if !ok {
				r.AddError(validation.Result{
					Level:       validation.LevelConsistency,
					Message:     fmt.Sprintf("entity %q has %s %q but no such group exists", e.ID, axis.name, v),
					Path:        "groups." + axis.name,
					ActualValue: v,
				})
				continue
			}
			if !m[e.ID] {
				r.AddError(validation.Result{
					Level:       validation.LevelConsistency,
					Message:     fmt.Sprintf("entity %q has %s %q but is not in that group", e.ID, axis.name, v),
					Path:        fmt.Sprintf("groups.%s.%s", axis.name, v),
					ActualValue: e.ID,
				})
			}
		}
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	bounds := g.Metadata.Bounds
	for _, e := range g.Entities {
		if !bounds.Contains(e.Position, boundsTolerance) {
			r.AddWarning(validation.Result{
				Level:       validation.LevelConsistency,
				Message:     fmt.Sprintf("entity %q at (%.2f, %.2f) outside scene bounds", e.ID, e.Position.X, e.Position.Y),
				Path:        "metadata.bounds",
				ActualValue: e.ID,
			})
			break
		}
	}
}
