package validation

import (
	"github.com/apiforge/apiforge/internal/model"
)

// relationshipGraph is a directed graph of entity names built from
// relationship fields. oneToMany edges are excluded: they are the inverse
// side of a manyToOne edge recorded on the owning entity, and counting both
// would double-report every bidirectional pair as a cycle.
type relationshipGraph struct {
	adjacency map[string][]string
}

func buildRelationshipGraph(m *model.DataModel) *relationshipGraph {
	g := &relationshipGraph{adjacency: make(map[string][]string, len(m.Entities))}
	for _, e := range m.Entities {
		g.adjacency[e.Name] = nil
		for _, f := range e.Fields {
			rel := f.Relationship
			if rel == nil || rel.Type == model.OneToMany {
				continue
			}
			g.adjacency[e.Name] = append(g.adjacency[e.Name], rel.Target)
		}
	}
	return g
}

// DetectCycles returns the entities whose traversal discovers a relationship
// cycle, in model declaration order. Every entity is used as a traversal
// root so coverage does not depend on component structure; each entity is
// reported at most once, without enumerating the cycle path.
func DetectCycles(m *model.DataModel) []string {
	g := buildRelationshipGraph(m)
	visited := make(map[string]bool, len(m.Entities))
	stack := make(map[string]bool, len(m.Entities))

	var visit func(name string) bool
	visit = func(name string) bool {
		if stack[name] {
			return true
		}
		if visited[name] {
			return false
		}
		visited[name] = true
		stack[name] = true
		for _, target := range g.adjacency[name] {
			if _, known := g.adjacency[target]; !known {
				// Dangling targets are reported by the relationship
				// integrity rule, not here.
				continue
			}
			if visit(target) {
				stack[name] = false
				return true
			}
		}
		stack[name] = false
		return false
	}

	var cyclic []string
	for _, e := range m.Entities {
		if visit(e.Name) {
			cyclic = append(cyclic, e.Name)
		}
	}
	return cyclic
}
