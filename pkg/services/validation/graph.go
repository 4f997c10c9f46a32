package validation

import (
	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// Graph is the directed multigraph view of one dataset snapshot: nodes are
// the CI identities present in the CI collection, edges are relationships
// whose endpoints both resolve. Relationships with an absent endpoint are
// recorded as dangling instead of becoming edges — a broken reference must
// not fail the build, it must surface as a finding.
//
// The graph is built once per validation pass and never mutated afterwards,
// so rules can share it without locking.
type Graph struct {
	nodes    []string
	nodeSet  map[string]struct{}
	out      map[string][]*models.Relationship
	in       map[string][]*models.Relationship
	dangling []*models.Relationship
}

// NewGraph builds the graph from dataset-ordered CIs and relationships.
// Node order follows first occurrence in the CI collection; adjacency lists
// follow relationship insertion order. Both orders are what make rule output
// reproducible.
func NewGraph(cis []*models.CI, relationships []*models.Relationship) *Graph {
	g := &Graph{
		nodeSet: make(map[string]struct{}, len(cis)),
		out:     make(map[string][]*models.Relationship),
		in:      make(map[string][]*models.Relationship),
	}

	for _, ci := range cis {
		id := ci.ID()
		if _, exists := g.nodeSet[id]; exists {
			continue
		}
		g.nodeSet[id] = struct{}{}
		g.nodes = append(g.nodes, id)
	}

	for _, rel := range relationships {
		_, haveSource := g.nodeSet[rel.SourceID()]
		_, haveTarget := g.nodeSet[rel.TargetID()]
		if !haveSource || !haveTarget {
			g.dangling = append(g.dangling, rel)
			continue
		}
		g.out[rel.SourceID()] = append(g.out[rel.SourceID()], rel)
		g.in[rel.TargetID()] = append(g.in[rel.TargetID()], rel)
	}

	return g
}

// Nodes returns the CI ids in deterministic (first-occurrence) order.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// HasNode reports whether the id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeSet[id]
	return ok
}

// Out returns the outgoing edges of a node in insertion order.
func (g *Graph) Out(id string) []*models.Relationship {
	return g.out[id]
}

// In returns the incoming edges of a node in insertion order.
func (g *Graph) In(id string) []*models.Relationship {
	return g.in[id]
}

// Degree returns the number of incoming plus outgoing edges of a node.
func (g *Graph) Degree(id string) int {
	return len(g.in[id]) + len(g.out[id])
}

// Dangling returns the relationships excluded from the graph because their
// source or target id is absent from the CI collection.
func (g *Graph) Dangling() []*models.Relationship {
	return g.dangling
}
