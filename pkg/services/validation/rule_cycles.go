package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cmdbhub/cmdb-analyzer/pkg/models"
)

// CircularDependencyRule reports directed cycles in the dependency subgraph
// of the relationship graph.
//
// Traversal is a three-color depth-first search driven by an explicit stack,
// so datasets with tens of thousands of CIs cannot blow the call stack. A
// back-edge to an in-progress node closes a cycle; a cycle is identified by
// the sorted set of its participating CI ids, so the same loop reached from
// different entry points is reported once.
type CircularDependencyRule struct {
	dependencyTypes map[string]struct{}
}

// NewCircularDependencyRule creates the rule. dependencyTypes lists the
// relationship types that express a dependency (e.g. "Depends on"); an empty
// list means every relationship type participates in cycle detection.
func NewCircularDependencyRule(dependencyTypes []string) *CircularDependencyRule {
	return &CircularDependencyRule{
		dependencyTypes: toSet(dependencyTypes),
	}
}

func (r *CircularDependencyRule) Name() string { return "circular-dependency" }

// DFS colors.
const (
	colorUnvisited = iota
	colorInProgress
	colorDone
)

type dfsFrame struct {
	id      string
	targets []string
	next    int
}

func (r *CircularDependencyRule) Evaluate(ctx context.Context, snap *Snapshot) []*models.ValidationFinding {
	color := make(map[string]int, len(snap.Graph.Nodes()))
	pathIndex := make(map[string]int)
	reported := make(map[string]struct{})

	var findings []*models.ValidationFinding
	var path []string

	for _, start := range snap.Graph.Nodes() {
		if color[start] != colorUnvisited {
			continue
		}

		stack := []dfsFrame{{id: start, targets: r.dependencyTargets(snap.Graph, start)}}
		color[start] = colorInProgress
		pathIndex[start] = 0
		path = append(path[:0], start)

		for len(stack) > 0 {
			frame := &stack[len(stack)-1]

			if frame.next >= len(frame.targets) {
				color[frame.id] = colorDone
				delete(pathIndex, frame.id)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			target := frame.targets[frame.next]
			frame.next++

			switch color[target] {
			case colorUnvisited:
				color[target] = colorInProgress
				pathIndex[target] = len(path)
				path = append(path, target)
				stack = append(stack, dfsFrame{id: target, targets: r.dependencyTargets(snap.Graph, target)})
			case colorInProgress:
				// Back-edge: the cycle is the path suffix starting at target.
				members := append([]string(nil), path[pathIndex[target]:]...)
				sort.Strings(members)
				key := strings.Join(members, "|")
				if _, seen := reported[key]; seen {
					continue
				}
				reported[key] = struct{}{}
				findings = append(findings, r.newCycleFinding(snap, members))
			}
		}
	}
	return findings
}

// dependencyTargets returns the ids a node points at through dependency-style
// relationship types, in edge insertion order.
func (r *CircularDependencyRule) dependencyTargets(g *Graph, id string) []string {
	var out []string
	for _, rel := range g.Out(id) {
		if len(r.dependencyTypes) == 0 {
			out = append(out, rel.TargetID())
			continue
		}
		if _, ok := r.dependencyTypes[rel.Type()]; ok {
			out = append(out, rel.TargetID())
		}
	}
	return out
}

func (r *CircularDependencyRule) newCycleFinding(snap *Snapshot, members []string) *models.ValidationFinding {
	f := newFinding(models.CodeCircularDependency, models.SeverityError,
		fmt.Sprintf("Dependency cycle detected between CIs: %s", strings.Join(members, ", ")))
	if ci, ok := snap.CIByID(members[0]); ok {
		attachCI(f, ci)
	}
	f.PutContext("cycle_members", strings.Join(members, ","))
	f.PutContext("cycle_size", fmt.Sprintf("%d", len(members)))
	f.SetSuggestion(fmt.Sprintf("Break the dependency cycle involving CIs: %s.", strings.Join(members, ", ")))
	return f
}
