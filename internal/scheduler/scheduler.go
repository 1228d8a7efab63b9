package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/ctxlog"
	"github.com/towerstrike/synthesis.game/internal/graph"
	"github.com/towerstrike/synthesis.game/internal/plan"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// CyclicDependencyError reports that the graph cannot be staged because the
// named logical units are mutually dependent, directly or transitively.
// The full implicated set is reported rather than a guessed minimal cycle.
type CyclicDependencyError struct {
	Names []unitname.Name
}

// Error implements the error interface.
func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency involving: %s", strings.Join(unitname.Strings(e.Names), ", "))
}

// Schedule computes the ordered build stages for the graph, or fails with a
// CyclicDependencyError. The whole pass is O(V+E): one visit per node plus
// one in-degree decrement per edge.
func Schedule(ctx context.Context, g *graph.Graph) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Schedule: starting stage partitioning.", "nodes", g.Len())

	names := g.Names()
	inDegree := make(map[string]int, len(names))
	dependents := make(map[string][]unitname.Name, len(names))

	for _, name := range names {
		node, _ := g.Node(name)
		inDegree[name.String()] = len(node.Deps)
		for _, dep := range node.Deps {
			dependents[dep.String()] = append(dependents[dep.String()], name)
		}
	}

	var current []unitname.Name
	for _, name := range names {
		if inDegree[name.String()] == 0 {
			current = append(current, name)
		}
	}

	p := &plan.Plan{Target: g.Target()}
	remaining := len(names)

	for remaining > 0 {
		if len(current) == 0 {
			return nil, cycleError(g, inDegree)
		}

		// Names enter current in ascending order only on the first pass;
		// later passes collect them in edge-decrement order.
		unitname.Sort(current)

		stage := plan.Stage{Index: len(p.Stages)}
		var next []unitname.Name
		for _, name := range current {
			node, _ := g.Node(name)
			stage.Units = append(stage.Units, plan.Unit{Name: name, Files: node.Files()})
			remaining--

			for _, dependent := range dependents[name.String()] {
				inDegree[dependent.String()]--
				if inDegree[dependent.String()] == 0 {
					next = append(next, dependent)
				}
			}
		}
		p.Stages = append(p.Stages, stage)
		logger.Debug("Schedule: stage complete.", "stage", stage.Index, "units", len(stage.Units))
		current = next
	}

	logger.Debug("Schedule: partitioning complete.", "stages", len(p.Stages))
	return p, nil
}

// cycleError collects every unscheduled node. When peeling stalls, each
// remaining node is part of a cycle or depends only on one.
func cycleError(g *graph.Graph, inDegree map[string]int) error {
	var implicated []unitname.Name
	for _, name := range g.Names() {
		if inDegree[name.String()] > 0 {
			implicated = append(implicated, name)
		}
	}
	unitname.Sort(implicated)
	return &CyclicDependencyError{Names: implicated}
}
