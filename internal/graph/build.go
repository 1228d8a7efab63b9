package graph

import (
	"context"
	"fmt"

	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/ctxlog"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// Build constructs a complete, resolved dependency graph for one build
// target from the discovered source units. The ambiguous list carries
// classification errors from discovery; an ambiguity only becomes fatal
// here if a unit depends on the name the ambiguous file would have claimed
// and nothing else resolves it.
func Build(ctx context.Context, units []SourceUnit, ambiguous []*classify.AmbiguousClassificationError, target classify.Platform) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "units", len(units), "target", target.String())

	candidates, err := groupUnits(units)
	if err != nil {
		return nil, err
	}

	graph := &Graph{target: target, nodes: make(map[string]*Node)}
	for key, group := range candidates {
		node := resolveNode(group, target)
		if node == nil {
			logger.Debug("Build: logical unit has no unit for target, dropped.", "name", key, "target", target.String())
			continue
		}
		graph.nodes[key] = node
	}
	logger.Debug("Build: platform substitution complete.", "nodes", len(graph.nodes))

	if err := resolveDependencies(graph, ambiguous); err != nil {
		return nil, err
	}
	logger.Debug("Build: dependency resolution complete.")

	return graph, nil
}

// roleGroup holds, per role, every candidate unit for one logical name
// keyed by platform, together with the dependency set extracted from it.
type roleGroup struct {
	units map[classify.Platform]*classify.Unit
	deps  map[classify.Platform][]unitname.Name
}

type nameGroup struct {
	byRole map[classify.Role]*roleGroup
}

// groupUnits indexes units by (name, role, platform) and detects duplicate
// logical names: two units of the same role and platform claiming the same
// name make the build target ambiguous and abort construction.
func groupUnits(units []SourceUnit) (map[string]*nameGroup, error) {
	groups := make(map[string]*nameGroup)
	var dups []Duplicate

	for _, su := range units {
		u := su.Unit
		key := u.Name.String()
		group, ok := groups[key]
		if !ok {
			group = &nameGroup{byRole: make(map[classify.Role]*roleGroup)}
			groups[key] = group
		}
		rg, ok := group.byRole[u.Role]
		if !ok {
			rg = &roleGroup{
				units: make(map[classify.Platform]*classify.Unit),
				deps:  make(map[classify.Platform][]unitname.Name),
			}
			group.byRole[u.Role] = rg
		}

		if existing, ok := rg.units[u.Platform]; ok {
			dups = append(dups, Duplicate{
				Name:     u.Name,
				Role:     u.Role,
				Platform: u.Platform,
				Paths:    []string{existing.Path, u.Path},
			})
			continue
		}
		rg.units[u.Platform] = u
		rg.deps[u.Platform] = su.Deps
	}

	if len(dups) > 0 {
		sortDuplicates(dups)
		return nil, &DuplicateLogicalNameError{Duplicates: dups}
	}
	return groups, nil
}

// resolveNode applies platform substitution for one logical name: per role,
// a unit tagged for the target wins over a generic one, and units tagged
// for other platforms are dropped. Returns nil when no unit of either role
// survives for the target.
func resolveNode(group *nameGroup, target classify.Platform) *Node {
	var node *Node
	var deps []unitname.Name

	for _, role := range []classify.Role{classify.RoleInterface, classify.RoleImplementation} {
		rg, ok := group.byRole[role]
		if !ok {
			continue
		}
		unit, unitDeps := selectForTarget(rg, target)
		if unit == nil {
			continue
		}
		if node == nil {
			node = &Node{Name: unit.Name}
		}
		if role == classify.RoleInterface {
			node.Interface = unit
		} else {
			node.Implementation = unit
		}
		deps = append(deps, unitDeps...)
	}

	if node == nil {
		return nil
	}
	node.Deps = mergeDeps(node.Name, deps)
	return node
}

// selectForTarget picks the unit that applies to the target platform:
// the platform-specific unit when present, the generic one otherwise.
func selectForTarget(rg *roleGroup, target classify.Platform) (*classify.Unit, []unitname.Name) {
	if target != classify.PlatformGeneric {
		if u, ok := rg.units[target]; ok {
			return u, rg.deps[target]
		}
	}
	if u, ok := rg.units[classify.PlatformGeneric]; ok {
		return u, rg.deps[classify.PlatformGeneric]
	}
	return nil, nil
}

// mergeDeps unions the role dependency sets, drops self-references, and
// returns a sorted, deduplicated slice.
func mergeDeps(self unitname.Name, deps []unitname.Name) []unitname.Name {
	seen := make(map[string]struct{}, len(deps))
	var merged []unitname.Name
	for _, d := range deps {
		key := d.String()
		if key == self.String() {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, d)
	}
	unitname.Sort(merged)
	return merged
}

// resolveDependencies verifies that every declared dependency names a node
// in the graph. A dependency that only matches an ambiguously classified
// file surfaces that classification error instead of a generic unresolved
// report, so the diagnostic points at the file to fix.
func resolveDependencies(g *Graph, ambiguous []*classify.AmbiguousClassificationError) error {
	ambiguousByName := make(map[string]*classify.AmbiguousClassificationError, len(ambiguous))
	for _, amb := range ambiguous {
		if !amb.Name.IsZero() {
			ambiguousByName[amb.Name.String()] = amb
		}
	}

	var missing []MissingDependency
	for _, node := range g.nodes {
		for _, dep := range node.Deps {
			if _, ok := g.nodes[dep.String()]; ok {
				continue
			}
			if amb, ok := ambiguousByName[dep.String()]; ok {
				return fmt.Errorf("unit %q depends on %q, which only matches an excluded file: %w",
					node.Name.String(), dep.String(), amb)
			}
			missing = append(missing, MissingDependency{
				Consumer:      node.Name,
				Missing:       dep,
				ConsumerPaths: node.Files(),
			})
		}
	}

	if len(missing) > 0 {
		sortMissing(missing)
		return &UnresolvedDependencyError{Missing: missing}
	}
	return nil
}
