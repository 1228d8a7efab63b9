package graph

import (
	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// SourceUnit pairs a classified unit with its extracted dependency set.
// It is the builder's input, produced by the discovery phase.
type SourceUnit struct {
	Unit *classify.Unit
	Deps []unitname.Name
}

// Node is a single logical unit in the dependency graph. It carries the
// interface and/or implementation unit that survived platform substitution
// for the build target. Either role may be absent, but never both.
type Node struct {
	Name unitname.Name
	// Interface is the selected interface unit, or nil for an
	// implementation-only logical unit.
	Interface *classify.Unit
	// Implementation is the selected implementation unit, or nil for an
	// interface-only logical unit.
	Implementation *classify.Unit
	// Deps is the merged dependency set of the selected units, sorted,
	// deduplicated, and free of self-references.
	Deps []unitname.Name
}

// Files returns the file paths backing the node, interface unit first.
func (n *Node) Files() []string {
	var files []string
	if n.Interface != nil {
		files = append(files, n.Interface.Path)
	}
	if n.Implementation != nil {
		files = append(files, n.Implementation.Path)
	}
	return files
}

// Graph maps logical names onto nodes for one build target.
type Graph struct {
	target classify.Platform
	nodes  map[string]*Node
}

// Target returns the build target the graph was resolved for.
func (g *Graph) Target() classify.Platform {
	return g.target
}

// Len returns the number of logical units in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node for the given logical name, if present.
func (g *Graph) Node(name unitname.Name) (*Node, bool) {
	n, ok := g.nodes[name.String()]
	return n, ok
}

// Names returns every logical name in the graph, sorted.
func (g *Graph) Names() []unitname.Name {
	names := make([]unitname.Name, 0, len(g.nodes))
	for _, n := range g.nodes {
		names = append(names, n.Name)
	}
	unitname.Sort(names)
	return names
}
