package plan

import (
	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// Unit is one schedulable logical unit together with the source files that
// back it for the plan's build target.
type Unit struct {
	Name unitname.Name
	// Files lists the unit's source files relative to the tree root,
	// interface unit first when both roles are present.
	Files []string
}

// Stage is one rung of the build order: a set of units whose dependencies
// all live in strictly earlier stages. Units are ordered by logical name so
// the emitted plan is byte-identical across runs.
type Stage struct {
	Index int
	Units []Unit
}

// Plan is the complete, ordered build plan for one target platform.
type Plan struct {
	Target classify.Platform
	Stages []Stage
}

// UnitCount returns the total number of units across all stages.
func (p *Plan) UnitCount() int {
	total := 0
	for _, s := range p.Stages {
		total += len(s.Units)
	}
	return total
}

// Files returns every file in the plan in stage order.
func (p *Plan) Files() []string {
	var files []string
	for _, s := range p.Stages {
		for _, u := range s.Units {
			files = append(files, u.Files...)
		}
	}
	return files
}
