// Package backend defines the narrow hand-off boundary to the external
// build generator.
//
// The planner's job ends at the emitted plan: the backend enumerates the
// stages, compiles every unit within a stage in parallel, and must not
// begin stage k+1 until every unit in stage k completed successfully. A
// failed compilation is fatal to the whole build and is reported by the
// backend; the planner never retries.
package backend

import (
	"context"

	"github.com/towerstrike/synthesis.game/internal/plan"
	"github.com/towerstrike/synthesis.game/internal/unitname"
)

// UnitResult reports the outcome of compiling one logical unit.
type UnitResult struct {
	Name  unitname.Name
	Stage int
	// Err is nil when the unit compiled successfully.
	Err error
}

// Backend consumes an emitted plan and performs the actual per-stage
// compilation. Implementations live outside this repository; the interface
// exists so embedders and tests can observe the hand-off.
type Backend interface {
	// Build compiles the plan stage by stage and returns one result per
	// unit. A non-nil error means the backend could not run at all, as
	// opposed to individual unit failures reported in the results.
	Build(ctx context.Context, p *plan.Plan) ([]UnitResult, error)
}
