package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/towerstrike/synthesis.game/internal/backend"
	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/ctxlog"
	"github.com/towerstrike/synthesis.game/internal/extract"
	"github.com/towerstrike/synthesis.game/internal/fsutil"
	"github.com/towerstrike/synthesis.game/internal/graph"
	"github.com/towerstrike/synthesis.game/internal/plan"
	"github.com/towerstrike/synthesis.game/internal/scheduler"
)

// Plan runs the discovery-and-scheduling pipeline and returns the staged
// build plan. Units and edges are recomputed fresh from the current file
// tree on every call; nothing is cached between invocations.
func (a *App) Plan(ctx context.Context) (*plan.Plan, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger
	model := a.model

	trees := append(append([]string{}, model.InterfaceRoots...), model.ImplementationRoots...)
	files, err := fsutil.FindTreeFiles(model.Root, trees)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source tree: %w", err)
	}
	logger.Debug("Source tree scanned.", "files", len(files))

	classifier := classify.New(model.InterfaceRoots, model.ImplementationRoots)
	extractor := extract.New(model.Externals)

	var units []graph.SourceUnit
	var ambiguous []*classify.AmbiguousClassificationError
	for _, file := range files {
		unit, err := classifier.Classify(file)
		if err != nil {
			var ambErr *classify.AmbiguousClassificationError
			if errors.As(err, &ambErr) {
				logger.Warn("File excluded from graph: ambiguous classification.",
					"path", ambErr.Path, "suffix", ambErr.Suffix)
				ambiguous = append(ambiguous, ambErr)
				continue
			}
			return nil, err
		}
		if unit == nil {
			continue // Not inside any configured unit tree.
		}

		deps, err := extractor.File(model.Root, unit)
		if err != nil {
			return nil, fmt.Errorf("failed to extract dependencies of %q: %w", unit.Path, err)
		}
		units = append(units, graph.SourceUnit{Unit: unit, Deps: deps})
	}
	logger.Debug("Classification and extraction complete.",
		"units", len(units), "ambiguous", len(ambiguous))

	g, err := graph.Build(ctx, units, ambiguous, model.Target)
	if err != nil {
		return nil, err
	}

	p, err := scheduler.Schedule(ctx, g)
	if err != nil {
		return nil, err
	}

	a.logStageSummary(ctx, p)
	return p, nil
}

// PlanAndEmit computes the plan, writes the configured artifact, and hands
// the plan to the backend when one is attached. It returns the plan and
// the artifact path.
func (a *App) PlanAndEmit(ctx context.Context) (*plan.Plan, string, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	p, err := a.Plan(ctx)
	if err != nil {
		return nil, "", err
	}

	emitter, err := plan.NewEmitter(a.model)
	if err != nil {
		return nil, "", err
	}
	artifact, err := emitter.Emit(ctx, p)
	if err != nil {
		return nil, "", err
	}
	a.logger.Info("Build plan emitted.",
		"artifact", artifact,
		"target", p.Target.String(),
		"stages", len(p.Stages),
		"units", p.UnitCount(),
	)

	if a.backend != nil {
		results, err := a.backend.Build(ctx, p)
		if err != nil {
			return nil, "", fmt.Errorf("build backend failed: %w", err)
		}
		if err := firstFailure(results); err != nil {
			return nil, "", err
		}
	}

	return p, artifact, nil
}

// firstFailure reduces per-unit backend results to an error. Any failed
// unit is fatal to the whole build; the backend reports details per unit.
func firstFailure(results []backend.UnitResult) error {
	var failed []string
	var rootCause error
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Name.String())
			if rootCause == nil {
				rootCause = r.Err
			}
		}
	}
	if rootCause != nil {
		return fmt.Errorf("compilation failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}
	return nil
}

// logStageSummary reports the computed stage layout, mirroring the
// human-readable analysis the planner has always printed before emitting.
func (a *App) logStageSummary(ctx context.Context, p *plan.Plan) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Build stages computed.",
		"target", p.Target.String(),
		"stages", len(p.Stages),
		"units", p.UnitCount(),
	)
	for _, stage := range p.Stages {
		names := make([]string, 0, len(stage.Units))
		for _, u := range stage.Units {
			names = append(names, u.Name.String())
		}
		logger.Debug("Stage contents.", "stage", stage.Index, "units", names)
	}
}
