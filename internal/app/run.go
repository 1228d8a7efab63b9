package app

import (
	"context"
	"errors"

	"github.com/towerstrike/synthesis.game/internal/ctxlog"
	"github.com/towerstrike/synthesis.game/internal/watch"
)

// Run executes the planner based on the provided configuration: a single
// plan-and-emit pass, or a watch loop that re-plans on tree changes.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if !a.config.Watch {
		_, _, err := a.PlanAndEmit(ctx)
		return err
	}

	// In watch mode a failed pass is reported but not fatal: the next
	// change gets a fresh chance to produce a valid plan.
	replan := func(ctx context.Context) {
		if _, _, err := a.PlanAndEmit(ctx); err != nil {
			a.logger.Error("Planning failed; waiting for next change.", "error", err)
		}
	}
	replan(ctx)

	trees := append(append([]string{}, a.model.InterfaceRoots...), a.model.ImplementationRoots...)
	watcher := watch.New(a.model.Root, trees, 0)
	if err := watcher.Run(ctx, replan); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
