// Package fanout provides the two concurrency combinators used by the view
// composition engine: join-all-or-fail groups for required branches and
// best-effort execution for optional branches.
//
// Branches write to disjoint fields of the result they are composing, so no
// locking is required by callers; a Group only coordinates completion and
// error propagation.
package fanout

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"crm-relay.io/relay/internal/pkg/logger"
)

// Task is a context-aware unit of work.
type Task func(ctx context.Context) error

// Group runs independent tasks concurrently and fails fast: the first task
// error cancels the derived context of all other tasks, and Wait returns
// exactly one error no matter how many branches failed.
type Group struct {
	eg  *errgroup.Group
	ctx context.Context
}

// New creates a Group whose tasks derive from ctx. Cancellation of ctx
// cancels every branch and is reported by Wait like any branch failure.
func New(ctx context.Context) *Group {
	eg, gctx := errgroup.WithContext(ctx)
	return &Group{eg: eg, ctx: gctx}
}

// WithLimit creates a Group that runs at most n tasks concurrently.
func WithLimit(ctx context.Context, n int) *Group {
	g := New(ctx)
	g.eg.SetLimit(n)
	return g
}

// Go launches a required branch. If the branch returns an error the whole
// group is cancelled and Wait reports the error.
func (g *Group) Go(task Task) {
	g.eg.Go(func() error {
		return task(g.ctx)
	})
}

// GoOptional launches a best-effort branch: any error is logged at warn
// level and swallowed, so it can never abort the group. The branch is
// responsible for leaving its target field in the degraded default state
// when it fails.
func (g *Group) GoOptional(name string, task Task) {
	g.eg.Go(func() error {
		if err := task(g.ctx); err != nil {
			logger.Warn("best-effort branch degraded",
				zap.String("branch", name),
				zap.Error(err),
			)
		}
		return nil
	})
}

// Wait blocks until all branches complete and returns the first error.
func (g *Group) Wait() error {
	return g.eg.Wait()
}

// BestEffort runs fn and converts any failure into the zero value of T plus
// a warn log. It never returns an error; callers treat the result as an
// enrichment hint, not a required field.
func BestEffort[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) T {
	out, err := fn(ctx)
	if err != nil {
		logger.Warn("best-effort call degraded",
			zap.String("operation", name),
			zap.Error(err),
		)
		var zero T
		return zero
	}
	return out
}
