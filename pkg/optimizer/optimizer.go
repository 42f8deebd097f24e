// Package optimizer sweeps a parameter grid across independent simulation
// runs and ranks them by a target metric.
package optimizer

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peter-kozarec/replay/pkg/report"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// RunFunc executes one independent simulation for a grid point. It must
// not share mutable state with any sibling run; the optimizer calls it
// from several goroutines at once.
type RunFunc func(ctx context.Context, params ParamSet) (report.Summary, error)

// Metric extracts the ranking value from a summary.
type Metric func(report.Summary) fixed.Point

// Common target metrics.
var (
	MetricTotalPnl    Metric = func(s report.Summary) fixed.Point { return s.TotalPnl }
	MetricSharpeRatio Metric = func(s report.Summary) fixed.Point { return s.SharpeRatio }
	MetricWinningRate Metric = func(s report.Summary) fixed.Point { return s.WinningRate }
)

// Result is one ranked grid point. A failed run keeps its parameters with
// a zero metric and the cause in Err.
type Result struct {
	Params  ParamSet
	Metric  fixed.Point
	Summary report.Summary
	Err     error
}

type Optimizer struct {
	grid    *Grid
	run     RunFunc
	metric  Metric
	logger  *zap.Logger
	workers int
}

// NewOptimizer builds a sweep over grid. workers bounds parallelism; one
// or less runs the sweep sequentially.
func NewOptimizer(grid *Grid, run RunFunc, metric Metric, logger *zap.Logger, workers int) *Optimizer {
	return &Optimizer{
		grid:    grid,
		run:     run,
		metric:  metric,
		logger:  logger,
		workers: workers,
	}
}

// Optimize executes every grid point and returns the results sorted by
// metric, best first. The ranking is identical whether the sweep ran
// sequentially or in parallel: results are joined by grid index before
// sorting and ties keep grid order.
func (o *Optimizer) Optimize(ctx context.Context) ([]Result, error) {
	combos := o.grid.Combinations()
	results := make([]Result, len(combos))

	if o.workers <= 1 {
		for i, params := range combos {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = o.execute(ctx, params)
		}
	} else {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(o.workers)
		for i, params := range combos {
			g.Go(func() error {
				results[i] = o.execute(ctx, params)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metric.Gt(results[j].Metric)
	})
	return results, nil
}

// execute isolates one run so a single bad grid point cannot take down
// the sweep; failures score zero and stay in the ranking.
func (o *Optimizer) execute(ctx context.Context, params ParamSet) (result Result) {
	result.Params = params

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("run panic: %v", r)
			result.Metric = fixed.Zero
			o.logger.Warn("optimizer run failed", zap.Error(result.Err))
		}
	}()

	summary, err := o.run(ctx, params)
	if err != nil {
		o.logger.Warn("optimizer run failed", zap.Error(err))
		result.Err = err
		result.Metric = fixed.Zero
		return result
	}
	result.Summary = summary
	result.Metric = o.metric(summary)
	return result
}
