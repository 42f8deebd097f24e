package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/internal/config"
	"github.com/peter-kozarec/replay/pkg/dbg"
	"github.com/peter-kozarec/replay/pkg/optimizer"
	"github.com/peter-kozarec/replay/pkg/report"
	"github.com/peter-kozarec/replay/pkg/simulation"
	"github.com/peter-kozarec/replay/pkg/strategy"
	"github.com/peter-kozarec/replay/pkg/utility"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func main() {
	configPath := flag.String("config", "backtest.yaml", "path to the run configuration")
	top := flag.Int("top", 10, "number of ranked results to print")
	flag.Parse()

	logger := dbg.NewDevLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("error loading configuration", zap.Error(err))
	}
	simCfg, err := cfg.SimulationConfig()
	if err != nil {
		logger.Fatal("error in run configuration", zap.Error(err))
	}

	grid := optimizer.NewGrid()
	for _, p := range cfg.Optimizer.Parameters {
		if len(p.Values) > 0 {
			values := make([]fixed.Point, 0, len(p.Values))
			for _, v := range p.Values {
				values = append(values, fixed.FromFloat64(v))
			}
			grid.AddValues(p.Name, values...)
			continue
		}
		grid.AddRange(p.Name, fixed.FromFloat64(p.Start), fixed.FromFloat64(p.End), fixed.FromFloat64(p.Step))
	}

	metric := optimizer.MetricTotalPnl
	switch cfg.Optimizer.Metric {
	case "sharpe_ratio":
		metric = optimizer.MetricSharpeRatio
	case "winning_rate":
		metric = optimizer.MetricWinningRate
	}

	logger.Info("optimization started",
		zap.String("run_id", utility.ResetRunID().String()),
		zap.String("symbol", simCfg.Symbol),
	)

	// Every grid point gets its own feed, strategy and simulator; the
	// runs share nothing but the configuration values.
	runLogger := zap.NewNop()
	run := func(ctx context.Context, params optimizer.ParamSet) (report.Summary, error) {
		feed, closeFeed, err := config.NewFeed(ctx, cfg, simCfg.StartDate, simCfg.EndDate)
		if err != nil {
			return report.Summary{}, err
		}
		defer closeFeed()

		simulator := simulation.NewSimulator(simCfg, feed, strategy.NewSmaCross(applyParams(cfg.SmaCrossConfig(), params)), runLogger)
		outcome, err := simulator.Run(ctx)
		if err != nil {
			return report.Summary{}, err
		}
		if outcome.Err != nil {
			return report.Summary{}, outcome.Err
		}
		return outcome.Summary, nil
	}

	workers := cfg.Optimizer.Workers
	results, err := optimizer.NewOptimizer(grid, run, metric, logger, workers).Optimize(ctx)
	if err != nil {
		logger.Fatal("error during optimization", zap.Error(err))
	}

	for i, result := range results {
		if i >= *top {
			break
		}
		fields := []zap.Field{
			zap.Int("rank", i+1),
			zap.String("metric", result.Metric.String()),
		}
		for name, value := range result.Params {
			fields = append(fields, zap.String(name, value.String()))
		}
		if result.Err != nil {
			fields = append(fields, zap.Error(result.Err))
		}
		logger.Info("result", fields...)
	}
}

// applyParams overrides the strategy configuration with grid values.
func applyParams(cfg strategy.SmaCrossConfig, params optimizer.ParamSet) strategy.SmaCrossConfig {
	if v, ok := params["fast_period"]; ok {
		cfg.FastPeriod = int(v.Int64())
	}
	if v, ok := params["slow_period"]; ok {
		cfg.SlowPeriod = int(v.Int64())
	}
	if v, ok := params["volume"]; ok {
		cfg.Volume = v.Int64()
	}
	if v, ok := params["stop_distance"]; ok {
		cfg.StopDistance = v
	}
	return cfg
}
