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
	"github.com/peter-kozarec/replay/pkg/simulation"
	"github.com/peter-kozarec/replay/pkg/strategy"
)

func main() {
	configPath := flag.String("config", "backtest.yaml", "path to the run configuration")
	verbose := flag.Bool("verbose", false, "log orders and trades while running")
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

	feed, closeFeed, err := config.NewFeed(ctx, cfg, simCfg.StartDate, simCfg.EndDate)
	if err != nil {
		logger.Fatal("error opening market feed", zap.Error(err))
	}
	defer closeFeed()

	var runStrategy simulation.Strategy = strategy.NewSmaCross(cfg.SmaCrossConfig())
	if *verbose {
		runStrategy = simulation.NewMonitor(runStrategy, logger, simulation.MonitorOrders|simulation.MonitorTrades)
	}

	simulator := simulation.NewSimulator(simCfg, feed, runStrategy, logger)
	outcome, err := simulator.Run(ctx)
	if err != nil {
		logger.Fatal("error during simulation", zap.Error(err))
	}

	logger.Info("terminated", zap.String("code", outcome.Termination.String()))
	if outcome.Err != nil {
		logger.Error("abort cause", zap.Error(outcome.Err))
		return
	}
	outcome.Summary.Print(logger)
}
