package config

import (
	"context"
	"fmt"
	"time"

	"github.com/peter-kozarec/replay/pkg/data/duckdb"
	"github.com/peter-kozarec/replay/pkg/datasource"
	"github.com/peter-kozarec/replay/pkg/datasource/historical"
	"github.com/peter-kozarec/replay/pkg/datasource/synthetic"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// NewFeed builds the market feed the configuration names. The returned
// closer releases file handles and database connections; it is safe to
// call on every path.
func NewFeed(ctx context.Context, cfg *Config, from, to time.Time) (datasource.Feed, func(), error) {
	noop := func() {}

	if to.IsZero() {
		to = time.Now().UTC()
	}

	switch cfg.Data.Kind {
	case "duckdb_ticks", "duckdb_bars":
		reader := duckdb.NewReader(cfg.Data.Path)
		if err := reader.Connect(); err != nil {
			return nil, noop, err
		}
		var feed datasource.Feed
		var err error
		if cfg.Data.Kind == "duckdb_ticks" {
			feed, err = reader.TickFeed(ctx, cfg.Run.Symbol, from, to)
		} else {
			feed, err = reader.BarFeed(ctx, cfg.Run.Symbol, from, to)
		}
		if err != nil {
			reader.Close()
			return nil, noop, err
		}
		return feed, reader.Close, nil

	case "binary_ticks":
		source := historical.NewSource[historical.BinaryTick](cfg.Data.Path)
		if err := source.Open(); err != nil {
			return nil, noop, err
		}
		return historical.NewTickReader(source, cfg.Run.Symbol, from, to), source.Close, nil

	case "binary_bars":
		source := historical.NewSource[historical.BinaryBar](cfg.Data.Path)
		if err := source.Open(); err != nil {
			return nil, noop, err
		}
		return historical.NewBarReader(source, cfg.Run.Symbol, from, to), source.Close, nil

	case "synthetic":
		generator := synthetic.NewTickGenerator(
			cfg.Run.Symbol,
			cfg.Data.Seed,
			from,
			fixed.FromFloat64(cfg.Data.StartPrice),
			fixed.FromFloat64(cfg.Data.Spread),
			fixed.FromFloat64(cfg.Data.Drift),
			fixed.FromFloat64(cfg.Data.Volatility),
			fixed.FromFloat64(1).DivInt64(252),
			cfg.Data.Steps,
			time.Second,
		)
		return generator, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown data kind %q", cfg.Data.Kind)
	}
}
