// Package config loads the YAML run configuration used by the command
// line tools.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/peter-kozarec/replay/pkg/ledger"
	"github.com/peter-kozarec/replay/pkg/simulation"
	"github.com/peter-kozarec/replay/pkg/strategy"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type RunConfig struct {
	Symbol          string  `mapstructure:"symbol"`
	PriceTick       float64 `mapstructure:"price_tick"`
	Size            float64 `mapstructure:"size"`
	CommissionRate  float64 `mapstructure:"commission_rate"`
	FixedCommission float64 `mapstructure:"fixed_commission"`
	Slippage        float64 `mapstructure:"slippage"`
	MarginRate      float64 `mapstructure:"margin_rate"`
	InitialCapital  float64 `mapstructure:"initial_capital"`
	Mode            string  `mapstructure:"mode"`
	Compounding     bool    `mapstructure:"compounding"`
	Breakout        bool    `mapstructure:"breakout"`
	StartDate       string  `mapstructure:"start_date"`
	EndDate         string  `mapstructure:"end_date"`
}

type DataConfig struct {
	// Kind selects the feed: duckdb_ticks, duckdb_bars, binary_ticks,
	// binary_bars or synthetic.
	Kind string `mapstructure:"kind"`
	Path string `mapstructure:"path"`

	// Synthetic feed parameters.
	Seed       int64   `mapstructure:"seed"`
	StartPrice float64 `mapstructure:"start_price"`
	Spread     float64 `mapstructure:"spread"`
	Drift      float64 `mapstructure:"drift"`
	Volatility float64 `mapstructure:"volatility"`
	Steps      int64   `mapstructure:"steps"`
}

type StrategyConfig struct {
	FastPeriod   int     `mapstructure:"fast_period"`
	SlowPeriod   int     `mapstructure:"slow_period"`
	Volume       int64   `mapstructure:"volume"`
	StopDistance float64 `mapstructure:"stop_distance"`
}

type ParameterConfig struct {
	Name   string    `mapstructure:"name"`
	Start  float64   `mapstructure:"start"`
	End    float64   `mapstructure:"end"`
	Step   float64   `mapstructure:"step"`
	Values []float64 `mapstructure:"values"`
}

type OptimizerConfig struct {
	Workers    int               `mapstructure:"workers"`
	Metric     string            `mapstructure:"metric"`
	Parameters []ParameterConfig `mapstructure:"parameters"`
}

type Config struct {
	Run       RunConfig       `mapstructure:"run"`
	Data      DataConfig      `mapstructure:"data"`
	Strategy  StrategyConfig  `mapstructure:"strategy"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	return &cfg, nil
}

// SimulationConfig maps the file representation onto the engine's typed
// configuration.
func (c *Config) SimulationConfig() (simulation.Config, error) {
	start, err := parseDate(c.Run.StartDate)
	if err != nil {
		return simulation.Config{}, fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(c.Run.EndDate)
	if err != nil {
		return simulation.Config{}, fmt.Errorf("end date: %w", err)
	}

	var mode ledger.Mode
	switch c.Run.Mode {
	case "final", "":
		mode = ledger.ModeFinal
	case "realtime":
		mode = ledger.ModeRealTime
	default:
		return simulation.Config{}, fmt.Errorf("unknown mode %q", c.Run.Mode)
	}

	return simulation.Config{
		Symbol:          c.Run.Symbol,
		PriceTick:       fixed.FromFloat64(c.Run.PriceTick),
		Size:            fixed.FromFloat64(c.Run.Size),
		CommissionRate:  fixed.FromFloat64(c.Run.CommissionRate),
		FixedCommission: fixed.FromFloat64(c.Run.FixedCommission),
		Slippage:        fixed.FromFloat64(c.Run.Slippage),
		MarginRate:      fixed.FromFloat64(c.Run.MarginRate),
		InitialCapital:  fixed.FromFloat64(c.Run.InitialCapital),
		Mode:            mode,
		Compounding:     c.Run.Compounding,
		Breakout:        c.Run.Breakout,
		StartDate:       start,
		EndDate:         end,
	}, nil
}

// SmaCrossConfig maps the file representation onto the crossover
// strategy's configuration.
func (c *Config) SmaCrossConfig() strategy.SmaCrossConfig {
	return strategy.SmaCrossConfig{
		FastPeriod:   c.Strategy.FastPeriod,
		SlowPeriod:   c.Strategy.SlowPeriod,
		Volume:       c.Strategy.Volume,
		StopDistance: fixed.FromFloat64(c.Strategy.StopDistance),
	}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
