package simulation

import (
	"fmt"
	"time"

	"github.com/peter-kozarec/replay/pkg/ledger"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// ConfigurationError rejects a run before any observation is processed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}

// Config describes one backtest run.
type Config struct {
	Symbol    string
	PriceTick fixed.Point

	// Size is the contract multiplier. Zero means one.
	Size fixed.Point

	// CommissionRate charges a fraction of turnover; FixedCommission, when
	// non-zero, charges per lot instead. Slippage is the assumed adverse
	// price move per side in price units.
	CommissionRate  fixed.Point
	FixedCommission fixed.Point
	Slippage        fixed.Point

	MarginRate     fixed.Point
	InitialCapital fixed.Point

	Mode        ledger.Mode
	Compounding bool

	// Breakout flips the dispatch order to strategy-first and inverts
	// limit price improvement for stop-and-reverse breakout systems.
	Breakout bool

	// PercentLimit caps the margin usage reported through AccountInfo.
	// Zero means one hundred.
	PercentLimit fixed.Point

	StartDate time.Time
	EndDate   time.Time
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if c.Symbol == "" {
		return &ConfigurationError{Field: "symbol", Reason: "is required"}
	}
	if c.StartDate.IsZero() {
		return &ConfigurationError{Field: "start date", Reason: "is required"}
	}
	if !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return &ConfigurationError{Field: "end date", Reason: "precedes the start date"}
	}
	if c.InitialCapital.IsNeg() || c.InitialCapital.IsZero() {
		return &ConfigurationError{Field: "initial capital", Reason: "must be positive"}
	}
	if c.Mode != ledger.ModeFinal && c.Mode != ledger.ModeRealTime {
		return &ConfigurationError{Field: "mode", Reason: "is unsupported"}
	}
	if c.Compounding && c.Mode == ledger.ModeRealTime {
		return &ConfigurationError{Field: "compounding", Reason: "is not supported in realtime mode"}
	}
	if c.PriceTick.IsNeg() || c.Size.IsNeg() || c.CommissionRate.IsNeg() ||
		c.FixedCommission.IsNeg() || c.Slippage.IsNeg() || c.MarginRate.IsNeg() {
		return &ConfigurationError{Field: "cost parameters", Reason: "must not be negative"}
	}
	return nil
}

// ledgerConfig maps the run configuration onto the accounting layer,
// filling the defaults Validate allows to stay zero.
func (c Config) ledgerConfig() ledger.Config {
	size := c.Size
	if size.IsZero() {
		size = fixed.One
	}
	percentLimit := c.PercentLimit
	if percentLimit.IsZero() {
		percentLimit = fixed.Hundred
	}
	return ledger.Config{
		Symbol:          c.Symbol,
		Size:            size,
		Slippage:        c.Slippage,
		CommissionRate:  c.CommissionRate,
		FixedCommission: c.FixedCommission,
		MarginRate:      c.MarginRate,
		InitialCapital:  c.InitialCapital,
		Mode:            c.Mode,
		Compounding:     c.Compounding,
		PercentLimit:    percentLimit,
	}
}
