package common

import (
	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// PositionMark is one open lot valued against the day's marking price.
type PositionMark struct {
	Symbol string
	Side   Side
	Price  fixed.Point
	Volume int64
	// Margin is the unrealized mark-to-market profit of the lot, signed
	// from the holder's point of view.
	Margin fixed.Point
}

// DailySnapshot captures account state at a trading-day boundary, with open
// lots marked against the last seen price.
type DailySnapshot struct {
	Date      string
	LastPrice fixed.Point

	Capital    fixed.Point
	NetCapital fixed.Point
	MaxCapital fixed.Point

	// Rate is the drawdown of NetCapital from its running peak, as a
	// fraction of the peak.
	Rate       fixed.Point
	Commission fixed.Point

	LongMargin  fixed.Point
	ShortMargin fixed.Point

	// OccupyMoney is the larger of the long and short occupied margin,
	// OccupyRate that amount relative to NetCapital.
	OccupyMoney fixed.Point
	OccupyRate  fixed.Point

	LongPositions  []PositionMark
	ShortPositions []PositionMark

	// Benchmark is the marking price normalized to the first non-zero
	// marking price of the run.
	Benchmark fixed.Point
}

func (s DailySnapshot) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("date", s.Date)
	encoder.AddString("last_price", s.LastPrice.String())
	encoder.AddString("capital", s.Capital.String())
	encoder.AddString("net_capital", s.NetCapital.String())
	encoder.AddString("max_capital", s.MaxCapital.String())
	encoder.AddString("rate", s.Rate.String())
	encoder.AddInt("long_positions", len(s.LongPositions))
	encoder.AddInt("short_positions", len(s.ShortPositions))
	return nil
}
