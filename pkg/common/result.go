package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// RealizedResult is the outcome of one closed round trip between an entry
// lot and the closing trade that consumed it. A closing trade that eats
// through several lots produces several results sharing the same GroupID.
type RealizedResult struct {
	GroupID TradeID
	Symbol  string

	EntryPrice fixed.Point
	ExitPrice  fixed.Point
	EntryTime  time.Time
	ExitTime   time.Time

	// Volume is signed, positive for long round trips and negative for
	// short ones.
	Volume int64

	Turnover   fixed.Point
	Commission fixed.Point
	Slippage   fixed.Point
	Pnl        fixed.Point
}

func (r RealizedResult) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("group_id", r.GroupID.String())
	encoder.AddString("symbol", r.Symbol)
	encoder.AddString("entry_price", r.EntryPrice.String())
	encoder.AddString("exit_price", r.ExitPrice.String())
	encoder.AddInt64("volume", r.Volume)
	encoder.AddString("pnl", r.Pnl.String())
	return nil
}

// TradeRecord is a flat round-trip row meant for export and inspection,
// derived from a RealizedResult.
type TradeRecord struct {
	GroupID    TradeID
	Symbol     string
	Direction  Side
	OpenTime   time.Time
	OpenPrice  fixed.Point
	CloseTime  time.Time
	ClosePrice fixed.Point
	Volume     int64
	Profit     fixed.Point
	Commission fixed.Point
}
