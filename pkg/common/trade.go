package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Trade is a fill. Every trade fills its parent order in full, so Volume
// always equals the order volume.
type Trade struct {
	ID        TradeID
	OrderID   OrderID
	Symbol    string
	Side      Side
	Effect    Effect
	Price     fixed.Point
	Volume    int64
	TimeStamp time.Time
}

func (t Trade) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", t.ID.String())
	encoder.AddString("order_id", t.OrderID.String())
	encoder.AddString("symbol", t.Symbol)
	encoder.AddString("side", t.Side.String())
	encoder.AddString("effect", t.Effect.String())
	encoder.AddString("price", t.Price.String())
	encoder.AddInt64("volume", t.Volume)
	encoder.AddTime("ts", t.TimeStamp)
	return nil
}
