package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Bar is an OHLC candle aggregated over a fixed period. TimeStamp marks the
// bar open.
type Bar struct {
	Symbol     string
	TimeStamp  time.Time
	TradingDay string
	Period     time.Duration

	Open  fixed.Point
	High  fixed.Point
	Low   fixed.Point
	Close fixed.Point

	Volume       fixed.Point
	OpenInterest fixed.Point
}

func (b Bar) Instrument() string { return b.Symbol }
func (b Bar) At() time.Time      { return b.TimeStamp }
func (b Bar) Day() string        { return b.TradingDay }

func (b Bar) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("symbol", b.Symbol)
	encoder.AddTime("ts", b.TimeStamp)
	encoder.AddString("day", b.TradingDay)
	encoder.AddString("open", b.Open.String())
	encoder.AddString("high", b.High.String())
	encoder.AddString("low", b.Low.String())
	encoder.AddString("close", b.Close.String())
	encoder.AddString("volume", b.Volume.String())
	return nil
}
