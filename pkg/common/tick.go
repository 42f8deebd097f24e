package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Tick is a single top-of-book quote.
type Tick struct {
	Symbol     string
	TimeStamp  time.Time
	TradingDay string

	Last fixed.Point
	Bid  fixed.Point
	Ask  fixed.Point

	BidVolume fixed.Point
	AskVolume fixed.Point
	Volume    fixed.Point
}

func (t Tick) Instrument() string { return t.Symbol }
func (t Tick) At() time.Time      { return t.TimeStamp }
func (t Tick) Day() string        { return t.TradingDay }

func (t Tick) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("symbol", t.Symbol)
	encoder.AddTime("ts", t.TimeStamp)
	encoder.AddString("day", t.TradingDay)
	encoder.AddString("last", t.Last.String())
	encoder.AddString("bid", t.Bid.String())
	encoder.AddString("ask", t.Ask.String())
	return nil
}
