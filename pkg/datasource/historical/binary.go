package historical

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// BinaryTick is the on-disk tick record layout. Timestamps are unix
// nanoseconds.
type BinaryTick struct {
	TimeStamp int64
	Last      float64
	Bid       float64
	Ask       float64
	BidVolume float64
	AskVolume float64
}

func (binaryTick BinaryTick) ToTick(symbol string, tick *common.Tick) {
	ts := time.Unix(0, binaryTick.TimeStamp).UTC()
	tick.Symbol = symbol
	tick.TimeStamp = ts
	tick.TradingDay = ts.Format(time.DateOnly)
	tick.Last = fixed.FromFloat64(binaryTick.Last)
	tick.Bid = fixed.FromFloat64(binaryTick.Bid)
	tick.Ask = fixed.FromFloat64(binaryTick.Ask)
	tick.BidVolume = fixed.FromFloat64(binaryTick.BidVolume)
	tick.AskVolume = fixed.FromFloat64(binaryTick.AskVolume)
}

// BinaryBar is the on-disk bar record layout. Timestamps are unix
// nanoseconds of the bar open; PeriodNs is the bar length.
type BinaryBar struct {
	TimeStamp int64
	PeriodNs  int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

func (binaryBar BinaryBar) ToBar(symbol string, bar *common.Bar) {
	ts := time.Unix(0, binaryBar.TimeStamp).UTC()
	bar.Symbol = symbol
	bar.TimeStamp = ts
	bar.TradingDay = ts.Format(time.DateOnly)
	bar.Period = time.Duration(binaryBar.PeriodNs)
	bar.Open = fixed.FromFloat64(binaryBar.Open)
	bar.High = fixed.FromFloat64(binaryBar.High)
	bar.Low = fixed.FromFloat64(binaryBar.Low)
	bar.Close = fixed.FromFloat64(binaryBar.Close)
	bar.Volume = fixed.FromFloat64(binaryBar.Volume)
}
