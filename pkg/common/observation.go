package common

import "time"

// Observation is a single historical market data point. The two concrete
// kinds are Tick (quote) and Bar (OHLC candle); consumers type-switch when
// they need more than the identity accessors below.
type Observation interface {
	// Instrument returns the symbol the observation belongs to.
	Instrument() string
	// At returns the observation timestamp. A feed emits observations with
	// non-decreasing timestamps.
	At() time.Time
	// Day returns the trading-session date, which may differ from the
	// calendar date of At for overnight sessions.
	Day() string
}
