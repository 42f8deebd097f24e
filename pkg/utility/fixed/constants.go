package fixed

var (
	Zero    = FromInt(0, 0)
	One     = FromInt(1, 0)
	Two     = FromInt(2, 0)
	Hundred = FromInt(100, 0)

	// TradingDaysPerYear and its square root, used for annualizing daily
	// return statistics.
	TradingDaysPerYear = FromInt(252, 0)
	SqrtTradingDays    = FromInt64(1587450786638754, 14)
)
