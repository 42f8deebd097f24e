package calc

import "github.com/peter-kozarec/replay/pkg/utility/fixed"

// SharpeRatio annualizes daily log returns over a 252 day trading year. A
// flat series has no volatility and scores zero.
func SharpeRatio(returns []fixed.Point) fixed.Point {
	mean := Mean(returns)
	volatility := StandardDeviation(returns, mean)
	if volatility.IsZero() {
		return fixed.Zero
	}
	return mean.Mul(fixed.TradingDaysPerYear).Div(volatility.Mul(fixed.SqrtTradingDays))
}
