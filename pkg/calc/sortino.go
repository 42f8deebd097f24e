package calc

import "github.com/peter-kozarec/replay/pkg/utility/fixed"

func SortinoRatio(returns []fixed.Point, riskFreeRate fixed.Point) fixed.Point {
	mean := Mean(returns)
	downsideDeviation := DownsideDeviation(returns, riskFreeRate)
	if downsideDeviation.IsZero() {
		return fixed.Zero
	}
	return mean.Sub(riskFreeRate).Div(downsideDeviation)
}
