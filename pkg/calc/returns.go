package calc

import "github.com/peter-kozarec/replay/pkg/utility/fixed"

// LogReturns converts a value series into day-over-day log returns. The
// first return is zero so the output length matches the input length, and
// a non-positive value yields a zero return since its logarithm does not
// exist.
func LogReturns(series []fixed.Point) []fixed.Point {
	returns := make([]fixed.Point, len(series))
	for i := 1; i < len(series); i++ {
		if !series[i].IsPos() || !series[i-1].IsPos() {
			continue
		}
		returns[i] = series[i].Log().Sub(series[i-1].Log())
	}
	return returns
}
