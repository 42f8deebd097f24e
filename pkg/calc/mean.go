package calc

import "github.com/peter-kozarec/replay/pkg/utility/fixed"

func Mean(returns []fixed.Point) fixed.Point {
	if len(returns) == 0 {
		return fixed.Zero
	}
	var sum fixed.Point
	for _, r := range returns {
		sum = sum.Add(r)
	}
	return sum.DivInt(len(returns))
}
