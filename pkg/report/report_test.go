package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func resultWithPnl(pnl float64) common.RealizedResult {
	return common.RealizedResult{
		Symbol:     "IF888",
		Volume:     1,
		Pnl:        fixed.FromFloat64(pnl),
		Commission: fixed.One,
	}
}

func snapshotWithNet(net float64) common.DailySnapshot {
	return common.DailySnapshot{NetCapital: fixed.FromFloat64(net)}
}

func TestAnalyze_noTrades(t *testing.T) {
	summary := Analyze(fixed.FromInt(1_000_000, 0), nil, nil)
	assert.True(t, summary.Empty())
	assert.Equal(t, 0, summary.TotalTrades)
}

func TestAnalyze_tradeStatistics(t *testing.T) {
	results := []common.RealizedResult{
		resultWithPnl(100),
		resultWithPnl(-40),
		resultWithPnl(60),
		resultWithPnl(-20),
	}

	summary := Analyze(fixed.FromInt(1000, 0), results, nil)
	require.False(t, summary.Empty())

	assert.Equal(t, 4, summary.TotalTrades)
	assert.Equal(t, 2, summary.WinningTrades)
	assert.Equal(t, 2, summary.LosingTrades)
	assert.True(t, summary.WinningRate.Eq(fixed.FromInt(50, 0)))
	assert.Equal(t, "100", summary.TotalPnl.String())
	assert.Equal(t, "4", summary.TotalCommission.String())

	assert.True(t, summary.AverageWinning.Eq(fixed.FromInt(80, 0)))
	assert.True(t, summary.AverageLosing.Eq(fixed.FromInt(-30, 0)))
	// -avgWin/avgLoss.
	assert.True(t, summary.ProfitLossRatio.Eq(fixed.FromFloat64(8).DivInt(3)))

	assert.Equal(t, "100", summary.MaxSingleGain.String())
	assert.Equal(t, "-40", summary.MaxSingleLoss.String())
}

func TestAnalyze_absoluteDrawdown(t *testing.T) {
	// Capital walks 1000 -> 1100 -> 1040 -> 1140 -> 1050; the deepest
	// fall from a peak is 1140 -> 1050.
	results := []common.RealizedResult{
		resultWithPnl(100),
		resultWithPnl(-60),
		resultWithPnl(100),
		resultWithPnl(-90),
	}

	summary := Analyze(fixed.FromInt(1000, 0), results, nil)
	assert.Equal(t, "90", summary.MaxDrawdown.String())
}

func TestAnalyze_dailyDrawdownRate(t *testing.T) {
	snapshots := []common.DailySnapshot{
		snapshotWithNet(1000),
		snapshotWithNet(1200),
		snapshotWithNet(900),
		snapshotWithNet(1100),
	}

	summary := Analyze(fixed.FromInt(1000, 0), []common.RealizedResult{resultWithPnl(1)}, snapshots)
	// 1200 -> 900 is a 25% fall.
	assert.True(t, summary.MaxDrawdownRate.Eq(fixed.FromFloat64(0.25)))
}

func TestAnalyze_sharpe(t *testing.T) {
	t.Run("needs two snapshots", func(t *testing.T) {
		summary := Analyze(fixed.FromInt(1000, 0), []common.RealizedResult{resultWithPnl(1)},
			[]common.DailySnapshot{snapshotWithNet(1000)})
		assert.True(t, summary.SharpeRatio.IsZero())
	})

	t.Run("flat series scores zero", func(t *testing.T) {
		summary := Analyze(fixed.FromInt(1000, 0), []common.RealizedResult{resultWithPnl(1)},
			[]common.DailySnapshot{snapshotWithNet(1000), snapshotWithNet(1000), snapshotWithNet(1000)})
		assert.True(t, summary.SharpeRatio.IsZero())
	})

	t.Run("rising series scores positive", func(t *testing.T) {
		summary := Analyze(fixed.FromInt(1000, 0), []common.RealizedResult{resultWithPnl(1)},
			[]common.DailySnapshot{snapshotWithNet(1000), snapshotWithNet(1010), snapshotWithNet(1030)})
		assert.True(t, summary.SharpeRatio.IsPos())
	})
}
