// Package report derives summary statistics from the realized results and
// daily snapshots of a finished run.
package report

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/calc"
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinningRate   fixed.Point

	TotalPnl        fixed.Point
	TotalCommission fixed.Point
	TotalSlippage   fixed.Point
	TotalTurnover   fixed.Point

	AverageWinning  fixed.Point
	AverageLosing   fixed.Point
	ProfitLossRatio fixed.Point

	MaxSingleGain fixed.Point
	MaxSingleLoss fixed.Point

	// MaxDrawdown is the deepest peak-to-trough fall of the per-trade
	// capital series in absolute money. MaxDrawdownRate is the deepest
	// percentage fall of the daily net-capital series; the two come from
	// different series and are reported separately.
	MaxDrawdown     fixed.Point
	MaxDrawdownRate fixed.Point

	SharpeRatio fixed.Point
}

// Empty reports whether the run closed no trades at all.
func (s Summary) Empty() bool { return s.TotalTrades == 0 }

// Analyze folds realized results and daily snapshots into a Summary. A run
// with no closed trades yields the zero Summary.
func Analyze(initialCapital fixed.Point, results []common.RealizedResult, snapshots []common.DailySnapshot) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	var s Summary
	s.TotalTrades = len(results)

	capital := initialCapital
	peak := initialCapital
	for i, r := range results {
		s.TotalPnl = s.TotalPnl.Add(r.Pnl)
		s.TotalCommission = s.TotalCommission.Add(r.Commission)
		s.TotalSlippage = s.TotalSlippage.Add(r.Slippage)
		s.TotalTurnover = s.TotalTurnover.Add(r.Turnover)

		if r.Pnl.IsPos() {
			s.WinningTrades++
			s.AverageWinning = s.AverageWinning.Add(r.Pnl)
		} else {
			s.LosingTrades++
			s.AverageLosing = s.AverageLosing.Add(r.Pnl)
		}
		if i == 0 || r.Pnl.Gt(s.MaxSingleGain) {
			s.MaxSingleGain = r.Pnl
		}
		if i == 0 || r.Pnl.Lt(s.MaxSingleLoss) {
			s.MaxSingleLoss = r.Pnl
		}

		capital = capital.Add(r.Pnl)
		peak = fixed.Max(peak, capital)
		drawdown := peak.Sub(capital)
		s.MaxDrawdown = fixed.Max(s.MaxDrawdown, drawdown)
	}

	s.WinningRate = fixed.FromInt(s.WinningTrades, 0).
		Mul(fixed.Hundred).
		DivInt(s.TotalTrades)
	if s.WinningTrades > 0 {
		s.AverageWinning = s.AverageWinning.DivInt(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLosing = s.AverageLosing.DivInt(s.LosingTrades)
	}
	if !s.AverageLosing.IsZero() {
		s.ProfitLossRatio = s.AverageWinning.Neg().Div(s.AverageLosing)
	}

	s.MaxDrawdownRate = maxDrawdownRate(snapshots)
	s.SharpeRatio = sharpe(snapshots)
	return s
}

// maxDrawdownRate is the deepest percentage drawdown of the daily
// net-capital series against its running peak.
func maxDrawdownRate(snapshots []common.DailySnapshot) fixed.Point {
	var worst, peak fixed.Point
	for i, snap := range snapshots {
		if i == 0 || snap.NetCapital.Gt(peak) {
			peak = snap.NetCapital
		}
		if peak.IsZero() {
			continue
		}
		rate := peak.Sub(snap.NetCapital).Div(peak)
		worst = fixed.Max(worst, rate)
	}
	return worst
}

// sharpe annualizes the day-over-day log returns of net capital. Fewer
// than two snapshots cannot produce a return series and score zero.
func sharpe(snapshots []common.DailySnapshot) fixed.Point {
	if len(snapshots) < 2 {
		return fixed.Zero
	}
	series := make([]fixed.Point, 0, len(snapshots))
	for _, snap := range snapshots {
		series = append(series, snap.NetCapital)
	}
	return calc.SharpeRatio(calc.LogReturns(series))
}

func (s Summary) Print(logger *zap.Logger) {
	if s.Empty() {
		logger.Info("no trades closed")
		return
	}

	logger.Info("trade statistics",
		zap.Int("total_trades", s.TotalTrades),
		zap.Int("winning_trades", s.WinningTrades),
		zap.Int("losing_trades", s.LosingTrades),
		zap.String("winning_rate", s.WinningRate.String()),
		zap.String("average_winning", s.AverageWinning.String()),
		zap.String("average_losing", s.AverageLosing.String()),
		zap.String("profit_loss_ratio", s.ProfitLossRatio.String()),
		zap.String("max_single_gain", s.MaxSingleGain.String()),
		zap.String("max_single_loss", s.MaxSingleLoss.String()),
	)

	logger.Info("performance report",
		zap.String("total_pnl", s.TotalPnl.String()),
		zap.String("total_commission", s.TotalCommission.String()),
		zap.String("total_slippage", s.TotalSlippage.String()),
		zap.String("total_turnover", s.TotalTurnover.String()),
		zap.String("max_drawdown", s.MaxDrawdown.String()),
		zap.String("max_drawdown_rate", s.MaxDrawdownRate.String()),
		zap.String("sharpe_ratio", s.SharpeRatio.String()),
	)
}
