package ledger

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Snapshot closes out one trading day: every open lot is marked against
// the last seen price of its instrument, net capital is redefined as
// settlement capital plus the day's mark-to-market, and the resulting
// DailySnapshot is appended. date is the trading-session date being
// closed.
func (l *Ledger) Snapshot(date string) common.DailySnapshot {
	var (
		longMarks, shortMarks   []common.PositionMark
		longMargin, shortMargin fixed.Point
		longMoney, shortMoney   fixed.Point
	)

	for _, q := range l.lots.longs {
		for _, lt := range q {
			mark := l.lotMark(lt, common.SideLong)
			longMarks = append(longMarks, mark)
			longMargin = longMargin.Add(mark.Margin)
			longMoney = longMoney.Add(mark.Price.
				MulInt64(mark.Volume).
				Mul(l.cfg.Size).
				Mul(l.cfg.MarginRate))
		}
	}
	for _, q := range l.lots.shorts {
		for _, lt := range q {
			mark := l.lotMark(lt, common.SideShort)
			shortMarks = append(shortMarks, mark)
			shortMargin = shortMargin.Add(mark.Margin)
			shortMoney = shortMoney.Add(mark.Price.
				MulInt64(mark.Volume).
				Mul(l.cfg.Size).
				Mul(l.cfg.MarginRate))
		}
	}

	todayMargin := longMargin.Add(shortMargin)
	net := l.capital.Add(todayMargin)
	l.netCapital = net
	l.maxNetCapital = fixed.Max(l.maxNetCapital, net)

	rate := fixed.Zero
	if !l.maxNetCapital.IsZero() {
		rate = l.maxNetCapital.Sub(net).Div(l.maxNetCapital)
	}

	occupyMoney := fixed.Max(longMoney, shortMoney)
	occupyRate := fixed.Zero
	if !net.IsZero() {
		occupyRate = occupyMoney.Mul(fixed.Hundred).Div(net)
	}

	lastPrice, _ := l.markPrice(l.cfg.Symbol)

	snapshot := common.DailySnapshot{
		Date:           date,
		LastPrice:      lastPrice,
		Capital:        l.capital,
		NetCapital:     net,
		MaxCapital:     l.maxNetCapital,
		Rate:           rate,
		Commission:     l.totalCommission,
		LongMargin:     longMargin,
		ShortMargin:    shortMargin,
		OccupyMoney:    occupyMoney,
		OccupyRate:     occupyRate,
		LongPositions:  longMarks,
		ShortPositions: shortMarks,
		Benchmark:      l.benchmark(lastPrice),
	}
	l.snapshots = append(l.snapshots, snapshot)
	return snapshot
}

// lotMark values one open lot against its instrument's marking price. A
// lot whose instrument was never observed marks at its entry price.
func (l *Ledger) lotMark(lt *lot, side common.Side) common.PositionMark {
	price, ok := l.markPrice(lt.entry.Symbol)
	if !ok {
		price = lt.entry.Price
	}
	diff := price.Sub(lt.entry.Price)
	if side == common.SideShort {
		diff = diff.Neg()
	}
	return common.PositionMark{
		Symbol: lt.entry.Symbol,
		Side:   side,
		Price:  price,
		Volume: lt.remaining,
		Margin: diff.MulInt64(lt.remaining).Mul(l.cfg.Size),
	}
}

// benchmark normalizes the marking price to the first non-zero price seen.
func (l *Ledger) benchmark(lastPrice fixed.Point) fixed.Point {
	if l.benchmarkBase.IsZero() {
		if lastPrice.IsZero() {
			return fixed.Zero
		}
		l.benchmarkBase = lastPrice
	}
	return lastPrice.Div(l.benchmarkBase)
}
