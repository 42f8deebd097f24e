// Package ledger converts fills into FIFO position lots and realized
// results, and tracks capital, margin and daily account snapshots.
package ledger

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// AccountInfo is the margin view a strategy can poll for position sizing.
type AccountInfo struct {
	NetCapital   fixed.Point
	Available    fixed.Point
	Percent      fixed.Point
	PercentLimit fixed.Point
}

// Ledger is the accounting state of one simulation run. Like the book, it
// is driven from a single goroutine and is not safe for concurrent use.
type Ledger struct {
	cfg Config

	lots    *lotBook
	pending []common.Trade

	results []common.RealizedResult
	records []common.TradeRecord

	// capital is settlement capital, moved only by realized results.
	// netCapital additionally carries open-position mark-to-market after
	// each daily snapshot; the two are deliberately distinct views.
	capital       fixed.Point
	maxCapital    fixed.Point
	capitalSeries []fixed.Point

	netCapital    fixed.Point
	maxNetCapital fixed.Point

	totalCommission fixed.Point
	maxVolume       int64

	snapshots     []common.DailySnapshot
	benchmarkBase fixed.Point

	lastTick     map[string]fixed.Point
	lastBarClose map[string]fixed.Point
}

func NewLedger(cfg Config) *Ledger {
	return &Ledger{
		cfg:           cfg,
		lots:          newLotBook(),
		capital:       cfg.InitialCapital,
		maxCapital:    cfg.InitialCapital,
		netCapital:    cfg.InitialCapital,
		maxNetCapital: cfg.InitialCapital,
		lastTick:      make(map[string]fixed.Point),
		lastBarClose:  make(map[string]fixed.Point),
	}
}

// Observe records the marking price of the observation's instrument. Tick
// prices take precedence over bar closes when marking open lots.
func (l *Ledger) Observe(obs common.Observation) {
	switch o := obs.(type) {
	case common.Tick:
		l.lastTick[lotKey(o.Symbol)] = o.Last
	case common.Bar:
		l.lastBarClose[lotKey(o.Symbol)] = o.Close
	}
}

// OnTrade books one fill. Opening trades become lots immediately in both
// modes. Closing trades consume lots immediately; in final mode their
// monetary settlement is deferred to Settle, in realtime mode capital and
// net capital move before this returns.
func (l *Ledger) OnTrade(trade common.Trade) error {
	if trade.Effect == common.EffectOpen {
		l.lots.push(trade)
		if open := l.lots.openVolume(trade.Symbol, trade.Side); open > l.maxVolume {
			l.maxVolume = open
		}
		if l.cfg.Mode == ModeFinal {
			l.pending = append(l.pending, trade)
		}
		return nil
	}

	matches, err := l.lots.consume(trade)
	if err != nil {
		return err
	}

	if l.cfg.Mode == ModeFinal {
		l.pending = append(l.pending, trade)
		return nil
	}

	for _, m := range matches {
		r := l.cfg.realize(m, trade, 1)
		l.apply(r)
		l.netCapital = l.netCapital.Add(r.Pnl)
		if l.netCapital.IsNeg() {
			return ErrNegativeCapital
		}
	}
	return nil
}

// Settle replays the accumulated trades and produces the realized results
// of a final-mode run. It is a no-op in realtime mode.
func (l *Ledger) Settle() error {
	if l.cfg.Mode != ModeFinal {
		return nil
	}

	replay := newLotBook()
	for _, trade := range l.pending {
		if trade.Effect == common.EffectOpen {
			replay.push(trade)
			continue
		}
		matches, err := replay.consume(trade)
		if err != nil {
			return err
		}
		factor := l.compoundingFactor()
		for _, m := range matches {
			r := l.cfg.realize(m, trade, factor)
			l.apply(r)
			if l.capital.IsNeg() {
				return ErrNegativeCapital
			}
		}
	}
	l.pending = nil
	return nil
}

// apply books one realized result into capital and the export lists.
func (l *Ledger) apply(r common.RealizedResult) {
	l.results = append(l.results, r)
	l.records = append(l.records, record(r))
	l.totalCommission = l.totalCommission.Add(r.Commission)
	l.capital = l.capital.Add(r.Pnl)
	l.capitalSeries = append(l.capitalSeries, l.capital)
	l.maxCapital = fixed.Max(l.maxCapital, l.capital)
}

// compoundingFactor is the whole multiple of initial capital reached so
// far, never below one so a drawdown cannot zero out position sizing.
func (l *Ledger) compoundingFactor() int64 {
	if !l.cfg.Compounding || l.cfg.InitialCapital.IsZero() {
		return 1
	}
	factor := l.capital.Div(l.cfg.InitialCapital).Floor().Int64()
	if factor < 1 {
		return 1
	}
	return factor
}

// markPrice is the price open lots of symbol are valued against, the last
// tick when one exists, otherwise the last bar close.
func (l *Ledger) markPrice(symbol string) (fixed.Point, bool) {
	if p, ok := l.lastTick[lotKey(symbol)]; ok {
		return p, true
	}
	if p, ok := l.lastBarClose[lotKey(symbol)]; ok {
		return p, true
	}
	return fixed.Zero, false
}

// occupiedMargin sums entry-price margin over one side's open lots across
// all instruments.
func (l *Ledger) occupiedMargin(side common.Side) fixed.Point {
	queues := l.lots.longs
	if side == common.SideShort {
		queues = l.lots.shorts
	}
	total := fixed.Zero
	for _, q := range queues {
		for _, lt := range q {
			total = total.Add(lt.entry.Price.
				MulInt64(lt.remaining).
				Mul(l.cfg.Size).
				Mul(l.cfg.MarginRate))
		}
	}
	return total
}

// AccountInfo reports net capital and margin usage for position sizing.
// Occupied margin is the larger of the long and short totals since the two
// sides offset on most venues.
func (l *Ledger) AccountInfo() AccountInfo {
	occupied := fixed.Max(l.occupiedMargin(common.SideLong), l.occupiedMargin(common.SideShort))
	info := AccountInfo{
		NetCapital:   l.netCapital,
		Available:    l.netCapital.Sub(occupied),
		PercentLimit: l.cfg.PercentLimit,
	}
	if !l.netCapital.IsZero() {
		info.Percent = occupied.Mul(fixed.Hundred).Div(l.netCapital)
	}
	return info
}

// OpenVolume reports the total remaining volume on one side of one
// instrument.
func (l *Ledger) OpenVolume(symbol string, side common.Side) int64 {
	return l.lots.openVolume(symbol, side)
}

func (l *Ledger) Capital() fixed.Point    { return l.capital }
func (l *Ledger) NetCapital() fixed.Point { return l.netCapital }
func (l *Ledger) MaxVolume() int64        { return l.maxVolume }

func (l *Ledger) Results() []common.RealizedResult  { return l.results }
func (l *Ledger) Records() []common.TradeRecord     { return l.records }
func (l *Ledger) Snapshots() []common.DailySnapshot { return l.snapshots }
func (l *Ledger) CapitalSeries() []fixed.Point      { return l.capitalSeries }
