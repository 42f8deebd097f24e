package ledger

import (
	"strings"

	"github.com/peter-kozarec/replay/pkg/common"
)

// lot is a not yet fully closed opening trade. Only remaining mutates.
type lot struct {
	entry     common.Trade
	remaining int64
}

// lotBook keeps per-instrument, per-side FIFO queues of open lots.
// Instrument keys are case-insensitive.
type lotBook struct {
	longs  map[string][]*lot
	shorts map[string][]*lot
}

func newLotBook() *lotBook {
	return &lotBook{
		longs:  make(map[string][]*lot),
		shorts: make(map[string][]*lot),
	}
}

func lotKey(symbol string) string { return strings.ToLower(symbol) }

func (b *lotBook) queue(symbol string, side common.Side) []*lot {
	if side == common.SideLong {
		return b.longs[lotKey(symbol)]
	}
	return b.shorts[lotKey(symbol)]
}

func (b *lotBook) setQueue(symbol string, side common.Side, q []*lot) {
	if side == common.SideLong {
		b.longs[lotKey(symbol)] = q
		return
	}
	b.shorts[lotKey(symbol)] = q
}

// push appends an opening trade as the newest lot on its side.
func (b *lotBook) push(trade common.Trade) {
	q := b.queue(trade.Symbol, trade.Side)
	b.setQueue(trade.Symbol, trade.Side, append(q, &lot{entry: trade, remaining: trade.Volume}))
}

// match pairs one entry lot with the volume a closing trade took from it.
type match struct {
	entry  common.Trade
	volume int64
}

// consume settles a closing trade against the opposite side's FIFO queue,
// splitting the front lot when the close is smaller than its remainder. It
// returns one match per lot touched, oldest first.
func (b *lotBook) consume(trade common.Trade) ([]match, error) {
	side := trade.Side.Opposite()
	q := b.queue(trade.Symbol, side)

	remaining := trade.Volume
	var matches []match
	for remaining > 0 {
		if len(q) == 0 {
			return nil, &IntegrityError{Symbol: trade.Symbol, Side: side, TradeID: trade.ID}
		}
		front := q[0]
		taken := min(remaining, front.remaining)
		matches = append(matches, match{entry: front.entry, volume: taken})
		front.remaining -= taken
		remaining -= taken
		if front.remaining == 0 {
			q = q[1:]
		}
	}
	b.setQueue(trade.Symbol, side, q)
	return matches, nil
}

// openVolume sums remaining volume over one side of one instrument.
func (b *lotBook) openVolume(symbol string, side common.Side) int64 {
	var total int64
	for _, l := range b.queue(symbol, side) {
		total += l.remaining
	}
	return total
}
