package ledger

import (
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// realize turns one entry/exit pairing into a RealizedResult. factor is the
// compounding multiple, one for uncompounded accounting.
func (c Config) realize(m match, closing common.Trade, factor int64) common.RealizedResult {
	volume := m.volume
	if m.entry.Side == common.SideShort {
		volume = -volume
	}

	entry := m.entry.Price
	exit := closing.Price
	units := fixed.FromInt64(m.volume, 0)

	turnover := entry.Add(exit).Mul(c.Size).Mul(units)

	var commission fixed.Point
	if !c.FixedCommission.IsZero() {
		commission = c.FixedCommission.Mul(units)
	} else {
		commission = turnover.Mul(c.CommissionRate).Abs()
	}

	slippage := c.Slippage.Mul(fixed.Two).Mul(c.Size).Mul(units)

	pnl := exit.Sub(entry).
		Mul(fixed.FromInt64(volume, 0)).
		Mul(c.Size).
		Sub(commission).
		Sub(slippage)

	if factor > 1 {
		turnover = turnover.MulInt64(factor)
		commission = commission.MulInt64(factor)
		slippage = slippage.MulInt64(factor)
		pnl = pnl.MulInt64(factor)
	}

	return common.RealizedResult{
		GroupID:    closing.ID,
		Symbol:     closing.Symbol,
		EntryPrice: entry,
		ExitPrice:  exit,
		EntryTime:  m.entry.TimeStamp,
		ExitTime:   closing.TimeStamp,
		Volume:     volume,
		Turnover:   turnover,
		Commission: commission,
		Slippage:   slippage,
		Pnl:        pnl,
	}
}

func record(r common.RealizedResult) common.TradeRecord {
	direction := common.SideLong
	volume := r.Volume
	if volume < 0 {
		direction = common.SideShort
		volume = -volume
	}
	return common.TradeRecord{
		GroupID:    r.GroupID,
		Symbol:     r.Symbol,
		Direction:  direction,
		OpenTime:   r.EntryTime,
		OpenPrice:  r.EntryPrice,
		CloseTime:  r.ExitTime,
		ClosePrice: r.ExitPrice,
		Volume:     volume,
		Profit:     r.Pnl,
		Commission: r.Commission,
	}
}
