// Package book holds working limit and stop orders for a simulated exchange
// and crosses them against incoming market observations.
package book

import (
	"strings"
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// CrossResult collects everything a single crossing pass produced: the
// fills, the orders whose status changed, and the stop orders that fired.
type CrossResult struct {
	Trades []common.Trade
	Orders []common.Order
	Stops  []common.StopOrder
}

// Empty reports whether the pass produced no activity at all.
func (r CrossResult) Empty() bool {
	return len(r.Trades) == 0 && len(r.Orders) == 0 && len(r.Stops) == 0
}

// Book is the order book of one simulation run. It is not safe for
// concurrent use; a run drives it from a single goroutine.
type Book struct {
	priceTick fixed.Point
	breakout  bool

	lastOrderID OrderSequence
	lastStopID  int64
	lastTradeID int64

	working []*common.Order
	waiting []*common.StopOrder
}

// OrderSequence hands out limit-order ids. Stop orders draw fills from the
// same sequence when they trigger, so fills are totally ordered no matter
// which path produced them.
type OrderSequence int64

func (s *OrderSequence) next() common.OrderID {
	*s++
	return common.OrderID(*s)
}

// NewBook creates an empty book. priceTick is the instrument's minimum
// price increment; breakout inverts limit-fill price improvement to model
// strategies that chase breakouts.
func NewBook(priceTick fixed.Point, breakout bool) *Book {
	return &Book{priceTick: priceTick, breakout: breakout}
}

// SubmitLimit registers a working limit order. The limit price is snapped
// to the price tick before resting.
func (b *Book) SubmitLimit(symbol string, side common.Side, effect common.Effect, price fixed.Point, volume int64, ts time.Time) common.Order {
	order := common.Order{
		ID:        b.lastOrderID.next(),
		Symbol:    symbol,
		Side:      side,
		Effect:    effect,
		Price:     price.Quantize(b.priceTick),
		Volume:    volume,
		Status:    common.OrderStatusWorking,
		TimeStamp: ts,
	}
	b.working = append(b.working, &order)
	return order
}

// SubmitStop registers a waiting stop order.
func (b *Book) SubmitStop(symbol string, side common.Side, effect common.Effect, trigger fixed.Point, volume int64, ts time.Time) common.StopOrder {
	b.lastStopID++
	stop := common.StopOrder{
		ID:        common.StopOrderID(b.lastStopID),
		Symbol:    symbol,
		Side:      side,
		Effect:    effect,
		Trigger:   trigger.Quantize(b.priceTick),
		Volume:    volume,
		Status:    common.StopOrderStatusWaiting,
		TimeStamp: ts,
	}
	b.waiting = append(b.waiting, &stop)
	return stop
}

// Cancel cancels one working limit order. It returns the cancelled order
// and false when the id is unknown or the order is already done.
func (b *Book) Cancel(id common.OrderID) (common.Order, bool) {
	for i, order := range b.working {
		if order.ID != id {
			continue
		}
		order.Status = common.OrderStatusCancelled
		b.working = append(b.working[:i], b.working[i+1:]...)
		return *order, true
	}
	return common.Order{}, false
}

// CancelAll cancels every working limit order for the instrument,
// optionally narrowed to one effect. A zero effect matches both. It
// returns the cancelled orders in submission order.
func (b *Book) CancelAll(symbol string, effect common.Effect) []common.Order {
	var cancelled []common.Order
	kept := b.working[:0]
	for _, order := range b.working {
		if strings.EqualFold(order.Symbol, symbol) && (effect == 0 || order.Effect == effect) {
			order.Status = common.OrderStatusCancelled
			cancelled = append(cancelled, *order)
			continue
		}
		kept = append(kept, order)
	}
	b.working = kept
	return cancelled
}

// CancelStop cancels one waiting stop order.
func (b *Book) CancelStop(id common.StopOrderID) (common.StopOrder, bool) {
	for i, stop := range b.waiting {
		if stop.ID != id {
			continue
		}
		stop.Status = common.StopOrderStatusCancelled
		b.waiting = append(b.waiting[:i], b.waiting[i+1:]...)
		return *stop, true
	}
	return common.StopOrder{}, false
}

// CancelAllStops cancels every waiting stop order for the instrument.
func (b *Book) CancelAllStops(symbol string) []common.StopOrder {
	var cancelled []common.StopOrder
	kept := b.waiting[:0]
	for _, stop := range b.waiting {
		if strings.EqualFold(stop.Symbol, symbol) {
			stop.Status = common.StopOrderStatusCancelled
			cancelled = append(cancelled, *stop)
			continue
		}
		kept = append(kept, stop)
	}
	b.waiting = kept
	return cancelled
}

// WorkingOrders returns a copy of the currently working limit orders in
// submission order.
func (b *Book) WorkingOrders() []common.Order {
	orders := make([]common.Order, 0, len(b.working))
	for _, order := range b.working {
		orders = append(orders, *order)
	}
	return orders
}

// WaitingStops returns a copy of the currently waiting stop orders in
// submission order.
func (b *Book) WaitingStops() []common.StopOrder {
	stops := make([]common.StopOrder, 0, len(b.waiting))
	for _, stop := range b.waiting {
		stops = append(stops, *stop)
	}
	return stops
}

// priceLevels are the prices one observation offers to resting orders.
type priceLevels struct {
	// buyCross / sellCross are the thresholds a limit price must reach
	// for a fill.
	buyCross  fixed.Point
	sellCross fixed.Point
	// buyBest / sellBest bound the achievable limit fill price.
	buyBest  fixed.Point
	sellBest fixed.Point
	// stopBuyCross / stopSellCross are the trigger thresholds, stopBest
	// the market price a triggered stop trades against.
	stopBuyCross  fixed.Point
	stopSellCross fixed.Point
	stopBest      fixed.Point
	// improve enables price improvement toward the bar open. Ticks quote
	// the achievable price directly, so they never improve.
	improve bool
}

func (b *Book) crossLevels(obs common.Observation) (priceLevels, bool) {
	switch o := obs.(type) {
	case common.Bar:
		low := o.Low.Quantize(b.priceTick)
		high := o.High.Quantize(b.priceTick)
		return priceLevels{
			buyCross:      low.Add(b.priceTick),
			sellCross:     high.Sub(b.priceTick),
			buyBest:       o.Open.Add(b.priceTick),
			sellBest:      o.Open.Sub(b.priceTick),
			stopBuyCross:  high,
			stopSellCross: low,
			stopBest:      o.Open,
			improve:       true,
		}, true
	case common.Tick:
		return priceLevels{
			buyCross:      o.Ask,
			sellCross:     o.Bid,
			buyBest:       o.Ask,
			sellBest:      o.Bid,
			stopBuyCross:  o.Last,
			stopSellCross: o.Last,
			stopBest:      o.Last,
		}, true
	default:
		return priceLevels{}, false
	}
}

// Cross evaluates every working order against the observation. Fills are
// all-or-nothing, limit orders cross before stop orders, and orders for
// other instruments are left untouched. Decisions are collected over a
// stable view before any mutation is applied.
func (b *Book) Cross(obs common.Observation) CrossResult {
	levels, ok := b.crossLevels(obs)
	if !ok {
		return CrossResult{}
	}

	var result CrossResult
	b.crossLimits(obs, levels, &result)
	b.crossStops(obs, levels, &result)
	return result
}

func (b *Book) crossLimits(obs common.Observation, levels priceLevels, result *CrossResult) {
	type decision struct {
		order *common.Order
		price fixed.Point
	}

	// Phase one, decide over the stable working set.
	var fills []decision
	for _, order := range b.working {
		if !strings.EqualFold(order.Symbol, obs.Instrument()) {
			continue
		}
		var price fixed.Point
		switch order.Side {
		case common.SideLong:
			if order.Price.Lt(levels.buyCross) {
				continue
			}
			price = levels.buyBest
			if levels.improve {
				if b.breakout {
					price = fixed.Max(order.Price, levels.buyBest)
				} else {
					price = fixed.Min(order.Price, levels.buyBest)
				}
			}
		case common.SideShort:
			if order.Price.Gt(levels.sellCross) {
				continue
			}
			price = levels.sellBest
			if levels.improve {
				if b.breakout {
					price = fixed.Min(order.Price, levels.sellBest)
				} else {
					price = fixed.Max(order.Price, levels.sellBest)
				}
			}
		}
		fills = append(fills, decision{order: order, price: price})
	}
	if len(fills) == 0 {
		return
	}

	// Phase two, apply.
	for _, fill := range fills {
		fill.order.Status = common.OrderStatusAllTraded
		result.Orders = append(result.Orders, *fill.order)
		result.Trades = append(result.Trades, b.newTrade(fill.order.ID, *fill.order, fill.price, obs.At()))
	}
	kept := b.working[:0]
	for _, order := range b.working {
		if order.Status == common.OrderStatusWorking {
			kept = append(kept, order)
		}
	}
	b.working = kept
}

func (b *Book) crossStops(obs common.Observation, levels priceLevels, result *CrossResult) {
	type decision struct {
		stop  *common.StopOrder
		price fixed.Point
	}

	var fires []decision
	for _, stop := range b.waiting {
		if !strings.EqualFold(stop.Symbol, obs.Instrument()) {
			continue
		}
		switch stop.Side {
		case common.SideLong:
			// A buy stop fires when the market rises to or through the
			// trigger; the fill cannot beat the trigger price.
			if stop.Trigger.Gt(levels.stopBuyCross) {
				continue
			}
			fires = append(fires, decision{stop: stop, price: fixed.Max(stop.Trigger, levels.stopBest)})
		case common.SideShort:
			if stop.Trigger.Lt(levels.stopSellCross) {
				continue
			}
			fires = append(fires, decision{stop: stop, price: fixed.Min(stop.Trigger, levels.stopBest)})
		}
	}
	if len(fires) == 0 {
		return
	}

	for _, fire := range fires {
		fire.stop.Status = common.StopOrderStatusTriggered
		result.Stops = append(result.Stops, *fire.stop)

		// A triggered stop becomes an immediately filled order in the
		// shared limit id sequence; it never rests.
		order := common.Order{
			ID:        b.lastOrderID.next(),
			Symbol:    fire.stop.Symbol,
			Side:      fire.stop.Side,
			Effect:    fire.stop.Effect,
			Price:     fire.price,
			Volume:    fire.stop.Volume,
			Status:    common.OrderStatusAllTraded,
			TimeStamp: obs.At(),
		}
		result.Orders = append(result.Orders, order)
		result.Trades = append(result.Trades, b.newTrade(order.ID, order, fire.price, obs.At()))
	}
	kept := b.waiting[:0]
	for _, stop := range b.waiting {
		if stop.Status == common.StopOrderStatusWaiting {
			kept = append(kept, stop)
		}
	}
	b.waiting = kept
}

func (b *Book) newTrade(orderID common.OrderID, order common.Order, price fixed.Point, ts time.Time) common.Trade {
	b.lastTradeID++
	return common.Trade{
		ID:        common.TradeID(b.lastTradeID),
		OrderID:   orderID,
		Symbol:    order.Symbol,
		Side:      order.Side,
		Effect:    order.Effect,
		Price:     price,
		Volume:    order.Volume,
		TimeStamp: ts,
	}
}
