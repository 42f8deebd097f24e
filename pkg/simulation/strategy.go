package simulation

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/ledger"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Broker is the order entry surface a strategy trades through. All orders
// go to the run's configured instrument. Calls are only valid from inside
// strategy callbacks.
type Broker interface {
	SendOrder(side common.Side, effect common.Effect, price fixed.Point, volume int64) common.OrderID
	SendStopOrder(side common.Side, effect common.Effect, trigger fixed.Point, volume int64) common.StopOrderID
	CancelOrder(id common.OrderID) bool
	// CancelAll cancels working limit orders, optionally narrowed to one
	// effect; a zero effect cancels both.
	CancelAll(effect common.Effect)
	CancelStopOrder(id common.StopOrderID) bool
	CancelAllStops()
	AccountInfo() ledger.AccountInfo
	Time() time.Time
}

// Strategy is the callback contract a run drives. The engine moves the
// signed position counter through ApplyFill on every fill; the strategy
// reads it back through Position.
type Strategy interface {
	OnInit(broker Broker)
	OnStart()
	OnTick(tick common.Tick)
	OnBar(bar common.Bar)
	OnOrder(order common.Order)
	OnTrade(trade common.Trade)

	ApplyFill(delta int64)
	Position() int64
}

// Base provides no-op callbacks and the position counter so strategies
// only implement what they care about. Embed it by pointer.
type Base struct {
	Broker   Broker
	position int64
}

func (b *Base) OnInit(broker Broker) { b.Broker = broker }

func (b *Base) OnStart() {}

func (b *Base) OnTick(common.Tick) {}

func (b *Base) OnBar(common.Bar) {}

func (b *Base) OnOrder(common.Order) {}

func (b *Base) OnTrade(common.Trade) {}

func (b *Base) ApplyFill(delta int64) { b.position += delta }

func (b *Base) Position() int64 { return b.position }
