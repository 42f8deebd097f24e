package common

import (
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// Side is the direction of an order or trade.
type Side uint8

const (
	SideLong Side = iota + 1
	SideShort
)

func (s Side) String() string {
	switch s {
	case SideLong:
		return "long"
	case SideShort:
		return "short"
	default:
		return "unknown"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLong {
		return SideShort
	}
	return SideLong
}

// Effect states whether an order opens a new position or closes an
// existing one.
type Effect uint8

const (
	EffectOpen Effect = iota + 1
	EffectClose
)

func (e Effect) String() string {
	switch e {
	case EffectOpen:
		return "open"
	case EffectClose:
		return "close"
	default:
		return "unknown"
	}
}

// OrderID identifies a limit order within a single simulation run. Ids are
// assigned from a monotonic counter starting at one.
type OrderID int64

func (id OrderID) String() string { return strconv.FormatInt(int64(id), 10) }

// StopOrderID identifies a stop order within a single simulation run. The
// textual form carries a prefix so logs cannot confuse it with an OrderID.
type StopOrderID int64

func (id StopOrderID) String() string {
	return "stop." + strconv.FormatInt(int64(id), 10)
}

// TradeID identifies a fill within a single simulation run.
type TradeID int64

func (id TradeID) String() string { return strconv.FormatInt(int64(id), 10) }

type OrderStatus uint8

const (
	OrderStatusWorking OrderStatus = iota + 1
	OrderStatusAllTraded
	OrderStatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusWorking:
		return "working"
	case OrderStatusAllTraded:
		return "all_traded"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type StopOrderStatus uint8

const (
	StopOrderStatusWaiting StopOrderStatus = iota + 1
	StopOrderStatusTriggered
	StopOrderStatusCancelled
)

func (s StopOrderStatus) String() string {
	switch s {
	case StopOrderStatusWaiting:
		return "waiting"
	case StopOrderStatusTriggered:
		return "triggered"
	case StopOrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Order is a resting limit order. Fills are all-or-nothing, so an order is
// either fully working or fully done.
type Order struct {
	ID        OrderID
	Symbol    string
	Side      Side
	Effect    Effect
	Price     fixed.Point
	Volume    int64
	Status    OrderStatus
	TimeStamp time.Time
}

func (o Order) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", o.ID.String())
	encoder.AddString("symbol", o.Symbol)
	encoder.AddString("side", o.Side.String())
	encoder.AddString("effect", o.Effect.String())
	encoder.AddString("price", o.Price.String())
	encoder.AddInt64("volume", o.Volume)
	encoder.AddString("status", o.Status.String())
	return nil
}

// StopOrder rests off-book until its trigger price is touched, at which
// point it fills in full at a simulated market price.
type StopOrder struct {
	ID        StopOrderID
	Symbol    string
	Side      Side
	Effect    Effect
	Trigger   fixed.Point
	Volume    int64
	Status    StopOrderStatus
	TimeStamp time.Time
}

func (o StopOrder) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("id", o.ID.String())
	encoder.AddString("symbol", o.Symbol)
	encoder.AddString("side", o.Side.String())
	encoder.AddString("effect", o.Effect.String())
	encoder.AddString("trigger", o.Trigger.String())
	encoder.AddInt64("volume", o.Volume)
	encoder.AddString("status", o.Status.String())
	return nil
}
