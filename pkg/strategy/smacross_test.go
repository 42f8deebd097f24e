package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/ledger"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type recordedOrder struct {
	side   common.Side
	effect common.Effect
	price  fixed.Point
	volume int64
}

type fakeBroker struct {
	orders     []recordedOrder
	stops      []recordedOrder
	cancelAll  int
	stopCancel int
}

func (b *fakeBroker) SendOrder(side common.Side, effect common.Effect, price fixed.Point, volume int64) common.OrderID {
	b.orders = append(b.orders, recordedOrder{side, effect, price, volume})
	return common.OrderID(len(b.orders))
}

func (b *fakeBroker) SendStopOrder(side common.Side, effect common.Effect, trigger fixed.Point, volume int64) common.StopOrderID {
	b.stops = append(b.stops, recordedOrder{side, effect, trigger, volume})
	return common.StopOrderID(len(b.stops))
}

func (b *fakeBroker) CancelOrder(common.OrderID) bool { return true }

func (b *fakeBroker) CancelAll(common.Effect) { b.cancelAll++ }

func (b *fakeBroker) CancelStopOrder(common.StopOrderID) bool {
	b.stopCancel++
	return true
}

func (b *fakeBroker) CancelAllStops() {}

func (b *fakeBroker) AccountInfo() ledger.AccountInfo { return ledger.AccountInfo{} }

func (b *fakeBroker) Time() time.Time { return time.Time{} }

func barWithClose(close float64) common.Bar {
	return common.Bar{
		Symbol: "IF888",
		Close:  fixed.FromFloat64(close),
	}
}

func TestSmaCross_goldenCrossOpensLong(t *testing.T) {
	broker := &fakeBroker{}
	s := NewSmaCross(SmaCrossConfig{
		FastPeriod:   2,
		SlowPeriod:   4,
		Volume:       3,
		StopDistance: fixed.FromFloat64(5),
	})
	s.OnInit(broker)

	// A falling series keeps the fast average under the slow one, then a
	// sharp rise crosses it over.
	for _, close := range []float64{105, 104, 103, 102, 101} {
		s.OnBar(barWithClose(close))
	}
	require.Empty(t, broker.orders)

	s.OnBar(barWithClose(110))

	require.Len(t, broker.orders, 1)
	assert.Equal(t, common.SideLong, broker.orders[0].side)
	assert.Equal(t, common.EffectOpen, broker.orders[0].effect)
	assert.Equal(t, "110", broker.orders[0].price.String())
	assert.EqualValues(t, 3, broker.orders[0].volume)

	require.Len(t, broker.stops, 1)
	assert.Equal(t, common.SideShort, broker.stops[0].side)
	assert.Equal(t, common.EffectClose, broker.stops[0].effect)
	assert.Equal(t, "105", broker.stops[0].price.String())
	assert.Equal(t, 1, broker.cancelAll)
}

func TestSmaCross_deathCrossFlipsShort(t *testing.T) {
	broker := &fakeBroker{}
	s := NewSmaCross(SmaCrossConfig{
		FastPeriod: 2,
		SlowPeriod: 4,
		Volume:     1,
	})
	s.OnInit(broker)

	for _, close := range []float64{105, 104, 103, 102, 101} {
		s.OnBar(barWithClose(close))
	}
	s.OnBar(barWithClose(110))
	require.Len(t, broker.orders, 1)

	// The engine would fill the open; mirror that on the position counter.
	s.ApplyFill(1)

	for _, close := range []float64{109, 95, 90} {
		s.OnBar(barWithClose(close))
	}

	require.Len(t, broker.orders, 3)
	assert.Equal(t, common.SideShort, broker.orders[1].side)
	assert.Equal(t, common.EffectClose, broker.orders[1].effect)
	assert.EqualValues(t, 1, broker.orders[1].volume)
	assert.Equal(t, common.SideShort, broker.orders[2].side)
	assert.Equal(t, common.EffectOpen, broker.orders[2].effect)
}
