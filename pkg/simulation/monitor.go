package simulation

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorTicks
	MonitorBars
	MonitorOrders
	MonitorTrades
)

// Monitor wraps a strategy and logs the traffic flowing into it. It sits
// between the simulator and the real strategy and forwards everything.
type Monitor struct {
	Strategy

	logger *zap.Logger
	flags  MonitorFlags
}

func NewMonitor(inner Strategy, logger *zap.Logger, flags MonitorFlags) *Monitor {
	return &Monitor{
		Strategy: inner,
		logger:   logger,
		flags:    flags,
	}
}

func (m *Monitor) on(flag MonitorFlags) bool {
	return m.flags&flag != 0 || m.flags&MonitorAll != 0
}

func (m *Monitor) OnTick(tick common.Tick) {
	if m.on(MonitorTicks) {
		m.logger.Info("event", zap.Object("tick", tick))
	}
	m.Strategy.OnTick(tick)
}

func (m *Monitor) OnBar(bar common.Bar) {
	if m.on(MonitorBars) {
		m.logger.Info("event", zap.Object("bar", bar))
	}
	m.Strategy.OnBar(bar)
}

func (m *Monitor) OnOrder(order common.Order) {
	if m.on(MonitorOrders) {
		m.logger.Info("event", zap.Object("order", order))
	}
	m.Strategy.OnOrder(order)
}

func (m *Monitor) OnTrade(trade common.Trade) {
	if m.on(MonitorTrades) {
		m.logger.Info("event", zap.Object("trade", trade))
	}
	m.Strategy.OnTrade(trade)
}
