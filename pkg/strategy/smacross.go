// Package strategy ships a small moving-average crossover system used as
// the default strategy in the command line tools and as an end-to-end
// exercise of the engine.
package strategy

import (
	"github.com/peter-kozarec/replay/pkg/calc"
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/simulation"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type SmaCrossConfig struct {
	FastPeriod int
	SlowPeriod int
	Volume     int64

	// StopDistance places a protective stop that far from the entry
	// price. Zero disables protective stops.
	StopDistance fixed.Point
}

// SmaCross flips between long and short when the fast moving average of
// bar closes crosses the slow one, entering with a limit at the signal
// close and guarding the position with a stop order.
type SmaCross struct {
	simulation.Base

	cfg    SmaCrossConfig
	closes []fixed.Point

	stopID  common.StopOrderID
	hasStop bool
}

func NewSmaCross(cfg SmaCrossConfig) *SmaCross {
	return &SmaCross{cfg: cfg}
}

func (s *SmaCross) OnBar(bar common.Bar) {
	s.closes = append(s.closes, bar.Close)
	if len(s.closes) > s.cfg.SlowPeriod+1 {
		s.closes = s.closes[1:]
	}
	if len(s.closes) <= s.cfg.SlowPeriod {
		return
	}

	now := s.closes[1:]
	prev := s.closes[:len(s.closes)-1]

	fastNow := calc.Mean(now[len(now)-s.cfg.FastPeriod:])
	slowNow := calc.Mean(now)
	fastPrev := calc.Mean(prev[len(prev)-s.cfg.FastPeriod:])
	slowPrev := calc.Mean(prev)

	switch {
	case fastPrev.Lte(slowPrev) && fastNow.Gt(slowNow):
		s.enter(common.SideLong, bar.Close)
	case fastPrev.Gte(slowPrev) && fastNow.Lt(slowNow):
		s.enter(common.SideShort, bar.Close)
	}
}

func (s *SmaCross) enter(side common.Side, price fixed.Point) {
	broker := s.Broker

	broker.CancelAll(0)
	if s.hasStop {
		broker.CancelStopOrder(s.stopID)
		s.hasStop = false
	}

	position := s.Position()
	if side == common.SideLong && position > 0 || side == common.SideShort && position < 0 {
		return
	}

	// Flatten the opposite side first, then open with a fresh stop.
	if side == common.SideLong {
		if position < 0 {
			broker.SendOrder(common.SideLong, common.EffectClose, price, -position)
		}
		broker.SendOrder(common.SideLong, common.EffectOpen, price, s.cfg.Volume)
		if s.cfg.StopDistance.IsPos() {
			s.stopID = broker.SendStopOrder(common.SideShort, common.EffectClose, price.Sub(s.cfg.StopDistance), s.cfg.Volume)
			s.hasStop = true
		}
		return
	}

	if position > 0 {
		broker.SendOrder(common.SideShort, common.EffectClose, price, position)
	}
	broker.SendOrder(common.SideShort, common.EffectOpen, price, s.cfg.Volume)
	if s.cfg.StopDistance.IsPos() {
		s.stopID = broker.SendStopOrder(common.SideLong, common.EffectClose, price.Add(s.cfg.StopDistance), s.cfg.Volume)
		s.hasStop = true
	}
}

func (s *SmaCross) OnTrade(trade common.Trade) {
	// A stop that fired is gone from the book; forget its id.
	if trade.Effect == common.EffectClose && s.Position() == 0 {
		s.hasStop = false
	}
}
