package simulation

import (
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/ledger"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

// The simulator is the broker its strategy trades through. Orders are
// stamped with the current observation time, so they can cross no earlier
// than the next observation.

func (s *Simulator) SendOrder(side common.Side, effect common.Effect, price fixed.Point, volume int64) common.OrderID {
	order := s.book.SubmitLimit(s.cfg.Symbol, side, effect, price, volume, s.currentTime)
	return order.ID
}

func (s *Simulator) SendStopOrder(side common.Side, effect common.Effect, trigger fixed.Point, volume int64) common.StopOrderID {
	stop := s.book.SubmitStop(s.cfg.Symbol, side, effect, trigger, volume, s.currentTime)
	return stop.ID
}

func (s *Simulator) CancelOrder(id common.OrderID) bool {
	_, ok := s.book.Cancel(id)
	return ok
}

func (s *Simulator) CancelAll(effect common.Effect) {
	s.book.CancelAll(s.cfg.Symbol, effect)
}

func (s *Simulator) CancelStopOrder(id common.StopOrderID) bool {
	_, ok := s.book.CancelStop(id)
	return ok
}

func (s *Simulator) CancelAllStops() {
	s.book.CancelAllStops(s.cfg.Symbol)
}

func (s *Simulator) AccountInfo() ledger.AccountInfo {
	return s.ledger.AccountInfo()
}

func (s *Simulator) Time() time.Time { return s.currentTime }
