package ledger

import (
	"errors"
	"fmt"

	"github.com/peter-kozarec/replay/pkg/common"
)

// ErrNegativeCapital signals that net capital dropped below zero. It is a
// designed stop condition, not a bug, but the run must not continue past it.
var ErrNegativeCapital = errors.New("net capital is negative")

// IntegrityError reports a closing trade that found no open lot on the
// required side. It indicates a logic error upstream, so the run aborts
// instead of fabricating a lot.
type IntegrityError struct {
	Symbol  string
	Side    common.Side
	TradeID common.TradeID
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("ledger integrity: trade %s closes %s %s with no open lot",
		e.TradeID, e.Side, e.Symbol)
}
