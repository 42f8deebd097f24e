package ledger

import "github.com/peter-kozarec/replay/pkg/utility/fixed"

// Mode selects when realized results are computed.
type Mode uint8

const (
	// ModeFinal accumulates trades during the run and settles them in one
	// batch at the end.
	ModeFinal Mode = iota + 1
	// ModeRealTime settles every closing trade the moment it happens and
	// keeps occupied margin up to date.
	ModeRealTime
)

func (m Mode) String() string {
	switch m {
	case ModeFinal:
		return "final"
	case ModeRealTime:
		return "realtime"
	default:
		return "unknown"
	}
}

// Config carries the accounting parameters of one instrument's ledger.
type Config struct {
	Symbol string

	// Size is the contract multiplier, Slippage the assumed adverse price
	// move per side in price units.
	Size     fixed.Point
	Slippage fixed.Point

	// CommissionRate charges a fraction of turnover; FixedCommission
	// charges per lot instead when non-zero.
	CommissionRate  fixed.Point
	FixedCommission fixed.Point

	MarginRate     fixed.Point
	InitialCapital fixed.Point

	Mode        Mode
	Compounding bool

	// PercentLimit caps the margin usage percentage reported to
	// strategies through AccountInfo.
	PercentLimit fixed.Point
}
