// Package datasource defines the market feed contract driving a
// simulation and a trivial in-memory implementation of it.
package datasource

import (
	"errors"

	"github.com/peter-kozarec/replay/pkg/common"
)

var ErrEof = errors.New("EOF")

// Feed hands out market observations in non-decreasing timestamp order and
// returns ErrEof once exhausted. Restart rewinds to the beginning so
// another run can replay the same sequence.
type Feed interface {
	GetNext() (common.Observation, error)
	Restart() error
}

// SliceFeed replays a fixed slice of observations. It does not copy the
// slice; callers must not mutate it while a run is in flight.
type SliceFeed struct {
	observations []common.Observation
	idx          int
}

func NewSliceFeed(observations ...common.Observation) *SliceFeed {
	return &SliceFeed{observations: observations}
}

func (f *SliceFeed) GetNext() (common.Observation, error) {
	if f.idx >= len(f.observations) {
		return nil, ErrEof
	}
	obs := f.observations[f.idx]
	f.idx++
	return obs, nil
}

func (f *SliceFeed) Restart() error {
	f.idx = 0
	return nil
}
