// Package synthetic generates artificial tick streams for strategy and
// engine testing when no recorded history is at hand.
package synthetic

import (
	"math/rand"
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/datasource"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

var pointFive = fixed.FromInt64(5, 1)

// TickGenerator produces a geometric-brownian-motion price path as a tick
// feed. A fixed seed replays the same path, which keeps runs reproducible.
type TickGenerator struct {
	symbol string
	seed   int64
	rng    *rand.Rand

	startTime  time.Time
	startPrice fixed.Point
	spread     fixed.Point
	steps      int64
	interval   time.Duration

	// deltaLogPre1/2 are the drift and diffusion terms of the log-price
	// step, precomputed from mu, sigma and deltaT.
	deltaLogPre1 fixed.Point
	deltaLogPre2 fixed.Point

	t         int64
	lastTime  time.Time
	lastPrice fixed.Point
}

func NewTickGenerator(symbol string, seed int64, startTime time.Time, startPrice, spread, mu, sigma, deltaT fixed.Point, steps int64, interval time.Duration) *TickGenerator {
	g := &TickGenerator{
		symbol:       symbol,
		seed:         seed,
		startTime:    startTime,
		startPrice:   startPrice,
		spread:       spread.DivInt64(2),
		steps:        steps,
		interval:     interval,
		deltaLogPre1: mu.Sub(sigma.Mul(sigma).Mul(pointFive)).Mul(deltaT),
		deltaLogPre2: sigma.Mul(deltaT.Sqrt()),
	}
	g.reset()
	return g
}

func (g *TickGenerator) reset() {
	g.rng = rand.New(rand.NewSource(g.seed)) // #nosec G404
	g.t = 0
	g.lastTime = g.startTime
	g.lastPrice = g.startPrice
}

func (g *TickGenerator) GetNext() (common.Observation, error) {
	if g.t >= g.steps {
		return nil, datasource.ErrEof
	}

	z := g.rng.NormFloat64()
	deltaLog := g.deltaLogPre1.Add(g.deltaLogPre2.Mul(fixed.FromFloat64(z)))
	g.lastPrice = g.lastPrice.Mul(deltaLog.Exp())
	g.lastTime = g.lastTime.Add(g.interval)
	g.t++

	return common.Tick{
		Symbol:     g.symbol,
		TimeStamp:  g.lastTime,
		TradingDay: g.lastTime.UTC().Format(time.DateOnly),
		Last:       g.lastPrice,
		Bid:        g.lastPrice.Sub(g.spread),
		Ask:        g.lastPrice.Add(g.spread),
	}, nil
}

func (g *TickGenerator) Restart() error {
	g.reset()
	return nil
}
