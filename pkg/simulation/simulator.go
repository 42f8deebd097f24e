// Package simulation sequences market observations through the crossing
// engine, the ledger and the strategy, reproducing an exchange offline.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/replay/pkg/book"
	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/datasource"
	"github.com/peter-kozarec/replay/pkg/ledger"
	"github.com/peter-kozarec/replay/pkg/report"
	"github.com/peter-kozarec/replay/pkg/utility"
)

type State uint8

const (
	StateCreated State = iota + 1
	StateInitialized
	StateRunning
	StateFinished
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Termination is the terminal code of a completed run.
type Termination uint8

const (
	TerminationFinished Termination = iota + 1
	TerminationNegativeCapital
	TerminationLedgerIntegrity
)

func (t Termination) String() string {
	switch t {
	case TerminationFinished:
		return "Finished"
	case TerminationNegativeCapital:
		return "Aborted:NegativeCapital"
	case TerminationLedgerIntegrity:
		return "Aborted:LedgerIntegrityError"
	default:
		return "unknown"
	}
}

// Outcome is what a run leaves behind. Err carries the cause of an abort
// and is nil for finished runs; Summary is zero for aborted runs.
type Outcome struct {
	Termination Termination
	Err         error
	Summary     report.Summary
}

// Simulator owns one run's book, ledger and strategy, and drives them
// through the state machine created, initialized, running, then finished
// or aborted. Nothing in it is shared between runs.
type Simulator struct {
	cfg      Config
	feed     datasource.Feed
	strategy Strategy
	logger   *zap.Logger

	book   *book.Book
	ledger *ledger.Ledger

	state       State
	currentTime time.Time
	currentDay  string
}

func NewSimulator(cfg Config, feed datasource.Feed, strategy Strategy, logger *zap.Logger) *Simulator {
	return &Simulator{
		cfg:      cfg,
		feed:     feed,
		strategy: strategy,
		logger:   logger,
		state:    StateCreated,
	}
}

// Init validates the configuration and builds the run's book and ledger.
// A rejected configuration never consumes a single observation.
func (s *Simulator) Init() error {
	if s.state != StateCreated {
		return fmt.Errorf("init in state %s", s.state)
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	s.book = book.NewBook(s.cfg.PriceTick, s.cfg.Breakout)
	s.ledger = ledger.NewLedger(s.cfg.ledgerConfig())
	s.state = StateInitialized
	return nil
}

// Run replays the feed to exhaustion. The returned error covers
// infrastructure failures only, a broken feed or a misused state machine;
// negative capital and ledger integrity failures are designed terminal
// states reported through the Outcome.
func (s *Simulator) Run(ctx context.Context) (Outcome, error) {
	if s.state == StateCreated {
		if err := s.Init(); err != nil {
			return Outcome{}, err
		}
	}
	if s.state != StateInitialized {
		return Outcome{}, fmt.Errorf("run in state %s", s.state)
	}
	s.state = StateRunning

	s.logger.Info("run started",
		zap.String("run_id", utility.GetRunID().String()),
		zap.String("symbol", s.cfg.Symbol),
		zap.String("mode", s.cfg.Mode.String()),
	)

	s.strategy.OnInit(s)
	s.strategy.OnStart()

	for {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		obs, err := s.feed.GetNext()
		if errors.Is(err, datasource.ErrEof) {
			break
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("feed: %w", err)
		}

		if !s.cfg.StartDate.IsZero() && obs.At().Before(s.cfg.StartDate) {
			continue
		}
		if !s.cfg.EndDate.IsZero() && obs.At().After(s.cfg.EndDate) {
			break
		}

		if s.currentDay != "" && obs.Day() != s.currentDay {
			s.ledger.Snapshot(s.currentDay)
			if s.ledger.NetCapital().IsNeg() {
				return s.abort(ledger.ErrNegativeCapital), nil
			}
		}
		s.currentDay = obs.Day()
		s.currentTime = obs.At()
		s.ledger.Observe(obs)

		if s.cfg.Breakout {
			// Breakout systems act on the observation first and chase
			// the move; orders placed now cross against the same bar.
			s.dispatch(obs)
			if err := s.cross(obs); err != nil {
				return s.abort(err), nil
			}
		} else {
			if err := s.cross(obs); err != nil {
				return s.abort(err), nil
			}
			s.dispatch(obs)
		}
	}

	if s.currentDay != "" {
		s.ledger.Snapshot(s.currentDay)
		if s.ledger.NetCapital().IsNeg() {
			return s.abort(ledger.ErrNegativeCapital), nil
		}
	}
	if err := s.ledger.Settle(); err != nil {
		return s.abort(err), nil
	}

	s.state = StateFinished
	summary := report.Analyze(s.cfg.InitialCapital, s.ledger.Results(), s.ledger.Snapshots())

	s.logger.Info("run finished",
		zap.String("termination", TerminationFinished.String()),
		zap.Int("trades", summary.TotalTrades),
		zap.String("capital", s.ledger.Capital().String()),
	)
	return Outcome{Termination: TerminationFinished, Summary: summary}, nil
}

// cross resolves every eligible fill against the observation and applies
// its ledger effect before any strategy callback fires.
func (s *Simulator) cross(obs common.Observation) error {
	result := s.book.Cross(obs)
	if result.Empty() {
		return nil
	}

	for _, trade := range result.Trades {
		if err := s.ledger.OnTrade(trade); err != nil {
			return err
		}
		delta := trade.Volume
		if trade.Side == common.SideShort {
			delta = -delta
		}
		s.strategy.ApplyFill(delta)
	}
	for _, order := range result.Orders {
		s.strategy.OnOrder(order)
	}
	for _, trade := range result.Trades {
		s.strategy.OnTrade(trade)
	}
	return nil
}

func (s *Simulator) dispatch(obs common.Observation) {
	switch o := obs.(type) {
	case common.Tick:
		s.strategy.OnTick(o)
	case common.Bar:
		s.strategy.OnBar(o)
	}
}

func (s *Simulator) abort(cause error) Outcome {
	s.state = StateAborted
	termination := TerminationLedgerIntegrity
	if errors.Is(cause, ledger.ErrNegativeCapital) {
		termination = TerminationNegativeCapital
	}
	s.logger.Warn("run aborted",
		zap.String("termination", termination.String()),
		zap.Error(cause),
	)
	return Outcome{Termination: termination, Err: cause}
}

func (s *Simulator) State() State { return s.state }

// Results, Records and Snapshots expose the run outputs for reporting.
func (s *Simulator) Results() []common.RealizedResult  { return s.ledger.Results() }
func (s *Simulator) Records() []common.TradeRecord     { return s.ledger.Records() }
func (s *Simulator) Snapshots() []common.DailySnapshot { return s.ledger.Snapshots() }
