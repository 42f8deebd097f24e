package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func testConfig(mode Mode) Config {
	return Config{
		Symbol:         "IF888",
		Size:           fixed.One,
		InitialCapital: fixed.FromInt(1_000_000, 0),
		Mode:           mode,
		PercentLimit:   fixed.Hundred,
	}
}

var nextTestTradeID common.TradeID

func testTrade(side common.Side, effect common.Effect, price float64, volume int64) common.Trade {
	nextTestTradeID++
	return common.Trade{
		ID:        nextTestTradeID,
		OrderID:   common.OrderID(nextTestTradeID),
		Symbol:    "IF888",
		Side:      side,
		Effect:    effect,
		Price:     fixed.FromFloat64(price),
		Volume:    volume,
		TimeStamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestLedger_fifoLotSplitting(t *testing.T) {
	l := NewLedger(testConfig(ModeRealTime))

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 50, 10)))
	require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, 60, 4)))
	require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, 70, 6)))

	results := l.Results()
	require.Len(t, results, 2)

	// Both closes consumed the same opening lot, oldest first.
	assert.EqualValues(t, 4, results[0].Volume)
	assert.Equal(t, "50", results[0].EntryPrice.String())
	assert.Equal(t, "60", results[0].ExitPrice.String())
	assert.EqualValues(t, 6, results[1].Volume)
	assert.Equal(t, "50", results[1].EntryPrice.String())
	assert.Equal(t, "70", results[1].ExitPrice.String())

	assert.EqualValues(t, 0, l.OpenVolume("IF888", common.SideLong))
}

func TestLedger_fifoClosingOrder(t *testing.T) {
	l := NewLedger(testConfig(ModeRealTime))

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 10, 2)))
	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 20, 2)))
	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 30, 2)))

	// One close spanning several lots produces one result per lot, all
	// sharing the closing trade's id.
	closing := testTrade(common.SideShort, common.EffectClose, 40, 5)
	require.NoError(t, l.OnTrade(closing))

	results := l.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "10", results[0].EntryPrice.String())
	assert.Equal(t, "20", results[1].EntryPrice.String())
	assert.Equal(t, "30", results[2].EntryPrice.String())
	assert.EqualValues(t, 2, results[0].Volume)
	assert.EqualValues(t, 2, results[1].Volume)
	assert.EqualValues(t, 1, results[2].Volume)
	for _, r := range results {
		assert.Equal(t, closing.ID, r.GroupID)
	}

	assert.EqualValues(t, 1, l.OpenVolume("IF888", common.SideLong))
}

func TestLedger_closeWithoutOpenLot(t *testing.T) {
	l := NewLedger(testConfig(ModeRealTime))

	closing := testTrade(common.SideShort, common.EffectClose, 40, 1)
	err := l.OnTrade(closing)

	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "IF888", integrity.Symbol)
	assert.Equal(t, common.SideLong, integrity.Side)
	assert.Equal(t, closing.ID, integrity.TradeID)
	assert.Empty(t, l.Results())
}

func TestLedger_shortRoundTrip(t *testing.T) {
	l := NewLedger(testConfig(ModeRealTime))

	require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectOpen, 100, 3)))
	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectClose, 90, 3)))

	results := l.Results()
	require.Len(t, results, 1)
	assert.EqualValues(t, -3, results[0].Volume)
	// (90-100) * -3 * 1 = 30
	assert.Equal(t, "30", results[0].Pnl.String())
}

func TestLedger_costs(t *testing.T) {
	tests := []struct {
		name               string
		mutate             func(*Config)
		expectedCommission string
		expectedSlippage   string
		expectedPnl        string
	}{
		{
			name:               "rate commission charges turnover",
			mutate:             func(c *Config) { c.CommissionRate = fixed.FromFloat64(0.001) },
			expectedCommission: "0.220", // (50+60)*2*0.001
			expectedSlippage:   "0",
			expectedPnl:        "19.780",
		},
		{
			name: "fixed commission charges per lot",
			mutate: func(c *Config) {
				c.CommissionRate = fixed.FromFloat64(0.001)
				c.FixedCommission = fixed.FromFloat64(1.5)
			},
			expectedCommission: "3.0", // 1.5*2, fixed wins over rate
			expectedSlippage:   "0",
			expectedPnl:        "17.0",
		},
		{
			name:               "slippage charges both sides",
			mutate:             func(c *Config) { c.Slippage = fixed.FromFloat64(0.5) },
			expectedCommission: "0",
			expectedSlippage:   "2.0", // 0.5*2*1*2
			expectedPnl:        "18.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(ModeRealTime)
			tt.mutate(&cfg)
			l := NewLedger(cfg)

			require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 50, 2)))
			require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, 60, 2)))

			results := l.Results()
			require.Len(t, results, 1)
			assert.Equal(t, tt.expectedCommission, results[0].Commission.String())
			assert.Equal(t, tt.expectedSlippage, results[0].Slippage.String())
			assert.Equal(t, tt.expectedPnl, results[0].Pnl.String())
		})
	}
}

func TestLedger_finalModeSettlesInBatch(t *testing.T) {
	l := NewLedger(testConfig(ModeFinal))

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 50, 10)))
	require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, 60, 10)))
	assert.Empty(t, l.Results())

	require.NoError(t, l.Settle())
	results := l.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "100", results[0].Pnl.String())
	assert.Equal(t, "1000100", l.Capital().String())

	series := l.CapitalSeries()
	require.Len(t, series, 1)
	assert.Equal(t, "1000100", series[0].String())
}

func TestLedger_finalModeIntegrityFailsFast(t *testing.T) {
	l := NewLedger(testConfig(ModeFinal))

	// The lot bookkeeping runs incrementally even though settlement is
	// deferred, so an unmatched close is caught the moment it happens.
	err := l.OnTrade(testTrade(common.SideShort, common.EffectClose, 60, 1))
	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
}

func TestLedger_negativeCapital(t *testing.T) {
	cfg := testConfig(ModeRealTime)
	cfg.Size = fixed.FromInt(10_000, 0)
	l := NewLedger(cfg)

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 300, 1)))
	err := l.OnTrade(testTrade(common.SideShort, common.EffectClose, 100, 1))
	require.ErrorIs(t, err, ErrNegativeCapital)
	assert.True(t, l.NetCapital().IsNeg())
}

func TestLedger_compounding(t *testing.T) {
	cfg := testConfig(ModeFinal)
	cfg.InitialCapital = fixed.FromInt(100, 0)
	cfg.Compounding = true
	l := NewLedger(cfg)

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 50, 2)))
	require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, 100, 2)))
	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 50, 2)))
	require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, 100, 2)))
	require.NoError(t, l.Settle())

	results := l.Results()
	require.Len(t, results, 2)
	// First close settles at factor 1 (capital 100 -> 200), second at
	// factor 2.
	assert.Equal(t, "100", results[0].Pnl.String())
	assert.Equal(t, "200", results[1].Pnl.String())
	assert.Equal(t, "400", l.Capital().String())
}

func TestLedger_volumeConservation(t *testing.T) {
	l := NewLedger(testConfig(ModeRealTime))

	opened := int64(0)
	closed := int64(0)
	steps := []struct {
		effect common.Effect
		volume int64
	}{
		{common.EffectOpen, 5},
		{common.EffectOpen, 3},
		{common.EffectClose, 2},
		{common.EffectOpen, 4},
		{common.EffectClose, 6},
	}
	for _, step := range steps {
		side := common.SideLong
		if step.effect == common.EffectClose {
			side = common.SideShort
		}
		require.NoError(t, l.OnTrade(testTrade(side, step.effect, 50, step.volume)))
		if step.effect == common.EffectOpen {
			opened += step.volume
		} else {
			closed += step.volume
		}
		assert.Equal(t, opened-closed, l.OpenVolume("IF888", common.SideLong))
	}
}

func TestLedger_snapshot(t *testing.T) {
	cfg := testConfig(ModeRealTime)
	cfg.MarginRate = fixed.FromFloat64(0.1)
	l := NewLedger(cfg)

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 100, 2)))
	l.Observe(common.Tick{Symbol: "IF888", Last: fixed.FromFloat64(110)})

	snap := l.Snapshot("2024-03-01")
	assert.Equal(t, "2024-03-01", snap.Date)
	assert.Equal(t, "110", snap.LastPrice.String())
	// (110-100)*2*1 marked to market.
	assert.Equal(t, "20", snap.LongMargin.String())
	assert.Equal(t, "1000020", snap.NetCapital.String())
	assert.Equal(t, snap.NetCapital.String(), l.NetCapital().String())
	// 110*2*1*0.1 occupied.
	assert.True(t, snap.OccupyMoney.Eq(fixed.FromFloat64(22)))
	require.Len(t, snap.LongPositions, 1)
	assert.EqualValues(t, 2, snap.LongPositions[0].Volume)
	assert.True(t, snap.Benchmark.Eq(fixed.One))

	// Benchmark is normalized to the first non-zero marking price.
	l.Observe(common.Tick{Symbol: "IF888", Last: fixed.FromFloat64(121)})
	second := l.Snapshot("2024-03-02")
	assert.True(t, second.Benchmark.Eq(fixed.FromFloat64(1.1)))
}

func TestLedger_accountInfo(t *testing.T) {
	cfg := testConfig(ModeRealTime)
	cfg.MarginRate = fixed.FromFloat64(0.1)
	l := NewLedger(cfg)

	require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 100, 5)))

	info := l.AccountInfo()
	assert.Equal(t, "1000000", info.NetCapital.String())
	// 100*5*1*0.1 = 50 occupied.
	assert.True(t, info.Available.Eq(fixed.FromFloat64(999950)))
	assert.True(t, info.Percent.Eq(fixed.FromFloat64(0.005)))
	assert.Equal(t, "100", info.PercentLimit.String())
}

func TestLedger_maxCapitalMonotonic(t *testing.T) {
	l := NewLedger(testConfig(ModeRealTime))

	prices := []float64{60, 40, 80, 30}
	peak := fixed.Zero
	for _, exit := range prices {
		require.NoError(t, l.OnTrade(testTrade(common.SideLong, common.EffectOpen, 50, 1)))
		require.NoError(t, l.OnTrade(testTrade(common.SideShort, common.EffectClose, exit, 1)))

		if l.maxCapital.Lt(peak) {
			t.Fatalf("max capital decreased: %s < %s", l.maxCapital, peak)
		}
		peak = l.maxCapital
	}
	assert.Equal(t, "1000030", peak.String())
}
