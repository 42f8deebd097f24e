// Package duckdb reads recorded market history out of DuckDB files.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/datasource"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadTicks streams the <symbol>_ticks table through handler in timestamp
// order.
func (r *Reader) LoadTicks(ctx context.Context, symbol string, from, to time.Time, handler func(tick common.Tick) error) error {
	query := fmt.Sprintf(`SELECT ts, last, bid, ask, bid_volume, ask_volume FROM %s_ticks WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var ts time.Time
		var last, bid, ask, bidVolume, askVolume float64
		if err := rows.Scan(&ts, &last, &bid, &ask, &bidVolume, &askVolume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		tick := common.Tick{
			Symbol:     symbol,
			TimeStamp:  ts,
			TradingDay: ts.UTC().Format(time.DateOnly),
			Last:       fixed.FromFloat64(last),
			Bid:        fixed.FromFloat64(bid),
			Ask:        fixed.FromFloat64(ask),
			BidVolume:  fixed.FromFloat64(bidVolume),
			AskVolume:  fixed.FromFloat64(askVolume),
		}
		if err := handler(tick); err != nil {
			return fmt.Errorf("error processing tick: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}
	return nil
}

// LoadBars streams the <symbol>_bars table through handler in timestamp
// order.
func (r *Reader) LoadBars(ctx context.Context, symbol string, from, to time.Time, handler func(bar common.Bar) error) error {
	query := fmt.Sprintf(`SELECT ts, period_ns, open, high, low, close, volume FROM %s_bars WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var ts time.Time
		var periodNs int64
		var open, high, low, closePx, vol float64
		if err := rows.Scan(&ts, &periodNs, &open, &high, &low, &closePx, &vol); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		bar := common.Bar{
			Symbol:     symbol,
			TimeStamp:  ts,
			TradingDay: ts.UTC().Format(time.DateOnly),
			Period:     time.Duration(periodNs),
			Open:       fixed.FromFloat64(open),
			High:       fixed.FromFloat64(high),
			Low:        fixed.FromFloat64(low),
			Close:      fixed.FromFloat64(closePx),
			Volume:     fixed.FromFloat64(vol),
		}
		if err := handler(bar); err != nil {
			return fmt.Errorf("error processing bar: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}
	return nil
}

// TickFeed collects a tick range into a restartable feed.
func (r *Reader) TickFeed(ctx context.Context, symbol string, from, to time.Time) (datasource.Feed, error) {
	var observations []common.Observation
	err := r.LoadTicks(ctx, symbol, from, to, func(tick common.Tick) error {
		observations = append(observations, tick)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return datasource.NewSliceFeed(observations...), nil
}

// BarFeed collects a bar range into a restartable feed.
func (r *Reader) BarFeed(ctx context.Context, symbol string, from, to time.Time) (datasource.Feed, error) {
	var observations []common.Observation
	err := r.LoadBars(ctx, symbol, from, to, func(bar common.Bar) error {
		observations = append(observations, bar)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return datasource.NewSliceFeed(observations...), nil
}
