package historical

import (
	"fmt"
	"time"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/datasource"
)

const invalidIndex = -1

// TickReader replays the ticks of one instrument from a binary source,
// bounded by a time range.
type TickReader struct {
	source *Source[BinaryTick]

	symbol string
	from   int64
	to     int64
	idx    int64
}

func NewTickReader(source *Source[BinaryTick], symbol string, from, to time.Time) *TickReader {
	return &TickReader{
		source: source,
		symbol: symbol,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

func (t *TickReader) GetNext() (common.Observation, error) {
	if t.idx == invalidIndex {
		start, err := lookupStartIndex[BinaryTick](t.source, t.from, func(e BinaryTick) int64 { return e.TimeStamp })
		if err != nil {
			return nil, err
		}
		t.idx = start
	}

	var binTick BinaryTick
	if err := t.source.Read(t.idx, &binTick); err != nil {
		if err == datasource.ErrEof {
			return nil, datasource.ErrEof
		}
		return nil, fmt.Errorf("error reading entry at index %d: %w", t.idx, err)
	}
	t.idx++

	if binTick.TimeStamp > t.to {
		return nil, datasource.ErrEof
	}

	var tick common.Tick
	binTick.ToTick(t.symbol, &tick)
	return tick, nil
}

func (t *TickReader) Restart() error {
	t.idx = invalidIndex
	return nil
}

// BarReader replays the bars of one instrument from a binary source,
// bounded by a time range.
type BarReader struct {
	source *Source[BinaryBar]

	symbol string
	from   int64
	to     int64
	idx    int64
}

func NewBarReader(source *Source[BinaryBar], symbol string, from, to time.Time) *BarReader {
	return &BarReader{
		source: source,
		symbol: symbol,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

func (b *BarReader) GetNext() (common.Observation, error) {
	if b.idx == invalidIndex {
		start, err := lookupStartIndex[BinaryBar](b.source, b.from, func(e BinaryBar) int64 { return e.TimeStamp })
		if err != nil {
			return nil, err
		}
		b.idx = start
	}

	var binBar BinaryBar
	if err := b.source.Read(b.idx, &binBar); err != nil {
		if err == datasource.ErrEof {
			return nil, datasource.ErrEof
		}
		return nil, fmt.Errorf("error reading entry at index %d: %w", b.idx, err)
	}
	b.idx++

	if binBar.TimeStamp > b.to {
		return nil, datasource.ErrEof
	}

	var bar common.Bar
	binBar.ToBar(b.symbol, &bar)
	return bar, nil
}

func (b *BarReader) Restart() error {
	b.idx = invalidIndex
	return nil
}

// lookupStartIndex binary searches for the first record at or past from.
func lookupStartIndex[T any](source *Source[T], from int64, stamp func(T) int64) (int64, error) {
	entryCount, err := source.EntryCount()
	if err != nil {
		return 0, fmt.Errorf("error getting entry count: %w", err)
	}
	if entryCount == 0 {
		return 0, datasource.ErrEof
	}

	var entry T

	low := int64(0)
	high := entryCount - 1
	for low <= high {
		mid := (low + high) / 2
		if err := source.Read(mid, &entry); err != nil {
			return 0, fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}
		if stamp(entry) < from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return 0, datasource.ErrEof
	}
	return low, nil
}
