package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

func TestSliceFeed(t *testing.T) {
	first := common.Tick{Symbol: "IF888", TimeStamp: time.Unix(1, 0), Last: fixed.One}
	second := common.Bar{Symbol: "IF888", TimeStamp: time.Unix(2, 0), Close: fixed.Two}
	feed := NewSliceFeed(first, second)

	obs, err := feed.GetNext()
	require.NoError(t, err)
	assert.Equal(t, first, obs)

	obs, err = feed.GetNext()
	require.NoError(t, err)
	assert.Equal(t, second, obs)

	_, err = feed.GetNext()
	require.ErrorIs(t, err, ErrEof)

	// Exhaustion is sticky until a restart.
	_, err = feed.GetNext()
	require.ErrorIs(t, err, ErrEof)

	require.NoError(t, feed.Restart())
	obs, err = feed.GetNext()
	require.NoError(t, err)
	assert.Equal(t, first, obs)
}

func TestSliceFeed_empty(t *testing.T) {
	feed := NewSliceFeed()
	_, err := feed.GetNext()
	require.ErrorIs(t, err, ErrEof)
}
