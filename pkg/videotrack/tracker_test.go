package videotrack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushCall struct {
	seconds  int
	position int
}

func collector(calls *[]flushCall, fail *bool) FlushFunc {
	return func(watchedSeconds, currentPosition int) error {
		if fail != nil && *fail {
			return errors.New("network down")
		}
		*calls = append(*calls, flushCall{watchedSeconds, currentPosition})
		return nil
	}
}

func TestTickAccumulatesNormalPlayback(t *testing.T) {
	var calls []flushCall
	tracker := NewTracker(collector(&calls, nil))

	// 正常播放：每秒心跳一次
	for pos := 0.0; pos <= 5.0; pos++ {
		require.NoError(t, tracker.Tick(pos))
	}

	assert.InDelta(t, 5.0, tracker.Accumulated(), 0.001)
	assert.Empty(t, calls)
}

func TestFirstTickEstablishesBaseline(t *testing.T) {
	tracker := NewTracker(collector(&[]flushCall{}, nil))

	// 第一次心跳没有前序位置，不产生增量
	require.NoError(t, tracker.Tick(120.0))
	assert.Zero(t, tracker.Accumulated())
}

func TestSeekForwardIgnored(t *testing.T) {
	tracker := NewTracker(collector(&[]flushCall{}, nil))

	require.NoError(t, tracker.Tick(10.0))
	require.NoError(t, tracker.Tick(11.0))
	// 向前拖动30秒：不计入
	require.NoError(t, tracker.Tick(41.0))
	require.NoError(t, tracker.Tick(42.0))

	assert.InDelta(t, 2.0, tracker.Accumulated(), 0.001)
}

func TestSeekBackwardIgnored(t *testing.T) {
	tracker := NewTracker(collector(&[]flushCall{}, nil))

	require.NoError(t, tracker.Tick(30.0))
	// 回退到开头：不计入，也不产生负累计
	require.NoError(t, tracker.Tick(0.0))
	require.NoError(t, tracker.Tick(1.0))

	assert.InDelta(t, 1.0, tracker.Accumulated(), 0.001)
}

func TestFlushTriggeredAtBatchSize(t *testing.T) {
	var calls []flushCall
	tracker := NewTracker(collector(&calls, nil))

	for pos := 0.0; pos <= 10.0; pos++ {
		require.NoError(t, tracker.Tick(pos))
	}

	require.Len(t, calls, 1)
	assert.Equal(t, 10, calls[0].seconds)
	assert.Equal(t, 10, calls[0].position)
	assert.InDelta(t, 0.0, tracker.Accumulated(), 0.001)
}

func TestFailedFlushRetainsAccumulation(t *testing.T) {
	var calls []flushCall
	fail := true
	tracker := NewTracker(collector(&calls, &fail))

	var lastErr error
	for pos := 0.0; pos <= 10.0; pos++ {
		lastErr = tracker.Tick(pos)
	}
	require.Error(t, lastErr)
	assert.Empty(t, calls)
	assert.InDelta(t, 10.0, tracker.Accumulated(), 0.001)

	// 网络恢复后下一批带着旧账一起上报
	fail = false
	require.NoError(t, tracker.Tick(11.0))
	require.Len(t, calls, 1)
	assert.Equal(t, 11, calls[0].seconds)
	assert.Equal(t, 11, calls[0].position)
}

func TestFlushSendsRemainder(t *testing.T) {
	var calls []flushCall
	tracker := NewTracker(collector(&calls, nil))

	for pos := 0.0; pos <= 3.0; pos++ {
		require.NoError(t, tracker.Tick(pos))
	}

	require.NoError(t, tracker.Flush())
	require.Len(t, calls, 1)
	assert.Equal(t, 3, calls[0].seconds)
	assert.Equal(t, 3, calls[0].position)
}

func TestFlushSkipsSubSecondRemainder(t *testing.T) {
	var calls []flushCall
	tracker := NewTracker(collector(&calls, nil))

	require.NoError(t, tracker.Tick(0.0))
	require.NoError(t, tracker.Tick(0.5))

	require.NoError(t, tracker.Flush())
	assert.Empty(t, calls)
}
