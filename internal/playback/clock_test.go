package playback_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/narwhalmedia/splice/internal/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() { f.stopped.Store(true) }

type fakeTickers struct {
	mu      sync.Mutex
	created []*fakeTicker
}

func (f *fakeTickers) factory(time.Duration) playback.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	f.created = append(f.created, t)
	return t
}

func (f *fakeTickers) last() *fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[len(f.created)-1]
}

func newTestClock(t *testing.T) (*playback.Clock, *fakeTickers) {
	tickers := &fakeTickers{}
	clock := playback.NewClock(playback.DefaultInterval, zaptest.NewLogger(t),
		playback.WithTickerFactory(tickers.factory))
	return clock, tickers
}

func TestClock_TicksUntilCallbackStops(t *testing.T) {
	clock, tickers := newTestClock(t)

	var calls atomic.Int32
	started := clock.Start(context.Background(), func(ctx context.Context) bool {
		return calls.Add(1) < 3
	})
	require.True(t, started)
	assert.True(t, clock.Running())

	ticker := tickers.last()
	for i := 0; i < 3; i++ {
		ticker.ch <- time.Now()
	}
	clock.Wait()

	assert.Equal(t, int32(3), calls.Load())
	assert.False(t, clock.Running())
	assert.True(t, ticker.stopped.Load())
}

func TestClock_StartWhileRunning(t *testing.T) {
	clock, _ := newTestClock(t)
	noop := func(context.Context) bool { return true }

	require.True(t, clock.Start(context.Background(), noop))
	assert.False(t, clock.Start(context.Background(), noop))

	clock.Stop()
	clock.Wait()
}

func TestClock_StopDiscardsLaterTicks(t *testing.T) {
	clock, tickers := newTestClock(t)

	var calls atomic.Int32
	ticked := make(chan struct{}, 1)
	clock.Start(context.Background(), func(ctx context.Context) bool {
		calls.Add(1)
		ticked <- struct{}{}
		return true
	})
	ticker := tickers.last()
	ticker.ch <- time.Now()
	<-ticked

	clock.Stop()
	assert.False(t, clock.Running())

	select {
	case ticker.ch <- time.Now():
	case <-time.After(50 * time.Millisecond):
	}
	clock.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestClock_RestartAfterStop(t *testing.T) {
	clock, tickers := newTestClock(t)
	noop := func(context.Context) bool { return true }

	require.True(t, clock.Start(context.Background(), noop))
	first := tickers.last()
	clock.Stop()

	require.True(t, clock.Start(context.Background(), noop))
	second := tickers.last()
	assert.NotSame(t, first, second)

	clock.Stop()
	clock.Wait()
	assert.True(t, first.stopped.Load())
	assert.True(t, second.stopped.Load())
}

func TestClock_ParentCancellation(t *testing.T) {
	clock, _ := newTestClock(t)
	ctx, cancel := context.WithCancel(context.Background())

	clock.Start(ctx, func(context.Context) bool { return true })
	cancel()
	clock.Wait()

	assert.False(t, clock.Running())
}

func TestClock_RealTicker(t *testing.T) {
	clock := playback.NewClock(time.Millisecond, nil)
	assert.Equal(t, time.Millisecond, clock.Interval())

	done := make(chan struct{})
	var calls atomic.Int32
	clock.Start(context.Background(), func(context.Context) bool {
		if calls.Add(1) == 5 {
			close(done)
			return false
		}
		return true
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker never fired")
	}
	clock.Wait()
	assert.Equal(t, int32(5), calls.Load())
}

func TestNewClock_DefaultsInterval(t *testing.T) {
	assert.Equal(t, playback.DefaultInterval, playback.NewClock(0, nil).Interval())
}
