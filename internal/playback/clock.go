// Package playback drives the play-head from a wall-clock ticker.
package playback

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval advances the play-head ten times a second
const DefaultInterval = 100 * time.Millisecond

// TickFunc is called once per tick with the run's context. Returning false
// ends the run. Implementations must treat a cancelled ctx as a stale tick
// and leave state untouched.
type TickFunc func(ctx context.Context) bool

// Clock runs at most one ticker loop at a time.
type Clock struct {
	interval  time.Duration
	newTicker TickerFactory
	logger    *zap.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	loops  sync.WaitGroup
}

// Option configures a Clock
type Option func(*Clock)

// WithTickerFactory replaces the wall-clock ticker, mainly for tests
func WithTickerFactory(f TickerFactory) Option {
	return func(c *Clock) {
		c.newTicker = f
	}
}

// NewClock creates a stopped clock
func NewClock(interval time.Duration, logger *zap.Logger, opts ...Option) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Clock{
		interval:  interval,
		newTicker: NewTimeTicker,
		logger:    logger.Named("playback-clock"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval returns the tick period
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Start launches the ticker loop. It returns false without doing anything if
// a loop is already running. A loop that has been stopped but not yet exited
// does not count as running.
func (c *Clock) Start(parent context.Context, fn TickFunc) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.runningLocked() {
		return false
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	ticker := c.newTicker(c.interval)
	c.ctx = ctx
	c.cancel = cancel
	c.done = done
	c.loops.Add(1)

	c.logger.Debug("clock started", zap.Duration("interval", c.interval))

	go func() {
		defer c.loops.Done()
		defer close(done)
		defer cancel()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				if !fn(ctx) {
					c.logger.Debug("clock finished")
					return
				}
			}
		}
	}()
	return true
}

// Stop cancels the running loop. It does not wait for it to exit, so it is
// safe to call while holding a lock the tick function also takes.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		return
	}
	if c.runningLocked() {
		c.logger.Debug("clock stopped")
	}
	c.cancel()
}

// Wait blocks until every loop started so far has exited. Callers must not
// Start concurrently with Wait.
func (c *Clock) Wait() {
	c.loops.Wait()
}

// Running reports whether a loop is active
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runningLocked()
}

func (c *Clock) runningLocked() bool {
	if c.done == nil || c.ctx.Err() != nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}
