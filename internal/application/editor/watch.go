package editor

import (
	"context"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

// Watch streams snapshots until ctx is done or the session closes. The
// first value is the current state. Slow readers only ever see the latest
// snapshot; intermediate ones are dropped.
func (s *Session) Watch(ctx context.Context) (<-chan timeline.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, translate(ErrSessionClosed)
	}

	ch := make(chan timeline.Snapshot, 1)
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = ch
	ch <- s.tl.Snapshot()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.ctx.Done():
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			close(w)
			delete(s.watchers, id)
		}
	}()
	return ch, nil
}

// Watchers returns the number of open watch streams
func (s *Session) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

func (s *Session) broadcastLocked() {
	if len(s.watchers) == 0 {
		return
	}
	snap := s.tl.Snapshot()
	for _, ch := range s.watchers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
