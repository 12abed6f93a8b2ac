// Package editor owns the live editing session: one timeline, its playback
// clock and everyone watching it.
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/narwhalmedia/splice/internal/playback"
)

// MediaLookup resolves catalog records for AddMedia
type MediaLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.MediaRecord, error)
}

// Config tunes a session
type Config struct {
	PixelsPerSecond float64
	TickInterval    time.Duration
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces the session's playback clock
func WithClock(clock *playback.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// Session serialises every read and write of one timeline. Transport
// handlers and the playback clock all go through it.
type Session struct {
	media      MediaLookup
	dispatcher events.DomainEventDispatcher
	publisher  events.EventPublisher
	logger     *zap.Logger

	mu          sync.Mutex
	tl          *timeline.Timeline
	clock       *playback.Clock
	drag        *Drag
	indicator   *float64
	watchers    map[uint64]chan timeline.Snapshot
	nextWatcher uint64
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session around an empty timeline. media, dispatcher
// and publisher may be nil.
func NewSession(
	media MediaLookup,
	dispatcher events.DomainEventDispatcher,
	publisher events.EventPublisher,
	cfg Config,
	logger *zap.Logger,
	opts ...Option,
) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	logger = logger.Named("editor")

	s := &Session{
		media:      media,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		tl:         timeline.New(timeline.WithPixelsPerSecond(cfg.PixelsPerSecond)),
		watchers:   make(map[uint64]chan timeline.Snapshot),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = playback.NewClock(cfg.TickInterval, logger)
	}

	logger.Info("editor session created",
		zap.String("timeline_id", s.tl.ID().String()),
		zap.Float64("pixels_per_second", s.tl.PixelsPerSecond()))
	return s
}

// ID returns the id of the timeline being edited
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.ID()
}

// change runs fn under the session lock. When fn succeeds the resulting
// snapshot goes to every watcher and the returned events are dispatched
// once the lock is released.
func (s *Session) change(ctx context.Context, fn func(tl *timeline.Timeline) ([]events.Event, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return translate(ErrSessionClosed)
	}

	evts, err := fn(s.tl)
	if err != nil {
		s.mu.Unlock()
		return translate(err)
	}
	s.broadcastLocked()
	s.mu.Unlock()

	s.emit(ctx, evts...)
	return nil
}

// AddMedia places a catalog record at the end of the track
func (s *Session) AddMedia(ctx context.Context, cmd AddMediaCommand) (timeline.Clip, error) {
	if s.media == nil {
		return timeline.Clip{}, translate(catalog.ErrMediaNotFound)
	}
	record, err := s.media.Get(ctx, cmd.MediaID)
	if err != nil {
		return timeline.Clip{}, translate(err)
	}
	return s.AddItem(ctx, record.MediaItem())
}

// AddItem places a media item at the end of the track
func (s *Session) AddItem(ctx context.Context, item timeline.MediaItem) (timeline.Clip, error) {
	var clip timeline.Clip
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		if _, ok := timeline.ParseClock(item.Duration); !ok {
			s.logger.Debug("media item has no usable duration, using default",
				zap.String("media_id", item.ID),
				zap.String("duration", item.Duration),
				zap.Float64("default_seconds", timeline.DefaultClipSeconds))
		}
		clip = tl.AddClip(item)
		return []events.Event{timeline.NewClipAddedEvent(tl, clip)}, nil
	})
	if err != nil {
		return timeline.Clip{}, err
	}

	s.logger.Debug("clip added",
		zap.Uint64("clip_id", clip.ID),
		zap.String("name", clip.Name),
		zap.Float64("start", clip.StartTime),
		zap.Float64("end", clip.EndTime()))
	return clip, nil
}

// RemoveClip deletes a clip. Removing the last clip stops playback.
func (s *Session) RemoveClip(ctx context.Context, id uint64) error {
	return s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		removed, err := tl.RemoveClip(id)
		if err != nil {
			return nil, err
		}
		if s.drag != nil && s.drag.clipID == id {
			s.endDragLocked()
		}

		evts := []events.Event{timeline.NewClipRemovedEvent(tl, removed)}
		if tl.Empty() {
			evts = append(evts, s.stopLocked(timeline.StopReasonEmptied)...)
		}
		return evts, nil
	})
}

// TrimClip applies the two trim fields of the trim dialog to a clip
func (s *Session) TrimClip(ctx context.Context, cmd TrimClipCommand) (timeline.Clip, error) {
	var trimmed timeline.Clip
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		clip, err := tl.Clip(cmd.ClipID)
		if err != nil {
			return nil, err
		}
		if !clip.Trimmable() {
			return nil, timeline.ErrClipNotTrimmable
		}

		start, end, err := timeline.ValidateTrimInput(cmd.Start, cmd.End, clip.Duration)
		if err != nil {
			return nil, err
		}
		return s.trimLocked(tl, clip, start, end, &trimmed)
	})
	return trimmed, err
}

// TrimClipSeconds trims a clip to [start, end) seconds of its source
func (s *Session) TrimClipSeconds(ctx context.Context, id uint64, start, end float64) (timeline.Clip, error) {
	var trimmed timeline.Clip
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		clip, err := tl.Clip(id)
		if err != nil {
			return nil, err
		}
		if !clip.Trimmable() {
			return nil, timeline.ErrClipNotTrimmable
		}
		return s.trimLocked(tl, clip, start, end, &trimmed)
	})
	return trimmed, err
}

func (s *Session) trimLocked(tl *timeline.Timeline, before timeline.Clip, start, end float64, out *timeline.Clip) ([]events.Event, error) {
	after, err := tl.Trim(before.ID, start, end)
	if err != nil {
		return nil, err
	}
	*out = after

	s.logger.Debug("clip trimmed",
		zap.Uint64("clip_id", after.ID),
		zap.Float64("trim_start", after.TrimStart),
		zap.Float64("trim_end", after.TrimEnd),
		zap.Float64("start", after.StartTime))
	return []events.Event{timeline.NewClipTrimmedEvent(tl, before, after)}, nil
}

// MoveClip moves a clip, snapping it to nearby edges. A move that would
// overlap another clip is not an error; the result reports Committed false.
func (s *Session) MoveClip(ctx context.Context, cmd MoveClipCommand) (timeline.MoveResult, error) {
	var result moveOutcome
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		var err error
		result, err = s.moveLocked(tl, cmd.ClipID, cmd.ProposedStart)
		if err != nil || !result.Committed {
			return nil, err
		}
		return []events.Event{timeline.NewClipMovedEvent(tl, result.From, result.MoveResult)}, nil
	})
	return result.MoveResult, err
}

type moveOutcome struct {
	timeline.MoveResult
	From float64
}

func (s *Session) moveLocked(tl *timeline.Timeline, id uint64, proposed float64) (moveOutcome, error) {
	before, err := tl.Clip(id)
	if err != nil {
		return moveOutcome{}, err
	}
	result, err := tl.Move(id, proposed)
	if err != nil {
		return moveOutcome{}, err
	}
	if !result.Committed {
		s.logger.Debug("move rejected, would overlap",
			zap.Uint64("clip_id", id),
			zap.Float64("proposed_start", proposed))
	}
	return moveOutcome{MoveResult: result, From: before.StartTime}, nil
}

// SetCurrentTime moves the play-head, clamped to the track
func (s *Session) SetCurrentTime(ctx context.Context, seconds float64) (float64, error) {
	return s.Seek(ctx, SeekCommand{Kind: SeekTime, Value: seconds})
}

// Seek moves the play-head and returns where it landed
func (s *Session) Seek(ctx context.Context, cmd SeekCommand) (float64, error) {
	var at float64
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		switch cmd.Kind {
		case SeekTime:
			at = tl.SetCurrentTime(cmd.Value)
		case SeekPixel:
			at = tl.SeekToPixel(cmd.Value)
		case SeekSkipBackward:
			at = tl.SkipBackward()
		case SeekSkipForward:
			at = tl.SkipForward()
		case SeekStepBackward:
			at = tl.Step(-1)
		case SeekStepForward:
			at = tl.Step(1)
		default:
			return nil, timeline.NewValidationError("kind", "unknown seek kind "+string(cmd.Kind))
		}
		return nil, nil
	})
	return at, err
}

// SetIsPlaying starts or pauses playback. Starting an empty timeline does
// nothing.
func (s *Session) SetIsPlaying(ctx context.Context, playing bool) (bool, error) {
	var now bool
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		var evts []events.Event
		switch {
		case playing && !tl.IsPlaying():
			evts = s.startLocked()
		case !playing && tl.IsPlaying():
			evts = s.stopLocked(timeline.StopReasonPaused)
		}
		now = tl.IsPlaying()
		return evts, nil
	})
	return now, err
}

// TogglePlayback flips between playing and paused
func (s *Session) TogglePlayback(ctx context.Context) (bool, error) {
	s.mu.Lock()
	playing := s.tl.IsPlaying()
	s.mu.Unlock()
	return s.SetIsPlaying(ctx, !playing)
}

func (s *Session) startLocked() []events.Event {
	if s.tl.Empty() {
		s.logger.Debug("ignoring play on empty timeline")
		return nil
	}
	s.tl.SetIsPlaying(true)
	if !s.clock.Start(s.ctx, s.tick) {
		s.tl.SetIsPlaying(false)
		s.logger.Warn("playback clock still running, play ignored")
		return nil
	}

	s.logger.Debug("playback started", zap.Float64("at", s.tl.CurrentTime()))
	return []events.Event{timeline.NewPlaybackStartedEvent(s.tl)}
}

func (s *Session) stopLocked(reason string) []events.Event {
	s.clock.Stop()
	if !s.tl.IsPlaying() {
		return nil
	}
	s.tl.SetIsPlaying(false)

	s.logger.Debug("playback stopped",
		zap.Float64("at", s.tl.CurrentTime()),
		zap.String("reason", reason))
	return []events.Event{timeline.NewPlaybackStoppedEvent(s.tl, reason)}
}

// tick advances the play-head by one quantum. It runs on the clock's
// goroutine; a tick that lost the race with a pause sees ctx cancelled and
// does nothing.
func (s *Session) tick(ctx context.Context) bool {
	s.mu.Lock()
	if ctx.Err() != nil || s.closed {
		s.mu.Unlock()
		return false
	}

	running := s.tl.Advance(timeline.PlaybackQuantum)
	var evts []events.Event
	if !running {
		// the loop must not count as running once the lock is released
		s.clock.Stop()
		evts = append(evts, timeline.NewPlaybackStoppedEvent(s.tl, timeline.StopReasonEnded))
		s.logger.Debug("playback reached end", zap.Float64("at", s.tl.CurrentTime()))
	}
	s.broadcastLocked()
	s.mu.Unlock()

	s.emit(context.Background(), evts...)
	return running
}

// Clear removes every clip and stops playback
func (s *Session) Clear(ctx context.Context) error {
	return s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		removed := tl.Len()
		evts := s.stopLocked(timeline.StopReasonEmptied)
		s.endDragLocked()
		tl.Clear()
		return append(evts, timeline.NewTimelineClearedEvent(tl, removed)), nil
	})
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() timeline.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.Snapshot()
}

// Preview resolves the clip under the play-head. ok is false over a gap.
func (s *Session) Preview() (active timeline.Active, at float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, ok = s.tl.Preview()
	return active, s.tl.CurrentTime(), ok
}

// Ruler lays out the time ruler for the current track
func (s *Session) Ruler() []timeline.Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.Ruler()
}

// SnapIndicator returns the pixel offset of the edge the active drag is
// snapped to, or nil
func (s *Session) SnapIndicator() *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indicator == nil {
		return nil
	}
	px := *s.indicator
	return &px
}

// Close stops playback, ends any drag and closes every watcher. It waits
// for the playback clock to exit.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	evts := s.stopLocked(timeline.StopReasonShutdown)
	s.endDragLocked()
	s.closed = true
	for id, ch := range s.watchers {
		close(ch)
		delete(s.watchers, id)
	}
	s.mu.Unlock()

	s.clock.Wait()
	s.cancel()
	s.emit(context.Background(), evts...)
	s.logger.Info("editor session closed")
	return nil
}

// emit hands events to in-process handlers and then to the broker publisher
func (s *Session) emit(ctx context.Context, evts ...events.Event) {
	for _, e := range evts {
		if s.dispatcher != nil {
			if err := s.dispatcher.Dispatch(ctx, e); err != nil {
				s.logger.Warn("domain event handler failed",
					zap.String("event_type", e.EventType()),
					zap.Error(err))
			}
		}
		if s.publisher != nil {
			if err := s.publisher.PublishEvent(ctx, e); err != nil {
				s.logger.Warn("failed to publish event",
					zap.String("event_type", e.EventType()),
					zap.Error(err))
			}
		}
	}
}
