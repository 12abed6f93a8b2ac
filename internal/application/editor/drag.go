package editor

import (
	"context"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

// Drag is a pointer drag of one clip. Every Update proposes a new position
// from the pointer; End releases the drag and clears the snap indicator.
type Drag struct {
	s        *Session
	clipID   uint64
	offsetPx float64
	ended    bool
}

// BeginDrag starts dragging a clip grabbed at pointer offset grabPx on the
// track. Only one drag may be active at a time.
func (s *Session) BeginDrag(ctx context.Context, clipID uint64, grabPx float64) (*Drag, error) {
	var d *Drag
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		if s.drag != nil {
			return nil, ErrDragInProgress
		}
		clip, err := tl.Clip(clipID)
		if err != nil {
			return nil, err
		}

		d = &Drag{
			s:        s,
			clipID:   clipID,
			offsetPx: grabPx - clip.PixelStart(tl.PixelsPerSecond()),
		}
		s.drag = d
		s.logger.Debug("drag started", zap.Uint64("clip_id", clipID), zap.Float64("grab_px", grabPx))
		return nil, nil
	})
	return d, err
}

// ClipID returns the clip being dragged
func (d *Drag) ClipID() uint64 {
	return d.clipID
}

// Update moves the clip so that the point where it was grabbed sits under
// pointerPx. Rejected positions leave the clip where it was.
func (d *Drag) Update(ctx context.Context, pointerPx float64) (timeline.MoveResult, error) {
	s := d.s
	var result moveOutcome
	err := s.change(ctx, func(tl *timeline.Timeline) ([]events.Event, error) {
		if d.ended {
			return nil, ErrDragEnded
		}

		proposed := (pointerPx - d.offsetPx) / tl.PixelsPerSecond()
		var err error
		result, err = s.moveLocked(tl, d.clipID, proposed)
		if err != nil {
			return nil, err
		}

		if result.Committed {
			s.indicator = result.Snap.IndicatorPx
			return []events.Event{timeline.NewClipMovedEvent(tl, result.From, result.MoveResult)}, nil
		}
		s.indicator = nil
		return nil, nil
	})
	return result.MoveResult, err
}

// End releases the drag. It is safe to call more than once.
func (d *Drag) End() {
	s := d.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ended {
		return
	}
	s.endDragLocked()
	if !s.closed {
		s.broadcastLocked()
	}
}

func (s *Session) endDragLocked() {
	if s.drag == nil {
		return
	}
	s.drag.ended = true
	s.logger.Debug("drag ended", zap.Uint64("clip_id", s.drag.clipID))
	s.drag = nil
	s.indicator = nil
}
