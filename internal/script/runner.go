package script

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/application/editor"
	"github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/narwhalmedia/splice/internal/playback"
)

// tickWait bounds how long a single play-head tick may take to land
const tickWait = time.Second

// Result is the outcome of one step. Failed edits do not stop the run.
type Result struct {
	Index  int
	Action string
	Detail string
	Err    error
}

// Report is what a run leaves behind
type Report struct {
	Results  []Result
	Events   []string
	Snapshot timeline.Snapshot
}

// Failed counts steps that returned an error
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

type manualTicker struct {
	ch chan time.Time
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {}

// Runner replays scripts. Playback is driven tick by tick so runs are
// deterministic and independent of wall time.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a runner
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger.Named("script")}
}

// Run replays every step against a fresh session
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	report := &Report{}

	// ticks emit from the clock goroutine
	var mu sync.Mutex
	var seen []string
	dispatcher := events.NewDomainEventDispatcher()
	dispatcher.RegisterHandler(events.HandlerFunc(func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.EventType())
		return nil
	}))

	ticker := &manualTicker{ch: make(chan time.Time)}
	clock := playback.NewClock(playback.DefaultInterval, r.logger,
		playback.WithTickerFactory(func(time.Duration) playback.Ticker { return ticker }))
	session := editor.NewSession(nil, dispatcher, nil,
		editor.Config{PixelsPerSecond: s.PixelsPerSecond}, r.logger, editor.WithClock(clock))
	defer session.Close()

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := Result{Index: i + 1, Action: step.Action()}
		res.Detail, res.Err = r.apply(ctx, session, ticker, step)
		if res.Err != nil {
			r.logger.Debug("step failed", zap.Int("step", res.Index), zap.Error(res.Err))
		}
		report.Results = append(report.Results, res)
	}

	report.Snapshot = session.Snapshot()
	session.Close()

	mu.Lock()
	report.Events = append([]string(nil), seen...)
	mu.Unlock()
	return report, nil
}

func (r *Runner) apply(ctx context.Context, session *editor.Session, ticker *manualTicker, step Step) (string, error) {
	switch {
	case step.Add != nil:
		clip, err := session.AddItem(ctx, timeline.MediaItem{
			ID:       step.Add.Name,
			Name:     step.Add.Name,
			Type:     timeline.ParseMediaType(step.Add.Type),
			Duration: step.Add.Duration,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("clip %d at %s", clip.ID, timeline.FormatTrimInput(clip.StartTime)), nil

	case step.Trim != nil:
		clip, err := session.TrimClip(ctx, editor.TrimClipCommand{
			ClipID: step.Trim.Clip,
			Start:  step.Trim.Start,
			End:    step.Trim.End,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("clip %d window %s-%s", clip.ID,
			timeline.FormatTrimInput(clip.TrimStart), timeline.FormatTrimInput(clip.TrimEnd)), nil

	case step.Move != nil:
		result, err := session.MoveClip(ctx, editor.MoveClipCommand{ClipID: step.Move.Clip, ProposedStart: step.Move.To})
		if err != nil {
			return "", err
		}
		if !result.Committed {
			return fmt.Sprintf("clip %d rejected, stays at %s", result.Clip.ID, timeline.FormatTrimInput(result.Clip.StartTime)), nil
		}
		detail := fmt.Sprintf("clip %d to %s", result.Clip.ID, timeline.FormatTrimInput(result.Clip.StartTime))
		if result.Snap.Snapped() {
			detail += fmt.Sprintf(" (snapped %s)", result.Snap.Kind)
		}
		return detail, nil

	case step.Remove != nil:
		if err := session.RemoveClip(ctx, step.Remove.Clip); err != nil {
			return "", err
		}
		return fmt.Sprintf("clip %d removed", step.Remove.Clip), nil

	case step.Seek != nil:
		kind := editor.SeekKind(step.Seek.Kind)
		if kind == "" {
			kind = editor.SeekTime
		}
		at, err := session.Seek(ctx, editor.SeekCommand{Kind: kind, Value: step.Seek.Value})
		if err != nil {
			return "", err
		}
		return "play-head " + timeline.FormatTrimInput(at), nil

	case step.Play != nil:
		return r.play(ctx, session, ticker, step.Play.Seconds)

	case step.Clear:
		if err := session.Clear(ctx); err != nil {
			return "", err
		}
		return "track cleared", nil
	}
	return "", fmt.Errorf("step has no action")
}

// play starts playback, delivers one tick per quantum and pauses again
func (r *Runner) play(ctx context.Context, session *editor.Session, ticker *manualTicker, seconds float64) (string, error) {
	playing, err := session.SetIsPlaying(ctx, true)
	if err != nil {
		return "", err
	}
	if !playing {
		return "nothing to play", nil
	}

	ticks := int(math.Round(seconds / timeline.PlaybackQuantum))
	for i := 0; i < ticks; i++ {
		before := session.Snapshot()
		if !before.IsPlaying {
			break
		}
		select {
		case ticker.ch <- time.Now():
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(tickWait):
			return "", fmt.Errorf("playback clock not running")
		}
		if err := waitForTick(ctx, session, before); err != nil {
			return "", err
		}
	}

	at := session.Snapshot().CurrentTime
	if _, err := session.SetIsPlaying(ctx, false); err != nil {
		return "", err
	}
	return "played to " + timeline.FormatTrimInput(at), nil
}

func waitForTick(ctx context.Context, session *editor.Session, before timeline.Snapshot) error {
	deadline := time.Now().Add(tickWait)
	for time.Now().Before(deadline) {
		now := session.Snapshot()
		if now.CurrentTime != before.CurrentTime || now.IsPlaying != before.IsPlaying {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
	return fmt.Errorf("play-head did not advance")
}
