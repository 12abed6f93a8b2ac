package script_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/narwhalmedia/splice/internal/script"
	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

const session = `
pixels_per_second: 100
steps:
  - add: {name: intro.mp4, type: video, duration: "00:10"}
  - add: {name: outro.mp4, type: video, duration: "00:05"}
  - trim: {clip: 1, start: "0:02.0", end: "0:08.0"}
  - move: {clip: 2, to: 20}
  - seek: {kind: time, value: 0}
  - play: {seconds: 1}
  - remove: {clip: 1}
  - trim: {clip: 9, start: "0:00.0", end: "0:01.0"}
`

func TestParse(t *testing.T) {
	s, err := script.Parse(strings.NewReader(session))

	require.NoError(t, err)
	assert.Equal(t, 100.0, s.PixelsPerSecond)
	require.Len(t, s.Steps, 8)
	assert.Equal(t, "add", s.Steps[0].Action())
	assert.Equal(t, "outro.mp4", s.Steps[1].Add.Name)
	assert.Equal(t, "trim", s.Steps[2].Action())
	assert.Equal(t, 20.0, s.Steps[3].Move.To)
	assert.Equal(t, 1.0, s.Steps[5].Play.Seconds)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "no steps"},
		{"no steps", "pixels_per_second: 50\n", "no steps"},
		{"unknown key", "steps:\n  - shuffle: true\n", "decoding script"},
		{"two actions", "steps:\n  - clear: true\n    remove: {clip: 1}\n", "step 1: 2 actions"},
		{"no action", "steps:\n  - {}\n", "step 1: no action"},
		{"negative play", "steps:\n  - play: {seconds: -1}\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.Parse(strings.NewReader(tt.in))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	// Arrange
	s, err := script.Parse(strings.NewReader(session))
	require.NoError(t, err)
	runner := script.NewRunner(zaptest.NewLogger(t))

	// Act
	report, err := runner.Run(context.Background(), s)

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Results, 8)
	assert.Equal(t, 1, report.Failed())
	assert.True(t, apperrors.IsNotFound(report.Results[7].Err))
	assert.Equal(t, "clip 1 window 0:02.0-0:08.0", report.Results[2].Detail)
	assert.Equal(t, "clip 2 to 0:20.0", report.Results[3].Detail)

	snap := report.Snapshot
	require.Len(t, snap.Clips, 1)
	assert.Equal(t, uint64(2), snap.Clips[0].ID)
	assert.Equal(t, 20.0, snap.Clips[0].StartTime)
	assert.Equal(t, 25.0, snap.TotalDuration)
	assert.InDelta(t, 1.0, snap.CurrentTime, 1e-9)
	assert.False(t, snap.IsPlaying)

	assert.Contains(t, report.Events, timeline.EventTypeClipTrimmed)
	assert.Contains(t, report.Events, timeline.EventTypeClipMoved)
	assert.Contains(t, report.Events, timeline.EventTypePlaybackStarted)
	assert.Contains(t, report.Events, timeline.EventTypePlaybackStopped)
	assert.Contains(t, report.Events, timeline.EventTypeClipRemoved)
}

func TestRunner_PlayStopsAtEnd(t *testing.T) {
	// Arrange
	s := &script.Script{Steps: []script.Step{
		{Add: &script.AddStep{Name: "a", Type: "audio", Duration: "00:01"}},
		{Play: &script.PlayStep{Seconds: 5}},
	}}

	// Act
	report, err := script.NewRunner(zaptest.NewLogger(t)).Run(context.Background(), s)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, 1.0, report.Snapshot.CurrentTime)
	assert.Equal(t, "played to 0:01.0", report.Results[1].Detail)
}

func TestRunner_PlayEmptyTrack(t *testing.T) {
	s := &script.Script{Steps: []script.Step{{Play: &script.PlayStep{Seconds: 1}}}}

	report, err := script.NewRunner(zaptest.NewLogger(t)).Run(context.Background(), s)

	require.NoError(t, err)
	assert.Equal(t, "nothing to play", report.Results[0].Detail)
}
