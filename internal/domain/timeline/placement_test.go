package timeline_test

import (
	"testing"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placed(id uint64, start, length float64) timeline.Clip {
	return timeline.Clip{ID: id, Duration: length, TrimEnd: length, StartTime: start}
}

func TestOverlaps(t *testing.T) {
	a := timeline.Interval{Start: 0, End: 10}

	assert.False(t, timeline.Overlaps(a, timeline.Interval{Start: 10, End: 20}), "touching edges")
	assert.False(t, timeline.Overlaps(timeline.Interval{Start: 10, End: 20}, a), "touching edges reversed")
	assert.True(t, timeline.Overlaps(a, timeline.Interval{Start: 5, End: 15}))
	assert.True(t, timeline.Overlaps(a, timeline.Interval{Start: 2, End: 3}), "contained")
	assert.True(t, timeline.Overlaps(a, a), "identical")
}

func TestResolveSnap_Alignments(t *testing.T) {
	others := []timeline.Clip{placed(1, 20, 10)}

	cases := []struct {
		name     string
		proposed float64
		start    float64
		kind     timeline.SnapKind
		px       float64
	}{
		{"start to end", 30.05, 30, timeline.SnapStartToEnd, 3000},
		{"start to start", 19.92, 20, timeline.SnapStartToStart, 2000},
		{"end to start", 14.95, 15, timeline.SnapEndToStart, 2000},
		{"end to end", 25.04, 25, timeline.SnapEndToEnd, 3000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := timeline.ResolveSnap(others, tc.proposed, 5, timeline.DefaultPixelsPerSecond)

			assert.Equal(t, tc.kind, res.Kind)
			assert.Equal(t, tc.start, res.Start)
			assert.Equal(t, uint64(1), res.TargetClipID)
			require.NotNil(t, res.IndicatorPx)
			assert.Equal(t, tc.px, *res.IndicatorPx)
		})
	}
}

func TestResolveSnap_ToleranceIsInclusive(t *testing.T) {
	others := []timeline.Clip{placed(1, 0, 10)}

	res := timeline.ResolveSnap(others, 10.1, 5, 100)
	assert.Equal(t, timeline.SnapStartToEnd, res.Kind)

	res = timeline.ResolveSnap(others, 10.11, 5, 100)
	assert.False(t, res.Snapped())
	assert.Equal(t, 10.11, res.Start)
	assert.Nil(t, res.IndicatorPx)
}

func TestResolveSnap_ToleranceFollowsScale(t *testing.T) {
	others := []timeline.Clip{placed(1, 0, 10)}

	res := timeline.ResolveSnap(others, 10.5, 5, 10)
	assert.Equal(t, timeline.SnapStartToEnd, res.Kind)
	assert.Equal(t, 10.0, res.Start)

	res = timeline.ResolveSnap(others, 10.5, 5, 100)
	assert.False(t, res.Snapped())
}

func TestResolveSnap_FirstMatchWins(t *testing.T) {
	// The start edge matches clip 1 at distance 0.08 before the closer
	// end-to-start match on clip 2 is considered.
	others := []timeline.Clip{placed(1, 0, 10), placed(2, 15.02, 10)}

	res := timeline.ResolveSnap(others, 10.08, 5, 100)

	assert.Equal(t, timeline.SnapStartToEnd, res.Kind)
	assert.Equal(t, uint64(1), res.TargetClipID)
	assert.Equal(t, 10.0, res.Start)
}

func TestResolveSnap_SequenceOrderNotPosition(t *testing.T) {
	others := []timeline.Clip{placed(7, 40, 10), placed(3, 0, 10)}

	res := timeline.ResolveSnap(others, 10.05, 30, 100)

	// end 40.05 matches clip 7's start before clip 3's end is reached
	assert.Equal(t, uint64(7), res.TargetClipID)
	assert.Equal(t, timeline.SnapEndToStart, res.Kind)
	assert.Equal(t, 10.0, res.Start)
}

func TestResolveSnap_OriginOnlyWhenNoClipMatched(t *testing.T) {
	res := timeline.ResolveSnap(nil, 0.05, 5, 100)
	assert.Equal(t, timeline.SnapOrigin, res.Kind)
	assert.Equal(t, 0.0, res.Start)
	require.NotNil(t, res.IndicatorPx)
	assert.Equal(t, 0.0, *res.IndicatorPx)

	others := []timeline.Clip{placed(1, 5.02, 10)}
	res = timeline.ResolveSnap(others, 0.05, 5, 100)
	assert.Equal(t, timeline.SnapEndToStart, res.Kind)
	assert.InDelta(t, 0.02, res.Start, 1e-9)
}

func TestResolveSnap_SkipsCandidatesBeforeOrigin(t *testing.T) {
	others := []timeline.Clip{placed(1, 4, 10)}

	// end 5 is within one second of clip 1's start at 10 px/s, which would
	// put the moving clip at -1
	res := timeline.ResolveSnap(others, 0, 5, 10)

	assert.Equal(t, timeline.SnapOrigin, res.Kind)
	assert.Equal(t, 0.0, res.Start)
}

func TestSnapTolerance(t *testing.T) {
	assert.Equal(t, 0.1, timeline.SnapTolerance(100))
	assert.Equal(t, 0.2, timeline.SnapTolerance(50))
}
