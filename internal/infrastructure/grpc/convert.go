package grpc

import (
	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

func toProtoClip(v timeline.ClipView) *timelinev1.Clip {
	return &timelinev1.Clip{
		ID:              v.ID,
		MediaID:         v.MediaRecordID,
		Name:            v.Name,
		Type:            string(v.Type),
		Thumbnail:       v.Thumbnail,
		Duration:        v.Duration,
		TrimStart:       v.TrimStart,
		TrimEnd:         v.TrimEnd,
		StartTime:       v.StartTime,
		TrimmedDuration: v.TrimmedDuration,
		EndTime:         v.EndTime,
		PixelStart:      v.PixelStart,
		PixelWidth:      v.PixelWidth,
	}
}

// ToProtoTimeline converts a snapshot into its wire form
func ToProtoTimeline(s timeline.Snapshot, indicator *float64) *timelinev1.Timeline {
	clips := make([]*timelinev1.Clip, len(s.Clips))
	for i, c := range s.Clips {
		clips[i] = toProtoClip(c)
	}
	return &timelinev1.Timeline{
		ID:              s.ID.String(),
		Version:         s.Version,
		Clips:           clips,
		TotalDuration:   s.TotalDuration,
		CurrentTime:     s.CurrentTime,
		IsPlaying:       s.IsPlaying,
		PixelsPerSecond: s.PixelsPerSecond,
		SnapIndicatorPx: indicator,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToProtoMedia converts a catalog record into its wire form
func ToProtoMedia(r *catalog.MediaRecord) *timelinev1.Media {
	return &timelinev1.Media{
		ID:              r.ID.String(),
		Name:            r.Name,
		Type:            string(r.Type),
		Duration:        r.Duration,
		DurationSeconds: r.DurationSeconds,
		Size:            r.Size,
		SizeLabel:       r.SizeLabel,
		MIMEType:        r.MIMEType,
		SourceURL:       r.SourceURL,
		ThumbnailURL:    r.ThumbnailURL,
		CreatedAt:       r.CreatedAt,
	}
}

func toProtoTicks(ticks []timeline.Tick) []*timelinev1.Tick {
	out := make([]*timelinev1.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = &timelinev1.Tick{
			Time:  t.Time,
			Pixel: t.Pixel,
			Kind:  string(t.Kind),
			Label: t.Label,
		}
	}
	return out
}
