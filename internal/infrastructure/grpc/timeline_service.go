package grpc

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	"github.com/narwhalmedia/splice/internal/application/editor"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

// Editor is the editor session the service drives
type Editor interface {
	AddMedia(ctx context.Context, cmd editor.AddMediaCommand) (timeline.Clip, error)
	RemoveClip(ctx context.Context, id uint64) error
	TrimClip(ctx context.Context, cmd editor.TrimClipCommand) (timeline.Clip, error)
	TrimClipSeconds(ctx context.Context, id uint64, start, end float64) (timeline.Clip, error)
	MoveClip(ctx context.Context, cmd editor.MoveClipCommand) (timeline.MoveResult, error)
	Seek(ctx context.Context, cmd editor.SeekCommand) (float64, error)
	SetIsPlaying(ctx context.Context, playing bool) (bool, error)
	Clear(ctx context.Context) error
	Snapshot() timeline.Snapshot
	Preview() (active timeline.Active, at float64, ok bool)
	Ruler() []timeline.Tick
	SnapIndicator() *float64
	Watch(ctx context.Context) (<-chan timeline.Snapshot, error)
}

// Catalog is the media catalog the service reads
type Catalog interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.MediaRecord, error)
	List(ctx context.Context) ([]*catalog.MediaRecord, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// TimelineService implements the timeline.v1.TimelineServiceServer interface
type TimelineService struct {
	timelinev1.UnimplementedTimelineServiceServer
	editor  Editor
	catalog Catalog
	logger  *zap.Logger
}

// NewTimelineService creates a new timeline service
func NewTimelineService(editor Editor, catalog Catalog, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		editor:  editor,
		catalog: catalog,
		logger:  logger.Named("timeline-service"),
	}
}

func (s *TimelineService) timeline() *timelinev1.Timeline {
	return ToProtoTimeline(s.editor.Snapshot(), s.editor.SnapIndicator())
}

func (s *TimelineService) clipView(c timeline.Clip) *timelinev1.Clip {
	return toProtoClip(timeline.NewClipView(c, s.editor.Snapshot().PixelsPerSecond))
}

// AddClip places a catalog record at the end of the track
func (s *TimelineService) AddClip(ctx context.Context, req *timelinev1.AddClipRequest) (*timelinev1.Clip, error) {
	id, err := uuid.Parse(req.MediaID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid media ID")
	}

	clip, err := s.editor.AddMedia(ctx, editor.AddMediaCommand{MediaID: id})
	if err != nil {
		return nil, ToStatus(err)
	}
	return s.clipView(clip), nil
}

// RemoveClip deletes a clip and returns the resulting timeline
func (s *TimelineService) RemoveClip(ctx context.Context, req *timelinev1.RemoveClipRequest) (*timelinev1.Timeline, error) {
	if err := s.editor.RemoveClip(ctx, req.ClipID); err != nil {
		return nil, ToStatus(err)
	}
	return s.timeline(), nil
}

// TrimClip changes a clip's playback window
func (s *TimelineService) TrimClip(ctx context.Context, req *timelinev1.TrimClipRequest) (*timelinev1.Clip, error) {
	var (
		clip timeline.Clip
		err  error
	)
	if req.StartSeconds != nil && req.EndSeconds != nil {
		clip, err = s.editor.TrimClipSeconds(ctx, req.ClipID, *req.StartSeconds, *req.EndSeconds)
	} else {
		clip, err = s.editor.TrimClip(ctx, editor.TrimClipCommand{
			ClipID: req.ClipID,
			Start:  req.Start,
			End:    req.End,
		})
	}
	if err != nil {
		return nil, ToStatus(err)
	}
	return s.clipView(clip), nil
}

// MoveClip repositions a clip. A move that would overlap another clip is
// reported with Committed false rather than as an error.
func (s *TimelineService) MoveClip(ctx context.Context, req *timelinev1.MoveClipRequest) (*timelinev1.MoveClipResponse, error) {
	result, err := s.editor.MoveClip(ctx, editor.MoveClipCommand{
		ClipID:        req.ClipID,
		ProposedStart: req.ProposedStart,
	})
	if err != nil {
		return nil, ToStatus(err)
	}

	return &timelinev1.MoveClipResponse{
		Clip:             s.clipView(result.Clip),
		Committed:        result.Committed,
		SnapKind:         string(result.Snap.Kind),
		SnapTargetClipID: result.Snap.TargetClipID,
		SnapIndicatorPx:  result.Snap.IndicatorPx,
		Timeline:         s.timeline(),
	}, nil
}

// SetCurrentTime moves the play-head to an absolute time
func (s *TimelineService) SetCurrentTime(ctx context.Context, req *timelinev1.SetCurrentTimeRequest) (*timelinev1.PlayheadResponse, error) {
	return s.seek(ctx, editor.SeekCommand{Kind: editor.SeekTime, Value: req.Seconds})
}

// Seek moves the play-head by kind
func (s *TimelineService) Seek(ctx context.Context, req *timelinev1.SeekRequest) (*timelinev1.PlayheadResponse, error) {
	return s.seek(ctx, editor.SeekCommand{Kind: editor.SeekKind(req.Kind), Value: req.Value})
}

func (s *TimelineService) seek(ctx context.Context, cmd editor.SeekCommand) (*timelinev1.PlayheadResponse, error) {
	at, err := s.editor.Seek(ctx, cmd)
	if err != nil {
		return nil, ToStatus(err)
	}
	return &timelinev1.PlayheadResponse{CurrentTime: at}, nil
}

// SetPlaying starts or pauses playback
func (s *TimelineService) SetPlaying(ctx context.Context, req *timelinev1.SetPlayingRequest) (*timelinev1.SetPlayingResponse, error) {
	playing, err := s.editor.SetIsPlaying(ctx, req.Playing)
	if err != nil {
		return nil, ToStatus(err)
	}
	return &timelinev1.SetPlayingResponse{IsPlaying: playing}, nil
}

// Clear empties the track
func (s *TimelineService) Clear(ctx context.Context, req *timelinev1.ClearRequest) (*timelinev1.Timeline, error) {
	if err := s.editor.Clear(ctx); err != nil {
		return nil, ToStatus(err)
	}
	return s.timeline(), nil
}

// GetTimeline returns the current timeline
func (s *TimelineService) GetTimeline(ctx context.Context, req *timelinev1.GetTimelineRequest) (*timelinev1.Timeline, error) {
	return s.timeline(), nil
}

// GetPreview resolves the clip under the play-head
func (s *TimelineService) GetPreview(ctx context.Context, req *timelinev1.GetPreviewRequest) (*timelinev1.Preview, error) {
	active, at, ok := s.editor.Preview()
	preview := &timelinev1.Preview{
		Active:    ok,
		At:        at,
		IsPlaying: s.editor.Snapshot().IsPlaying,
	}
	if !ok {
		return preview, nil
	}

	preview.Clip = s.clipView(active.Clip)
	preview.MediaOffset = active.MediaOffset
	preview.Playable = active.Playable
	preview.SourceURL = s.sourceURL(ctx, active.Clip.MediaRecordID)
	return preview, nil
}

func (s *TimelineService) sourceURL(ctx context.Context, mediaID string) string {
	if s.catalog == nil {
		return ""
	}
	id, err := uuid.Parse(mediaID)
	if err != nil {
		return ""
	}
	record, err := s.catalog.Get(ctx, id)
	if err != nil {
		s.logger.Debug("preview source lookup failed", zap.String("media_id", mediaID), zap.Error(err))
		return ""
	}
	return record.SourceURL
}

// GetRuler lays out the time ruler
func (s *TimelineService) GetRuler(ctx context.Context, req *timelinev1.GetRulerRequest) (*timelinev1.GetRulerResponse, error) {
	return &timelinev1.GetRulerResponse{Ticks: toProtoTicks(s.editor.Ruler())}, nil
}

// ListMedia lists the catalog
func (s *TimelineService) ListMedia(ctx context.Context, req *timelinev1.ListMediaRequest) (*timelinev1.ListMediaResponse, error) {
	if s.catalog == nil {
		return &timelinev1.ListMediaResponse{Media: []*timelinev1.Media{}}, nil
	}
	records, err := s.catalog.List(ctx)
	if err != nil {
		return nil, ToStatus(err)
	}

	media := make([]*timelinev1.Media, len(records))
	for i, r := range records {
		media[i] = ToProtoMedia(r)
	}
	return &timelinev1.ListMediaResponse{Media: media}, nil
}

// RemoveMedia deletes a catalog record and its stored file
func (s *TimelineService) RemoveMedia(ctx context.Context, req *timelinev1.RemoveMediaRequest) (*timelinev1.Empty, error) {
	id, err := uuid.Parse(req.MediaID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid media ID")
	}
	if s.catalog == nil {
		return nil, status.Error(codes.NotFound, "media not found")
	}
	if err := s.catalog.Remove(ctx, id); err != nil {
		return nil, ToStatus(err)
	}
	return &timelinev1.Empty{}, nil
}

// WatchTimeline streams a snapshot now and after every change. Snapshots
// are coalesced, so a slow reader only sees the latest state.
func (s *TimelineService) WatchTimeline(req *timelinev1.WatchTimelineRequest, stream timelinev1.TimelineService_WatchTimelineServer) error {
	ctx := stream.Context()
	updates, err := s.editor.Watch(ctx)
	if err != nil {
		return ToStatus(err)
	}

	for snap := range updates {
		if err := stream.Send(ToProtoTimeline(snap, s.editor.SnapIndicator())); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return status.FromContextError(err).Err()
	}
	return nil
}
