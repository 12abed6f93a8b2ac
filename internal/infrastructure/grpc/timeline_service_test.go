package grpc_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	"github.com/narwhalmedia/splice/internal/application/editor"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	grpcsvc "github.com/narwhalmedia/splice/internal/infrastructure/grpc"
	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

type memoryCatalog struct {
	mu      sync.Mutex
	records map[uuid.UUID]*catalog.MediaRecord
	order   []uuid.UUID
}

func newMemoryCatalog(records ...*catalog.MediaRecord) *memoryCatalog {
	c := &memoryCatalog{records: make(map[uuid.UUID]*catalog.MediaRecord)}
	for _, r := range records {
		c.records[r.ID] = r
		c.order = append(c.order, r.ID)
	}
	return c
}

func (c *memoryCatalog) Get(ctx context.Context, id uuid.UUID) (*catalog.MediaRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.records[id]; ok {
		return r, nil
	}
	return nil, apperrors.NotFound("media not found")
}

func (c *memoryCatalog) List(ctx context.Context) ([]*catalog.MediaRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*catalog.MediaRecord, 0, len(c.order))
	for _, id := range c.order {
		if r, ok := c.records[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *memoryCatalog) Remove(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[id]; !ok {
		return apperrors.NotFound("media not found")
	}
	delete(c.records, id)
	return nil
}

type TimelineServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	video   *catalog.MediaRecord
	still   *catalog.MediaRecord
	session *editor.Session
	server  *grpcsvc.Server
	conn    *grpc.ClientConn
	client  timelinev1.TimelineServiceClient
}

func (s *TimelineServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	logger := zaptest.NewLogger(s.T())

	s.video = catalog.NewMediaRecord("intro.mp4", "video/mp4", 1024, 10, "media/intro.mp4", "file:///intro.mp4")
	s.still = catalog.NewMediaRecord("logo.png", "image/png", 512, 5, "media/logo.png", "file:///logo.png")
	media := newMemoryCatalog(s.video, s.still)

	s.session = editor.NewSession(media, nil, nil, editor.Config{PixelsPerSecond: 100, TickInterval: time.Hour}, logger)
	s.server = grpcsvc.NewServer(grpcsvc.NewTimelineService(s.session, media, logger), logger)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.server.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = timelinev1.NewTimelineServiceClient(conn)
}

func (s *TimelineServiceTestSuite) TearDownTest() {
	s.conn.Close()
	s.server.Stop()
	s.session.Close()
}

func TestTimelineServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimelineServiceTestSuite))
}

func (s *TimelineServiceTestSuite) addVideo() *timelinev1.Clip {
	clip, err := s.client.AddClip(s.ctx, &timelinev1.AddClipRequest{MediaID: s.video.ID.String()})
	s.Require().NoError(err)
	return clip
}

func (s *TimelineServiceTestSuite) TestAddClip() {
	// Act
	first := s.addVideo()
	second := s.addVideo()

	// Assert
	s.Equal(0.0, first.StartTime)
	s.Equal(10.0, second.StartTime)
	s.Equal(1000.0, second.PixelStart)
	s.Equal(1000.0, second.PixelWidth)
	s.Equal(s.video.ID.String(), second.MediaID)

	tl, err := s.client.GetTimeline(s.ctx, &timelinev1.GetTimelineRequest{})
	s.Require().NoError(err)
	s.Len(tl.Clips, 2)
	s.Equal(20.0, tl.TotalDuration)
}

func (s *TimelineServiceTestSuite) TestAddClip_Errors() {
	_, err := s.client.AddClip(s.ctx, &timelinev1.AddClipRequest{MediaID: "not-a-uuid"})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.client.AddClip(s.ctx, &timelinev1.AddClipRequest{MediaID: uuid.NewString()})
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *TimelineServiceTestSuite) TestRemoveClip() {
	a := s.addVideo()
	s.addVideo()

	tl, err := s.client.RemoveClip(s.ctx, &timelinev1.RemoveClipRequest{ClipID: a.ID})

	s.Require().NoError(err)
	s.Len(tl.Clips, 1)
	s.Equal(20.0, tl.TotalDuration)

	_, err = s.client.RemoveClip(s.ctx, &timelinev1.RemoveClipRequest{ClipID: 999})
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *TimelineServiceTestSuite) TestTrimClip_Text() {
	clip := s.addVideo()

	trimmed, err := s.client.TrimClip(s.ctx, &timelinev1.TrimClipRequest{ClipID: clip.ID, Start: "0:02.0", End: "0:07.5"})

	s.Require().NoError(err)
	s.Equal(2.0, trimmed.TrimStart)
	s.Equal(7.5, trimmed.TrimEnd)
	s.Equal(2.0, trimmed.StartTime)
	s.Equal(5.5, trimmed.TrimmedDuration)
}

func (s *TimelineServiceTestSuite) TestTrimClip_Seconds() {
	clip := s.addVideo()
	start, end := 1.0, 4.0

	trimmed, err := s.client.TrimClip(s.ctx, &timelinev1.TrimClipRequest{ClipID: clip.ID, StartSeconds: &start, EndSeconds: &end})

	s.Require().NoError(err)
	s.Equal(3.0, trimmed.TrimmedDuration)
}

func (s *TimelineServiceTestSuite) TestTrimClip_FieldErrors() {
	clip := s.addVideo()

	_, err := s.client.TrimClip(s.ctx, &timelinev1.TrimClipRequest{ClipID: clip.ID, Start: "abc", End: "0:20.0"})

	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	fields := grpcsvc.FieldViolations(st)
	s.Equal("Invalid format (use M:SS.S)", fields["trim_start"])
	s.Equal("End time cannot exceed clip duration", fields["trim_end"])
}

func (s *TimelineServiceTestSuite) TestTrimClip_Still() {
	_, err := s.client.AddClip(s.ctx, &timelinev1.AddClipRequest{MediaID: s.still.ID.String()})
	s.Require().NoError(err)

	_, err = s.client.TrimClip(s.ctx, &timelinev1.TrimClipRequest{ClipID: 1, Start: "0:01.0", End: "0:02.0"})

	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *TimelineServiceTestSuite) TestMoveClip_SnapAndReject() {
	a := s.addVideo()
	b := s.addVideo()

	// move b away, then drag it back within tolerance of a's end
	_, err := s.client.MoveClip(s.ctx, &timelinev1.MoveClipRequest{ClipID: b.ID, ProposedStart: 30})
	s.Require().NoError(err)
	moved, err := s.client.MoveClip(s.ctx, &timelinev1.MoveClipRequest{ClipID: b.ID, ProposedStart: 10.05})
	s.Require().NoError(err)
	s.True(moved.Committed)
	s.Equal(10.0, moved.Clip.StartTime)
	s.Equal("start_to_end", moved.SnapKind)
	s.Equal(a.ID, moved.SnapTargetClipID)
	s.Require().NotNil(moved.SnapIndicatorPx)
	s.Equal(1000.0, *moved.SnapIndicatorPx)

	rejected, err := s.client.MoveClip(s.ctx, &timelinev1.MoveClipRequest{ClipID: b.ID, ProposedStart: 5})
	s.Require().NoError(err)
	s.False(rejected.Committed)
	s.Equal(10.0, rejected.Clip.StartTime)
	s.Equal(40.0, rejected.Timeline.TotalDuration)
}

func (s *TimelineServiceTestSuite) TestSeekAndPlayhead() {
	s.addVideo()

	at, err := s.client.SetCurrentTime(s.ctx, &timelinev1.SetCurrentTimeRequest{Seconds: 99})
	s.Require().NoError(err)
	s.Equal(10.0, at.CurrentTime)

	at, err = s.client.Seek(s.ctx, &timelinev1.SeekRequest{Kind: "skip_backward"})
	s.Require().NoError(err)
	s.Equal(0.0, at.CurrentTime)

	at, err = s.client.Seek(s.ctx, &timelinev1.SeekRequest{Kind: "pixel", Value: 250})
	s.Require().NoError(err)
	s.Equal(2.5, at.CurrentTime)

	_, err = s.client.Seek(s.ctx, &timelinev1.SeekRequest{Kind: "sideways"})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *TimelineServiceTestSuite) TestSetPlaying() {
	resp, err := s.client.SetPlaying(s.ctx, &timelinev1.SetPlayingRequest{Playing: true})
	s.Require().NoError(err)
	s.False(resp.IsPlaying, "empty timeline never plays")

	s.addVideo()
	resp, err = s.client.SetPlaying(s.ctx, &timelinev1.SetPlayingRequest{Playing: true})
	s.Require().NoError(err)
	s.True(resp.IsPlaying)

	resp, err = s.client.SetPlaying(s.ctx, &timelinev1.SetPlayingRequest{Playing: false})
	s.Require().NoError(err)
	s.False(resp.IsPlaying)
}

func (s *TimelineServiceTestSuite) TestGetPreview() {
	s.addVideo()
	_, err := s.client.AddClip(s.ctx, &timelinev1.AddClipRequest{MediaID: s.still.ID.String()})
	s.Require().NoError(err)

	_, err = s.client.SetCurrentTime(s.ctx, &timelinev1.SetCurrentTimeRequest{Seconds: 4})
	s.Require().NoError(err)
	preview, err := s.client.GetPreview(s.ctx, &timelinev1.GetPreviewRequest{})
	s.Require().NoError(err)
	s.True(preview.Active)
	s.True(preview.Playable)
	s.Equal(4.0, preview.MediaOffset)
	s.Equal("file:///intro.mp4", preview.SourceURL)

	_, err = s.client.SetCurrentTime(s.ctx, &timelinev1.SetCurrentTimeRequest{Seconds: 12})
	s.Require().NoError(err)
	preview, err = s.client.GetPreview(s.ctx, &timelinev1.GetPreviewRequest{})
	s.Require().NoError(err)
	s.True(preview.Active)
	s.False(preview.Playable)
	s.Equal("image", preview.Clip.Type)
}

func (s *TimelineServiceTestSuite) TestGetPreview_Gap() {
	preview, err := s.client.GetPreview(s.ctx, &timelinev1.GetPreviewRequest{})

	s.Require().NoError(err)
	s.False(preview.Active)
	s.Nil(preview.Clip)
}

func (s *TimelineServiceTestSuite) TestClearAndRuler() {
	s.addVideo()

	tl, err := s.client.Clear(s.ctx, &timelinev1.ClearRequest{})
	s.Require().NoError(err)
	s.Empty(tl.Clips)
	s.Equal(0.0, tl.TotalDuration)

	ruler, err := s.client.GetRuler(s.ctx, &timelinev1.GetRulerRequest{})
	s.Require().NoError(err)
	s.Require().NotEmpty(ruler.Ticks)
	s.Equal("00:00", ruler.Ticks[0].Label)
}

func (s *TimelineServiceTestSuite) TestMedia() {
	list, err := s.client.ListMedia(s.ctx, &timelinev1.ListMediaRequest{})
	s.Require().NoError(err)
	s.Require().Len(list.Media, 2)
	s.Equal("intro.mp4", list.Media[0].Name)
	s.Equal("00:10", list.Media[0].Duration)

	_, err = s.client.RemoveMedia(s.ctx, &timelinev1.RemoveMediaRequest{MediaID: s.still.ID.String()})
	s.Require().NoError(err)
	_, err = s.client.RemoveMedia(s.ctx, &timelinev1.RemoveMediaRequest{MediaID: s.still.ID.String()})
	s.Equal(codes.NotFound, status.Code(err))

	list, err = s.client.ListMedia(s.ctx, &timelinev1.ListMediaRequest{})
	s.Require().NoError(err)
	s.Len(list.Media, 1)
}

func (s *TimelineServiceTestSuite) TestWatchTimeline() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	stream, err := s.client.WatchTimeline(ctx, &timelinev1.WatchTimelineRequest{})
	s.Require().NoError(err)

	initial, err := stream.Recv()
	s.Require().NoError(err)
	s.Empty(initial.Clips)

	s.addVideo()

	s.Eventually(func() bool {
		next, err := stream.Recv()
		return err == nil && len(next.Clips) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *TimelineServiceTestSuite) TestHealth() {
	resp, err := grpc_health_v1.NewHealthClient(s.conn).Check(s.ctx, &grpc_health_v1.HealthCheckRequest{Service: timelinev1.ServiceName})

	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestToStatus(t *testing.T) {
	require.NoError(t, grpcsvc.ToStatus(nil))
	require.Equal(t, codes.FailedPrecondition, status.Code(grpcsvc.ToStatus(apperrors.Conflict("busy"))))
	require.Equal(t, codes.Unavailable, status.Code(grpcsvc.ToStatus(apperrors.New(apperrors.ErrorTypeUnavailable, "closed"))))
	require.Equal(t, codes.Canceled, status.Code(grpcsvc.ToStatus(context.Canceled)))
	require.Equal(t, codes.Internal, status.Code(grpcsvc.ToStatus(assertErr{})))
}

type assertErr struct{}

func (assertErr) Error() string { return "plain" }
