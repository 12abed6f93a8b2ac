package timelinev1

import (
	"context"

	"google.golang.org/grpc"
)

// TimelineServiceClient is the client API for TimelineService
type TimelineServiceClient interface {
	AddClip(ctx context.Context, in *AddClipRequest, opts ...grpc.CallOption) (*Clip, error)
	RemoveClip(ctx context.Context, in *RemoveClipRequest, opts ...grpc.CallOption) (*Timeline, error)
	TrimClip(ctx context.Context, in *TrimClipRequest, opts ...grpc.CallOption) (*Clip, error)
	MoveClip(ctx context.Context, in *MoveClipRequest, opts ...grpc.CallOption) (*MoveClipResponse, error)
	SetCurrentTime(ctx context.Context, in *SetCurrentTimeRequest, opts ...grpc.CallOption) (*PlayheadResponse, error)
	SetPlaying(ctx context.Context, in *SetPlayingRequest, opts ...grpc.CallOption) (*SetPlayingResponse, error)
	Seek(ctx context.Context, in *SeekRequest, opts ...grpc.CallOption) (*PlayheadResponse, error)
	Clear(ctx context.Context, in *ClearRequest, opts ...grpc.CallOption) (*Timeline, error)
	GetTimeline(ctx context.Context, in *GetTimelineRequest, opts ...grpc.CallOption) (*Timeline, error)
	GetPreview(ctx context.Context, in *GetPreviewRequest, opts ...grpc.CallOption) (*Preview, error)
	GetRuler(ctx context.Context, in *GetRulerRequest, opts ...grpc.CallOption) (*GetRulerResponse, error)
	ListMedia(ctx context.Context, in *ListMediaRequest, opts ...grpc.CallOption) (*ListMediaResponse, error)
	RemoveMedia(ctx context.Context, in *RemoveMediaRequest, opts ...grpc.CallOption) (*Empty, error)
	WatchTimeline(ctx context.Context, in *WatchTimelineRequest, opts ...grpc.CallOption) (TimelineService_WatchTimelineClient, error)
}

type timelineServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTimelineServiceClient returns a client that always uses the json content-subtype
func NewTimelineServiceClient(cc grpc.ClientConnInterface) TimelineServiceClient {
	return &timelineServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *timelineServiceClient) AddClip(ctx context.Context, in *AddClipRequest, opts ...grpc.CallOption) (*Clip, error) {
	return invoke[Clip](ctx, c.cc, TimelineService_AddClip_FullMethodName, in, opts)
}

func (c *timelineServiceClient) RemoveClip(ctx context.Context, in *RemoveClipRequest, opts ...grpc.CallOption) (*Timeline, error) {
	return invoke[Timeline](ctx, c.cc, TimelineService_RemoveClip_FullMethodName, in, opts)
}

func (c *timelineServiceClient) TrimClip(ctx context.Context, in *TrimClipRequest, opts ...grpc.CallOption) (*Clip, error) {
	return invoke[Clip](ctx, c.cc, TimelineService_TrimClip_FullMethodName, in, opts)
}

func (c *timelineServiceClient) MoveClip(ctx context.Context, in *MoveClipRequest, opts ...grpc.CallOption) (*MoveClipResponse, error) {
	return invoke[MoveClipResponse](ctx, c.cc, TimelineService_MoveClip_FullMethodName, in, opts)
}

func (c *timelineServiceClient) SetCurrentTime(ctx context.Context, in *SetCurrentTimeRequest, opts ...grpc.CallOption) (*PlayheadResponse, error) {
	return invoke[PlayheadResponse](ctx, c.cc, TimelineService_SetCurrentTime_FullMethodName, in, opts)
}

func (c *timelineServiceClient) SetPlaying(ctx context.Context, in *SetPlayingRequest, opts ...grpc.CallOption) (*SetPlayingResponse, error) {
	return invoke[SetPlayingResponse](ctx, c.cc, TimelineService_SetPlaying_FullMethodName, in, opts)
}

func (c *timelineServiceClient) Seek(ctx context.Context, in *SeekRequest, opts ...grpc.CallOption) (*PlayheadResponse, error) {
	return invoke[PlayheadResponse](ctx, c.cc, TimelineService_Seek_FullMethodName, in, opts)
}

func (c *timelineServiceClient) Clear(ctx context.Context, in *ClearRequest, opts ...grpc.CallOption) (*Timeline, error) {
	return invoke[Timeline](ctx, c.cc, TimelineService_Clear_FullMethodName, in, opts)
}

func (c *timelineServiceClient) GetTimeline(ctx context.Context, in *GetTimelineRequest, opts ...grpc.CallOption) (*Timeline, error) {
	return invoke[Timeline](ctx, c.cc, TimelineService_GetTimeline_FullMethodName, in, opts)
}

func (c *timelineServiceClient) GetPreview(ctx context.Context, in *GetPreviewRequest, opts ...grpc.CallOption) (*Preview, error) {
	return invoke[Preview](ctx, c.cc, TimelineService_GetPreview_FullMethodName, in, opts)
}

func (c *timelineServiceClient) GetRuler(ctx context.Context, in *GetRulerRequest, opts ...grpc.CallOption) (*GetRulerResponse, error) {
	return invoke[GetRulerResponse](ctx, c.cc, TimelineService_GetRuler_FullMethodName, in, opts)
}

func (c *timelineServiceClient) ListMedia(ctx context.Context, in *ListMediaRequest, opts ...grpc.CallOption) (*ListMediaResponse, error) {
	return invoke[ListMediaResponse](ctx, c.cc, TimelineService_ListMedia_FullMethodName, in, opts)
}

func (c *timelineServiceClient) RemoveMedia(ctx context.Context, in *RemoveMediaRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, TimelineService_RemoveMedia_FullMethodName, in, opts)
}

// TimelineService_WatchTimelineClient is the client side of the WatchTimeline stream
type TimelineService_WatchTimelineClient interface {
	Recv() (*Timeline, error)
	grpc.ClientStream
}

type timelineServiceWatchTimelineClient struct {
	grpc.ClientStream
}

func (x *timelineServiceWatchTimelineClient) Recv() (*Timeline, error) {
	m := new(Timeline)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *timelineServiceClient) WatchTimeline(ctx context.Context, in *WatchTimelineRequest, opts ...grpc.CallOption) (TimelineService_WatchTimelineClient, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &TimelineService_ServiceDesc.Streams[0], TimelineService_WatchTimeline_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &timelineServiceWatchTimelineClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
