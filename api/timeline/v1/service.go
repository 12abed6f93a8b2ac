package timelinev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "splice.timeline.v1.TimelineService"

// Full method names
const (
	TimelineService_AddClip_FullMethodName        = "/" + ServiceName + "/AddClip"
	TimelineService_RemoveClip_FullMethodName     = "/" + ServiceName + "/RemoveClip"
	TimelineService_TrimClip_FullMethodName       = "/" + ServiceName + "/TrimClip"
	TimelineService_MoveClip_FullMethodName       = "/" + ServiceName + "/MoveClip"
	TimelineService_SetCurrentTime_FullMethodName = "/" + ServiceName + "/SetCurrentTime"
	TimelineService_SetPlaying_FullMethodName     = "/" + ServiceName + "/SetPlaying"
	TimelineService_Seek_FullMethodName           = "/" + ServiceName + "/Seek"
	TimelineService_Clear_FullMethodName          = "/" + ServiceName + "/Clear"
	TimelineService_GetTimeline_FullMethodName    = "/" + ServiceName + "/GetTimeline"
	TimelineService_GetPreview_FullMethodName     = "/" + ServiceName + "/GetPreview"
	TimelineService_GetRuler_FullMethodName       = "/" + ServiceName + "/GetRuler"
	TimelineService_ListMedia_FullMethodName      = "/" + ServiceName + "/ListMedia"
	TimelineService_RemoveMedia_FullMethodName    = "/" + ServiceName + "/RemoveMedia"
	TimelineService_WatchTimeline_FullMethodName  = "/" + ServiceName + "/WatchTimeline"
)

// TimelineServiceServer is the server API for TimelineService
type TimelineServiceServer interface {
	AddClip(context.Context, *AddClipRequest) (*Clip, error)
	RemoveClip(context.Context, *RemoveClipRequest) (*Timeline, error)
	TrimClip(context.Context, *TrimClipRequest) (*Clip, error)
	MoveClip(context.Context, *MoveClipRequest) (*MoveClipResponse, error)
	SetCurrentTime(context.Context, *SetCurrentTimeRequest) (*PlayheadResponse, error)
	SetPlaying(context.Context, *SetPlayingRequest) (*SetPlayingResponse, error)
	Seek(context.Context, *SeekRequest) (*PlayheadResponse, error)
	Clear(context.Context, *ClearRequest) (*Timeline, error)
	GetTimeline(context.Context, *GetTimelineRequest) (*Timeline, error)
	GetPreview(context.Context, *GetPreviewRequest) (*Preview, error)
	GetRuler(context.Context, *GetRulerRequest) (*GetRulerResponse, error)
	ListMedia(context.Context, *ListMediaRequest) (*ListMediaResponse, error)
	RemoveMedia(context.Context, *RemoveMediaRequest) (*Empty, error)
	WatchTimeline(*WatchTimelineRequest, TimelineService_WatchTimelineServer) error
}

// UnimplementedTimelineServiceServer can be embedded to have forward compatible implementations
type UnimplementedTimelineServiceServer struct{}

func (UnimplementedTimelineServiceServer) AddClip(context.Context, *AddClipRequest) (*Clip, error) {
	return nil, status.Error(codes.Unimplemented, "method AddClip not implemented")
}
func (UnimplementedTimelineServiceServer) RemoveClip(context.Context, *RemoveClipRequest) (*Timeline, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveClip not implemented")
}
func (UnimplementedTimelineServiceServer) TrimClip(context.Context, *TrimClipRequest) (*Clip, error) {
	return nil, status.Error(codes.Unimplemented, "method TrimClip not implemented")
}
func (UnimplementedTimelineServiceServer) MoveClip(context.Context, *MoveClipRequest) (*MoveClipResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MoveClip not implemented")
}
func (UnimplementedTimelineServiceServer) SetCurrentTime(context.Context, *SetCurrentTimeRequest) (*PlayheadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetCurrentTime not implemented")
}
func (UnimplementedTimelineServiceServer) SetPlaying(context.Context, *SetPlayingRequest) (*SetPlayingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetPlaying not implemented")
}
func (UnimplementedTimelineServiceServer) Seek(context.Context, *SeekRequest) (*PlayheadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Seek not implemented")
}
func (UnimplementedTimelineServiceServer) Clear(context.Context, *ClearRequest) (*Timeline, error) {
	return nil, status.Error(codes.Unimplemented, "method Clear not implemented")
}
func (UnimplementedTimelineServiceServer) GetTimeline(context.Context, *GetTimelineRequest) (*Timeline, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTimeline not implemented")
}
func (UnimplementedTimelineServiceServer) GetPreview(context.Context, *GetPreviewRequest) (*Preview, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPreview not implemented")
}
func (UnimplementedTimelineServiceServer) GetRuler(context.Context, *GetRulerRequest) (*GetRulerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRuler not implemented")
}
func (UnimplementedTimelineServiceServer) ListMedia(context.Context, *ListMediaRequest) (*ListMediaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMedia not implemented")
}
func (UnimplementedTimelineServiceServer) RemoveMedia(context.Context, *RemoveMediaRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveMedia not implemented")
}
func (UnimplementedTimelineServiceServer) WatchTimeline(*WatchTimelineRequest, TimelineService_WatchTimelineServer) error {
	return status.Error(codes.Unimplemented, "method WatchTimeline not implemented")
}

// RegisterTimelineServiceServer registers srv on s
func RegisterTimelineServiceServer(s grpc.ServiceRegistrar, srv TimelineServiceServer) {
	s.RegisterService(&TimelineService_ServiceDesc, srv)
}

// TimelineService_WatchTimelineServer is the server side of the WatchTimeline stream
type TimelineService_WatchTimelineServer interface {
	Send(*Timeline) error
	grpc.ServerStream
}

type timelineServiceWatchTimelineServer struct {
	grpc.ServerStream
}

func (x *timelineServiceWatchTimelineServer) Send(m *Timeline) error {
	return x.ServerStream.SendMsg(m)
}

func unaryHandler[Req any, Resp any](method string, call func(TimelineServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TimelineServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(TimelineServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _TimelineService_WatchTimeline_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchTimelineRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(TimelineServiceServer).WatchTimeline(m, &timelineServiceWatchTimelineServer{stream})
}

// TimelineService_ServiceDesc is the grpc.ServiceDesc for TimelineService
var TimelineService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TimelineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddClip", Handler: unaryHandler(TimelineService_AddClip_FullMethodName, TimelineServiceServer.AddClip)},
		{MethodName: "RemoveClip", Handler: unaryHandler(TimelineService_RemoveClip_FullMethodName, TimelineServiceServer.RemoveClip)},
		{MethodName: "TrimClip", Handler: unaryHandler(TimelineService_TrimClip_FullMethodName, TimelineServiceServer.TrimClip)},
		{MethodName: "MoveClip", Handler: unaryHandler(TimelineService_MoveClip_FullMethodName, TimelineServiceServer.MoveClip)},
		{MethodName: "SetCurrentTime", Handler: unaryHandler(TimelineService_SetCurrentTime_FullMethodName, TimelineServiceServer.SetCurrentTime)},
		{MethodName: "SetPlaying", Handler: unaryHandler(TimelineService_SetPlaying_FullMethodName, TimelineServiceServer.SetPlaying)},
		{MethodName: "Seek", Handler: unaryHandler(TimelineService_Seek_FullMethodName, TimelineServiceServer.Seek)},
		{MethodName: "Clear", Handler: unaryHandler(TimelineService_Clear_FullMethodName, TimelineServiceServer.Clear)},
		{MethodName: "GetTimeline", Handler: unaryHandler(TimelineService_GetTimeline_FullMethodName, TimelineServiceServer.GetTimeline)},
		{MethodName: "GetPreview", Handler: unaryHandler(TimelineService_GetPreview_FullMethodName, TimelineServiceServer.GetPreview)},
		{MethodName: "GetRuler", Handler: unaryHandler(TimelineService_GetRuler_FullMethodName, TimelineServiceServer.GetRuler)},
		{MethodName: "ListMedia", Handler: unaryHandler(TimelineService_ListMedia_FullMethodName, TimelineServiceServer.ListMedia)},
		{MethodName: "RemoveMedia", Handler: unaryHandler(TimelineService_RemoveMedia_FullMethodName, TimelineServiceServer.RemoveMedia)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchTimeline",
			Handler:       _TimelineService_WatchTimeline_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "splice/timeline/v1/timeline.proto",
}
