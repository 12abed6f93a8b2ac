// Package gateway serves the REST and websocket surface in front of the
// gRPC timeline service.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	catalogapp "github.com/narwhalmedia/splice/internal/application/catalog"
	grpcsvc "github.com/narwhalmedia/splice/internal/infrastructure/grpc"
)

// Uploader starts catalog uploads
type Uploader interface {
	Start(ctx context.Context, req catalogapp.UploadRequest) *catalogapp.UploadJob
}

// Options tunes the gateway
type Options struct {
	MaxUploadBytes int64
	TempDir        string
	WriteTimeout   time.Duration
}

// Gateway translates HTTP calls into TimelineService calls
type Gateway struct {
	client   timelinev1.TimelineServiceClient
	uploads  Uploader
	opts     Options
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a gateway. uploads may be nil, which disables POST /v1/media.
func New(client timelinev1.TimelineServiceClient, uploads Uploader, opts Options, logger *zap.Logger) *Gateway {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	return &Gateway{
		client:  client,
		uploads: uploads,
		opts:    opts,
		logger:  logger.Named("gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Handler builds the HTTP handler with every route registered
func (g *Gateway) Handler() (http.Handler, error) {
	mux := runtime.NewServeMux()

	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/v1/timeline", g.getTimeline},
		{http.MethodPost, "/v1/timeline/clips", g.addClip},
		{http.MethodDelete, "/v1/timeline/clips/{clip_id}", g.removeClip},
		{http.MethodPost, "/v1/timeline/clips/{clip_id}:trim", g.trimClip},
		{http.MethodPost, "/v1/timeline/clips/{clip_id}:move", g.moveClip},
		{http.MethodPost, "/v1/timeline/playhead", g.seek},
		{http.MethodPost, "/v1/timeline/playback", g.setPlaying},
		{http.MethodPost, "/v1/timeline:clear", g.clear},
		{http.MethodGet, "/v1/timeline/preview", g.getPreview},
		{http.MethodGet, "/v1/timeline/ruler", g.getRuler},
		{http.MethodGet, "/v1/timeline/watch", g.watch},
		{http.MethodGet, "/v1/media", g.listMedia},
		{http.MethodPost, "/v1/media", g.uploadMedia},
		{http.MethodDelete, "/v1/media/{media_id}", g.removeMedia},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return nil, err
		}
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/", mux)
	httpMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return g.logRequests(httpMux), nil
}

func (g *Gateway) getTimeline(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.client.GetTimeline(r.Context(), &timelinev1.GetTimelineRequest{})
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) addClip(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req timelinev1.AddClipRequest
	if !g.decode(w, r, &req) {
		return
	}
	resp, err := g.client.AddClip(r.Context(), &req)
	g.respond(w, http.StatusCreated, resp, err)
}

func (g *Gateway) removeClip(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, ok := g.clipID(w, params)
	if !ok {
		return
	}
	resp, err := g.client.RemoveClip(r.Context(), &timelinev1.RemoveClipRequest{ClipID: id})
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) trimClip(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, ok := g.clipID(w, params)
	if !ok {
		return
	}
	var req timelinev1.TrimClipRequest
	if !g.decode(w, r, &req) {
		return
	}
	req.ClipID = id
	resp, err := g.client.TrimClip(r.Context(), &req)
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) moveClip(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, ok := g.clipID(w, params)
	if !ok {
		return
	}
	var req timelinev1.MoveClipRequest
	if !g.decode(w, r, &req) {
		return
	}
	req.ClipID = id
	resp, err := g.client.MoveClip(r.Context(), &req)
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) seek(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req timelinev1.SeekRequest
	if !g.decode(w, r, &req) {
		return
	}
	if req.Kind == "" {
		req.Kind = "time"
	}
	resp, err := g.client.Seek(r.Context(), &req)
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) setPlaying(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req timelinev1.SetPlayingRequest
	if !g.decode(w, r, &req) {
		return
	}
	resp, err := g.client.SetPlaying(r.Context(), &req)
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) clear(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.client.Clear(r.Context(), &timelinev1.ClearRequest{})
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) getPreview(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.client.GetPreview(r.Context(), &timelinev1.GetPreviewRequest{})
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) getRuler(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.client.GetRuler(r.Context(), &timelinev1.GetRulerRequest{})
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) listMedia(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	resp, err := g.client.ListMedia(r.Context(), &timelinev1.ListMediaRequest{})
	g.respond(w, http.StatusOK, resp, err)
}

func (g *Gateway) removeMedia(w http.ResponseWriter, r *http.Request, params map[string]string) {
	_, err := g.client.RemoveMedia(r.Context(), &timelinev1.RemoveMediaRequest{MediaID: params["media_id"]})
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *Gateway) clipID(w http.ResponseWriter, params map[string]string) (uint64, bool) {
	id, err := strconv.ParseUint(params["clip_id"], 10, 64)
	if err != nil {
		g.writeError(w, status.Error(codes.InvalidArgument, "invalid clip ID"))
		return 0, false
	}
	return id, true
}

func (g *Gateway) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		g.writeError(w, status.Error(codes.InvalidArgument, "invalid request body: "+err.Error()))
		return false
	}
	return true
}

// errorBody is the JSON shape of every failed response
type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (g *Gateway) respond(w http.ResponseWriter, code int, v interface{}, err error) {
	if err != nil {
		g.writeError(w, err)
		return
	}
	writeJSON(w, code, v)
}

func (g *Gateway) writeError(w http.ResponseWriter, err error) {
	st := status.Convert(grpcsvc.ToStatus(err))
	httpStatus := runtime.HTTPStatusFromCode(st.Code())
	if httpStatus >= http.StatusInternalServerError {
		g.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, httpStatus, errorBody{
		Error:  st.Message(),
		Code:   st.Code().String(),
		Fields: grpcsvc.FieldViolations(st),
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
