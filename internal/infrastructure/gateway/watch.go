package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
)

// watch upgrades to a websocket and forwards every timeline snapshot as a
// JSON text frame until either side goes away
func (g *Gateway) watch(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// the read loop only exists to notice the client closing
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	stream, err := g.client.WatchTimeline(ctx, &timelinev1.WatchTimelineRequest{})
	if err != nil {
		g.closeWith(conn, websocket.CloseInternalServerErr, err.Error())
		return
	}

	for {
		snapshot, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				g.closeWith(conn, websocket.CloseNormalClosure, "")
				return
			}
			g.logger.Debug("watch stream ended", zap.Error(err))
			g.closeWith(conn, websocket.CloseGoingAway, "stream ended")
			return
		}

		conn.SetWriteDeadline(time.Now().Add(g.opts.WriteTimeout))
		if err := conn.WriteJSON(snapshot); err != nil {
			g.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (g *Gateway) closeWith(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}
