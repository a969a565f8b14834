package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/featurevote/backend/internal/live"
	"github.com/gorilla/websocket"
)

const (
	liveWriteTimeout = 10 * time.Second
	livePingInterval = 30 * time.Second
	livePongWait     = 60 * time.Second
)

// LiveHandler はボード更新の WebSocket 配信ハンドラ
type LiveHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewLiveHandler は LiveHandler を生成する。checkOrigin が nil の場合は
// 同一オリジンのみ許可する（gorilla のデフォルト）
func NewLiveHandler(hub *live.Hub, checkOrigin func(r *http.Request) bool) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Stream は GET /api/apps/{appID}/features/live を処理する。
// 接続中のクライアントへ投票・作成・ステータス変更イベントを JSON で配信する
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	appID := r.PathValue("appID")
	if appID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "app_id_required"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		slog.Warn("websocket upgrade failed", "error", err, "app_id", appID)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(appID)
	defer cancel()

	// Reader: discard client messages, detect close
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(livePongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err, "app_id", appID)
				}
				return
			}
		}
	}()

	ping := time.NewTicker(livePingInterval)
	defer ping.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
