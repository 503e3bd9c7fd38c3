package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chat_web/internal/models"
	"chat_web/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
)

// 定義 WebSocket 升級器
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	chat   *service.ChatService
	logger *slog.Logger
}

func NewWebSocketHandler(chat *service.ChatService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		chat:   chat,
		logger: logger,
	}
}

// HandleWebSocket 將 HTTP 連接升級為 WebSocket，建立 Session 並啟動讀寫循環
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	session := service.NewSession(conn, c.Query("username"))
	ctx := c.Request.Context()

	h.chat.Connect(ctx, session)

	// 連接結束時清理資源：先移出 Registry，再關閉連線與出站通道
	defer func() {
		h.chat.Disconnect(session)
		conn.Close()
		session.CloseOutbound()
	}()

	go h.writePump(session, conn)
	h.readPump(ctx, session, conn)
}

// readPump 持續讀取客戶端送入的事件並分派給 ChatService
func (h *WebSocketHandler) readPump(ctx context.Context, session *service.Session, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket unexpected close", "session", session.ID, "error", err)
			}
			return
		}

		var frame models.InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.logger.Warn("malformed frame", "session", session.ID, "error", err)
			continue
		}

		h.dispatch(ctx, session, frame)
	}
}

// dispatch 按事件名稱解碼 payload 並呼叫對應的處理
func (h *WebSocketHandler) dispatch(ctx context.Context, session *service.Session, frame models.InboundFrame) {
	switch frame.Event {
	case models.EventSendMessage:
		var input models.SendMessageInput
		if err := json.Unmarshal(frame.Data, &input); err != nil {
			h.logger.Warn("malformed send-message payload", "session", session.ID, "error", err)
			return
		}
		h.chat.SendMessage(ctx, session, input)

	case models.EventAddReaction:
		var input models.ToggleReactionInput
		if err := json.Unmarshal(frame.Data, &input); err != nil {
			h.logger.Warn("malformed add-reaction payload", "session", session.ID, "error", err)
			return
		}
		h.chat.ToggleReaction(ctx, input)

	default:
		h.logger.Warn("unknown event", "session", session.ID, "event", frame.Event)
	}
}

// writePump 消費 Session 的出站通道並寫入連線，定時發送心跳
func (h *WebSocketHandler) writePump(session *service.Session, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-session.Outbound():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(env); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
