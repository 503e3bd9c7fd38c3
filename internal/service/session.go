package service

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat_web/internal/models"
)

// sendBufferSize 是每條連線的出站事件緩衝大小
const sendBufferSize = 256

// Session 代表一條存活的客戶端連線及其臨時身份
type Session struct {
	ID       string          // 連線識別碼
	Username string          // 連線時選擇的顯示名稱，可為空
	conn     *websocket.Conn // 底層 WebSocket 連線
	send     chan models.Envelope
}

// NewSession 為一條新連線建立 Session
func NewSession(conn *websocket.Conn, username string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Username: username,
		conn:     conn,
		send:     make(chan models.Envelope, sendBufferSize),
	}
}

// Outbound 回傳供 write pump 消費的出站事件通道
func (s *Session) Outbound() <-chan models.Envelope {
	return s.send
}

// enqueue 非阻塞寫入出站通道；緩衝已滿時回傳 false
func (s *Session) enqueue(env models.Envelope) bool {
	select {
	case s.send <- env:
		return true
	default:
		return false
	}
}

// Close 關閉底層連線
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// CloseOutbound 關閉出站通道，讓 write pump 結束。
// 只能在 Session 已從 Registry 移除之後呼叫，否則 Hub 可能寫入已關閉的通道。
func (s *Session) CloseOutbound() {
	close(s.send)
}
