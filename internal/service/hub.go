package service

import (
	"log/slog"
	"sync"

	"chat_web/internal/models"
)

// Hub 將單一事件扇出給所有已註冊的 Session。
// publish 期間持有互斥鎖，保證任兩次 Publish 在每條連線上觀察到的相對順序一致。
type Hub struct {
	registry *Registry
	logger   *slog.Logger
	mu       sync.Mutex
}

func NewHub(registry *Registry, logger *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger,
	}
}

// Publish 將事件送給呼叫當下所有已註冊的 Session。
// 個別 Session 不可達不會讓 Publish 失敗：緩衝已滿的連線直接關閉，
// 由傳輸層的斷線流程負責將其移出 Registry，Hub 本身不動存活集合。
func (h *Hub) Publish(event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	env := models.Envelope{Event: event, Data: payload}
	h.registry.ForEach(func(session *Session) {
		if !session.enqueue(env) {
			h.logger.Warn("session send buffer full, closing connection",
				"session", session.ID, "event", event)
			session.Close()
		}
	})
}

// Unicast 將事件只送給指定的 Session
func (h *Hub) Unicast(session *Session, event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	env := models.Envelope{Event: event, Data: payload}
	if !session.enqueue(env) {
		h.logger.Warn("session send buffer full, closing connection",
			"session", session.ID, "event", event)
		session.Close()
	}
}
