package models

import "encoding/json"

// 客戶端與伺服器之間的具名事件
const (
	// 客戶端 -> 伺服器
	EventSendMessage = "send-message"
	EventAddReaction = "add-reaction"

	// 伺服器 -> 客戶端
	EventLoadMessages    = "load-messages"
	EventNewMessage      = "new-message"
	EventReactionUpdated = "reaction-updated"
	EventError           = "error"
)

// Envelope 是伺服器發出的事件外框
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// InboundFrame 是客戶端送入的事件外框，payload 延遲解碼
type InboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// SendMessageInput 是 send-message 事件的 payload
type SendMessageInput struct {
	Text   string `json:"text" validate:"required"`
	Sender string `json:"sender" validate:"required"`
}

// ToggleReactionInput 是 add-reaction 事件的 payload
type ToggleReactionInput struct {
	MessageID string `json:"messageId" validate:"required"`
	Emoji     string `json:"emoji" validate:"required"`
	Username  string `json:"username" validate:"required"`
}

// ReactionUpdate 是 reaction-updated 廣播的 payload
type ReactionUpdate struct {
	MessageID string      `json:"messageId"`
	Reactions ReactionSet `json:"reactions"`
}

// ErrorPayload 是 error 事件的 payload
type ErrorPayload struct {
	Message string `json:"message"`
}
