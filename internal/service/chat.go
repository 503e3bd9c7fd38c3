package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"chat_web/internal/models"
	"chat_web/internal/repository"
)

// ChatService 協調 Registry、Hub、Reaction 切換與訊息存取，
// 處理 connect / send-message / add-reaction / disconnect 四種入站事件
type ChatService struct {
	messages     repository.MessageRepository
	registry     *Registry
	hub          *Hub
	validate     *validator.Validate
	logger       *slog.Logger
	historyLimit int

	// 同一則訊息的 find -> toggle -> update 不是原子操作，
	// 以訊息 id 為鍵的互斥鎖避免並發切換互相覆蓋
	togglesMu sync.Mutex
	toggles   map[string]*sync.Mutex
}

func NewChatService(messages repository.MessageRepository, registry *Registry, hub *Hub,
	historyLimit int, logger *slog.Logger) *ChatService {
	return &ChatService{
		messages:     messages,
		registry:     registry,
		hub:          hub,
		validate:     validator.New(),
		logger:       logger,
		historyLimit: historyLimit,
		toggles:      make(map[string]*sync.Mutex),
	}
}

// RecentMessages 取最近的訊息，由舊到新排序
func (s *ChatService) RecentMessages(ctx context.Context) ([]models.Message, error) {
	return s.messages.FindRecent(ctx, s.historyLimit)
}

// Connect 註冊新連線並回放歷史訊息（只傳給這條連線）
func (s *ChatService) Connect(ctx context.Context, session *Session) {
	s.registry.Register(session)
	s.logger.Info("user connected", "session", session.ID, "username", session.Username)

	history, err := s.RecentMessages(ctx)
	if err != nil {
		s.logger.Error("failed to load message history", "session", session.ID, "error", err)
		s.hub.Unicast(session, models.EventError, models.ErrorPayload{Message: "Failed to load messages"})
		return
	}
	s.hub.Unicast(session, models.EventLoadMessages, history)
}

// Disconnect 將連線移出存活集合
func (s *ChatService) Disconnect(session *Session) {
	s.registry.Unregister(session.ID)
	s.logger.Info("user disconnected", "session", session.ID)
}

// SendMessage 持久化新訊息並廣播給所有連線。
// 驗證或儲存失敗時只對發送端回報 error 事件。
func (s *ChatService) SendMessage(ctx context.Context, session *Session, input models.SendMessageInput) {
	if err := s.validate.Struct(input); err != nil {
		s.hub.Unicast(session, models.EventError, models.ErrorPayload{Message: "Failed to send message"})
		return
	}

	message := models.NewMessage(input.Text, input.Sender)
	if err := s.messages.Create(ctx, &message); err != nil {
		s.logger.Error("failed to save message", "session", session.ID, "error", err)
		s.hub.Unicast(session, models.EventError, models.ErrorPayload{Message: "Failed to send message"})
		return
	}

	s.hub.Publish(models.EventNewMessage, message)
}

// ToggleReaction 切換一則訊息上的 reaction 並廣播結果。
// 與 send-message 不同，這條路徑上的任何失敗都只記 log、不回報客戶端，
// 避免單一使用者的失敗切換干擾共享的廣播流。
func (s *ChatService) ToggleReaction(ctx context.Context, input models.ToggleReactionInput) {
	if err := s.validate.Struct(input); err != nil {
		s.logger.Warn("invalid reaction toggle", "error", err)
		return
	}

	unlock := s.lockMessage(input.MessageID)
	defer unlock()

	message, err := s.messages.FindByID(ctx, input.MessageID)
	if errors.Is(err, repository.ErrMessageNotFound) {
		s.logger.Warn("reaction toggle for unknown message", "messageId", input.MessageID)
		return
	}
	if err != nil {
		s.logger.Error("failed to load message for reaction", "messageId", input.MessageID, "error", err)
		return
	}

	next := ApplyToggle(message.Reactions, input.Emoji, input.Username)
	if err := s.messages.UpdateReactions(ctx, message.ID, next); err != nil {
		s.logger.Error("failed to save reactions", "messageId", message.ID, "error", err)
		return
	}

	s.hub.Publish(models.EventReactionUpdated, models.ReactionUpdate{
		MessageID: message.ID,
		Reactions: next,
	})
}

// lockMessage 取得指定訊息 id 的互斥鎖，回傳對應的解鎖函式
func (s *ChatService) lockMessage(id string) func() {
	s.togglesMu.Lock()
	mu, ok := s.toggles[id]
	if !ok {
		mu = &sync.Mutex{}
		s.toggles[id] = mu
	}
	s.togglesMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
