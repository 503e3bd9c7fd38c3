package service

import (
	"log/slog"

	"chat_web/internal/repository"
)

type Services struct {
	Chat     *ChatService
	Registry *Registry
	Hub      *Hub
}

func NewServices(repos *repository.Repositories, historyLimit int, logger *slog.Logger) *Services {
	registry := NewRegistry()
	hub := NewHub(registry, logger)
	chatService := NewChatService(repos.Message, registry, hub, historyLimit, logger)

	return &Services{
		Chat:     chatService,
		Registry: registry,
		Hub:      hub,
	}
}
