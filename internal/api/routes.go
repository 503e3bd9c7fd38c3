package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chat_web/internal/api/handlers"
	"chat_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, logger *slog.Logger) {
	// 允許所有來源的跨域請求
	r.Use(cors.Default())

	// 初始化 handlers
	messageHandler := handlers.NewMessageHandler(services.Chat)
	wsHandler := handlers.NewWebSocketHandler(services.Chat, logger)

	// API 路由群組
	api := r.Group("/api")
	{
		api.GET("/messages", messageHandler.ListMessages)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// WebSocket 連接點
	r.GET("/ws", wsHandler.HandleWebSocket)

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})
}
