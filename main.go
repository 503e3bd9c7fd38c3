package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"chat_web/internal/api"
	"chat_web/internal/middleware"
	"chat_web/internal/models"
	"chat_web/internal/repository"
	"chat_web/internal/service"
	"chat_web/internal/storage"
	"chat_web/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.Message{}); err != nil {
		logger.Error("failed to auto migrate database", "error", err)
		os.Exit(1)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, cfg.Chat.HistoryLimit, logger)

	// 設置 Gin 路由
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	api.SetupRoutes(r, services, logger)

	// 啟動伺服器
	logger.Info("server starting", "address", cfg.Server.Address)
	if err := r.Run(cfg.Server.Address); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
