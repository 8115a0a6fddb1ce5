package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"mckart-backend/config"
	"mckart-backend/controller"
	"mckart-backend/dao"
	"mckart-backend/pkg/gemini"
	"mckart-backend/usecase"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.LogMode == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 1. Storage. MySQL when a host is configured, otherwise the
	// in-memory store (local development).
	var (
		itemStore dao.ItemStore
		msgStore  dao.MessageStore
		userStore dao.UserStore
	)
	if cfg.MySQLHost != "" {
		dsn := fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=Local",
			cfg.MySQLUser, cfg.MySQLPwd, cfg.MySQLHost, cfg.MySQLDatabase)
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		logger.Info("connected to MySQL", zap.String("database", cfg.MySQLDatabase))

		itemStore = dao.NewItemRepository(db)
		msgStore = dao.NewMessageRepository(db)
		userStore = dao.NewUserRepository(db)
	} else {
		logger.Warn("MYSQL_HOST not set, using in-memory store")
		mem := dao.NewMemoryStore()
		itemStore = mem
		msgStore = mem
		userStore = mem.Users()
	}

	// 2. Assistant provider. Missing key degrades the endpoint to
	// configuration errors rather than blocking startup.
	var provider usecase.Provider
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("failed to init Gemini client, assistant disabled", zap.Error(err))
		} else {
			provider = client
			logger.Info("assistant enabled", zap.String("model", cfg.GeminiModel))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, assistant disabled")
	}

	// 3. Dependency injection
	itemUsecase := usecase.NewItemUsecase(itemStore, logger)
	userUsecase := usecase.NewUserUsecase(userStore)
	chatUsecase := usecase.NewChatUsecase(itemStore, msgStore, logger)
	assistantUsecase := usecase.NewAssistantUsecase(provider, logger)

	itemController := controller.NewItemController(itemUsecase, logger)
	userController := controller.NewUserController(userUsecase, logger)
	chatController := controller.NewChatController(chatUsecase, logger)
	assistantController := controller.NewAssistantController(assistantUsecase, logger)

	// 4. Routing
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/items", itemController.HandleItems)
	mux.HandleFunc("/items/", itemController.HandleItemDetail)
	mux.HandleFunc("/register", userController.Register)
	mux.HandleFunc("/conversations/send", chatController.HandleSend)
	mux.HandleFunc("/conversations/seller-summary/", chatController.HandleSellerSummary)
	mux.HandleFunc("/conversations/buyer-summary/", chatController.HandleBuyerSummary)
	mux.HandleFunc("/conversations/", chatController.HandleConversation)
	mux.HandleFunc("/assistant/turn", assistantController.HandleTurn)

	// 5. Start server
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, controller.WithCORS(mux)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
