package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/workova-backend/internal/config"
	httpHandlers "github.com/ignatzorin/workova-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/workova-backend/internal/http/router"
	"github.com/ignatzorin/workova-backend/internal/logger"
	"github.com/ignatzorin/workova-backend/internal/repository"
	"github.com/ignatzorin/workova-backend/internal/service"
	"github.com/ignatzorin/workova-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Открываем локальное хранилище.
	store, err := repository.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("main: ошибка открытия хранилища: %v", err)
	}
	defer safeClose(store)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(store)
	workerService := service.NewWorkerService(store)
	jobService := service.NewJobService(store)
	offerService := service.NewOfferService(store)
	chatService := service.NewChatService(store, hub, cfg.ModerateChatMessages)
	reportService := service.NewReportService(store)
	seedService := service.NewSeedService(store)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService, reportService)
	workerHandler := httpHandlers.NewWorkerHandler(workerService)
	jobHandler := httpHandlers.NewJobHandler(jobService)
	offerHandler := httpHandlers.NewOfferHandler(offerService, jobService)
	chatHandler := httpHandlers.NewChatHandler(chatService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	catalogHandler := httpHandlers.NewCatalogHandler()
	healthHandler := httpHandlers.NewHealthHandler(store, cfg)
	seedHandler := httpHandlers.NewSeedHandler(seedService)
	wsHandler := httpHandlers.NewWSHandler(hub)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authService, authHandler, workerHandler, jobHandler, offerHandler, chatHandler, reportHandler, catalogHandler, healthHandler, seedHandler, wsHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает хранилище.
func safeClose(store *repository.Store) {
	if err := store.Close(); err != nil {
		log.Printf("main: ошибка закрытия хранилища: %v", err)
	}
}
