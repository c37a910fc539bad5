package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/config"
	"github.com/ignatzorin/workova-backend/internal/http/handlers"
	"github.com/ignatzorin/workova-backend/internal/http/middleware"
	"github.com/ignatzorin/workova-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authService *service.AuthService,
	authHandler *handlers.AuthHandler,
	workerHandler *handlers.WorkerHandler,
	jobHandler *handlers.JobHandler,
	offerHandler *handlers.OfferHandler,
	chatHandler *handlers.ChatHandler,
	reportHandler *handlers.ReportHandler,
	catalogHandler *handlers.CatalogHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	wsHandler *handlers.WSHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	api := r.Group("/api")

	api.GET("/health", healthHandler.Health)
	api.GET("/version", healthHandler.Version)

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
		api.GET("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Каталог (публичный)
	api.GET("/catalog/categories", catalogHandler.ListCategories)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.SessionMiddleware(authService))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/profile", authHandler.Me)
		protected.PUT("/users/me/role", authHandler.UpdateRole)
		protected.DELETE("/users/me", authHandler.DeleteAccount)
		protected.GET("/users/:id", authHandler.GetUser)
		protected.POST("/users/:id/block", authHandler.Block)
		protected.DELETE("/users/:id/block", authHandler.Unblock)

		protected.GET("/workers/me", workerHandler.GetMe)
		protected.PUT("/workers/me", workerHandler.UpsertMe)
		protected.GET("/workers/:id", workerHandler.Get)

		protected.POST("/jobs", jobHandler.Create)
		protected.GET("/jobs/feed", jobHandler.Feed)
		protected.GET("/jobs/my", jobHandler.ListMy)
		protected.GET("/jobs/:id", jobHandler.Get)
		protected.POST("/jobs/:id/cancel", jobHandler.Cancel)
		protected.POST("/jobs/:id/complete", jobHandler.Complete)
		protected.POST("/jobs/:id/offers", offerHandler.Create)
		protected.GET("/jobs/:id/offers", offerHandler.ListForJob)

		protected.GET("/offers/my", offerHandler.ListMy)
		protected.POST("/offers/:id/accept", offerHandler.Accept)
		protected.POST("/offers/:id/reject", offerHandler.Reject)
		protected.POST("/offers/:id/withdraw", offerHandler.Withdraw)

		protected.GET("/chats/my", chatHandler.ListMy)
		protected.GET("/chats/:id", chatHandler.Get)
		protected.GET("/chats/:id/messages", chatHandler.ListMessages)
		protected.POST("/chats/:id/messages", chatHandler.SendMessage)

		protected.POST("/reports", reportHandler.Create)
		protected.GET("/reports/my", reportHandler.ListMy)

		protected.GET("/ws", wsHandler.Handle)
	}

	return r
}
