package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// SeedHandler наполняет хранилище демо-данными. Подключается только в
// development-окружении.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler создаёт экземпляр.
func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed обрабатывает POST /api/seed и GET /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	if err := h.seed.SeedDemoData(c.Request.Context()); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "демо-данные загружены"})
}
