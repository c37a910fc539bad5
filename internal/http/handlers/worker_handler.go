package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// WorkerHandler отвечает за анкеты исполнителей.
type WorkerHandler struct {
	workers *service.WorkerService
}

// NewWorkerHandler создаёт экземпляр.
func NewWorkerHandler(workers *service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workers: workers}
}

type upsertWorkerRequest struct {
	DisplayName   string   `json:"displayName" binding:"required"`
	Bio           string   `json:"bio"`
	Categories    []string `json:"categories" binding:"required"`
	ServiceRadius float64  `json:"serviceRadius" binding:"required"`
}

// UpsertMe обрабатывает PUT /api/workers/me.
func (h *WorkerHandler) UpsertMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req upsertWorkerRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.workers.Upsert(c.Request.Context(), service.UpsertWorkerInput{
		UserID:        userID,
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		Categories:    req.Categories,
		ServiceRadius: req.ServiceRadius,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMe обрабатывает GET /api/workers/me.
func (h *WorkerHandler) GetMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	profile, err := h.workers.Get(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Get обрабатывает GET /api/workers/:id.
func (h *WorkerHandler) Get(c *gin.Context) {
	profile, err := h.workers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
