package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// OfferHandler отвечает за предложения исполнителей.
type OfferHandler struct {
	offers *service.OfferService
	jobs   *service.JobService
}

// NewOfferHandler создаёт экземпляр.
func NewOfferHandler(offers *service.OfferService, jobs *service.JobService) *OfferHandler {
	return &OfferHandler{offers: offers, jobs: jobs}
}

type createOfferRequest struct {
	Price   float64 `json:"price" binding:"required"`
	ETAText string  `json:"etaText" binding:"required"`
	Message string  `json:"message"`
}

// Create обрабатывает POST /api/jobs/:id/offers.
func (h *OfferHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req createOfferRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	offer, err := h.offers.Create(c.Request.Context(), service.CreateOfferInput{
		JobID:    c.Param("id"),
		WorkerID: userID,
		Price:    req.Price,
		ETAText:  req.ETAText,
		Message:  req.Message,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// ListForJob обрабатывает GET /api/jobs/:id/offers. Список виден только
// заказчику заявки.
func (h *OfferHandler) ListForJob(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if job.CustomerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "недостаточно прав"})
		return
	}

	offers, err := h.offers.ForJob(c.Request.Context(), job.ID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// ListMy обрабатывает GET /api/offers/my.
func (h *OfferHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	offers, err := h.offers.ByWorker(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// Accept обрабатывает POST /api/offers/:id/accept. Ответ содержит
// принятое предложение и чат пары.
func (h *OfferHandler) Accept(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	result, err := h.offers.Accept(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offer": result.Offer,
		"chat":  result.Chat,
	})
}

// Reject обрабатывает POST /api/offers/:id/reject.
func (h *OfferHandler) Reject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	offer, err := h.offers.Reject(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

// Withdraw обрабатывает POST /api/offers/:id/withdraw.
func (h *OfferHandler) Withdraw(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	offer, err := h.offers.Withdraw(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}
