package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// JobHandler отвечает за заявки.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler создаёт экземпляр.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type createJobRequest struct {
	CategoryID  string  `json:"categoryId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	BudgetMin   float64 `json:"budgetMin" binding:"required"`
	BudgetMax   float64 `json:"budgetMax" binding:"required"`
}

// Create обрабатывает POST /api/jobs.
func (h *JobHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req createJobRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), service.CreateJobInput{
		CustomerID:  userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// Feed обрабатывает GET /api/jobs/feed: открытые заявки без собственных
// и без заявок заблокированных заказчиков.
func (h *JobHandler) Feed(c *gin.Context) {
	user, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	feed, err := h.jobs.OpenFeed(c.Request.Context(), user.ID, user.BlockedUsers)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// jobWithOfferCount дополняет заявку счётчиком предложений для списка
// "мои заявки".
type jobWithOfferCount struct {
	models.Job
	OfferCount int `json:"offerCount"`
}

// ListMy обрабатывает GET /api/jobs/my.
func (h *JobHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	jobs, err := h.jobs.ByCustomer(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	counts, err := h.jobs.OfferCounts(c.Request.Context(), ids)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	resp := make([]jobWithOfferCount, len(jobs))
	for i, j := range jobs {
		resp[i] = jobWithOfferCount{Job: j, OfferCount: counts[j.ID]}
	}

	c.JSON(http.StatusOK, resp)
}

// Get обрабатывает GET /api/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// Cancel обрабатывает POST /api/jobs/:id/cancel.
func (h *JobHandler) Cancel(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	job, err := h.jobs.Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// Complete обрабатывает POST /api/jobs/:id/complete.
func (h *JobHandler) Complete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	job, err := h.jobs.Complete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
