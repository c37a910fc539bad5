package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// ReportHandler отвечает за жалобы.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler создаёт экземпляр.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type createReportRequest struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   string `json:"targetId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

// Create обрабатывает POST /api/reports.
func (h *ReportHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req createReportRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.Create(c.Request.Context(), service.CreateReportInput{
		ReporterID: userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListMy обрабатывает GET /api/reports/my.
func (h *ReportHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	reports, err := h.reports.ByReporter(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}
