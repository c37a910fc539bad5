package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// AuthHandler отвечает за регистрацию, вход и управление аккаунтом.
type AuthHandler struct {
	auth    *service.AuthService
	reports *service.ReportService
}

// NewAuthHandler создаёт экземпляр.
func NewAuthHandler(auth *service.AuthService, reports *service.ReportService) *AuthHandler {
	return &AuthHandler{auth: auth, reports: reports}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName" binding:"required"`
}

// Register обрабатывает POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), service.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// Logout обрабатывает POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context()); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "сессия завершена"})
}

// Me обрабатывает GET /api/profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole обрабатывает PUT /api/users/me/role.
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req roleRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	user, err := h.auth.SetRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// GetUser обрабатывает GET /api/users/:id.
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

type blockRequest struct {
	Report bool   `json:"report"`
	Reason string `json:"reason"`
}

// Block обрабатывает POST /api/users/:id/block. При report=true вместе с
// блокировкой подаётся жалоба на пользователя, как делает экран чата
// мобильного клиента.
func (h *AuthHandler) Block(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req blockRequest
	if c.Request.ContentLength > 0 {
		if err := common.BindAndValidate(c, &req); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	targetID := c.Param("id")
	user, err := h.auth.Block(c.Request.Context(), userID, targetID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if req.Report {
		reason := req.Reason
		if reason == "" {
			reason = "заблокирован из переписки"
		}
		if _, err := h.reports.Create(c.Request.Context(), service.CreateReportInput{
			ReporterID: userID,
			TargetType: models.ReportTargetUser,
			TargetID:   targetID,
			Reason:     reason,
		}); err != nil {
			common.RespondAppError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, user.Public())
}

// Unblock обрабатывает DELETE /api/users/:id/block.
func (h *AuthHandler) Unblock(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	user, err := h.auth.Unblock(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// DeleteAccount обрабатывает DELETE /api/users/me.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	if err := h.auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "аккаунт удалён"})
}
