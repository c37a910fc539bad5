package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/middleware"
	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
)

var (
	// ErrUserNotFound is returned when user is not found in context
	ErrUserNotFound = errors.New("пользователь не найден в контексте")
)

// CurrentUser extracts the session user from Gin context.
func CurrentUser(c *gin.Context) (*models.User, error) {
	raw, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, ErrUserNotFound
	}

	user, ok := raw.(*models.User)
	if !ok || user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// CurrentUserID extracts the session user id from Gin context.
func CurrentUserID(c *gin.Context) (string, error) {
	user, err := CurrentUser(c)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

// RespondAppError maps a service error to its HTTP representation.
// Untyped errors are masked as internal.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
