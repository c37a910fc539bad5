package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserKey = "sessionUser"
)

// SessionMiddleware резолвит актора из строки сессии хранилища.
// Токенов нет: локальный движок доверяет единственной активной сессии.
func SessionMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.CurrentUser(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
