package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/models"
)

// CatalogHandler отдаёт фиксированный каталог категорий услуг.
type CatalogHandler struct{}

// NewCatalogHandler создаёт экземпляр.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListCategories обрабатывает GET /api/catalog/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.JobCategories)
}
