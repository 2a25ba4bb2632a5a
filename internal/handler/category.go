package handler

import (
	"net/http"

	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler interface {
	ListCategories(c *gin.Context)
}

type categoryHandler struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryHandler(categoryRepo repository.CategoryRepository, logger *zap.Logger) CategoryHandler {
	return &categoryHandler{categoryRepo: categoryRepo, logger: logger}
}

// ListCategories handles GET /api/v1/categories
func (h *categoryHandler) ListCategories(c *gin.Context) {
	params, pageInfo := listParams(c)

	categories, err := h.categoryRepo.ListCategories(params)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pageInfo": pageInfo, "items": categories})
}
