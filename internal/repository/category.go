package repository

import (
	"taskboard/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	ListCategories(params ListParams) ([]models.Category, error)
}

type categoryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCategoryRepository(db *sqlx.DB, logger *zap.Logger) CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) ListCategories(params ListParams) ([]models.Category, error) {
	query, args := newListQuery("categories").search(params.Query).build(params)
	categories := []models.Category{}
	if err := r.db.Select(&categories, query, args...); err != nil {
		return nil, err
	}
	return categories, nil
}
