package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog/internal/dto"
	"catalog/internal/errors"
	"catalog/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	ListPaged(ctx context.Context, req dto.PageRequest) ([]model.Category, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Save(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, translateError(err)
	}
	return categories, nil
}

func (r *categoryRepository) ListPaged(ctx context.Context, req dto.PageRequest) ([]model.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var categories []model.Category
	err := r.db.WithContext(ctx).
		Order(req.OrderClause()).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&categories).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return categories, total, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepository) Save(ctx context.Context, category *model.Category) error {
	return translateError(r.db.WithContext(ctx).Save(category).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrResourceNotFound
	}
	return nil
}
