package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog/internal/dto"
	"catalog/internal/errors"
	"catalog/internal/model"
)

// ProductRepository defines product persistence operations. Products own the
// category association, so deletes clear the join rows and updates replace
// them wholesale.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	ListPaged(ctx context.Context, req dto.PageRequest) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Save(ctx context.Context, product *model.Product) error
	ReplaceCategories(ctx context.Context, product *model.Product, categories []model.Category) error
	Delete(ctx context.Context, id uint) error
	// WithTransaction runs fn against a transaction-bound repository; any
	// error rolls the whole sequence back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProductRepository) error) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Preload("Categories").Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

func (r *productRepository) ListPaged(ctx context.Context, req dto.PageRequest) ([]model.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order(req.OrderClause()).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&products).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return products, total, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Categories").First(&product, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	// Associations are assigned separately via ReplaceCategories.
	return translateError(r.db.WithContext(ctx).Omit("Categories").Create(product).Error)
}

func (r *productRepository) Save(ctx context.Context, product *model.Product) error {
	return translateError(r.db.WithContext(ctx).Omit("Categories").Save(product).Error)
}

// ReplaceCategories swaps the full category set: clear then re-add.
func (r *productRepository) ReplaceCategories(ctx context.Context, product *model.Product, categories []model.Category) error {
	err := r.db.WithContext(ctx).Model(product).Association("Categories").Replace(categories)
	if err != nil {
		return translateError(err)
	}
	product.Categories = categories
	return nil
}

// Delete removes the product and its join rows in one transaction.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product := model.Product{ID: id}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return translateError(err)
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.ErrResourceNotFound
		}
		return nil
	})
}

// WithTransaction executes fn within a database transaction.
func (r *productRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &productRepository{db: tx})
	})
}
