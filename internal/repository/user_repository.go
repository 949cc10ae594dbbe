package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog/internal/dto"
	"catalog/internal/errors"
	"catalog/internal/model"
)

// UserRepository defines user persistence operations. FindByEmail backs both
// the credential lookup of the auth pipeline and the uniqueness validators.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	ListPaged(ctx context.Context, req dto.PageRequest) ([]model.User, int64, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	ReplaceRoles(ctx context.Context, user *model.User, roles []model.Role) error
	Delete(ctx context.Context, id uint) error
	// WithTransaction runs fn against a transaction-bound repository; any
	// error rolls the whole sequence back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Roles").Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (r *userRepository) ListPaged(ctx context.Context, req dto.PageRequest) ([]model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Order(req.OrderClause()).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&users).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return users, total, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Omit("Roles").Create(user).Error)
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return translateError(r.db.WithContext(ctx).Omit("Roles").Save(user).Error)
}

// ReplaceRoles swaps the full role set: clear then re-add.
func (r *userRepository) ReplaceRoles(ctx context.Context, user *model.User, roles []model.Role) error {
	err := r.db.WithContext(ctx).Model(user).Association("Roles").Replace(roles)
	if err != nil {
		return translateError(err)
	}
	user.Roles = roles
	return nil
}

// Delete removes the user and its join rows in one transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := model.User{ID: id}
		if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
			return translateError(err)
		}
		res := tx.Delete(&model.User{}, id)
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
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx})
	})
}
