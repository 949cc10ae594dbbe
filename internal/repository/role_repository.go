package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog/internal/model"
)

// RoleRepository defines role persistence operations. Roles are static
// reference data; the service layer only resolves them by id, the seed
// command also creates them.
type RoleRepository interface {
	List(ctx context.Context) ([]model.Role, error)
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByAuthority(ctx context.Context, authority string) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a GORM-backed role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, translateError(err)
	}
	return roles, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

func (r *roleRepository) FindByAuthority(ctx context.Context, authority string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("authority = ?", authority).First(&role).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return translateError(r.db.WithContext(ctx).Create(role).Error)
}
