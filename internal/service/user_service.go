package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"catalog/internal/dto"
	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/repository"
)

const bcryptCost = 10

// UserService exposes user domain operations.
type UserService interface {
	FindAll(ctx context.Context) ([]dto.UserDTO, error)
	FindAllPaged(ctx context.Context, req dto.PageRequest) (dto.Page[dto.UserDTO], error)
	FindByID(ctx context.Context, id uint) (*dto.UserDTO, error)
	Insert(ctx context.Context, in dto.UserInsertDTO) (*dto.UserDTO, error)
	Update(ctx context.Context, id uint, in dto.UserDTO) (*dto.UserDTO, error)
	Delete(ctx context.Context, id uint) error
	// FindByCredentialSubject backs the authentication pipeline's credential lookup.
	FindByCredentialSubject(ctx context.Context, email string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a user service over the user and role repositories;
// roles are re-resolved by id on every write.
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) FindAll(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserDTOs(users), nil
}

func (s *userService) FindAllPaged(ctx context.Context, req dto.PageRequest) (dto.Page[dto.UserDTO], error) {
	users, total, err := s.userRepo.ListPaged(ctx, req)
	if err != nil {
		return dto.Page[dto.UserDTO]{}, err
	}
	return dto.NewPage(dto.NewUserDTOs(users), req, total), nil
}

func (s *userService) FindByID(ctx context.Context, id uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

// Insert creates a user with a hashed password; any client-supplied id is
// ignored, every referenced role id must resolve against storage.
func (s *userService) Insert(ctx context.Context, in dto.UserInsertDTO) (*dto.UserDTO, error) {
	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	}
	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if err := repo.Create(ctx, user); err != nil {
			return err
		}
		return repo.ReplaceRoles(ctx, user, roles)
	})
	if err != nil {
		return nil, err
	}

	out := dto.NewUserDTO(user)
	return &out, nil
}

// Update overwrites scalar fields and fully replaces the role set. The
// password is left untouched.
func (s *userService) Update(ctx context.Context, id uint, in dto.UserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if err := repo.Save(ctx, user); err != nil {
			return err
		}
		return repo.ReplaceRoles(ctx, user, roles)
	})
	if err != nil {
		return nil, err
	}

	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) FindByCredentialSubject(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *userService) resolveRoles(ctx context.Context, refs []dto.RoleDTO) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(refs))
	for _, ref := range refs {
		role, err := s.roleRepo.FindByID(ctx, ref.ID)
		if err != nil {
			if err == errors.ErrResourceNotFound {
				return nil, fmt.Errorf("role %d: %w", ref.ID, errors.ErrResourceNotFound)
			}
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}
