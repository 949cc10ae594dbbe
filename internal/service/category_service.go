package service

import (
	"context"

	"catalog/internal/dto"
	"catalog/internal/model"
	"catalog/internal/repository"
)

// CategoryService exposes category domain operations.
type CategoryService interface {
	FindAll(ctx context.Context) ([]dto.CategoryDTO, error)
	FindAllPaged(ctx context.Context, req dto.PageRequest) (dto.Page[dto.CategoryDTO], error)
	FindByID(ctx context.Context, id uint) (*dto.CategoryDTO, error)
	Insert(ctx context.Context, in dto.CategoryDTO) (*dto.CategoryDTO, error)
	Update(ctx context.Context, id uint, in dto.CategoryDTO) (*dto.CategoryDTO, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a category service over the given repository.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) FindAll(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryDTOs(categories), nil
}

func (s *categoryService) FindAllPaged(ctx context.Context, req dto.PageRequest) (dto.Page[dto.CategoryDTO], error) {
	categories, total, err := s.repo.ListPaged(ctx, req)
	if err != nil {
		return dto.Page[dto.CategoryDTO]{}, err
	}
	return dto.NewPage(dto.NewCategoryDTOs(categories), req, total), nil
}

func (s *categoryService) FindByID(ctx context.Context, id uint) (*dto.CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewCategoryDTO(category)
	return &out, nil
}

// Insert creates a category; any client-supplied id is ignored and the
// server-assigned record is returned.
func (s *categoryService) Insert(ctx context.Context, in dto.CategoryDTO) (*dto.CategoryDTO, error) {
	category := &model.Category{
		Name: in.Name,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := dto.NewCategoryDTO(category)
	return &out, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, in dto.CategoryDTO) (*dto.CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = in.Name
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	out := dto.NewCategoryDTO(category)
	return &out, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
