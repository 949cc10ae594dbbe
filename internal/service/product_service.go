package service

import (
	"context"
	"fmt"

	"catalog/internal/dto"
	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/repository"
)

// ProductService exposes product domain operations.
type ProductService interface {
	FindAll(ctx context.Context) ([]dto.ProductDTO, error)
	FindAllPaged(ctx context.Context, req dto.PageRequest) (dto.Page[dto.ProductDTO], error)
	FindByID(ctx context.Context, id uint) (*dto.ProductDTO, error)
	Insert(ctx context.Context, in dto.ProductDTO) (*dto.ProductDTO, error)
	Update(ctx context.Context, id uint, in dto.ProductDTO) (*dto.ProductDTO, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a product service over the product and category
// repositories; categories are re-resolved by id on every write.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) FindAll(ctx context.Context) ([]dto.ProductDTO, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductDTOs(products), nil
}

func (s *productService) FindAllPaged(ctx context.Context, req dto.PageRequest) (dto.Page[dto.ProductDTO], error) {
	products, total, err := s.productRepo.ListPaged(ctx, req)
	if err != nil {
		return dto.Page[dto.ProductDTO]{}, err
	}
	return dto.NewPage(dto.NewProductDTOs(products), req, total), nil
}

func (s *productService) FindByID(ctx context.Context, id uint) (*dto.ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductDTO(product)
	return &out, nil
}

// Insert creates a product; any client-supplied id is ignored, every
// referenced category id must resolve against storage.
func (s *productService) Insert(ctx context.Context, in dto.ProductDTO) (*dto.ProductDTO, error) {
	categories, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImgURL:      in.ImgURL,
	}
	err = s.productRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		if err := repo.Create(ctx, product); err != nil {
			return err
		}
		return repo.ReplaceCategories(ctx, product, categories)
	})
	if err != nil {
		return nil, err
	}

	out := dto.NewProductDTO(product)
	return &out, nil
}

// Update overwrites scalar fields and fully replaces the category set.
func (s *productService) Update(ctx context.Context, id uint, in dto.ProductDTO) (*dto.ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.ImgURL = in.ImgURL
	err = s.productRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		if err := repo.Save(ctx, product); err != nil {
			return err
		}
		return repo.ReplaceCategories(ctx, product, categories)
	})
	if err != nil {
		return nil, err
	}

	out := dto.NewProductDTO(product)
	return &out, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) resolveCategories(ctx context.Context, refs []dto.CategoryDTO) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(refs))
	for _, ref := range refs {
		category, err := s.categoryRepo.FindByID(ctx, ref.ID)
		if err != nil {
			if err == errors.ErrResourceNotFound {
				return nil, fmt.Errorf("category %d: %w", ref.ID, errors.ErrResourceNotFound)
			}
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}
