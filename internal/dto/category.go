package dto

import "catalog/internal/model"

// CategoryDTO is the transfer shape for categories.
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required"`
}

// NewCategoryDTO maps a persisted category to its transfer shape.
func NewCategoryDTO(category *model.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// NewCategoryDTOs maps a slice of categories.
func NewCategoryDTOs(categories []model.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryDTO(&categories[i]))
	}
	return out
}
