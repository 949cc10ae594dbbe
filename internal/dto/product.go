package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"catalog/internal/model"
)

// ProductDTO is the transfer shape for products. Categories carry only ids
// on write requests; referenced ids must already exist in storage.
type ProductDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImgURL      string          `json:"imgUrl"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
	Categories  []CategoryDTO   `json:"categories"`
}

// NewProductDTO maps a persisted product, including its categories, to the
// transfer shape.
func NewProductDTO(product *model.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImgURL:      product.ImgURL,
		CreatedAt:   product.CreatedAt,
		Categories:  NewCategoryDTOs(product.Categories),
	}
}

// NewProductDTOs maps a slice of products.
func NewProductDTOs(products []model.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, NewProductDTO(&products[i]))
	}
	return out
}
