package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog/internal/dto"
	"catalog/internal/service"
)

// productSortable maps exposed sort fields to columns.
var productSortable = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary List products paged
// @Tags products
// @Produce json
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Param sort query string false "Sort, e.g. name,asc"
// @Success 200 {object} dto.Page[dto.ProductDTO]
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	req := dto.ParsePageRequest(
		c.QueryParam("page"), c.QueryParam("size"), c.QueryParam("sort"), productSortable)

	page, err := h.productService.FindAllPaged(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListAll godoc
// @Summary List all products unpaged
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductDTO
// @Router /products/all [get]
func (h *ProductHandler) ListAll(c echo.Context) error {
	products, err := h.productService.FindAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductDTO
// @Failure 404 {object} errors.StandardError
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	product, err := h.productService.FindByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Insert godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductDTO true "Product data"
// @Success 201 {object} dto.ProductDTO
// @Failure 404 {object} errors.StandardError
// @Failure 422 {object} errors.ValidationResponse
// @Router /products [post]
func (h *ProductHandler) Insert(c echo.Context) error {
	var in dto.ProductDTO
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return unprocessable(c, fieldViolations(err))
	}

	product, err := h.productService.Insert(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, product.ID, product)
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body dto.ProductDTO true "Product data"
// @Success 200 {object} dto.ProductDTO
// @Failure 404 {object} errors.StandardError
// @Failure 422 {object} errors.ValidationResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var in dto.ProductDTO
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return unprocessable(c, fieldViolations(err))
	}

	product, err := h.productService.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} errors.StandardError
// @Failure 404 {object} errors.StandardError
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
