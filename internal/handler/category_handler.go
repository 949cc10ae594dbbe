package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog/internal/dto"
	"catalog/internal/service"
)

// categorySortable maps exposed sort fields to columns.
var categorySortable = map[string]string{
	"id":   "id",
	"name": "name",
}

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @Summary List categories paged
// @Tags categories
// @Produce json
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Param sort query string false "Sort, e.g. name,asc"
// @Success 200 {object} dto.Page[dto.CategoryDTO]
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	req := dto.ParsePageRequest(
		c.QueryParam("page"), c.QueryParam("size"), c.QueryParam("sort"), categorySortable)

	page, err := h.categoryService.FindAllPaged(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListAll godoc
// @Summary List all categories unpaged
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryDTO
// @Router /categories/all [get]
func (h *CategoryHandler) ListAll(c echo.Context) error {
	categories, err := h.categoryService.FindAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Get godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryDTO
// @Failure 404 {object} errors.StandardError
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	category, err := h.categoryService.FindByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Insert godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryDTO true "Category data"
// @Success 201 {object} dto.CategoryDTO
// @Failure 422 {object} errors.ValidationResponse
// @Router /categories [post]
func (h *CategoryHandler) Insert(c echo.Context) error {
	var in dto.CategoryDTO
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return unprocessable(c, fieldViolations(err))
	}

	category, err := h.categoryService.Insert(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, category.ID, category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.CategoryDTO true "Category data"
// @Success 200 {object} dto.CategoryDTO
// @Failure 404 {object} errors.StandardError
// @Failure 422 {object} errors.ValidationResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var in dto.CategoryDTO
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return unprocessable(c, fieldViolations(err))
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 400 {object} errors.StandardError
// @Failure 404 {object} errors.StandardError
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
