package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog/internal/dto"
	"catalog/internal/service"
)

// userSortable maps exposed sort fields to columns.
var userSortable = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
}

// UserHandler handles user endpoints. The uniqueness validator runs before
// every service call that submits an email.
type UserHandler struct {
	userService service.UserService
	validator   *service.UserValidator
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, validator *service.UserValidator) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

// List godoc
// @Summary List users paged
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Param sort query string false "Sort, e.g. firstName,asc"
// @Success 200 {object} dto.Page[dto.UserDTO]
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	req := dto.ParsePageRequest(
		c.QueryParam("page"), c.QueryParam("size"), c.QueryParam("sort"), userSortable)

	page, err := h.userService.FindAllPaged(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListAll godoc
// @Summary List all users unpaged
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserDTO
// @Router /users/all [get]
func (h *UserHandler) ListAll(c echo.Context) error {
	users, err := h.userService.FindAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} errors.StandardError
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	user, err := h.userService.FindByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Insert godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserInsertDTO true "User data"
// @Success 201 {object} dto.UserDTO
// @Failure 404 {object} errors.StandardError
// @Failure 422 {object} errors.ValidationResponse
// @Router /users [post]
func (h *UserHandler) Insert(c echo.Context) error {
	var in dto.UserInsertDTO
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return unprocessable(c, fieldViolations(err))
	}
	if err := h.validator.ValidateInsert(c.Request().Context(), in.Email); err != nil {
		return fail(c, err)
	}

	user, err := h.userService.Insert(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, user.ID, user)
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UserDTO true "User data"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} errors.StandardError
// @Failure 422 {object} errors.ValidationResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var in dto.UserDTO
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&in); err != nil {
		return unprocessable(c, fieldViolations(err))
	}
	if err := h.validator.ValidateUpdate(c.Request().Context(), id, in.Email); err != nil {
		return fail(c, err)
	}

	user, err := h.userService.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} errors.StandardError
// @Failure 404 {object} errors.StandardError
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
