package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"catalog/internal/errors"
)

// pathID parses the numeric :id path parameter. Callers render the failure
// through badRequest so malformed ids get the same structured body as every
// other error.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// fail translates a domain error into the structured error response.
func fail(c echo.Context, err error) error {
	status, body := errors.MapError(err, c.Request().URL.Path)
	return c.JSON(status, body)
}

// badRequest renders a structured 400 for malformed request bodies.
func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errors.NewStandardError(
		http.StatusBadRequest, "Bad request", message, c.Request().URL.Path))
}

// unprocessable renders a 422 with field violations from request-shape validation.
func unprocessable(c echo.Context, violations []errors.FieldMessage) error {
	_, body := errors.MapError(errors.NewValidationError(violations...), c.Request().URL.Path)
	return c.JSON(http.StatusUnprocessableEntity, body)
}

// fieldViolations flattens validator errors into field-level messages.
func fieldViolations(err error) []errors.FieldMessage {
	var vErrs validator.ValidationErrors
	if !stderrors.As(err, &vErrs) {
		return []errors.FieldMessage{{FieldName: "body", Message: "invalid payload"}}
	}
	out := make([]errors.FieldMessage, 0, len(vErrs))
	for _, fe := range vErrs {
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		out = append(out, errors.FieldMessage{FieldName: field, Message: violationMessage(fe)})
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// created sets the Location header for the new resource and renders 201.
func created(c echo.Context, id uint, body interface{}) error {
	location := c.Request().URL.Path + "/" + strconv.FormatUint(uint64(id), 10)
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, body)
}
