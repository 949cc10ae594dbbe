package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog/internal/service"
)

// AuthHandler handles the OAuth2-style token endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenResponse is the grant response body with the enhanced user claims
// echoed alongside the token pair.
type TokenResponse struct {
	AccessToken   string `json:"access_token"`
	TokenType     string `json:"token_type"`
	RefreshToken  string `json:"refresh_token,omitempty"`
	ExpiresIn     int64  `json:"expires_in"`
	UserID        uint   `json:"userId"`
	UserFirstName string `json:"userFirstName"`
	UserLastName  string `json:"userLastName"`
}

// grantError mirrors the OAuth2 error body used by the token endpoint.
type grantError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required"`
}

// Token godoc
// @Summary Issue an access token
// @Description Password grant (grant_type=password, username, password) or refresh grant (grant_type=refresh_token, refresh_token).
// @Tags oauth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "password or refresh_token"
// @Param username formData string false "Email for the password grant"
// @Param password formData string false "Password for the password grant"
// @Param refresh_token formData string false "Refresh token for the refresh grant"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} grantError
// @Failure 401 {object} grantError
// @Router /oauth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	grantType := c.FormValue("grant_type")

	var (
		result *service.TokenResult
		err    error
	)
	switch grantType {
	case "password":
		result, err = h.authService.IssueToken(c.Request().Context(),
			c.FormValue("username"), c.FormValue("password"))
	case "refresh_token":
		result, err = h.authService.Refresh(c.Request().Context(),
			c.FormValue("refresh_token"))
	default:
		return c.JSON(http.StatusBadRequest, grantError{
			Error:            "unsupported_grant_type",
			ErrorDescription: "Unsupported grant type: " + grantType,
		})
	}

	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, grantError{
				Error:            "invalid_grant",
				ErrorDescription: "Bad credentials",
			})
		case service.ErrInvalidRefreshToken:
			return c.JSON(http.StatusUnauthorized, grantError{
				Error:            "invalid_grant",
				ErrorDescription: "Invalid refresh token",
			})
		default:
			return c.JSON(http.StatusInternalServerError, grantError{
				Error:            "server_error",
				ErrorDescription: "failed to issue token",
			})
		}
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken:   result.AccessToken,
		TokenType:     "bearer",
		RefreshToken:  result.RefreshToken,
		ExpiresIn:     result.ExpiresIn,
		UserID:        result.UserID,
		UserFirstName: result.UserFirstName,
		UserLastName:  result.UserLastName,
	})
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} grantError
// @Router /oauth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return unprocessable(c, fieldViolations(err))
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return c.JSON(http.StatusUnauthorized, grantError{
				Error:            "invalid_grant",
				ErrorDescription: "Invalid refresh token",
			})
		}
		return c.JSON(http.StatusInternalServerError, grantError{
			Error:            "server_error",
			ErrorDescription: "failed to logout",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
