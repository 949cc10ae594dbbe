package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"catalog/internal/config"
	"catalog/internal/handler"
)

// Register wires routes and middleware. Catalog reads are public; writes and
// the user resource require a bearer token.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Token issuance
	e.POST("/oauth/token", authHandler.Token)
	e.POST("/oauth/logout", authHandler.Logout)

	// Public catalog reads
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/all", categoryHandler.ListAll)
	e.GET("/categories/:id", categoryHandler.Get)
	e.GET("/products", productHandler.List)
	e.GET("/products/all", productHandler.ListAll)
	e.GET("/products/:id", productHandler.Get)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.POST("/categories", categoryHandler.Insert)
	secured.PUT("/categories/:id", categoryHandler.Update)
	secured.DELETE("/categories/:id", categoryHandler.Delete)

	secured.POST("/products", productHandler.Insert)
	secured.PUT("/products/:id", productHandler.Update)
	secured.DELETE("/products/:id", productHandler.Delete)

	secured.GET("/users", userHandler.List)
	secured.GET("/users/all", userHandler.ListAll)
	secured.GET("/users/:id", userHandler.Get)
	secured.POST("/users", userHandler.Insert)
	secured.PUT("/users/:id", userHandler.Update)
	secured.DELETE("/users/:id", userHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
