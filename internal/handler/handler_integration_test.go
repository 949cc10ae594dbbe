package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog/internal/auth"
	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/dto"
	apperrors "catalog/internal/errors"
	"catalog/internal/handler"
	"catalog/internal/model"
	"catalog/internal/repository"
	"catalog/internal/router"
	"catalog/internal/service"
)

const testSecret = "integration-test-secret"

type testServer struct {
	echo *echo.Echo
	db   *gorm.DB
	jwt  *auth.JWTService
}

// newTestServer wires the full stack against an in-memory database. Redis is
// pointed at an unreachable address; the cache client is fail-safe so token
// issuance still works.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Role{},
		&model.User{},
	))

	cfg := &config.Config{JWTSecret: testSecret}
	cacheClient := cache.New("127.0.0.1:1", "", 0)

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	enhancer := service.NewTokenEnhancer(userRepo)

	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	userValidator := service.NewUserValidator(userRepo)
	authService := service.NewAuthService(userRepo, enhancer, jwtService, tokenStore)

	e := echo.New()
	router.Register(e, cfg,
		handler.NewCategoryHandler(categoryService),
		handler.NewProductHandler(productService),
		handler.NewUserHandler(userService, userValidator),
		handler.NewAuthHandler(authService),
	)

	return &testServer{echo: e, db: db, jwt: jwtService}
}

func (s *testServer) bearerToken(t *testing.T) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken("alex@gmail.com", nil)
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) request(method, target, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedUser(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(s.db)
	userRepo := repository.NewUserRepository(s.db)

	operator := model.Role{Authority: "ROLE_OPERATOR"}
	admin := model.Role{Authority: "ROLE_ADMIN"}
	require.NoError(t, roleRepo.Create(ctx, &operator))
	require.NoError(t, roleRepo.Create(ctx, &admin))

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{
		FirstName: "Alex",
		LastName:  "Brown",
		Email:     "alex@gmail.com",
		Password:  string(hash),
	}
	require.NoError(t, userRepo.Create(ctx, user))
	require.NoError(t, userRepo.ReplaceRoles(ctx, user, []model.Role{operator, admin}))
}

type pageBody struct {
	Content       []json.RawMessage `json:"content"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	Number        int               `json:"number"`
	Size          int               `json:"size"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
	Empty         bool              `json:"empty"`
}

func TestInsertCategoryAssignsNextIdentifier(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(srv.db)
	for i := 1; i <= 25; i++ {
		require.NoError(t, categoryRepo.Create(ctx, &model.Category{
			Name: fmt.Sprintf("Category %02d", i),
		}))
	}

	token := srv.bearerToken(t)
	rec := srv.request(http.MethodPost, "/categories", `{"name":"Electronics"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/categories/26", rec.Header().Get(echo.HeaderLocation))

	var created dto.CategoryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint(26), created.ID)
	assert.Equal(t, "Electronics", created.Name)

	rec = srv.request(http.MethodGet, "/categories/26", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":26,"name":"Electronics"}`, rec.Body.String())
}

func TestUpdateMissingProductReturnsNotFoundBody(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"PC Gamer","description":"updated","price":1200.0,"categories":[]}`
	rec := srv.request(http.MethodPut, "/products/1000", body, srv.bearerToken(t))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var std apperrors.StandardError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
	assert.Equal(t, http.StatusNotFound, std.Status)
	assert.Equal(t, "Resource not found", std.Error)
	assert.Equal(t, "/products/1000", std.Path)
	assert.NotEmpty(t, std.Message)
	assert.False(t, std.Timestamp.IsZero())
}

func TestProductListingPagesInSortedOrder(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	productRepo := repository.NewProductRepository(srv.db)
	for i := 25; i >= 1; i-- {
		require.NoError(t, productRepo.Create(ctx, &model.Product{
			Name:  fmt.Sprintf("Product %02d", i),
			Price: decimal.NewFromInt(int64(i)),
		}))
	}

	rec := srv.request(http.MethodGet, "/products?page=0&size=12&sort=name,asc", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page pageBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 12, page.Size)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	require.Len(t, page.Content, 12)

	var first, second dto.ProductDTO
	require.NoError(t, json.Unmarshal(page.Content[0], &first))
	require.NoError(t, json.Unmarshal(page.Content[1], &second))
	assert.Equal(t, "Product 01", first.Name)
	assert.Equal(t, "Product 02", second.Name)
}

func TestMalformedIDRendersStructuredBadRequest(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(http.MethodGet, "/categories/abc", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Same flat body as every other error path, never echo's {"message":...}.
	var std apperrors.StandardError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &std))
	assert.Equal(t, http.StatusBadRequest, std.Status)
	assert.Equal(t, "Bad request", std.Error)
	assert.Equal(t, "invalid id", std.Message)
	assert.Equal(t, "/categories/abc", std.Path)
}

func TestWriteRoutesRequireBearerToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(http.MethodPost, "/categories", `{"name":"Electronics"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.request(http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Public reads stay open.
	rec = srv.request(http.MethodGet, "/categories", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPasswordGrantIssuesEnhancedToken(t *testing.T) {
	srv := newTestServer(t)
	srv.seedUser(t)

	form := url.Values{
		"grant_type": {"password"},
		"username":   {"alex@gmail.com"},
		"password":   {"123456"},
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, uint(1), resp.UserID)
	assert.Equal(t, "Alex", resp.UserFirstName)
	assert.Equal(t, "Brown", resp.UserLastName)

	// The issued token opens the secured routes.
	rec = srv.request(http.MethodPost, "/categories", `{"name":"Books"}`, "Bearer "+resp.AccessToken)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPasswordGrantRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	srv.seedUser(t)

	form := url.Values{
		"grant_type": {"password"},
		"username":   {"alex@gmail.com"},
		"password":   {"wrong-password"},
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_grant","error_description":"Bad credentials"}`, rec.Body.String())
}

func TestInsertProductValidatesRequiredFields(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(http.MethodPost, "/products", `{"description":"no name or price"}`, srv.bearerToken(t))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp apperrors.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation exception", resp.Error)
	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.FieldName)
	}
	assert.Contains(t, fields, "name")
}

func TestInsertUserRejectsDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	srv.seedUser(t)

	body := `{"firstName":"Other","lastName":"Person","email":"alex@gmail.com","password":"123456","roles":[{"id":1}]}`
	rec := srv.request(http.MethodPost, "/users", body, srv.bearerToken(t))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp apperrors.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].FieldName)
	assert.Equal(t, "Email already registered", resp.Errors[0].Message)
}

func TestUpdateUserAllowsOwnEmail(t *testing.T) {
	srv := newTestServer(t)
	srv.seedUser(t)

	body := `{"firstName":"Alexandra","lastName":"Brown","email":"alex@gmail.com","roles":[{"id":2}]}`
	rec := srv.request(http.MethodPut, "/users/1", body, srv.bearerToken(t))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alexandra", updated.FirstName)
	assert.Equal(t, "alex@gmail.com", updated.Email)
	require.Len(t, updated.Roles, 1)
	assert.Equal(t, "ROLE_ADMIN", updated.Roles[0].Authority)
}

func TestDeleteProductReturnsNoContent(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	productRepo := repository.NewProductRepository(srv.db)
	product := &model.Product{Name: "Smart TV", Price: decimal.NewFromInt(2190)}
	require.NoError(t, productRepo.Create(ctx, product))

	rec := srv.request(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), "", srv.bearerToken(t))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.request(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), "", srv.bearerToken(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
