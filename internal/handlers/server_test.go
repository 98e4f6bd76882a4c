package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/handlers"
	"budgetbook/internal/middleware"
	"budgetbook/internal/repositories"
	"budgetbook/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// testServer hosts the full HTTP stack over an in-memory database so handler
// tests exercise binding, validation, auth middleware and error formatting
// exactly as production does.
type testServer struct {
	echo *echo.Echo
	db   *database.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := database.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)
	jwtConfig := &config.JWTConfig{
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "budgetbook-test",
	}

	userRepo := repositories.NewUserRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)

	passwordService := services.NewPasswordService(4, 6)
	tokenService := services.NewTokenService(jwtConfig)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, blacklistedTokenRepo, passwordService, tokenService, nil, logger)
	summaryService := services.NewSummaryService(categoryRepo, expenseRepo, nil, logger)
	categoryService := services.NewCategoryService(categoryRepo, nil, logger)
	expenseService := services.NewExpenseService(expenseRepo, categoryRepo, summaryService, nil, logger)

	authHandler := handlers.NewAuthHandler(authService, tokenService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Use(middleware.RequestID())

	e.GET("/health", handlers.NewHealthCheckHandler(db).HealthCheck)

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshToken)
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireAuth(tokenService, blacklistedTokenRepo))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)
	protected.GET("/summary/current", summaryHandler.GetCurrent)
	protected.GET("/summary/:year/:month", summaryHandler.GetMonthly)

	return &testServer{echo: e, db: db}
}

// request performs an in-process HTTP request. body may be a raw string (sent
// verbatim) or any value that marshals to JSON.
func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) registerUser(t *testing.T, email string) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	return response.Token
}

func (ts *testServer) createCategory(t *testing.T, token, name string, budget float64) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/categories", token, map[string]interface{}{
		"name":          name,
		"monthlyBudget": budget,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.ID
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// assertErrorCode checks the {error, code} envelope of a failed request.
func assertErrorCode(t *testing.T, body []byte, code string) {
	t.Helper()

	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope), string(body))
	require.Equal(t, code, envelope.Code, string(body))
	require.NotEmpty(t, envelope.Error)
}
