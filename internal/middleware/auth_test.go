package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"
	"budgetbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authMiddlewareFixture struct {
	echo          *echo.Echo
	tokenService  services.TokenServiceInterface
	blacklistRepo repositories.BlacklistedTokenRepositoryInterface
	user          *models.User
}

func newAuthMiddlewareFixture(t *testing.T, accessTokenDuration time.Duration) *authMiddlewareFixture {
	t.Helper()

	db := database.SetupTestDB(t)
	user := database.CreateTestUser(t, db, "alice@example.com")

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)

	tokenService := services.NewTokenService(&config.JWTConfig{
		AccessTokenDuration:  accessTokenDuration,
		RefreshTokenDuration: time.Hour,
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "budgetbook-test",
	})
	blacklistRepo := repositories.NewBlacklistedTokenRepository(db.DB)

	e := echo.New()
	protected := e.Group("", RequireAuth(tokenService, blacklistRepo))
	protected.GET("/protected", func(c echo.Context) error {
		userID := c.Get("user_id").(uuid.UUID)
		return c.String(http.StatusOK, userID.String())
	})

	return &authMiddlewareFixture{
		echo:          e,
		tokenService:  tokenService,
		blacklistRepo: blacklistRepo,
		user:          user,
	}
}

func (f *authMiddlewareFixture) get(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func errorCodeOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Code
}

func TestRequireAuth_ValidToken(t *testing.T) {
	f := newAuthMiddlewareFixture(t, time.Hour)

	token, _, err := f.tokenService.GenerateAccessToken(f.user)
	require.NoError(t, err)

	rec := f.get("Bearer " + token)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, f.user.ID.String(), rec.Body.String())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	f := newAuthMiddlewareFixture(t, time.Hour)

	rec := f.get("")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_002", errorCodeOf(t, rec))
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	f := newAuthMiddlewareFixture(t, time.Hour)

	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b c"} {
		rec := f.get(header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "AUTH_004", errorCodeOf(t, rec), header)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	f := newAuthMiddlewareFixture(t, time.Hour)

	rec := f.get("Bearer not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_004", errorCodeOf(t, rec))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	f := newAuthMiddlewareFixture(t, -time.Minute)

	token, _, err := f.tokenService.GenerateAccessToken(f.user)
	require.NoError(t, err)

	rec := f.get("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_003", errorCodeOf(t, rec))
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	f := newAuthMiddlewareFixture(t, time.Hour)

	token, _, err := f.tokenService.GenerateRefreshToken(f.user.ID)
	require.NoError(t, err)

	rec := f.get("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_004", errorCodeOf(t, rec))
}

func TestRequireAuth_BlacklistedToken(t *testing.T) {
	f := newAuthMiddlewareFixture(t, time.Hour)

	token, _, err := f.tokenService.GenerateAccessToken(f.user)
	require.NoError(t, err)

	jti, err := f.tokenService.GetJTI(token)
	require.NoError(t, err)
	require.NoError(t, f.blacklistRepo.Create(&models.BlacklistedToken{
		JTI:       jti,
		UserID:    f.user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	rec := f.get("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_004", errorCodeOf(t, rec))
}
