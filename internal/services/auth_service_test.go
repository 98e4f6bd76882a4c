package services

import (
	"testing"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	service AuthServiceInterface
	tokens  TokenServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.tokens = NewTokenService(&config.JWTConfig{
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "budgetbook-test",
	})

	s.service = NewAuthService(
		repositories.NewUserRepository(s.db.DB),
		repositories.NewRefreshTokenRepository(s.db.DB),
		repositories.NewBlacklistedTokenRepository(s.db.DB),
		NewPasswordService(4, 6),
		s.tokens,
		nil,
		testLogger(),
	)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) register(email string) *dto.AuthResponse {
	response, err := s.service.Register(&dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "secret1",
	})
	s.Require().NoError(err)
	return response
}

func (s *AuthServiceTestSuite) TestRegister_ReturnsTokensAndUser() {
	response := s.register("new@example.com")

	s.NotEmpty(response.Token)
	s.NotEmpty(response.RefreshToken)
	s.Equal("new@example.com", response.User.Email)
	s.Equal("Test User", response.User.Name)
	s.NotEmpty(response.User.ID)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	s.register("dup@example.com")

	_, err := s.service.Register(&dto.RegisterRequest{
		Name:     "Second",
		Email:    "dup@example.com",
		Password: "secret1",
	})
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	s.register("login@example.com")

	response, err := s.service.Login(&dto.LoginRequest{
		Email:    "login@example.com",
		Password: "secret1",
	})
	s.Require().NoError(err)
	s.NotEmpty(response.Token)

	claims, err := s.tokens.ValidateAccessToken(response.Token)
	s.NoError(err)
	s.Equal("login@example.com", claims.Email)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.register("wrongpw@example.com")

	_, err := s.service.Login(&dto.LoginRequest{
		Email:    "wrongpw@example.com",
		Password: "not-it",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := s.service.Login(&dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret1",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_LocksAfterRepeatedFailures() {
	response := s.register("lockme@example.com")

	for i := 0; i < models.MaxFailedLoginAttempts; i++ {
		_, err := s.service.Login(&dto.LoginRequest{
			Email:    "lockme@example.com",
			Password: "not-it",
		})
		s.ErrorIs(err, ErrInvalidCredentials)
	}

	// Even the correct password is rejected once locked
	_, err := s.service.Login(&dto.LoginRequest{
		Email:    "lockme@example.com",
		Password: "secret1",
	})
	s.ErrorIs(err, ErrAccountLocked)

	s.NotEmpty(response.User.ID)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RotatesToken() {
	initial := s.register("refresh@example.com")

	refreshed, err := s.service.RefreshTokens(initial.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(refreshed.Token)
	s.NotEqual(initial.RefreshToken, refreshed.RefreshToken)

	// The redeemed token is revoked and cannot be reused
	_, err = s.service.RefreshTokens(initial.RefreshToken)
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RejectsAccessToken() {
	initial := s.register("mixed@example.com")

	_, err := s.service.RefreshTokens(initial.Token)
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_Garbage() {
	_, err := s.service.RefreshTokens("garbage")
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestLogout_RevokesRefreshTokens() {
	initial := s.register("logout@example.com")

	s.NoError(s.service.Logout(initial.Token))

	_, err := s.service.RefreshTokens(initial.RefreshToken)
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestMe_ReturnsProfile() {
	initial := s.register("me@example.com")

	claims, err := s.tokens.ValidateAccessToken(initial.Token)
	s.Require().NoError(err)

	response, err := s.service.Me(uuid.MustParse(claims.UserID))
	s.Require().NoError(err)
	s.Equal("me@example.com", response.User.Email)
}
