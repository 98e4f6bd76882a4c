package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

func (s *PasswordServiceTestSuite) SetupTest() {
	// Low cost keeps the hashing tests fast
	s.service = NewPasswordService(4, 6)
}

func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Valid() {
	s.NoError(s.service.ValidatePassword("secret1"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MinimumLength() {
	s.NoError(s.service.ValidatePassword("123456"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooShort() {
	err := s.service.ValidatePassword("12345")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Empty() {
	err := s.service.ValidatePassword("")
	s.ErrorIs(err, ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooLong() {
	long := make([]byte, MaxPasswordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	err := s.service.ValidatePassword(string(long))
	s.ErrorIs(err, ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestHashPassword_AndCompare() {
	hash, err := s.service.HashPassword("secret1")
	s.Require().NoError(err)
	s.NotEqual("secret1", hash)

	s.True(s.service.ComparePassword("secret1", hash))
	s.False(s.service.ComparePassword("wrong", hash))
}

func (s *PasswordServiceTestSuite) TestHashPassword_RejectsInvalid() {
	_, err := s.service.HashPassword("short")
	s.Error(err)
}

func (s *PasswordServiceTestSuite) TestNewPasswordService_Defaults() {
	service := NewPasswordService(0, 0)

	// Default minimum length applies
	s.Error(service.ValidatePassword("12345"))
	s.NoError(service.ValidatePassword("123456"))
}
