package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/core/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/utils"
)

const testJWTSecret = "test-secret-key"

// --- Test Suite ---
type AuthServiceTestSuite struct {
	suite.Suite
	mockLibrarians *MockLibrarianRepository
	service        portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockLibrarians = new(MockLibrarianRepository)
	suite.service = services.NewAuthService(suite.mockLibrarians, testJWTSecret, time.Hour, "library-core")
}

func (suite *AuthServiceTestSuite) librarianWithPassword(password string) *domain.Librarian {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.Librarian{
		LibrarianID:  uuid.NewString(),
		Username:     "desk.clerk",
		FullName:     "Desk Clerk",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	librarian := suite.librarianWithPassword("correct horse battery staple")

	suite.mockLibrarians.On("FindLibrarianByUsername", ctx, librarian.Username).Return(librarian, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: librarian.Username, Password: "correct horse battery staple"})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.Equal(librarian.LibrarianID, resp.LibrarianID)
	suite.Equal(librarian.FullName, resp.FullName)

	claims, err := utils.ParseAndValidateJWT(resp.Token, testJWTSecret)
	suite.Require().NoError(err)
	suite.Equal(librarian.LibrarianID, claims.Subject)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	librarian := suite.librarianWithPassword("right")

	suite.mockLibrarians.On("FindLibrarianByUsername", ctx, librarian.Username).Return(librarian, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: librarian.Username, Password: "wrong"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	ctx := context.Background()

	suite.mockLibrarians.On("FindLibrarianByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveLibrarian() {
	ctx := context.Background()
	librarian := suite.librarianWithPassword("still valid")
	librarian.IsActive = false

	suite.mockLibrarians.On("FindLibrarianByUsername", ctx, librarian.Username).Return(librarian, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: librarian.Username, Password: "still valid"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Run Suite ---
func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
