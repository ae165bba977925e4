package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hnnsly/library-core/internal/apperrors"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/utils"
)

// authService implements the AuthSvcFacade interface.
type authService struct {
	BaseService
	librarianRepo portsrepo.LibrarianReader
	jwtSecret     string
	jwtExpiry     time.Duration
	jwtIssuer     string
}

// NewAuthService creates a new auth service.
func NewAuthService(librarianRepo portsrepo.LibrarianReader, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		librarianRepo: librarianRepo,
		jwtSecret:     jwtSecret,
		jwtExpiry:     jwtExpiry,
		jwtIssuer:     jwtIssuer,
	}
}

// Ensure authService implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	librarian, err := s.librarianRepo.FindLibrarianByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same refusal as a bad password; do not leak which part failed.
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to find librarian by username")
		return nil, err
	}

	if !librarian.IsActive {
		s.LogInfo(ctx, "Login refused for inactive librarian", slog.String("librarian_id", librarian.LibrarianID))
		return nil, apperrors.ErrUnauthorized
	}

	if !utils.CheckPasswordHash(req.Password, librarian.PasswordHash) {
		s.LogInfo(ctx, "Login refused for bad password", slog.String("librarian_id", librarian.LibrarianID))
		return nil, apperrors.ErrUnauthorized
	}

	token, err := utils.GenerateJWT(librarian.LibrarianID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("librarian_id", librarian.LibrarianID))
		return nil, err
	}

	s.LogInfo(ctx, "Librarian logged in", slog.String("librarian_id", librarian.LibrarianID))
	return &dto.LoginResponse{
		Token:       token,
		LibrarianID: librarian.LibrarianID,
		FullName:    librarian.FullName,
	}, nil
}
