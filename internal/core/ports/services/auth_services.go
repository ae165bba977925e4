package services

import (
	"context"

	"github.com/hnnsly/library-core/internal/dto"
)

// AuthSvcFacade authenticates librarians and issues bearer tokens.
type AuthSvcFacade interface {
	// Login verifies the credentials and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
