package auth

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type IAuthService interface {
	// Login checks admin credentials and returns a signed token.
	Login(ctx context.Context, req domain.LoginRequest) (string, error)

	// Authorize verifies a token and returns its payload.
	Authorize(ctx context.Context, token string) (domain.AuthPayload, error)
}
