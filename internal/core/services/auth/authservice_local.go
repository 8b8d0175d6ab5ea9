package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

// localAuthService authenticates the single contest administrator configured
// through the environment.
type localAuthService struct {
	adminUser         string
	adminPasswordHash string
	jwtProvider       primary.JWTService
	logger            primary.Logger
}

func NewLocalAuthService(cfg *config.JwtConfig, jwtProvider primary.JWTService, logger primary.Logger) IAuthService {
	return &localAuthService{
		adminUser:         cfg.AdminUser,
		adminPasswordHash: cfg.AdminPasswordHash,
		jwtProvider:       jwtProvider,
		logger:            logger,
	}
}

func (g localAuthService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	if g.adminPasswordHash == "" || req.Username != g.adminUser {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, g.adminPasswordHash, req.Password)
	if err != nil || !valid {
		g.logger.Warn("Admin login rejected", "username", req.Username)
		return "", errs.InvalidCredentials
	}

	token, err := g.jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"username":   req.Username,
		"permission": []string{domain.PermissionContestAdmin},
	})
	if err != nil {
		g.logger.Error("Failed to sign admin token", "error", err)
		return "", errs.GeneratingToken
	}
	return token, nil
}

func (g localAuthService) Authorize(ctx context.Context, token string) (domain.AuthPayload, error) {
	valid, err := g.jwtProvider.VerifyTokenHMAC(ctx, token, jwt.SigningMethodHS256.Name)
	if err != nil || !valid {
		return domain.AuthPayload{}, errs.InvalidToken
	}
	payload, err := g.jwtProvider.DecodeTokenPayload(ctx, token)
	if err != nil {
		return domain.AuthPayload{}, errs.InvalidToken
	}
	for _, p := range payload.Permission {
		if p == domain.PermissionContestAdmin {
			return payload, nil
		}
	}
	return domain.AuthPayload{}, errs.Forbidden
}
