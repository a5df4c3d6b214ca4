package auth

import (
	"context"
	"errors"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Provider turns a bearer token into the calling user.
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*internal.User, error)
}

// NewProvider picks the static token in development and signed JWTs
// everywhere else.
func NewProvider(cfg *config.Config, logger internal.Logger) Provider {
	if cfg.Env == "development" {
		return NewLocalAuthProvider(cfg.APIToken, logger)
	}
	return NewJWTProvider(cfg.JWTSecret, cfg.JWTIssuer, logger)
}
