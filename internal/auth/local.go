package auth

import (
	"context"
	"crypto/subtle"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// LocalAuthProvider accepts a single shared token and maps it to the demo
// user.
type LocalAuthProvider struct {
	Token  string
	logger internal.Logger
}

func NewLocalAuthProvider(token string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, logger: logger}
}

func (a *LocalAuthProvider) ValidateToken(_ context.Context, token string) (*internal.User, error) {
	if a.Token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) == 1 {
		return &internal.User{ID: "u1", Name: "Demo User"}, nil
	}
	a.logger.Warnf("auth: rejected static token")
	return nil, ErrInvalidToken
}
