package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// JWTProvider verifies HS256 tokens issued for this service.
type JWTProvider struct {
	secret []byte
	issuer string
	logger internal.Logger
}

func NewJWTProvider(secret, issuer string, logger internal.Logger) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), issuer: issuer, logger: logger}
}

func (p *JWTProvider) ValidateToken(_ context.Context, token string) (*internal.User, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(p.secret) == 0 {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithIssuer(p.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())
	if err != nil {
		p.logger.Warnf("auth: rejected jwt: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	return &internal.User{ID: subject, Name: name}, nil
}

// Issue signs a token for subject. Used by the CLI to mint tokens for
// non-development deployments.
func (p *JWTProvider) Issue(subject, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"name": name,
		"iss":  p.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
