package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
)

func TestLocalAuthProvider(t *testing.T) {
	p := NewLocalAuthProvider("MOCK-TOKEN", internal.NopLogger())

	user, err := p.ValidateToken(context.Background(), "MOCK-TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = p.ValidateToken(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewLocalAuthProvider("", internal.NopLogger()).ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTProvider(t *testing.T) {
	p := NewJWTProvider("s3cret", "terpfit", internal.NopLogger())

	tok, err := p.Issue("student-1", "Testudo", time.Hour)
	require.NoError(t, err)
	user, err := p.ValidateToken(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "student-1", user.ID)
	assert.Equal(t, "Testudo", user.Name)

	expired, err := p.Issue("student-1", "Testudo", -time.Minute)
	require.NoError(t, err)
	_, err = p.ValidateToken(context.Background(), expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewJWTProvider("different", "terpfit", internal.NopLogger()).Issue("student-1", "", time.Hour)
	require.NoError(t, err)
	_, err = p.ValidateToken(context.Background(), other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewJWTProvider("s3cret", "someone-else", internal.NopLogger()).Issue("student-1", "", time.Hour)
	require.NoError(t, err)
	_, err = p.ValidateToken(context.Background(), wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "terpfit",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = p.ValidateToken(context.Background(), noSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewProviderByEnv(t *testing.T) {
	cfg := config.New()
	cfg.Env = "development"
	assert.IsType(t, &LocalAuthProvider{}, NewProvider(cfg, internal.NopLogger()))

	cfg.Env = "production"
	cfg.JWTSecret = "s3cret"
	assert.IsType(t, &JWTProvider{}, NewProvider(cfg, internal.NopLogger()))
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(NewLocalAuthProvider("MOCK-TOKEN", internal.NopLogger())), func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentUser(c))
	})

	tests := []struct {
		header string
		want   int
	}{
		{"Bearer MOCK-TOKEN", http.StatusOK},
		{"Bearer  MOCK-TOKEN ", http.StatusOK},
		{"MOCK-TOKEN", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, tt.header)
	}
}
