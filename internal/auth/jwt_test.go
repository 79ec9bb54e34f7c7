package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{
		SigningKey: "test-signing-key-for-unit-tests",
		Issuer:     "https://api.scm.test",
		Audience:   "scm-admin",
	})
}

func TestGenerateToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateToken("ops@scm", "operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "expected a JWT with three segments")
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), expiresAt, 5*time.Second)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateToken("ops@scm", "operator")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@scm", claims.Subject)
	assert.Equal(t, "operator", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongKey(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(JWTConfig{
		SigningKey: "a-different-signing-key",
		Issuer:     "https://api.scm.test",
		Audience:   "scm-admin",
	})

	token, _, err := other.GenerateToken("ops@scm", "operator")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://api.scm.test",
			Subject:   "ops@scm",
			Audience:  jwt.ClaimStrings{"scm-admin"},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		Role: "operator",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key-for-unit-tests"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(JWTConfig{
		SigningKey: "test-signing-key-for-unit-tests",
		Issuer:     "https://api.scm.test",
		Audience:   "some-other-service",
	})

	token, _, err := other.GenerateToken("ops@scm", "operator")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
