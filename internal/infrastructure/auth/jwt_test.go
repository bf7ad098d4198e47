package auth

import (
	"testing"
	"time"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "eyedist-test",
	})
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Meera Shah", "meera@example.com", "secret123", identity.RoleSalesman)
	require.NoError(t, err)
	return u
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})
	assert.Equal(t, []byte("test-secret"), svc.refreshSecret)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	user := newTestUser(t)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, identity.RoleSalesman, claims.Role)
	assert.Equal(t, "meera@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)

	id, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Role)
}

func TestValidate_WrongType(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "shared-secret-for-both-token-kinds",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "eyedist-test",
	})
	pair, err := svc.GenerateTokenPair(newTestUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidate_Expired(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestUser(t))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidate_Tampered(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(config.JWTConfig{Secret: "another-secret-another-secret-xx", Issuer: "eyedist-test", AccessTokenExpiration: time.Minute})
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJWTService()
	claims := svc.claims(newTestUser(t).ID, TokenTypeAccess, time.Now(), time.Minute)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongIssuer(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(newTestUser(t))
	require.NoError(t, err)

	svc.issuer = "someone-else"
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
