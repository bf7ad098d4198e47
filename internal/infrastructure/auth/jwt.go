package auth

import (
	"errors"
	"time"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims carries the caller identity. Role drives row visibility, so
// it is re-read from the user record on refresh.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string        `json:"user_id"`
	Email     string        `json:"email,omitempty"`
	Name      string        `json:"name,omitempty"`
	Role      identity.Role `json:"role,omitempty"`
	TokenType TokenType     `json:"token_type"`
}

// UserUUID parses the user id claim
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// IssuedAtTime returns the iat claim, or the zero time
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// RemainingTTL is how long until the token expires, never negative
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

// TokenPair is returned on login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// JWTService issues and validates HS256 tokens
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
	now               func() time.Time
}

// NewJWTService creates a JWTService. Refresh tokens share the access
// secret when no refresh secret is configured.
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     []byte(refreshSecret),
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
		now:               time.Now,
	}
}

// GenerateTokenPair issues a fresh access/refresh pair for user
func (s *JWTService) GenerateTokenPair(user *identity.User) (*TokenPair, error) {
	now := s.now()
	access := s.claims(user.ID, TokenTypeAccess, now, s.accessExpiration)
	access.Email = user.Email
	access.Name = user.Name
	access.Role = user.Role

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString(s.accessSecret)
	if err != nil {
		return nil, err
	}

	refresh := s.claims(user.ID, TokenTypeRefresh, now, s.refreshExpiration)
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString(s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.accessExpiration),
		RefreshTokenExpiresAt: now.Add(s.refreshExpiration),
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) claims(userID uuid.UUID, typ TokenType, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    userID.String(),
		TokenType: typ,
	}
}

// ValidateAccessToken parses an access token and returns its claims
func (s *JWTService) ValidateAccessToken(token string) (*Claims, error) {
	return s.validate(token, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken parses a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.validate(token, s.refreshSecret, TokenTypeRefresh)
}

func (s *JWTService) validate(tokenString string, secret []byte, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != expected {
		return nil, ErrInvalidTokenType
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// AccessTokenExpiration returns the configured access token lifetime
func (s *JWTService) AccessTokenExpiration() time.Duration {
	return s.accessExpiration
}
