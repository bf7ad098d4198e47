package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/auth"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator checks an access token, revocation included
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error)
}

// JWTConfig holds configuration for the JWT middleware
type JWTConfig struct {
	Validator TokenValidator
	// SkipPaths are exact paths served without a token
	SkipPaths []string
	// SkipPathPrefixes are path prefixes served without a token
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig returns the JWT configuration used by the router
func DefaultJWTConfig(v TokenValidator) JWTConfig {
	return JWTConfig{
		Validator: v,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// JWTAuth requires a valid bearer access token. The claims are stored in
// the gin context and the user id is attached to the request logger.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path, cfg.SkipPaths, cfg.SkipPathPrefixes) {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			code, message := dto.ErrCodeTokenInvalid, "Invalid token"
			if de, ok := shared.AsDomainError(err); ok {
				code, message = de.Code, de.Message
			} else {
				// blacklist store failure, not a client problem
				log.Error("Token validation failed", zap.Error(err))
				abortWithError(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Authentication is temporarily unavailable")
				return
			}
			log.Debug("Rejected access token", zap.String("code", code), zap.String("path", c.Request.URL.Path))
			abortWithError(c, http.StatusUnauthorized, code, message)
			return
		}
		userID, err := claims.UserUUID()
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid user ID in token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)
		c.Set(JWTRoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func skipped(path string, paths, prefixes []string) bool {
	for _, p := range paths {
		if path == p {
			return true
		}
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// GetJWTClaims retrieves the claims stored by JWTAuth
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTUserID returns the caller's user id, or uuid.Nil
func GetJWTUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(JWTUserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetJWTRole returns the caller's role, or ""
func GetJWTRole(c *gin.Context) identity.Role {
	if v, ok := c.Get(JWTRoleKey); ok {
		if role, ok := v.(identity.Role); ok {
			return role
		}
	}
	return ""
}
