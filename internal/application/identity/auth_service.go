package identity

import (
	"context"
	"errors"
	"time"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. refreshTTL bounds
// how long revocations of refresh tokens are kept.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	refreshTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Login authenticates a user by email and password and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn("Login for unknown email", zap.String("ip", input.IP))
		return nil, invalidCredentials()
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()), zap.String("ip", input.IP))
		return nil, invalidCredentials()
	}
	if !user.CanLogin() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()), zap.String("role", user.Role.String()))
	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

// RefreshToken rotates a refresh token: the presented one is revoked and a
// new pair is issued with the user's current role. Each refresh token is
// redeemed at most once, even by concurrent requests.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	first, err := s.blacklist.RevokeOnce(ctx, claims.ID, claims.RemainingTTL())
	if err != nil {
		return nil, err
	}
	if !first {
		s.logger.Warn("Refresh token redeemed twice", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return pair, nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessTokenID != "" {
		if err := s.blacklist.Revoke(ctx, input.AccessTokenID, input.AccessTokenTTL); err != nil {
			return err
		}
	}
	if input.RefreshToken == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		// an expired or foreign refresh token has nothing left to revoke
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// GetCurrentUser returns the caller's account
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the caller's password and revokes every token
// issued before the change
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.refreshTTL); err != nil {
		s.logger.Error("Failed to revoke tokens after password change", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	s.logger.Info("User password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// ValidateAccessToken checks signature, expiry and revocation of an access
// token. The auth middleware calls it on every request.
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return nil
}

func invalidCredentials() error {
	return shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrInvalidTokenType):
		return shared.NewDomainError("TOKEN_INVALID", "Wrong token type")
	}
	return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
}
