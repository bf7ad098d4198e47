package handler

import (
	identityapp "github.com/eyedist/backend/internal/application/identity"
	"github.com/eyedist/backend/internal/infrastructure/auth"
	"github.com/eyedist/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=200" example:"admin@example.com"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke with the session
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token auth.TokenPair           `json:"token"`
	User  identityapp.UserResponse `json:"user"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	userService *identityapp.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService, userService *identityapp.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token: auth.TokenPair{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: result.User,
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new token pair. The old refresh token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=auth.TokenPair}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), identityapp.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pair)
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the current access token and, when given, the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Refresh token to revoke"
// @Success      200 {object} dto.Response{data=MessageResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req LogoutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	err := h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		AccessTokenID:  claims.ID,
		AccessTokenTTL: claims.RemainingTTL(),
		RefreshToken:   req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Logged out successfully"})
}

// GetCurrentUser godoc
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetCurrentUser(c.Request.Context(), middleware.GetJWTUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Change the caller's name and phone
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateProfileRequest true "Profile"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req identityapp.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Change the caller's password. Every token issued before the change is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      200 {object} dto.Response{data=MessageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	err := h.authService.ChangePassword(c.Request.Context(), identityapp.ChangePasswordInput{
		UserID:      middleware.GetJWTUserID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Password changed, please log in again"})
}
