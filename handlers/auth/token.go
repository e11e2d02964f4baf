package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	authutil "github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"github.com/sahilchouksey/career-compass-api/utils/validation"
	"go.uber.org/zap"
)

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshToken exchanges a refresh token for a new pair and revokes the old one
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	claims, err := h.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid or expired refresh token")
	}

	isRevoked, err := h.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return response.Unauthorized(c, "Token has been revoked")
	}

	var user model.User
	if err := h.db.WithContext(c.Context()).First(&user, claims.UserID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token has been invalidated")
	}

	tokens, err := h.jwtManager.IssuePair(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	if err := h.blacklistService.Revoke(c.Context(), claims, authutil.RevokeRefresh); err != nil {
		// The old token still expires on its own
		h.log.Warn("failed to revoke refreshed token", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return response.Success(c, AuthResponse{User: newUserResponse(&user), Tokens: tokens})
}

// Logout revokes the access token used for this request
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.blacklistService.Revoke(c.Context(), claims, authutil.RevokeLogout); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	h.logActivity(c, claims.UserID, model.ActivityTypeLogout)

	return response.SuccessWithMessage(c, "Successfully logged out", nil)
}

// LogoutAll invalidates every token issued to the current user
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.blacklistService.RevokeAllUserTokens(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	h.logActivity(c, userID, model.ActivityTypeLogout)

	return response.SuccessWithMessage(c, "Logged out from all sessions", nil)
}
