package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/handlers"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"github.com/sahilchouksey/career-compass-api/utils/validation"
	"go.uber.org/zap"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	ip := c.IP()

	var user model.User
	if err := h.db.WithContext(c.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Record failed attempt even if user not found
		h.recordFailure(c, ip)
		return response.Unauthorized(c, "Invalid email or password")
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		h.recordFailure(c, ip)
		return response.Unauthorized(c, "Invalid email or password")
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c.Context(), ip)
	}

	tokens, err := h.jwtManager.IssuePair(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	h.logActivity(c, user.ID, model.ActivityTypeLogin)

	return response.Success(c, AuthResponse{User: newUserResponse(&user), Tokens: tokens})
}

func (h *AuthHandler) recordFailure(c *fiber.Ctx, ip string) {
	if h.bruteForceProtection == nil {
		return
	}
	if err := h.bruteForceProtection.RecordFailedAttempt(c.Context(), ip); err != nil {
		h.log.Warn("failed to record login failure", zap.String("ip", ip), zap.Error(err))
	}
}

func (h *AuthHandler) logActivity(c *fiber.Ctx, userID uint, activity model.ActivityType) {
	handlers.LogActivity(c, h.analytics, h.log, userID, activity, "user", userID)
}
