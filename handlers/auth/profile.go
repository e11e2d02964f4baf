package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"github.com/sahilchouksey/career-compass-api/utils/validation"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	GradeLevel string `json:"grade_level,omitempty" validate:"omitempty,max=50"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, newUserResponse(user))
}

// UpdateProfile updates the current user's profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.GradeLevel != "" {
		updates["grade_level"] = req.GradeLevel
	}
	if len(updates) > 0 {
		if err := h.db.WithContext(c.Context()).Model(user).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	var fresh model.User
	if err := h.db.WithContext(c.Context()).First(&fresh, user.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to load profile")
	}
	return response.Success(c, newUserResponse(&fresh))
}

// ChangePassword replaces the password and signs the user out everywhere
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}
	if valid, problems := validation.ValidatePassword(req.NewPassword); !valid {
		return response.ValidationError(c, map[string]string{"new_password": strings.Join(problems, "; ")})
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}
	if err := h.db.WithContext(c.Context()).Model(user).Update("password_hash", hash).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}
	if err := h.blacklistService.RevokeAllUserTokens(c.Context(), user.ID); err != nil {
		return response.InternalServerError(c, "Failed to invalidate sessions")
	}

	return response.SuccessWithMessage(c, "Password changed, please log in again", nil)
}
