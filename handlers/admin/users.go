package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"github.com/sahilchouksey/career-compass-api/utils/validation"
	"gorm.io/gorm"
)

// ListUsersRequest represents the query parameters for listing users
type ListUsersRequest struct {
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
	Role    string `query:"role"`
	Search  string `query:"search"`
	Sort    string `query:"sort"`
	SortDir string `query:"sort_dir"`
}

// UpdateRoleRequest represents the request body for changing a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student counselor admin"`
}

// ResetPasswordRequest represents the request for admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

var sortableUserColumns = map[string]bool{
	"created_at": true,
	"name":       true,
	"email":      true,
	"role":       true,
}

var validate = validation.NewValidator()

// ListUsers retrieves all users with pagination and filters
// GET /admin/users
func ListUsers(c *fiber.Ctx, store database.Storage) error {
	db := store.DB().WithContext(c.Context())

	var req ListUsersRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	// Default pagination
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	if !sortableUserColumns[req.Sort] {
		req.Sort = "created_at"
	}
	if req.SortDir != "asc" && req.SortDir != "desc" {
		req.SortDir = "desc"
	}

	query := db.Model(&model.User{})

	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	// Search by name or email
	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count users")
	}

	var users []model.User
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Order(req.Sort + " " + req.SortDir).Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.Paginated(c, users, response.CalculatePagination(req.Page, req.Limit, total))
}

// GetUser retrieves a specific user with their assessment activity
// GET /admin/users/:id
func GetUser(c *fiber.Ctx, store database.Storage) error {
	db := store.DB().WithContext(c.Context())

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	var stats struct {
		AttemptsStarted   int64 `json:"attempts_started"`
		AttemptsCompleted int64 `json:"attempts_completed"`
		Analyses          int64 `json:"analyses"`
	}
	if err := db.Model(&model.UserAssessmentAttempt{}).Where("user_id = ?", userID).Count(&stats.AttemptsStarted).Error; err != nil {
		return response.InternalServerError(c, "Failed to count attempts")
	}
	if err := db.Model(&model.UserAssessmentAttempt{}).
		Where("user_id = ? AND status = ?", userID, model.AttemptCompleted).
		Count(&stats.AttemptsCompleted).Error; err != nil {
		return response.InternalServerError(c, "Failed to count attempts")
	}
	if err := db.Model(&model.CareerFitSnapshot{}).Where("user_id = ?", userID).Count(&stats.Analyses).Error; err != nil {
		return response.InternalServerError(c, "Failed to count analyses")
	}

	return response.Success(c, fiber.Map{
		"user":  user,
		"stats": stats,
	})
}

// UpdateUserRole changes a user's role and invalidates their tokens
// PUT /admin/users/:id/role
func UpdateUserRole(c *fiber.Ctx, store database.Storage) error {
	db := store.DB().WithContext(c.Context())

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if me, ok := middleware.GetUserID(c); ok && me == uint(userID) {
		return response.BadRequest(c, "Cannot change your own role")
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	// Tokens carry the role, so old ones must stop working
	if err := db.Model(&user).Updates(map[string]interface{}{
		"role":          req.Role,
		"token_version": gorm.Expr("token_version + ?", 1),
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to update user")
	}

	if err := db.First(&user, userID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch user")
	}
	return response.SuccessWithMessage(c, "User role updated", user)
}

// ResetUserPassword allows admin to reset a user's password
// POST /admin/users/:id/reset-password
func ResetUserPassword(c *fiber.Ctx, store database.Storage) error {
	db := store.DB().WithContext(c.Context())

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to hash password")
	}

	// Update user password and increment token version (invalidate all tokens)
	if err := db.Model(&user).Updates(map[string]interface{}{
		"password_hash": hashedPassword,
		"token_version": gorm.Expr("token_version + ?", 1),
	}).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.SuccessWithMessage(c, "Password reset successfully", fiber.Map{
		"user_id": userID,
		"message": "All user sessions have been invalidated",
	})
}
