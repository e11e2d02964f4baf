package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	authutil "github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"github.com/sahilchouksey/career-compass-api/utils/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	analytics            *services.AnalyticsService
	validator            *validation.Validator
	log                  *zap.Logger
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil when no
// cache is configured.
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection, analytics *services.AnalyticsService, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		analytics:            analytics,
		validator:            validation.NewValidator(),
		log:                  log,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	GradeLevel string `json:"grade_level,omitempty" validate:"omitempty,max=50"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	User   UserResponse        `json:"user"`
	Tokens *authutil.TokenPair `json:"tokens"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	GradeLevel string    `json:"grade_level,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.Role,
		GradeLevel: user.GradeLevel,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// Register handles user registration. Self-registered accounts are always students;
// staff accounts are created by an admin or the seeder.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}
	if valid, problems := validation.ValidatePassword(req.Password); !valid {
		return response.ValidationError(c, map[string]string{"password": strings.Join(problems, "; ")})
	}

	// Check if user already exists
	var existing model.User
	err := h.db.WithContext(c.Context()).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return response.Conflict(c, "User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.InternalServerError(c, "Failed to check existing user")
	}

	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Role:         model.RoleStudent,
		GradeLevel:   req.GradeLevel,
	}
	if err := h.db.WithContext(c.Context()).Create(&user).Error; err != nil {
		h.log.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return response.InternalServerError(c, "Failed to create user")
	}

	tokens, err := h.jwtManager.IssuePair(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	h.log.Info("user registered", zap.Uint("user_id", user.ID))

	return response.Created(c, AuthResponse{User: newUserResponse(&user), Tokens: tokens})
}
