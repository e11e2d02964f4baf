package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
	}
}

// authError carries the message shown to the client; internal marks a 500
type authError struct {
	message  string
	internal bool
}

func (e *authError) Error() string { return e.message }

// Required is middleware that requires a valid access token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, claims, err := m.authenticate(c)
		if err != nil {
			var ae *authError
			if errors.As(err, &ae) && ae.internal {
				return response.InternalServerError(c, ae.message)
			}
			return response.Unauthorized(c, err.Error())
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("claims", claims)
		c.Locals("user", user)

		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, *auth.Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil, &authError{message: "Missing authorization token"}
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, &authError{message: "Invalid authorization format"}
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, &authError{message: "Token has expired"}
		}
		return nil, nil, &authError{message: "Invalid token"}
	}

	if claims.TokenType != auth.TokenTypeAccess {
		return nil, nil, &authError{message: "Invalid token type"}
	}

	isRevoked, err := m.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return nil, nil, &authError{message: "Failed to check token status", internal: true}
	}
	if isRevoked {
		return nil, nil, &authError{message: "Token has been revoked"}
	}

	var user model.User
	if err := m.db.WithContext(c.Context()).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &authError{message: "User not found"}
		}
		return nil, nil, &authError{message: "Failed to load user", internal: true}
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, &authError{message: "Token has been invalidated"}
	}

	return &user, claims, nil
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	u, ok := c.Locals("user").(*model.User)
	return u, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok
}
