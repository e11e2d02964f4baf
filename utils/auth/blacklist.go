package auth

import (
	"context"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"gorm.io/gorm"
)

// Blacklist reasons
const (
	RevokeLogout  = "logout"
	RevokeRefresh = "token_refresh"
)

// BlacklistService handles JWT token revocation
type BlacklistService struct {
	db *gorm.DB
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(db *gorm.DB) *BlacklistService {
	return &BlacklistService{db: db}
}

// Revoke blacklists the token identified by the claims until it expires
func (s *BlacklistService) Revoke(ctx context.Context, claims *Claims, reason string) error {
	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	entry := model.JWTTokenBlacklist{
		Token:     claims.ID,
		UserID:    claims.UserID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}

	return s.db.WithContext(ctx).Create(&entry).Error
}

// IsTokenRevoked checks if a token is in the blacklist
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.JWTTokenBlacklist{}).
		Where("token = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).
		Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// RevokeAllUserTokens increments user's token version to invalidate all tokens
func (s *BlacklistService) RevokeAllUserTokens(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1)).
		Error
}

// CleanupExpiredTokens hard-deletes blacklist rows whose token has expired and returns how many went
func (s *BlacklistService) CleanupExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Unscoped().
		Where("expires_at < ?", now).
		Delete(&model.JWTTokenBlacklist{})
	return res.RowsAffected, res.Error
}
