package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"go.uber.org/zap"
)

// LogActivity records a user action for the admin dashboard. Failures are logged only.
func LogActivity(c *fiber.Ctx, analytics *services.AnalyticsService, log *zap.Logger, userID uint, activity model.ActivityType, resourceType string, resourceID uint) {
	if analytics == nil {
		return
	}
	err := analytics.LogActivity(c.Context(), userID, activity, resourceType, resourceID, c.IP(), c.Get(fiber.HeaderUserAgent))
	if err != nil && log != nil {
		log.Warn("failed to log activity", zap.Uint("user_id", userID), zap.String("activity", string(activity)), zap.Error(err))
	}
}
