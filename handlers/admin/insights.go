package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/handlers"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InsightsHandler serves aggregate assessment and career-fit data to staff
type InsightsHandler struct {
	db          *gorm.DB
	assessments *services.AssessmentService
	fit         *services.CareerFitService
	analytics   *services.AnalyticsService
	log         *zap.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(db *gorm.DB, assessments *services.AssessmentService, fit *services.CareerFitService, analytics *services.AnalyticsService, log *zap.Logger) *InsightsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InsightsHandler{db: db, assessments: assessments, fit: fit, analytics: analytics, log: log}
}

// GetDashboard handles GET /api/v1/admin/dashboard
func (h *InsightsHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.analytics.GetDashboardStats(c.Context())
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, stats)
}

// GetTopCareers handles GET /api/v1/admin/careers/top?limit=
func (h *InsightsHandler) GetTopCareers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	top, err := h.analytics.GetTopCareers(c.Context(), limit)
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, top)
}

// GetAssessmentStats handles GET /api/v1/admin/assessments/stats
func (h *InsightsHandler) GetAssessmentStats(c *fiber.Ctx) error {
	stats, err := h.assessments.Stats(c.Context())
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, stats)
}

// GetUserCareerFit handles GET /api/v1/admin/users/:id/career-fit, the analysis of any
// user for counselors and admins
func (h *InsightsHandler) GetUserCareerFit(c *fiber.Ctx) error {
	userID, err := handlers.ParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := h.db.WithContext(c.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handlers.ServiceError(c, h.log, services.ErrUserNotFound)
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	top, _ := strconv.Atoi(c.Query("top", "0"))
	analysis, err := h.fit.Analyze(c.Context(), user.ID, services.AnalyzeOptions{TopN: top})
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, analysis)
}
