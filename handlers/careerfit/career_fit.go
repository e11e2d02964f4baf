package careerfit

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/handlers"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/services/report"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"go.uber.org/zap"
)

// maxTopN caps the ?top= query parameter
const maxTopN = 50

// CareerFitHandler serves career-fit analyses, exports and reports
type CareerFitHandler struct {
	fit       *services.CareerFitService
	reports   *report.Builder
	analytics *services.AnalyticsService
	log       *zap.Logger
}

// NewCareerFitHandler creates a new career-fit handler. analytics may be nil.
func NewCareerFitHandler(fit *services.CareerFitService, reports *report.Builder, analytics *services.AnalyticsService, log *zap.Logger) *CareerFitHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CareerFitHandler{fit: fit, reports: reports, analytics: analytics, log: log}
}

// PublishRequest is the optional body of POST /career-fit/report
type PublishRequest struct {
	ExpiresInMinutes int `json:"expires_in_minutes"`
}

func parseTop(c *fiber.Ctx) (int, error) {
	raw := c.Query("top")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxTopN {
		return 0, fmt.Errorf("top must be a number between 1 and %d", maxTopN)
	}
	return n, nil
}

// GetAnalysis handles GET /api/v1/career-fit
func (h *CareerFitHandler) GetAnalysis(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	top, err := parseTop(c)
	if err != nil {
		return response.ValidationError(c, map[string]string{"top": err.Error()})
	}

	analysis, err := h.fit.Analyze(c.Context(), userID, services.AnalyzeOptions{TopN: top})
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}

	handlers.LogActivity(c, h.analytics, h.log, userID, model.ActivityTypeCareerFitView, "career_fit", 0)
	return response.Success(c, analysis)
}

// GetCareerFit handles GET /api/v1/career-fit/careers/:slug
func (h *CareerFitHandler) GetCareerFit(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	detail, err := h.fit.AnalyzeCareer(c.Context(), userID, c.Params("slug"))
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, detail)
}

// GetLearningPath handles GET /api/v1/career-fit/careers/:slug/learning-path
func (h *CareerFitHandler) GetLearningPath(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	path, err := h.fit.LearningPath(c.Context(), userID, c.Params("slug"))
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, path)
}

// ExportCSV handles GET /api/v1/career-fit/export.csv
func (h *CareerFitHandler) ExportCSV(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	top, err := parseTop(c)
	if err != nil {
		return response.ValidationError(c, map[string]string{"top": err.Error()})
	}

	analysis, err := h.fit.Analyze(c.Context(), userID, services.AnalyzeOptions{TopN: top})
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}

	var buf bytes.Buffer
	if err := services.ExportCSV(&buf, analysis); err != nil {
		return handlers.ServiceError(c, h.log, err)
	}

	filename := fmt.Sprintf("career-fit-%d-%s.csv", userID, analysis.GeneratedAt.UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// DownloadReport handles GET /api/v1/career-fit/report.pdf
func (h *CareerFitHandler) DownloadReport(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	doc, err := h.reports.Build(c.Context(), user)
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}

	handlers.LogActivity(c, h.analytics, h.log, user.ID, model.ActivityTypeReportDownload, "report", 0)

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	return c.Send(doc.Content)
}

// PublishReport handles POST /api/v1/career-fit/report. The PDF is stored privately and a
// temporary download link is returned.
func (h *CareerFitHandler) PublishReport(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	if !h.reports.CanPublish() {
		return response.ServiceUnavailable(c, "Report storage is not configured, download the PDF instead")
	}

	var req PublishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	if req.ExpiresInMinutes < 0 || req.ExpiresInMinutes > 7*24*60 {
		return response.ValidationError(c, map[string]string{
			"expires_in_minutes": "expires_in_minutes must be between 0 and 10080 (0 uses the 24 hour default)",
		})
	}

	published, err := h.reports.Publish(c.Context(), user, time.Duration(req.ExpiresInMinutes)*time.Minute)
	if errors.Is(err, report.ErrStorageDisabled) {
		return response.ServiceUnavailable(c, "Report storage is not configured")
	}
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}

	handlers.LogActivity(c, h.analytics, h.log, user.ID, model.ActivityTypeReportDownload, "report", 0)
	return response.Created(c, published)
}
