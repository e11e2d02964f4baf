package assessment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/handlers"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/utils/middleware"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"github.com/sahilchouksey/career-compass-api/utils/validation"
	"go.uber.org/zap"
)

// AssessmentHandler handles assessment and attempt requests
type AssessmentHandler struct {
	service   *services.AssessmentService
	analytics *services.AnalyticsService
	validator *validation.Validator
	log       *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler. analytics may be nil.
func NewAssessmentHandler(service *services.AssessmentService, analytics *services.AnalyticsService, log *zap.Logger) *AssessmentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssessmentHandler{
		service:   service,
		analytics: analytics,
		validator: validation.NewValidator(),
		log:       log,
	}
}

// SaveResponsesRequest is the body of PUT /attempts/:id/responses
type SaveResponsesRequest struct {
	Answers []services.Answer `json:"answers" validate:"required,min=1,dive"`
}

// AttemptResponse is an attempt together with the questions still to answer
type AttemptResponse struct {
	Attempt   *model.UserAssessmentAttempt `json:"attempt"`
	Questions []model.AssessmentQuestion   `json:"questions"`
	ScaleMax  int                          `json:"scale_max"`
}

// ListAssessments handles GET /api/v1/assessments
func (h *AssessmentHandler) ListAssessments(c *fiber.Ctx) error {
	types, err := h.service.ListTypes(c.Context())
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, types)
}

// GetAssessment handles GET /api/v1/assessments/:slug
func (h *AssessmentHandler) GetAssessment(c *fiber.Ctx) error {
	t, err := h.service.GetType(c.Context(), c.Params("slug"))
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, t)
}

// GetProgress handles GET /api/v1/assessments/progress
func (h *AssessmentHandler) GetProgress(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	progress, err := h.service.Progress(c.Context(), userID)
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, progress)
}

// StartAttempt handles POST /api/v1/assessments/:slug/attempts. An open attempt is
// resumed with 200; a new one is answered with 201.
func (h *AssessmentHandler) StartAttempt(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	attempt, created, err := h.service.StartAttempt(c.Context(), userID, c.Params("slug"))
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}

	res := AttemptResponse{
		Attempt:   attempt,
		Questions: attempt.AssessmentType.Questions,
		ScaleMax:  attempt.AssessmentType.ScaleMax,
	}
	if !created {
		return response.Success(c, res)
	}

	handlers.LogActivity(c, h.analytics, h.log, userID, model.ActivityTypeAssessmentStart, "assessment_attempt", attempt.ID)
	return response.Created(c, res)
}

// SaveResponses handles PUT /api/v1/attempts/:id/responses
func (h *AssessmentHandler) SaveResponses(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	attemptID, err := handlers.ParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid attempt ID")
	}

	var req SaveResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	result, err := h.service.SaveResponses(c.Context(), userID, attemptID, req.Answers)
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, result)
}

// CompleteAttempt handles POST /api/v1/attempts/:id/complete
func (h *AssessmentHandler) CompleteAttempt(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	attemptID, err := handlers.ParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid attempt ID")
	}

	if _, err := h.service.CompleteAttempt(c.Context(), user.ID, attemptID); err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	handlers.LogActivity(c, h.analytics, h.log, user.ID, model.ActivityTypeAssessmentComplete, "assessment_attempt", attemptID)

	results, err := h.service.GetResults(c.Context(), user, attemptID)
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.SuccessWithMessage(c, "Assessment completed", results)
}

// GetResults handles GET /api/v1/attempts/:id/results
func (h *AssessmentHandler) GetResults(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}
	attemptID, err := handlers.ParamID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid attempt ID")
	}

	results, err := h.service.GetResults(c.Context(), user, attemptID)
	if err != nil {
		return handlers.ServiceError(c, h.log, err)
	}
	return response.Success(c, results)
}
