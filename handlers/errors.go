package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"go.uber.org/zap"
)

// ServiceError writes the response for an error returned by the services package.
// Unknown errors are logged and reported as 500.
func ServiceError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var incomplete *services.IncompleteAssessmentsError
	if errors.As(err, &incomplete) {
		return response.AssessmentsIncomplete(c, incomplete.Missing)
	}

	var unanswered *services.AttemptIncompleteError
	if errors.As(err, &unanswered) {
		return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity, err.Error(), "ATTEMPT_INCOMPLETE",
			fiber.Map{
				"answered":             unanswered.Answered,
				"total":                unanswered.Total,
				"missing":              unanswered.Missing(),
				"missing_question_ids": unanswered.MissingIDs,
			})
	}

	var badValue *services.ResponseValueError
	if errors.As(err, &badValue) {
		return response.ValidationError(c, map[string]string{
			fmt.Sprintf("answers.%d", badValue.QuestionID): badValue.Error(),
		})
	}

	switch {
	case errors.Is(err, services.ErrQuestionNotInAssessment):
		return response.ValidationError(c, map[string]string{"answers": err.Error()})
	case errors.Is(err, services.ErrAttemptForbidden):
		return response.Forbidden(c, "You do not have access to this assessment attempt")
	case errors.Is(err, services.ErrAssessmentTypeNotFound):
		return response.NotFound(c, "Assessment not found")
	case errors.Is(err, services.ErrAttemptNotFound):
		return response.NotFound(c, "Assessment attempt not found")
	case errors.Is(err, services.ErrCareerNotFound):
		return response.NotFound(c, "Career not found")
	case errors.Is(err, services.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, services.ErrAttemptCompleted):
		return response.Conflict(c, "Assessment attempt is no longer in progress")
	case errors.Is(err, services.ErrAttemptNotCompleted):
		return response.Conflict(c, "Assessment attempt has not been completed yet")
	}

	if log != nil {
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return response.InternalServerError(c, "")
}

// ParamID parses a positive numeric route parameter
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
