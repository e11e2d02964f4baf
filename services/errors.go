package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAssessmentTypeNotFound  = errors.New("assessment type not found")
	ErrAttemptNotFound         = errors.New("assessment attempt not found")
	ErrAttemptForbidden        = errors.New("assessment attempt belongs to another user")
	ErrAttemptCompleted        = errors.New("assessment attempt is no longer in progress")
	ErrAttemptNotCompleted     = errors.New("assessment attempt has not been completed")
	ErrAttemptIncomplete       = errors.New("assessment attempt has unanswered questions")
	ErrQuestionNotInAssessment = errors.New("question does not belong to this assessment")
	ErrInvalidResponseValue    = errors.New("response value is outside the answer scale")
	ErrAssessmentsIncomplete   = errors.New("prerequisite assessments are incomplete")
	ErrCareerNotFound          = errors.New("career not found")
	ErrUserNotFound            = errors.New("user not found")
)

// AttemptIncompleteError reports which questions of an attempt are still unanswered
type AttemptIncompleteError struct {
	Answered   int
	Total      int
	MissingIDs []uint // in question order
}

func (e *AttemptIncompleteError) Error() string {
	return fmt.Sprintf("%d of %d questions unanswered", e.Total-e.Answered, e.Total)
}

func (e *AttemptIncompleteError) Unwrap() error { return ErrAttemptIncomplete }

// Missing is the number of unanswered questions
func (e *AttemptIncompleteError) Missing() int { return e.Total - e.Answered }

// IncompleteAssessmentsError lists the assessment slugs a user has not completed yet
type IncompleteAssessmentsError struct {
	Missing []string
}

func (e *IncompleteAssessmentsError) Error() string {
	return fmt.Sprintf("complete these assessments first: %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteAssessmentsError) Unwrap() error { return ErrAssessmentsIncomplete }

// ResponseValueError names the question whose answer was out of range
type ResponseValueError struct {
	QuestionID uint
	Value      int
	ScaleMax   int
}

func (e *ResponseValueError) Error() string {
	return fmt.Sprintf("question %d: value %d must be between 1 and %d", e.QuestionID, e.Value, e.ScaleMax)
}

func (e *ResponseValueError) Unwrap() error { return ErrInvalidResponseValue }
