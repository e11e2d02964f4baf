package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssessmentFixture(t *testing.T) (*AssessmentService, *memoryCache, *model.User) {
	t.Helper()
	db := newTestDB(t)
	seedAssessments(t, db)
	fc := newMemoryCache()
	user := createUser(t, db, "student@example.com", model.RoleStudent)
	return NewAssessmentService(db, fc, nil), fc, user
}

func TestListTypesAndGetType(t *testing.T) {
	svc, _, _ := newAssessmentFixture(t)
	ctx := context.Background()

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, model.AssessmentRIASEC, types[0].Slug)
	assert.Equal(t, 6, types[0].QuestionCount)
	assert.Equal(t, 2, types[1].QuestionCount)

	riasec, err := svc.GetType(ctx, model.AssessmentRIASEC)
	require.NoError(t, err)
	require.Len(t, riasec.Questions, 6)
	assert.Equal(t, "realistic", riasec.Questions[0].Category)

	_, err = svc.GetType(ctx, "astrology")
	assert.ErrorIs(t, err, ErrAssessmentTypeNotFound)
}

func TestStartAttemptReusesInProgress(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	first, created, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.AttemptInProgress, first.Status)

	again, created, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
}

func TestSaveResponses(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	attempt, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	q1 := attempt.AssessmentType.Questions[0].ID

	res, err := svc.SaveResponses(ctx, user.ID, attempt.ID, []Answer{{QuestionID: q1, Value: 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Saved)
	assert.Equal(t, 1, res.Answered)
	assert.Equal(t, 2, res.Total)

	// answering again replaces the value
	res, err = svc.SaveResponses(ctx, user.ID, attempt.ID, []Answer{{QuestionID: q1, Value: 4}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Answered)

	var stored model.UserAssessmentResponse
	require.NoError(t, svc.db.Where("attempt_id = ? AND question_id = ?", attempt.ID, q1).First(&stored).Error)
	assert.Equal(t, 4, stored.Value)
}

func TestSaveResponsesRejections(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	attempt, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	q1 := attempt.AssessmentType.Questions[0].ID
	q2 := attempt.AssessmentType.Questions[1].ID

	riasec, err := svc.GetType(ctx, model.AssessmentRIASEC)
	require.NoError(t, err)
	foreign := riasec.Questions[0].ID

	other := createUser(t, svc.db, "other@example.com", model.RoleStudent)

	tests := []struct {
		name    string
		userID  uint
		attempt uint
		answers []Answer
		want    error
	}{
		{"value above scale", user.ID, attempt.ID, []Answer{{QuestionID: q1, Value: 3}, {QuestionID: q2, Value: 6}}, ErrInvalidResponseValue},
		{"value below scale", user.ID, attempt.ID, []Answer{{QuestionID: q1, Value: 0}}, ErrInvalidResponseValue},
		{"question from another assessment", user.ID, attempt.ID, []Answer{{QuestionID: foreign, Value: 3}}, ErrQuestionNotInAssessment},
		{"someone else's attempt", other.ID, attempt.ID, []Answer{{QuestionID: q1, Value: 3}}, ErrAttemptForbidden},
		{"unknown attempt", user.ID, 9999, []Answer{{QuestionID: q1, Value: 3}}, ErrAttemptNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveResponses(ctx, tt.userID, tt.attempt, tt.answers)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// a rejected batch stores nothing, not even its valid answers
	var count int64
	require.NoError(t, svc.db.Model(&model.UserAssessmentResponse{}).Where("attempt_id = ?", attempt.ID).Count(&count).Error)
	assert.Zero(t, count)

	var valueErr *ResponseValueError
	_, err = svc.SaveResponses(ctx, user.ID, attempt.ID, []Answer{{QuestionID: q2, Value: 9}})
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, q2, valueErr.QuestionID)
	assert.Equal(t, 5, valueErr.ScaleMax)
}

func TestCompleteAttempt(t *testing.T) {
	svc, fc, user := newAssessmentFixture(t)
	ctx := context.Background()

	attempt, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentRIASEC)
	require.NoError(t, err)

	_, err = svc.CompleteAttempt(ctx, user.ID, attempt.ID)
	var incomplete *AttemptIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.ErrorIs(t, err, ErrAttemptIncomplete)
	assert.Equal(t, 6, incomplete.Missing())
	require.Len(t, incomplete.MissingIDs, 6)
	assert.Equal(t, attempt.AssessmentType.Questions[0].ID, incomplete.MissingIDs[0])

	// only the unanswered questions are listed
	questions := attempt.AssessmentType.Questions
	_, err = svc.SaveResponses(ctx, user.ID, attempt.ID, []Answer{{QuestionID: questions[0].ID, Value: 3}, {QuestionID: questions[2].ID, Value: 3}})
	require.NoError(t, err)
	_, err = svc.CompleteAttempt(ctx, user.ID, attempt.ID)
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 2, incomplete.Answered)
	assert.Equal(t, []uint{questions[1].ID, questions[3].ID, questions[4].ID, questions[5].ID}, incomplete.MissingIDs)

	fc.entries[careerFitCacheKey(user.ID)] = []byte(`{}`)

	completed := answerAll(t, svc, user.ID, model.AssessmentRIASEC, interestAnswers)
	assert.Equal(t, attempt.ID, completed.ID)
	assert.Equal(t, model.AttemptCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.Len(t, completed.CategoryScores, 6)
	assert.Equal(t, "investigative", completed.CategoryScores[0].Category)
	assert.Equal(t, 100.0, completed.CategoryScores[0].Score)
	assert.Equal(t, "Expert", completed.CategoryScores[0].Level)
	assert.False(t, fc.has(careerFitCacheKey(user.ID)), "completing an assessment drops the cached analysis")

	_, err = svc.CompleteAttempt(ctx, user.ID, attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptCompleted)

	_, err = svc.SaveResponses(ctx, user.ID, attempt.ID, []Answer{{QuestionID: attempt.AssessmentType.Questions[0].ID, Value: 1}})
	assert.ErrorIs(t, err, ErrAttemptCompleted)

	// a new attempt can be started once the previous one is completed
	next, created, err := svc.StartAttempt(ctx, user.ID, model.AssessmentRIASEC)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, attempt.ID, next.ID)
}

func TestCompleteAttemptOnlyOnce(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	attempt, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	answers := make([]Answer, 0, len(attempt.AssessmentType.Questions))
	for _, q := range attempt.AssessmentType.Questions {
		answers = append(answers, Answer{QuestionID: q.ID, Value: 4})
	}
	_, err = svc.SaveResponses(ctx, user.ID, attempt.ID, answers)
	require.NoError(t, err)

	const callers = 4
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CompleteAttempt(ctx, user.ID, attempt.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrAttemptCompleted)
	}
	assert.Equal(t, 1, succeeded)
}

func TestOneOpenAttemptPerAssessment(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	attempt, created, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	require.True(t, created)

	duplicate := model.UserAssessmentAttempt{
		UserID:           user.ID,
		AssessmentTypeID: attempt.AssessmentTypeID,
		Status:           model.AttemptInProgress,
		StartedAt:        time.Now().UTC(),
	}
	assert.Error(t, svc.db.Create(&duplicate).Error)

	// finished attempts do not count against the open one
	finished := model.UserAssessmentAttempt{
		UserID:           user.ID,
		AssessmentTypeID: attempt.AssessmentTypeID,
		Status:           model.AttemptAbandoned,
		StartedAt:        time.Now().UTC(),
	}
	require.NoError(t, svc.db.Create(&finished).Error)

	again, created, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, attempt.ID, again.ID)
}

func TestGetResults(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	completed := answerAll(t, svc, user.ID, model.AssessmentRIASEC, interestAnswers)

	res, err := svc.GetResults(ctx, user, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentRIASEC, res.Assessment)
	assert.Equal(t, "IRC", res.HollandCode)
	assert.Len(t, res.Categories, 6)

	stranger := createUser(t, svc.db, "stranger@example.com", model.RoleStudent)
	_, err = svc.GetResults(ctx, stranger, completed.ID)
	assert.ErrorIs(t, err, ErrAttemptForbidden)

	counselor := createUser(t, svc.db, "counselor@example.com", model.RoleCounselor)
	res, err = svc.GetResults(ctx, counselor, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.UserID)

	open, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	_, err = svc.GetResults(ctx, user, open.ID)
	assert.ErrorIs(t, err, ErrAttemptNotCompleted)
}

func TestProgressAndLatestCompleted(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	answerAll(t, svc, user.ID, model.AssessmentRIASEC, interestAnswers)
	open, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	_, err = svc.SaveResponses(ctx, user.ID, open.ID, []Answer{{QuestionID: open.AssessmentType.Questions[0].ID, Value: 3}})
	require.NoError(t, err)

	progress, err := svc.Progress(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, progress, 3)
	assert.Equal(t, ProgressCompleted, progress[0].Status)
	assert.Equal(t, 6, progress[0].Answered)
	assert.Equal(t, ProgressInProgress, progress[1].Status)
	assert.Equal(t, 1, progress[1].Answered)
	assert.Equal(t, 2, progress[1].Total)
	assert.Equal(t, ProgressNotStarted, progress[2].Status)
	assert.Nil(t, progress[2].AttemptID)

	latest, err := svc.LatestCompleted(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, latest, 1)
	assert.Contains(t, latest, model.AssessmentRIASEC)
}

func TestAbandonStale(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	stale, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	fresh, _, err := svc.StartAttempt(ctx, user.ID, model.AssessmentPersonality)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, svc.db.Model(&model.UserAssessmentAttempt{}).
		Where("id = ?", stale.ID).
		UpdateColumn("updated_at", now.Add(-100*time.Hour)).Error)

	n, err := svc.AbandonStale(ctx, 72*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var reloaded model.UserAssessmentAttempt
	require.NoError(t, svc.db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, model.AttemptAbandoned, reloaded.Status)
	require.NoError(t, svc.db.First(&reloaded, fresh.ID).Error)
	assert.Equal(t, model.AttemptInProgress, reloaded.Status)
}

func TestStats(t *testing.T) {
	svc, _, user := newAssessmentFixture(t)
	ctx := context.Background()

	answerAll(t, svc, user.ID, model.AssessmentSkills, skillAnswers)
	other := createUser(t, svc.db, "second@example.com", model.RoleStudent)
	answerAll(t, svc, other.ID, model.AssessmentSkills, map[string]int{"programming": 2, "communication": 3})
	_, _, err := svc.StartAttempt(ctx, other.ID, model.AssessmentSkills)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	skills := stats[1]
	assert.Equal(t, model.AssessmentSkills, skills.Assessment)
	assert.Equal(t, int64(3), skills.Started)
	assert.Equal(t, int64(2), skills.Completed)
	assert.Equal(t, int64(1), skills.InProgress)
	assert.InDelta(t, 66.67, skills.CompletionRate, 0.001)
	// programming: (75 + 25) / 2, communication: (100 + 50) / 2
	assert.InDelta(t, 50.0, skills.CategoryMeans["programming"], 0.001)
	assert.InDelta(t, 75.0, skills.CategoryMeans["communication"], 0.001)

	assert.Equal(t, int64(0), stats[0].Started)
}
