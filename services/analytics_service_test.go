package services

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	seedAssessments(t, db)
	seedCatalog(t, db)
	ctx := context.Background()

	assessments := NewAssessmentService(db, nil, nil)
	fit := NewCareerFitService(db, assessments, nil, scoring.DefaultWeights(), 10, nil)
	analytics := NewAnalyticsService(db)

	ready := createUser(t, db, "ready@example.com", model.RoleStudent)
	partial := createUser(t, db, "partial@example.com", model.RoleStudent)

	completeAllAssessments(t, assessments, ready.ID)
	answerAll(t, assessments, partial.ID, model.AssessmentRIASEC, interestAnswers)
	_, _, err := assessments.StartAttempt(ctx, partial.ID, model.AssessmentSkills)
	require.NoError(t, err)

	_, err = fit.Analyze(ctx, ready.ID, AnalyzeOptions{})
	require.NoError(t, err)

	require.NoError(t, analytics.LogActivity(ctx, ready.ID, model.ActivityTypeReportDownload, "report", 0, "127.0.0.1", "test"))
	require.NoError(t, analytics.LogActivity(ctx, ready.ID, model.ActivityTypeCareerFitView, "career_fit", 0, "127.0.0.1", "test"))

	stats, err := analytics.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveUsers)
	assert.Equal(t, int64(2), stats.TotalCareers)
	assert.Equal(t, int64(3), stats.TotalCourses)
	assert.Equal(t, int64(5), stats.AttemptsStarted)
	assert.Equal(t, int64(4), stats.AttemptsCompleted)
	assert.Equal(t, 80.0, stats.CompletionRate)
	assert.Equal(t, int64(1), stats.UsersReadyForFit)
	assert.Equal(t, int64(1), stats.AnalysesRun)
	assert.Equal(t, int64(1), stats.ReportsDownloaded7d)
}

func TestTopCareers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	analytics := NewAnalyticsService(db)

	earlier := time.Now().UTC().Add(-time.Hour)
	snapshots := []model.CareerFitSnapshot{
		{UserID: 1, TopMatches: []model.SnapshotMatch{{Slug: "artist"}}, ComputedAt: earlier},
		{UserID: 2, TopMatches: []model.SnapshotMatch{{Slug: "developer"}}, ComputedAt: earlier},
		{UserID: 3, TopMatches: []model.SnapshotMatch{{Slug: "developer"}}, ComputedAt: earlier},
	}
	require.NoError(t, db.Create(&snapshots).Error)
	// a newer snapshot replaces the user's older best match
	require.NoError(t, db.Create(&model.CareerFitSnapshot{
		UserID:     1,
		TopMatches: []model.SnapshotMatch{{Slug: "developer"}},
		ComputedAt: time.Now().UTC(),
	}).Error)

	top, err := analytics.GetTopCareers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, TopCareer{Slug: "developer", TimesBest: 3}, top[0])
}
