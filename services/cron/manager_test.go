package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *CronManager {
	t.Helper()
	store, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	db := store.DB()
	require.NoError(t, database.RunSeeds(db, nil))

	assessments := services.NewAssessmentService(db, nil, nil)
	fit := services.NewCareerFitService(db, assessments, nil, scoring.DefaultWeights(), 10, nil)
	return NewCronManager(db, assessments, fit, Options{AbandonAfter: 48 * time.Hour}, nil)
}

func lastLog(t *testing.T, m *CronManager, job string) model.CronJobLog {
	t.Helper()
	var entry model.CronJobLog
	require.NoError(t, m.db.Where("job_name = ?", job).Order("id DESC").First(&entry).Error)
	return entry
}

func TestRegisterJobs(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.registerJobs())
	assert.Len(t, m.cron.Entries(), 2)
}

func TestAbandonStaleAttemptsJob(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	user := &model.User{Email: "idle@example.com", PasswordHash: "x", Name: "Idle"}
	require.NoError(t, m.db.Create(user).Error)
	attempt, _, err := m.assessments.StartAttempt(ctx, user.ID, model.AssessmentSkills)
	require.NoError(t, err)
	require.NoError(t, m.db.Model(&model.UserAssessmentAttempt{}).
		Where("id = ?", attempt.ID).
		UpdateColumn("updated_at", time.Now().UTC().Add(-49*time.Hour)).Error)

	m.run(JobAbandonStaleAttempts, time.Minute, m.AbandonStaleAttempts)

	entry := lastLog(t, m, JobAbandonStaleAttempts)
	assert.Equal(t, model.CronStatusCompleted, entry.Status)
	assert.Equal(t, int64(1), entry.Affected)
	assert.NotNil(t, entry.CompletedAt)
	assert.Contains(t, entry.Message, "Abandoned 1 attempts")

	var reloaded model.UserAssessmentAttempt
	require.NoError(t, m.db.First(&reloaded, attempt.ID).Error)
	assert.Equal(t, model.AttemptAbandoned, reloaded.Status)
}

func TestCleanupExpiredDataJob(t *testing.T) {
	m := newTestManager(t)
	now := time.Now().UTC()

	require.NoError(t, m.db.Create(&[]model.JWTTokenBlacklist{
		{Token: "expired-jti", UserID: 1, Reason: "logout", ExpiresAt: now.Add(-time.Hour)},
		{Token: "live-jti", UserID: 1, Reason: "logout", ExpiresAt: now.Add(time.Hour)},
	}).Error)
	require.NoError(t, m.db.Create(&[]model.CareerFitSnapshot{
		{UserID: 1, HollandCode: "IRC", ComputedAt: now.Add(-200 * 24 * time.Hour)},
		{UserID: 1, HollandCode: "IRC", ComputedAt: now.Add(-time.Hour)},
	}).Error)

	m.run(JobCleanupExpiredData, time.Minute, m.CleanupExpiredData)

	entry := lastLog(t, m, JobCleanupExpiredData)
	assert.Equal(t, model.CronStatusCompleted, entry.Status)
	assert.Equal(t, int64(2), entry.Affected)

	var tokens, snapshots int64
	require.NoError(t, m.db.Unscoped().Model(&model.JWTTokenBlacklist{}).Count(&tokens).Error)
	require.NoError(t, m.db.Model(&model.CareerFitSnapshot{}).Count(&snapshots).Error)
	assert.Equal(t, int64(1), tokens)
	assert.Equal(t, int64(1), snapshots)
}

func TestRunRecordsFailure(t *testing.T) {
	m := newTestManager(t)

	m.run("broken", time.Minute, func(context.Context) (int64, string, error) {
		return 0, "", errors.New("disk full")
	})

	entry := lastLog(t, m, "broken")
	assert.Equal(t, model.CronStatusFailed, entry.Status)
	assert.Equal(t, "disk full", entry.ErrorMsg)
}
