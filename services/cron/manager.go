package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Schedules (seconds precision)
const (
	ScheduleAbandonStale = "0 0 * * * *" // hourly
	ScheduleCleanup      = "0 0 3 * * *" // daily at 03:00
)

// Job names as recorded in cron_job_logs
const (
	JobAbandonStaleAttempts = "abandon_stale_attempts"
	JobCleanupExpiredData   = "cleanup_expired_data"
)

// SnapshotRetention is how long career-fit snapshots are kept
const SnapshotRetention = 180 * 24 * time.Hour

// Options configures the maintenance jobs
type Options struct {
	AbandonAfter time.Duration
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron        *cron.Cron
	db          *gorm.DB
	assessments *services.AssessmentService
	fit         *services.CareerFitService
	blacklist   *auth.BlacklistService
	opts        Options
	log         *zap.Logger
	now         func() time.Time
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, assessments *services.AssessmentService, fit *services.CareerFitService, opts Options, log *zap.Logger) *CronManager {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.AbandonAfter <= 0 {
		opts.AbandonAfter = 72 * time.Hour
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC))

	return &CronManager{
		cron:        c,
		db:          db,
		assessments: assessments,
		fit:         fit,
		blacklist:   auth.NewBlacklistService(db),
		opts:        opts,
		log:         log.Named("cron"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	m.log.Info("starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.log.Info("cron jobs started", zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	m.log.Info("stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	_, err := m.cron.AddFunc(ScheduleAbandonStale, func() {
		m.run(JobAbandonStaleAttempts, 5*time.Minute, m.AbandonStaleAttempts)
	})
	if err != nil {
		return err
	}

	_, err = m.cron.AddFunc(ScheduleCleanup, func() {
		m.run(JobCleanupExpiredData, 10*time.Minute, m.CleanupExpiredData)
	})
	if err != nil {
		return err
	}

	return nil
}

// jobFunc does one unit of maintenance and reports how many rows it touched
type jobFunc func(ctx context.Context) (affected int64, message string, err error)

// run executes a job with a timeout and records it in cron_job_logs
func (m *CronManager) run(name string, timeout time.Duration, job jobFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entry := m.logJobStart(name)
	affected, message, err := job(ctx)
	if err != nil {
		m.logJobError(entry, err)
		return
	}
	m.logJobComplete(entry, affected, message)
}

// logJobStart records the start of a cron job
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	m.log.Info("job started", zap.String("job", jobName))

	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronStatusRunning,
		StartedAt: m.now(),
	}
	if err := m.db.Create(entry).Error; err != nil {
		m.log.Warn("failed to record job start", zap.String("job", jobName), zap.Error(err))
	}
	return entry
}

// logJobComplete records successful completion of a cron job
func (m *CronManager) logJobComplete(entry *model.CronJobLog, affected int64, message string) {
	finished := m.now()
	duration := finished.Sub(entry.StartedAt)
	m.log.Info("job completed",
		zap.String("job", entry.JobName),
		zap.Int64("affected", affected),
		zap.Duration("duration", duration),
		zap.String("message", message))

	m.finish(entry, map[string]interface{}{
		"status":       model.CronStatusCompleted,
		"completed_at": finished,
		"duration_ms":  duration.Milliseconds(),
		"affected":     affected,
		"message":      message,
	})
}

// logJobError records a cron job failure
func (m *CronManager) logJobError(entry *model.CronJobLog, err error) {
	finished := m.now()
	m.log.Error("job failed", zap.String("job", entry.JobName), zap.Error(err))

	m.finish(entry, map[string]interface{}{
		"status":       model.CronStatusFailed,
		"completed_at": finished,
		"duration_ms":  finished.Sub(entry.StartedAt).Milliseconds(),
		"error_msg":    err.Error(),
	})
}

func (m *CronManager) finish(entry *model.CronJobLog, fields map[string]interface{}) {
	if entry.ID == 0 {
		return
	}
	if err := m.db.Model(&model.CronJobLog{}).Where("id = ?", entry.ID).Updates(fields).Error; err != nil {
		m.log.Warn("failed to record job result", zap.String("job", entry.JobName), zap.Error(err))
	}
}
