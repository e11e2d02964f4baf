package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"gorm.io/gorm"
)

// AnalyticsService handles analytics and reporting
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		db: db,
	}
}

// DashboardStats represents overall platform statistics
type DashboardStats struct {
	TotalUsers          int64   `json:"total_users"`
	ActiveUsers         int64   `json:"active_users_7d"`
	NewUsersToday       int64   `json:"new_users_today"`
	TotalCareers        int64   `json:"total_careers"`
	TotalCourses        int64   `json:"total_courses"`
	TotalUniversities   int64   `json:"total_universities"`
	AttemptsStarted     int64   `json:"attempts_started"`
	AttemptsCompleted   int64   `json:"attempts_completed"`
	AttemptsAbandoned   int64   `json:"attempts_abandoned"`
	CompletionRate      float64 `json:"completion_rate"`
	UsersReadyForFit    int64   `json:"users_ready_for_fit"`
	AnalysesRun         int64   `json:"analyses_run"`
	AnalysesToday       int64   `json:"analyses_today"`
	ReportsDownloaded7d int64   `json:"reports_downloaded_7d"`
}

// GetDashboardStats retrieves overall platform statistics
func (s *AnalyticsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)
	now := time.Now().UTC()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	today := now.Truncate(24 * time.Hour)

	// Total users
	if err := db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	// Active users (last 7 days)
	if err := db.Model(&model.UserActivity{}).
		Where("created_at >= ?", sevenDaysAgo).
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	if err := db.Model(&model.User{}).
		Where("created_at >= ?", today).
		Count(&stats.NewUsersToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	// Catalog
	if err := db.Model(&model.Career{}).Where("is_active = ?", true).Count(&stats.TotalCareers).Error; err != nil {
		return nil, fmt.Errorf("failed to count careers: %w", err)
	}
	if err := db.Model(&model.Course{}).Where("is_active = ?", true).Count(&stats.TotalCourses).Error; err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	if err := db.Model(&model.University{}).Count(&stats.TotalUniversities).Error; err != nil {
		return nil, fmt.Errorf("failed to count universities: %w", err)
	}

	// Attempts by status
	var byStatus []struct {
		Status model.AttemptStatus
		Count  int64
	}
	if err := db.Model(&model.UserAssessmentAttempt{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}
	for _, row := range byStatus {
		stats.AttemptsStarted += row.Count
		switch row.Status {
		case model.AttemptCompleted:
			stats.AttemptsCompleted = row.Count
		case model.AttemptAbandoned:
			stats.AttemptsAbandoned = row.Count
		}
	}
	if stats.AttemptsStarted > 0 {
		stats.CompletionRate = roundTo2(float64(stats.AttemptsCompleted) / float64(stats.AttemptsStarted) * 100)
	}

	// Users with every required assessment completed
	if err := db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT a.user_id
			FROM user_assessment_attempts a
			JOIN assessment_types t ON t.id = a.assessment_type_id
			WHERE a.status = ? AND a.deleted_at IS NULL AND t.slug IN ?
			GROUP BY a.user_id
			HAVING COUNT(DISTINCT t.slug) = ?
		) ready`,
		model.AttemptCompleted, model.RequiredAssessments, len(model.RequiredAssessments),
	).Scan(&stats.UsersReadyForFit).Error; err != nil {
		return nil, fmt.Errorf("failed to count users ready for analysis: %w", err)
	}

	// Analyses
	if err := db.Model(&model.CareerFitSnapshot{}).Count(&stats.AnalysesRun).Error; err != nil {
		return nil, fmt.Errorf("failed to count analyses: %w", err)
	}
	if err := db.Model(&model.CareerFitSnapshot{}).
		Where("computed_at >= ?", today).
		Count(&stats.AnalysesToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count analyses today: %w", err)
	}

	if err := db.Model(&model.UserActivity{}).
		Where("activity_type = ? AND created_at >= ?", model.ActivityTypeReportDownload, sevenDaysAgo).
		Count(&stats.ReportsDownloaded7d).Error; err != nil {
		return nil, fmt.Errorf("failed to count report downloads: %w", err)
	}

	return stats, nil
}

// TopCareer is a career that often ranks first for users
type TopCareer struct {
	Slug      string `json:"slug"`
	TimesBest int64  `json:"times_best"`
}

// GetTopCareers counts how often each career was the best match in the latest snapshot of
// every user
func (s *AnalyticsService) GetTopCareers(ctx context.Context, limit int) ([]TopCareer, error) {
	var snapshots []model.CareerFitSnapshot
	if err := s.db.WithContext(ctx).
		Order("user_id ASC, computed_at DESC, id DESC").
		Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	counts := make(map[string]int64)
	order := make([]string, 0)
	seen := make(map[uint]bool)
	for _, snap := range snapshots {
		if seen[snap.UserID] || len(snap.TopMatches) == 0 {
			continue
		}
		seen[snap.UserID] = true
		slug := snap.TopMatches[0].Slug
		if _, ok := counts[slug]; !ok {
			order = append(order, slug)
		}
		counts[slug]++
	}

	results := make([]TopCareer, 0, len(order))
	for _, slug := range order {
		results = append(results, TopCareer{Slug: slug, TimesBest: counts[slug]})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].TimesBest != results[j].TimesBest {
			return results[i].TimesBest > results[j].TimesBest
		}
		return results[i].Slug < results[j].Slug
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// LogActivity logs a user activity
func (s *AnalyticsService) LogActivity(ctx context.Context, userID uint, activityType model.ActivityType, resourceType string, resourceID uint, ipAddress string, userAgent string) error {
	activity := model.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}

	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	return nil
}
