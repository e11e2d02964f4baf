package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentService runs the assessment lifecycle: start, answer, complete, read results
type AssessmentService struct {
	db    *gorm.DB
	cache FitCache
	log   *zap.Logger
}

// NewAssessmentService creates a new assessment service. cache may be nil.
func NewAssessmentService(db *gorm.DB, cache FitCache, log *zap.Logger) *AssessmentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssessmentService{db: db, cache: cache, log: log}
}

// AssessmentSummary is an assessment type as listed to users
type AssessmentSummary struct {
	ID            uint   `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ScaleMax      int    `json:"scale_max"`
	QuestionCount int    `json:"question_count"`
}

// Answer is one submitted Likert response
type Answer struct {
	QuestionID uint `json:"question_id" validate:"required"`
	Value      int  `json:"value" validate:"required"`
}

// SaveResult reports progress after answers were stored
type SaveResult struct {
	AttemptID uint `json:"attempt_id"`
	Saved     int  `json:"saved"`
	Answered  int  `json:"answered"`
	Total     int  `json:"total"`
}

// AttemptResults is the scored outcome of a completed attempt
type AttemptResults struct {
	AttemptID   uint                   `json:"attempt_id"`
	UserID      uint                   `json:"user_id"`
	Assessment  string                 `json:"assessment"`
	Name        string                 `json:"name"`
	CompletedAt *time.Time             `json:"completed_at"`
	Categories  []model.CategoryResult `json:"categories"`
	HollandCode string                 `json:"holland_code,omitempty"`
}

// Progress statuses
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// AssessmentProgress is a user's standing on one assessment
type AssessmentProgress struct {
	Assessment  string     `json:"assessment"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	AttemptID   *uint      `json:"attempt_id,omitempty"`
	Answered    int        `json:"answered"`
	Total       int        `json:"total"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TypeStats aggregates attempts of one assessment type for admins
type TypeStats struct {
	Assessment     string             `json:"assessment"`
	Started        int64              `json:"started"`
	InProgress     int64              `json:"in_progress"`
	Completed      int64              `json:"completed"`
	Abandoned      int64              `json:"abandoned"`
	CompletionRate float64            `json:"completion_rate"`
	CategoryMeans  map[string]float64 `json:"category_means"`
}

// ListTypes returns the active assessment types with their question counts
func (s *AssessmentService) ListTypes(ctx context.Context) ([]AssessmentSummary, error) {
	var types []model.AssessmentType
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessment types: %w", err)
	}

	var counts []struct {
		AssessmentTypeID uint
		Count            int
	}
	if err := s.db.WithContext(ctx).Model(&model.AssessmentQuestion{}).
		Select("assessment_type_id, COUNT(*) AS count").
		Group("assessment_type_id").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	byType := make(map[uint]int, len(counts))
	for _, c := range counts {
		byType[c.AssessmentTypeID] = c.Count
	}

	summaries := make([]AssessmentSummary, 0, len(types))
	for _, t := range types {
		summaries = append(summaries, AssessmentSummary{
			ID:            t.ID,
			Slug:          t.Slug,
			Name:          t.Name,
			Description:   t.Description,
			ScaleMax:      t.ScaleMax,
			QuestionCount: byType[t.ID],
		})
	}
	return summaries, nil
}

// GetType returns an active assessment type with its questions in position order
func (s *AssessmentService) GetType(ctx context.Context, slug string) (*model.AssessmentType, error) {
	var t model.AssessmentType
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssessmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment type: %w", err)
	}
	return &t, nil
}

// StartAttempt returns the user's in-progress attempt for the assessment, creating one when
// there is none. The bool reports whether a new attempt was created.
func (s *AssessmentService) StartAttempt(ctx context.Context, userID uint, slug string) (*model.UserAssessmentAttempt, bool, error) {
	t, err := s.GetType(ctx, slug)
	if err != nil {
		return nil, false, err
	}

	var attempt model.UserAssessmentAttempt
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND assessment_type_id = ? AND status = ?", userID, t.ID, model.AttemptInProgress).
		Order("started_at DESC").
		First(&attempt).Error
	if err == nil {
		attempt.AssessmentType = *t
		return &attempt, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up attempt: %w", err)
	}

	attempt = model.UserAssessmentAttempt{
		UserID:           userID,
		AssessmentTypeID: t.ID,
		Status:           model.AttemptInProgress,
		StartedAt:        time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		// a concurrent start won the open-attempt index
		var existing model.UserAssessmentAttempt
		if lookupErr := s.db.WithContext(ctx).
			Where("user_id = ? AND assessment_type_id = ? AND status = ?", userID, t.ID, model.AttemptInProgress).
			First(&existing).Error; lookupErr == nil {
			existing.AssessmentType = *t
			return &existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.log.Info("assessment attempt started",
		zap.Uint("user_id", userID), zap.String("assessment", slug), zap.Uint("attempt_id", attempt.ID))

	attempt.AssessmentType = *t
	return &attempt, true, nil
}

// loadOwnedAttempt loads an attempt with its type and checks it belongs to userID
func (s *AssessmentService) loadOwnedAttempt(ctx context.Context, db *gorm.DB, userID, attemptID uint) (*model.UserAssessmentAttempt, error) {
	var attempt model.UserAssessmentAttempt
	err := db.WithContext(ctx).Preload("AssessmentType").First(&attempt, attemptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptForbidden
	}
	return &attempt, nil
}

// SaveResponses stores answers for an in-progress attempt. Answering a question again
// replaces the earlier value. Either every answer is stored or none is.
func (s *AssessmentService) SaveResponses(ctx context.Context, userID, attemptID uint, answers []Answer) (*SaveResult, error) {
	result := &SaveResult{AttemptID: attemptID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt, err := s.loadOwnedAttempt(ctx, tx, userID, attemptID)
		if err != nil {
			return err
		}
		if attempt.Status != model.AttemptInProgress {
			return ErrAttemptCompleted
		}

		var questionIDs []uint
		if err := tx.Model(&model.AssessmentQuestion{}).
			Where("assessment_type_id = ?", attempt.AssessmentTypeID).
			Pluck("id", &questionIDs).Error; err != nil {
			return fmt.Errorf("failed to load questions: %w", err)
		}
		valid := make(map[uint]bool, len(questionIDs))
		for _, id := range questionIDs {
			valid[id] = true
		}

		scaleMax := attempt.AssessmentType.ScaleMax
		// last answer wins when a question repeats within one request
		latest := make(map[uint]int, len(answers))
		order := make([]uint, 0, len(answers))
		for _, a := range answers {
			if !valid[a.QuestionID] {
				return fmt.Errorf("question %d: %w", a.QuestionID, ErrQuestionNotInAssessment)
			}
			if a.Value < 1 || a.Value > scaleMax {
				return &ResponseValueError{QuestionID: a.QuestionID, Value: a.Value, ScaleMax: scaleMax}
			}
			if _, seen := latest[a.QuestionID]; !seen {
				order = append(order, a.QuestionID)
			}
			latest[a.QuestionID] = a.Value
		}

		rows := make([]model.UserAssessmentResponse, 0, len(order))
		for _, qid := range order {
			rows = append(rows, model.UserAssessmentResponse{
				AttemptID:  attempt.ID,
				QuestionID: qid,
				Value:      latest[qid],
			})
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save responses: %w", err)
			}
		}

		// last activity drives stale-attempt cleanup
		if err := tx.Model(&model.UserAssessmentAttempt{}).
			Where("id = ?", attempt.ID).
			UpdateColumn("updated_at", time.Now().UTC()).Error; err != nil {
			return fmt.Errorf("failed to touch attempt: %w", err)
		}

		var answered int64
		if err := tx.Model(&model.UserAssessmentResponse{}).
			Where("attempt_id = ?", attempt.ID).
			Count(&answered).Error; err != nil {
			return fmt.Errorf("failed to count responses: %w", err)
		}

		result.Saved = len(rows)
		result.Answered = int(answered)
		result.Total = len(questionIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteAttempt scores an attempt whose questions are all answered and marks it completed.
// The user's cached career-fit analysis is dropped since it no longer reflects their answers.
func (s *AssessmentService) CompleteAttempt(ctx context.Context, userID, attemptID uint) (*model.UserAssessmentAttempt, error) {
	var completed *model.UserAssessmentAttempt

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt, err := s.loadOwnedAttempt(ctx, tx, userID, attemptID)
		if err != nil {
			return err
		}
		if attempt.Status != model.AttemptInProgress {
			return ErrAttemptCompleted
		}

		var questions []model.AssessmentQuestion
		if err := tx.Where("assessment_type_id = ?", attempt.AssessmentTypeID).
			Order("position ASC, id ASC").
			Find(&questions).Error; err != nil {
			return fmt.Errorf("failed to load questions: %w", err)
		}
		var responses []model.UserAssessmentResponse
		if err := tx.Where("attempt_id = ?", attempt.ID).Find(&responses).Error; err != nil {
			return fmt.Errorf("failed to load responses: %w", err)
		}

		values := make(map[uint]int, len(responses))
		for _, r := range responses {
			values[r.QuestionID] = r.Value
		}

		items := make([]scoring.Response, 0, len(questions))
		var missing []uint
		for _, q := range questions {
			v, ok := values[q.ID]
			if !ok {
				missing = append(missing, q.ID)
				continue
			}
			items = append(items, scoring.Response{Category: q.Category, Value: v, ReverseScored: q.ReverseScored})
		}
		if len(questions) == 0 || len(missing) > 0 {
			return &AttemptIncompleteError{Answered: len(items), Total: len(questions), MissingIDs: missing}
		}

		scores := scoring.AggregateCategories(items, attempt.AssessmentType.ScaleMax)
		now := time.Now().UTC()
		attempt.Status = model.AttemptCompleted
		attempt.CompletedAt = &now
		attempt.CategoryScores = toCategoryResults(scores)

		res := tx.Model(&model.UserAssessmentAttempt{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"status":          attempt.Status,
				"completed_at":    attempt.CompletedAt,
				"category_scores": attempt.CategoryScores,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to complete attempt: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAttemptCompleted
		}

		completed = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.log.Info("assessment attempt completed",
		zap.Uint("user_id", userID),
		zap.String("assessment", completed.AssessmentType.Slug),
		zap.Uint("attempt_id", completed.ID))

	return completed, nil
}

// GetResults returns the scores of a completed attempt. Staff may read any user's results.
func (s *AssessmentService) GetResults(ctx context.Context, viewer *model.User, attemptID uint) (*AttemptResults, error) {
	var attempt model.UserAssessmentAttempt
	err := s.db.WithContext(ctx).Preload("AssessmentType").First(&attempt, attemptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}
	if attempt.UserID != viewer.ID && !viewer.IsStaff() {
		return nil, ErrAttemptForbidden
	}
	if attempt.Status != model.AttemptCompleted {
		return nil, ErrAttemptNotCompleted
	}

	results := &AttemptResults{
		AttemptID:   attempt.ID,
		UserID:      attempt.UserID,
		Assessment:  attempt.AssessmentType.Slug,
		Name:        attempt.AssessmentType.Name,
		CompletedAt: attempt.CompletedAt,
		Categories:  attempt.CategoryScores,
	}
	if attempt.AssessmentType.Slug == model.AssessmentRIASEC {
		results.HollandCode = scoring.HollandCode(resultMap(attempt.CategoryScores))
	}
	return results, nil
}

// LatestCompleted returns the most recent completed attempt of each assessment type the
// user has finished, keyed by assessment slug
func (s *AssessmentService) LatestCompleted(ctx context.Context, userID uint) (map[string]*model.UserAssessmentAttempt, error) {
	var attempts []model.UserAssessmentAttempt
	if err := s.db.WithContext(ctx).
		Preload("AssessmentType").
		Where("user_id = ? AND status = ?", userID, model.AttemptCompleted).
		Order("completed_at DESC, id DESC").
		Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to load completed attempts: %w", err)
	}

	latest := make(map[string]*model.UserAssessmentAttempt)
	for i := range attempts {
		slug := attempts[i].AssessmentType.Slug
		if _, ok := latest[slug]; !ok {
			latest[slug] = &attempts[i]
		}
	}
	return latest, nil
}

// Progress reports the user's standing on every active assessment
func (s *AssessmentService) Progress(ctx context.Context, userID uint) ([]AssessmentProgress, error) {
	types, err := s.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.LatestCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}

	var open []model.UserAssessmentAttempt
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.AttemptInProgress).
		Order("started_at DESC").
		Find(&open).Error; err != nil {
		return nil, fmt.Errorf("failed to load open attempts: %w", err)
	}
	openByType := make(map[uint]model.UserAssessmentAttempt)
	for _, a := range open {
		if _, ok := openByType[a.AssessmentTypeID]; !ok {
			openByType[a.AssessmentTypeID] = a
		}
	}

	progress := make([]AssessmentProgress, 0, len(types))
	for _, t := range types {
		p := AssessmentProgress{Assessment: t.Slug, Name: t.Name, Status: ProgressNotStarted, Total: t.QuestionCount}

		if a, ok := openByType[t.ID]; ok {
			var answered int64
			if err := s.db.WithContext(ctx).Model(&model.UserAssessmentResponse{}).
				Where("attempt_id = ?", a.ID).Count(&answered).Error; err != nil {
				return nil, fmt.Errorf("failed to count responses: %w", err)
			}
			id := a.ID
			p.Status = ProgressInProgress
			p.AttemptID = &id
			p.Answered = int(answered)
		} else if a, ok := latest[t.Slug]; ok {
			id := a.ID
			p.Status = ProgressCompleted
			p.AttemptID = &id
			p.Answered = t.QuestionCount
			p.CompletedAt = a.CompletedAt
		}
		progress = append(progress, p)
	}
	return progress, nil
}

// AbandonStale marks in-progress attempts with no activity since before now-olderThan as
// abandoned and returns how many were touched
func (s *AssessmentService) AbandonStale(ctx context.Context, olderThan time.Duration, now time.Time) (int64, error) {
	cutoff := now.UTC().Add(-olderThan)
	res := s.db.WithContext(ctx).
		Model(&model.UserAssessmentAttempt{}).
		Where("status = ? AND updated_at < ?", model.AttemptInProgress, cutoff).
		Update("status", model.AttemptAbandoned)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to abandon stale attempts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Stats aggregates attempt counts and mean category scores per assessment type
func (s *AssessmentService) Stats(ctx context.Context) ([]TypeStats, error) {
	var types []model.AssessmentType
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessment types: %w", err)
	}

	var counts []struct {
		AssessmentTypeID uint
		Status           model.AttemptStatus
		Count            int64
	}
	if err := s.db.WithContext(ctx).Model(&model.UserAssessmentAttempt{}).
		Select("assessment_type_id, status, COUNT(*) AS count").
		Group("assessment_type_id, status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}

	var completed []model.UserAssessmentAttempt
	if err := s.db.WithContext(ctx).
		Select("id, assessment_type_id, category_scores").
		Where("status = ?", model.AttemptCompleted).
		Find(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to load completed attempts: %w", err)
	}

	type sum struct {
		total float64
		n     int
	}
	sums := make(map[uint]map[string]*sum)
	for _, a := range completed {
		if sums[a.AssessmentTypeID] == nil {
			sums[a.AssessmentTypeID] = make(map[string]*sum)
		}
		for _, c := range a.CategoryScores {
			acc := sums[a.AssessmentTypeID][c.Category]
			if acc == nil {
				acc = &sum{}
				sums[a.AssessmentTypeID][c.Category] = acc
			}
			acc.total += c.Score
			acc.n++
		}
	}

	stats := make([]TypeStats, 0, len(types))
	for _, t := range types {
		st := TypeStats{Assessment: t.Slug, CategoryMeans: map[string]float64{}}
		for _, c := range counts {
			if c.AssessmentTypeID != t.ID {
				continue
			}
			st.Started += c.Count
			switch c.Status {
			case model.AttemptInProgress:
				st.InProgress = c.Count
			case model.AttemptCompleted:
				st.Completed = c.Count
			case model.AttemptAbandoned:
				st.Abandoned = c.Count
			}
		}
		if st.Started > 0 {
			st.CompletionRate = roundTo2(float64(st.Completed) / float64(st.Started) * 100)
		}
		for cat, acc := range sums[t.ID] {
			st.CategoryMeans[cat] = roundTo2(acc.total / float64(acc.n))
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func (s *AssessmentService) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, careerFitCacheKey(userID)); err != nil {
		s.log.Warn("failed to drop cached career fit", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func toCategoryResults(scores []scoring.CategoryScore) []model.CategoryResult {
	out := make([]model.CategoryResult, 0, len(scores))
	for _, sc := range scores {
		out = append(out, model.CategoryResult{
			Category:  sc.Category,
			Average:   sc.Average,
			Score:     sc.Score,
			Level:     string(sc.Level),
			Responses: sc.Responses,
		})
	}
	return out
}

// resultMap indexes stored category results by normalized category
func resultMap(results []model.CategoryResult) map[string]float64 {
	m := make(map[string]float64, len(results))
	for _, r := range results {
		m[scoring.Key(r.Category)] = r.Score
	}
	return m
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
