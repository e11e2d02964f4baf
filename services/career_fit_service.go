package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/sahilchouksey/career-compass-api/utils/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FitCacheTTL is how long a computed analysis is served from cache
const FitCacheTTL = 30 * time.Minute

// snapshotSize is how many ranked careers a snapshot keeps
const snapshotSize = 10

// FitCache stores computed career-fit reports; *cache.RedisCache implements it
type FitCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func careerFitCacheKey(userID uint) string {
	return "career_fit:" + strconv.FormatUint(uint64(userID), 10)
}

// CareerFitReport is the full analysis of one user against the career catalog
type CareerFitReport struct {
	UserID       uint                   `json:"user_id"`
	HollandCode  string                 `json:"holland_code"`
	Interests    []model.CategoryResult `json:"interests"`
	Skills       []model.CategoryResult `json:"skills"`
	Personality  []model.CategoryResult `json:"personality"`
	Matches      []scoring.Match        `json:"matches"`
	TotalCareers int                    `json:"total_careers"`
	Weights      scoring.Weights        `json:"weights"`
	GeneratedAt  time.Time              `json:"generated_at"`
}

// CareerDetail is one career with the user's fit against it and a plan for the gaps
type CareerDetail struct {
	Career       model.Career         `json:"career"`
	Match        scoring.Match        `json:"match"`
	LearningPath scoring.LearningPath `json:"learning_path"`
}

// AnalyzeOptions tunes an analysis request
type AnalyzeOptions struct {
	TopN int // <= 0 uses the service default
}

// CareerFitService blends interest, skills and personality results into ranked career matches
type CareerFitService struct {
	db          *gorm.DB
	assessments *AssessmentService
	cache       FitCache
	weights     scoring.Weights
	defaultTopN int
	log         *zap.Logger
	now         func() time.Time
}

// NewCareerFitService creates the analysis service. cache may be nil to disable caching.
func NewCareerFitService(db *gorm.DB, assessments *AssessmentService, cache FitCache, weights scoring.Weights, defaultTopN int, log *zap.Logger) *CareerFitService {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultTopN <= 0 {
		defaultTopN = 10
	}
	return &CareerFitService{
		db:          db,
		assessments: assessments,
		cache:       cache,
		weights:     weights.Normalize(),
		defaultTopN: defaultTopN,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Weights returns the normalized blend weights in use
func (s *CareerFitService) Weights() scoring.Weights {
	return s.weights
}

// Analyze ranks the active careers for the user and returns the top matches. The user must
// have completed every required assessment; otherwise an *IncompleteAssessmentsError is
// returned.
func (s *CareerFitService) Analyze(ctx context.Context, userID uint, opts AnalyzeOptions) (*CareerFitReport, error) {
	report, err := s.fullReport(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	n := opts.TopN
	if n <= 0 {
		n = s.defaultTopN
	}
	out := *report
	if n < len(out.Matches) {
		out.Matches = out.Matches[:n]
	}
	return &out, nil
}

// AnalyzeCareer returns the user's fit against one career, including its rank among all
// active careers and a learning path for the skill gaps
func (s *CareerFitService) AnalyzeCareer(ctx context.Context, userID uint, slug string) (*CareerDetail, error) {
	var career model.Career
	err := s.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&career).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCareerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load career: %w", err)
	}

	report, err := s.fullReport(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	var match *scoring.Match
	for i := range report.Matches {
		if report.Matches[i].Slug == slug {
			match = &report.Matches[i]
			break
		}
	}
	if match == nil {
		// catalog changed since the cached analysis
		s.InvalidateCache(ctx, userID)
		if report, err = s.fullReport(ctx, userID, false); err != nil {
			return nil, err
		}
		for i := range report.Matches {
			if report.Matches[i].Slug == slug {
				match = &report.Matches[i]
				break
			}
		}
		if match == nil {
			return nil, ErrCareerNotFound
		}
	}

	path, err := s.buildPath(ctx, career.Slug, match.Gaps)
	if err != nil {
		return nil, err
	}

	return &CareerDetail{Career: career, Match: *match, LearningPath: path}, nil
}

// LearningPath returns the course plan that closes the user's gaps for a career
func (s *CareerFitService) LearningPath(ctx context.Context, userID uint, slug string) (*scoring.LearningPath, error) {
	detail, err := s.AnalyzeCareer(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	return &detail.LearningPath, nil
}

// LearningPathFor builds the learning path of a career ranked in an analysis the caller
// already holds, without analyzing again
func (s *CareerFitService) LearningPathFor(ctx context.Context, report *CareerFitReport, slug string) (*scoring.LearningPath, error) {
	for i := range report.Matches {
		if report.Matches[i].Slug != slug {
			continue
		}
		path, err := s.buildPath(ctx, slug, report.Matches[i].Gaps)
		if err != nil {
			return nil, err
		}
		return &path, nil
	}
	return nil, ErrCareerNotFound
}

// InvalidateCache drops the user's cached analysis
func (s *CareerFitService) InvalidateCache(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, careerFitCacheKey(userID)); err != nil {
		s.log.Warn("failed to drop cached career fit", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// PurgeSnapshots hard-deletes snapshots computed before cutoff
func (s *CareerFitService) PurgeSnapshots(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("computed_at < ?", cutoff.UTC()).Delete(&model.CareerFitSnapshot{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// fullReport returns the complete ranking, from cache when possible. Only recorded analyses
// write a snapshot and fill the cache; lookups of a single career compute without either.
func (s *CareerFitService) fullReport(ctx context.Context, userID uint, record bool) (*CareerFitReport, error) {
	key := careerFitCacheKey(userID)
	if s.cache != nil {
		var cached CareerFitReport
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			s.log.Warn("career fit cache read failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	report, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !record {
		return report, nil
	}

	if err := s.saveSnapshot(ctx, report); err != nil {
		s.log.Warn("failed to record career fit snapshot", zap.Uint("user_id", userID), zap.Error(err))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, report, FitCacheTTL); err != nil {
			s.log.Warn("career fit cache write failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	return report, nil
}

func (s *CareerFitService) compute(ctx context.Context, userID uint) (*CareerFitReport, error) {
	latest, err := s.assessments.LatestCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	missing := make([]string, 0)
	for _, slug := range model.RequiredAssessments {
		if _, ok := latest[slug]; !ok {
			missing = append(missing, slug)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteAssessmentsError{Missing: missing}
	}

	interests := latest[model.AssessmentRIASEC].CategoryScores
	skills := latest[model.AssessmentSkills].CategoryScores
	personality := latest[model.AssessmentPersonality].CategoryScores

	interestScores := resultMap(interests)
	skillScores := resultMap(skills)
	traitScores := resultMap(personality)

	var careers []model.Career
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&careers).Error; err != nil {
		return nil, fmt.Errorf("failed to load careers: %w", err)
	}

	matches := make([]scoring.Match, 0, len(careers))
	for _, c := range careers {
		reqs := requirements(c.SkillRequirements)
		interest := scoring.InterestFit(interestScores, c.HollandCode)
		skillsFit := scoring.SkillsFit(skillScores, reqs)
		personalityFit := scoring.PersonalityFit(traitScores, c.PersonalityProfile.Data())
		composite := scoring.Composite(s.weights, interest, skillsFit, personalityFit)

		matches = append(matches, scoring.Match{
			CareerID:       c.ID,
			Slug:           c.Slug,
			Title:          c.Title,
			HollandCode:    c.HollandCode,
			InterestFit:    interest,
			SkillsFit:      skillsFit,
			PersonalityFit: personalityFit,
			Composite:      composite,
			Label:          scoring.LabelFor(composite),
			Gaps:           scoring.SkillGaps(skillScores, reqs),
		})
	}

	return &CareerFitReport{
		UserID:       userID,
		HollandCode:  scoring.HollandCode(interestScores),
		Interests:    interests,
		Skills:       skills,
		Personality:  personality,
		Matches:      scoring.RankCareers(matches, 0),
		TotalCareers: len(careers),
		Weights:      s.weights,
		GeneratedAt:  s.now(),
	}, nil
}

func (s *CareerFitService) saveSnapshot(ctx context.Context, report *CareerFitReport) error {
	top := make([]model.SnapshotMatch, 0, snapshotSize)
	for i, m := range report.Matches {
		if i == snapshotSize {
			break
		}
		top = append(top, model.SnapshotMatch{Slug: m.Slug, Composite: m.Composite, Label: string(m.Label)})
	}
	snapshot := model.CareerFitSnapshot{
		UserID:            report.UserID,
		HollandCode:       report.HollandCode,
		WeightInterests:   report.Weights.Interests,
		WeightSkills:      report.Weights.Skills,
		WeightPersonality: report.Weights.Personality,
		TopMatches:        top,
		ComputedAt:        report.GeneratedAt,
	}
	return s.db.WithContext(ctx).Create(&snapshot).Error
}

func (s *CareerFitService) buildPath(ctx context.Context, careerSlug string, gaps []scoring.SkillGap) (scoring.LearningPath, error) {
	var courses []model.Course
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&courses).Error; err != nil {
		return scoring.LearningPath{}, fmt.Errorf("failed to load courses: %w", err)
	}

	options := make([]scoring.CourseOption, 0, len(courses))
	for _, c := range courses {
		options = append(options, scoring.CourseOption{
			ID:            c.ID,
			Slug:          c.Slug,
			Title:         c.Title,
			Provider:      c.Provider,
			Level:         c.Level,
			Skills:        c.Skills,
			DurationWeeks: c.DurationWeeks,
			URL:           c.URL,
		})
	}
	return scoring.BuildLearningPath(careerSlug, gaps, options), nil
}

func requirements(reqs []model.SkillRequirement) []scoring.Requirement {
	out := make([]scoring.Requirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, scoring.Requirement{Skill: r.Skill, RequiredLevel: r.RequiredLevel, Importance: r.Importance})
	}
	return out
}
