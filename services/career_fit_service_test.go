package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fitFixture struct {
	assessments *AssessmentService
	fit         *CareerFitService
	cache       *memoryCache
	user        *model.User
}

func newFitFixture(t *testing.T, withCache bool) *fitFixture {
	t.Helper()
	db := newTestDB(t)
	seedAssessments(t, db)
	seedCatalog(t, db)

	f := &fitFixture{user: createUser(t, db, "learner@example.com", model.RoleStudent)}
	var fc FitCache
	if withCache {
		f.cache = newMemoryCache()
		fc = f.cache
	}
	f.assessments = NewAssessmentService(db, fc, nil)
	f.fit = NewCareerFitService(db, f.assessments, fc, scoring.DefaultWeights(), 10, nil)
	return f
}

func TestAnalyzeRequiresEveryAssessment(t *testing.T) {
	f := newFitFixture(t, true)
	answerAll(t, f.assessments, f.user.ID, model.AssessmentRIASEC, interestAnswers)

	_, err := f.fit.Analyze(context.Background(), f.user.ID, AnalyzeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssessmentsIncomplete)

	var incomplete *IncompleteAssessmentsError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []string{model.AssessmentSkills, model.AssessmentPersonality}, incomplete.Missing)
	assert.False(t, f.cache.has(careerFitCacheKey(f.user.ID)))
}

func TestAnalyze(t *testing.T) {
	f := newFitFixture(t, true)
	completeAllAssessments(t, f.assessments, f.user.ID)

	report, err := f.fit.Analyze(context.Background(), f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)

	assert.Equal(t, "IRC", report.HollandCode)
	assert.Equal(t, 2, report.TotalCareers, "inactive careers are not ranked")
	require.Len(t, report.Matches, 2)
	assert.Len(t, report.Interests, 6)
	assert.Len(t, report.Skills, 2)
	assert.Len(t, report.Personality, 2)

	dev := report.Matches[0]
	assert.Equal(t, "developer", dev.Slug)
	assert.Equal(t, 1, dev.Rank)
	assert.InDelta(t, 83.33, dev.InterestFit, 0.001)
	assert.InDelta(t, 95.31, dev.SkillsFit, 0.001)
	assert.InDelta(t, 87.5, dev.PersonalityFit, 0.001)
	assert.InDelta(t, 88.57, dev.Composite, 0.001)
	assert.Equal(t, scoring.FitExcellent, dev.Label)
	assert.Equal(t, 100.0, dev.RelativeScore)
	require.Len(t, dev.Gaps, 1)
	assert.Equal(t, "programming", dev.Gaps[0].Skill)
	assert.InDelta(t, 5.0, dev.Gaps[0].Gap, 0.001)
	assert.Equal(t, scoring.SeverityMinor, dev.Gaps[0].Severity)

	artist := report.Matches[1]
	assert.Equal(t, "artist", artist.Slug)
	assert.Equal(t, 2, artist.Rank)
	assert.InDelta(t, 12.5, artist.InterestFit, 0.001)
	assert.Equal(t, 0.0, artist.SkillsFit)
	assert.InDelta(t, 85.0, artist.PersonalityFit, 0.001)
	assert.InDelta(t, 26.25, artist.Composite, 0.001)
	assert.Equal(t, scoring.FitWeak, artist.Label)
	assert.Equal(t, 0.0, artist.RelativeScore)
	require.Len(t, artist.Gaps, 1)
	assert.Equal(t, scoring.SeverityCritical, artist.Gaps[0].Severity)
}

func TestAnalyzeTopN(t *testing.T) {
	f := newFitFixture(t, true)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	report, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{TopN: 1})
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "developer", report.Matches[0].Slug)
	assert.Equal(t, 2, report.TotalCareers)

	// the cached analysis keeps the full ranking
	full, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)
	assert.Len(t, full.Matches, 2)
	assert.Equal(t, 0.0, full.Matches[1].RelativeScore)
}

func TestAnalyzeCachesAndSnapshots(t *testing.T) {
	f := newFitFixture(t, true)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	first, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)
	second, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, f.cache.sets)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))

	var snapshots []model.CareerFitSnapshot
	require.NoError(t, f.fit.db.Find(&snapshots).Error)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "IRC", snapshots[0].HollandCode)
	require.Len(t, snapshots[0].TopMatches, 2)
	assert.Equal(t, "developer", snapshots[0].TopMatches[0].Slug)
	assert.InDelta(t, 0.40, snapshots[0].WeightInterests, 0.0001)

	// finishing a new attempt drops the cache so the next analysis is recomputed
	answerAll(t, f.assessments, f.user.ID, model.AssessmentSkills, map[string]int{"programming": 5, "communication": 5})
	assert.False(t, f.cache.has(careerFitCacheKey(f.user.ID)))

	third, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, third.Matches[0].SkillsFit)
	assert.Empty(t, third.Matches[0].Gaps)
	assert.Equal(t, 2, f.cache.sets)
}

func TestAnalyzeWithoutCache(t *testing.T) {
	f := newFitFixture(t, false)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, f.fit.db.Model(&model.CareerFitSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAnalyzeCareer(t *testing.T) {
	f := newFitFixture(t, true)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	detail, err := f.fit.AnalyzeCareer(ctx, f.user.ID, "artist")
	require.NoError(t, err)
	assert.Equal(t, "Artist", detail.Career.Title)
	assert.Equal(t, 2, detail.Match.Rank)

	path := detail.LearningPath
	assert.Equal(t, "artist", path.Career)
	require.Len(t, path.Phases, 1)
	assert.Equal(t, scoring.PhaseFoundation, path.Phases[0].Name)
	require.Len(t, path.Phases[0].Steps, 1)
	courses := path.Phases[0].Steps[0].Courses
	require.Len(t, courses, 2)
	assert.Equal(t, "design-101", courses[0].Slug)
	assert.Equal(t, "design-301", courses[1].Slug)
	assert.Equal(t, 16, path.TotalWeeks)
	assert.Empty(t, path.Uncovered)

	dev, err := f.fit.LearningPath(ctx, f.user.ID, "developer")
	require.NoError(t, err)
	require.Len(t, dev.Phases, 1)
	assert.Equal(t, scoring.PhaseRefinement, dev.Phases[0].Name)
	assert.Equal(t, "go-201", dev.Phases[0].Steps[0].Courses[0].Slug)

	_, err = f.fit.AnalyzeCareer(ctx, f.user.ID, "retired")
	assert.ErrorIs(t, err, ErrCareerNotFound)
	_, err = f.fit.AnalyzeCareer(ctx, f.user.ID, "astronaut")
	assert.ErrorIs(t, err, ErrCareerNotFound)
}

func TestAnalyzeCareerAfterCatalogChange(t *testing.T) {
	f := newFitFixture(t, true)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	_, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)

	require.NoError(t, f.fit.db.Model(&model.Career{}).Where("slug = ?", "retired").Update("is_active", true).Error)

	detail, err := f.fit.AnalyzeCareer(ctx, f.user.ID, "retired")
	require.NoError(t, err)
	assert.Equal(t, "retired", detail.Match.Slug)

	report, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalCareers)
}

func TestAnalyzeCareerRecordsNoSnapshot(t *testing.T) {
	f := newFitFixture(t, false)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	_, err := f.fit.AnalyzeCareer(ctx, f.user.ID, "artist")
	require.NoError(t, err)
	_, err = f.fit.LearningPath(ctx, f.user.ID, "developer")
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.fit.db.Model(&model.CareerFitSnapshot{}).Count(&count).Error)
	assert.Zero(t, count)

	report, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)
	require.NoError(t, f.fit.db.Model(&model.CareerFitSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	path, err := f.fit.LearningPathFor(ctx, report, "developer")
	require.NoError(t, err)
	assert.Equal(t, "developer", path.Career)
	_, err = f.fit.LearningPathFor(ctx, report, "astronaut")
	assert.ErrorIs(t, err, ErrCareerNotFound)

	require.NoError(t, f.fit.db.Model(&model.CareerFitSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAnalyzeCareerLeavesCacheEmpty(t *testing.T) {
	f := newFitFixture(t, true)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	_, err := f.fit.AnalyzeCareer(ctx, f.user.ID, "artist")
	require.NoError(t, err)
	assert.Zero(t, f.cache.sets)

	// the first recorded analysis computes, snapshots and caches
	_, err = f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)

	var count int64
	require.NoError(t, f.fit.db.Model(&model.CareerFitSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestExportCSV(t *testing.T) {
	f := newFitFixture(t, false)
	completeAllAssessments(t, f.assessments, f.user.ID)

	report, err := f.fit.Analyze(context.Background(), f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, report))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// header + 10 category rows, then header + 2 matches; the blank separator is skipped by the reader
	require.Len(t, records, 14)
	assert.Equal(t, []string{"dimension", "category", "average", "score", "level"}, records[0])
	assert.Equal(t, []string{"interests", "investigative", "5.00", "100.00", "Expert"}, records[1])
	assert.Equal(t, "rank", records[11][0])
	assert.Equal(t, []string{"1", "Developer", "IRC", "83.33", "95.31", "87.50", "88.57", "100.00", "Excellent"}, records[12])
	assert.Equal(t, "Weak", records[13][8])
}

func TestPurgeSnapshots(t *testing.T) {
	f := newFitFixture(t, false)
	completeAllAssessments(t, f.assessments, f.user.ID)
	ctx := context.Background()

	_, err := f.fit.Analyze(ctx, f.user.ID, AnalyzeOptions{})
	require.NoError(t, err)

	n, err := f.fit.PurgeSnapshots(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.fit.PurgeSnapshots(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
