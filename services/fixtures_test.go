package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/cache"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memoryCache is an in-process FitCache
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return cache.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	store, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	return store.DB()
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "hash", Name: email, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// seedAssessments creates one question per category for each required assessment
func seedAssessments(t *testing.T, db *gorm.DB) {
	t.Helper()
	types := []model.AssessmentType{
		{Slug: model.AssessmentRIASEC, Name: "Interests", ScaleMax: 5, IsActive: true, Questions: questionsFor(
			"realistic", "investigative", "artistic", "social", "enterprising", "conventional")},
		{Slug: model.AssessmentSkills, Name: "Skills", ScaleMax: 5, IsActive: true, Questions: questionsFor(
			"programming", "communication")},
		{Slug: model.AssessmentPersonality, Name: "Personality", ScaleMax: 5, IsActive: true, Questions: questionsFor(
			"openness", "conscientiousness")},
	}
	require.NoError(t, db.Create(&types).Error)
}

func questionsFor(categories ...string) []model.AssessmentQuestion {
	qs := make([]model.AssessmentQuestion, 0, len(categories))
	for i, c := range categories {
		qs = append(qs, model.AssessmentQuestion{Category: c, Text: "How much do you like " + c + "?", Position: i + 1})
	}
	return qs
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	careers := []model.Career{
		{
			Slug: "developer", Title: "Developer", HollandCode: "IRC", IsActive: true,
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "programming", RequiredLevel: 80, Importance: 3},
				{Skill: "communication", RequiredLevel: 60, Importance: 1},
			},
			PersonalityProfile: datatypes.NewJSONType(map[string]float64{"openness": 70, "conscientiousness": 70}),
		},
		{
			Slug: "artist", Title: "Artist", HollandCode: "ASE", IsActive: true,
			SkillRequirements: datatypes.JSONSlice[model.SkillRequirement]{
				{Skill: "design", RequiredLevel: 60, Importance: 2},
			},
			PersonalityProfile: datatypes.NewJSONType(map[string]float64{"openness": 90}),
		},
		{Slug: "retired", Title: "Retired Career", HollandCode: "R", IsActive: true},
	}
	require.NoError(t, db.Create(&careers).Error)
	require.NoError(t, db.Model(&model.Career{}).Where("slug = ?", "retired").Update("is_active", false).Error)

	courses := []model.Course{
		{Slug: "design-101", Title: "Design Basics", Level: model.CourseBeginner, Skills: []string{"design"}, DurationWeeks: 6, IsActive: true},
		{Slug: "design-301", Title: "Design Studio", Level: model.CourseAdvanced, Skills: []string{"design"}, DurationWeeks: 10, IsActive: true},
		{Slug: "go-201", Title: "Go Programming", Level: model.CourseIntermediate, Skills: []string{"programming"}, DurationWeeks: 8, IsActive: true},
	}
	require.NoError(t, db.Create(&courses).Error)
}

// answerAll starts, fills in and completes an assessment with one value per category
func answerAll(t *testing.T, svc *AssessmentService, userID uint, slug string, values map[string]int) *model.UserAssessmentAttempt {
	t.Helper()
	ctx := context.Background()

	attempt, _, err := svc.StartAttempt(ctx, userID, slug)
	require.NoError(t, err)
	answers := make([]Answer, 0, len(attempt.AssessmentType.Questions))
	for _, q := range attempt.AssessmentType.Questions {
		v, ok := values[q.Category]
		if !ok {
			v = 1
		}
		answers = append(answers, Answer{QuestionID: q.ID, Value: v})
	}
	_, err = svc.SaveResponses(ctx, userID, attempt.ID, answers)
	require.NoError(t, err)

	completed, err := svc.CompleteAttempt(ctx, userID, attempt.ID)
	require.NoError(t, err)
	return completed
}

var (
	interestAnswers    = map[string]int{"realistic": 4, "investigative": 5, "artistic": 2, "conventional": 3}
	skillAnswers       = map[string]int{"programming": 4, "communication": 5}
	personalityAnswers = map[string]int{"openness": 4, "conscientiousness": 3}
)

func completeAllAssessments(t *testing.T, svc *AssessmentService, userID uint) {
	t.Helper()
	answerAll(t, svc, userID, model.AssessmentRIASEC, interestAnswers)
	answerAll(t, svc, userID, model.AssessmentSkills, skillAnswers)
	answerAll(t, svc, userID, model.AssessmentPersonality, personalityAnswers)
}
