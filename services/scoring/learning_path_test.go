package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLearningPath(t *testing.T) {
	gaps := []SkillGap{
		{Skill: "data_analysis", Severity: SeverityCritical, Gap: 50, CurrentLevel: LevelNovice},
		{Skill: "programming", Severity: SeverityModerate, Gap: 20, CurrentLevel: LevelProficient},
		{Skill: "leadership", Severity: SeverityMinor, Gap: 10, CurrentLevel: LevelIntermediate},
	}
	courses := []CourseOption{
		{Slug: "ml-advanced", Title: "Machine Learning", Level: "advanced", Skills: []string{"data_analysis"}, DurationWeeks: 10},
		{Slug: "stats-201", Title: "Applied Statistics", Level: "intermediate", Skills: []string{"data_analysis", "programming"}, DurationWeeks: 8},
		{Slug: "stats-101", Title: "Intro to Statistics", Level: "beginner", Skills: []string{"Data Analysis"}, DurationWeeks: 6},
		{Slug: "py-adv", Title: "Advanced Python", Level: "advanced", Skills: []string{"programming"}, DurationWeeks: 5},
	}

	path := BuildLearningPath("data-scientist", gaps, courses)
	assert.Equal(t, "data-scientist", path.Career)
	require.Len(t, path.Phases, 3)

	foundation := path.Phases[0]
	assert.Equal(t, PhaseFoundation, foundation.Name)
	require.Len(t, foundation.Steps, 1)
	require.Len(t, foundation.Steps[0].Courses, 2)
	// a novice starts at beginner level, then the nearest level up
	assert.Equal(t, "stats-101", foundation.Steps[0].Courses[0].Slug)
	assert.Equal(t, "stats-201", foundation.Steps[0].Courses[1].Slug)

	development := path.Phases[1]
	assert.Equal(t, PhaseDevelopment, development.Name)
	require.Len(t, development.Steps[0].Courses, 1, "stats-201 is already in the path")
	assert.Equal(t, "py-adv", development.Steps[0].Courses[0].Slug)

	refinement := path.Phases[2]
	assert.Equal(t, PhaseRefinement, refinement.Name)
	assert.Empty(t, refinement.Steps[0].Courses)

	assert.Equal(t, []string{"leadership"}, path.Uncovered)
	assert.Equal(t, 19, path.TotalWeeks)
}

func TestBuildLearningPath_NoGaps(t *testing.T) {
	path := BuildLearningPath("nurse", nil, []CourseOption{{Slug: "a", Skills: []string{"x"}}})
	assert.Empty(t, path.Phases)
	assert.Empty(t, path.Uncovered)
	assert.Zero(t, path.TotalWeeks)
}

func TestTargetCourseLevel(t *testing.T) {
	assert.Equal(t, "beginner", TargetCourseLevel(LevelNovice))
	assert.Equal(t, "intermediate", TargetCourseLevel(LevelIntermediate))
	assert.Equal(t, "advanced", TargetCourseLevel(LevelProficient))
	assert.Equal(t, "advanced", TargetCourseLevel(LevelExpert))
}
