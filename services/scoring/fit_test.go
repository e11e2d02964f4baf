package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequirements() []Requirement {
	return []Requirement{
		{Skill: "programming", RequiredLevel: 80, Importance: 3},
		{Skill: "communication", RequiredLevel: 60, Importance: 1},
		{Skill: "Data Analysis", RequiredLevel: 50, Importance: 2},
	}
}

func TestSkillsFit(t *testing.T) {
	user := map[string]float64{"programming": 60, "communication": 80}
	// (0.75*3 + 1*1 + 0*2) / 6
	assert.InDelta(t, 54.17, SkillsFit(user, sampleRequirements()), 0.001)
}

func TestSkillsFit_EdgeCases(t *testing.T) {
	assert.Equal(t, 100.0, SkillsFit(nil, nil))
	assert.Equal(t, 100.0, SkillsFit(nil, []Requirement{{Skill: "x", RequiredLevel: 0, Importance: 2}}))
	assert.Equal(t, 0.0, SkillsFit(nil, []Requirement{{Skill: "x", RequiredLevel: 10}}))
	assert.Equal(t, 100.0, SkillsFit(map[string]float64{"x": 95}, []Requirement{{Skill: "X", RequiredLevel: 70, Importance: 9}}))
}

func TestSkillGaps(t *testing.T) {
	user := map[string]float64{"programming": 60, "communication": 80}
	gaps := SkillGaps(user, sampleRequirements())
	require.Len(t, gaps, 2)

	// 50 points * importance 2 outranks 20 points * importance 3
	assert.Equal(t, "data_analysis", gaps[0].Skill)
	assert.Equal(t, 50.0, gaps[0].Gap)
	assert.Equal(t, SeverityCritical, gaps[0].Severity)
	assert.Equal(t, LevelNovice, gaps[0].CurrentLevel)

	assert.Equal(t, "programming", gaps[1].Skill)
	assert.Equal(t, 20.0, gaps[1].Gap)
	assert.Equal(t, SeverityModerate, gaps[1].Severity)
	assert.Equal(t, LevelProficient, gaps[1].CurrentLevel)
}

func TestSkillGaps_TieBreaksByName(t *testing.T) {
	gaps := SkillGaps(map[string]float64{}, []Requirement{
		{Skill: "writing", RequiredLevel: 10, Importance: 1},
		{Skill: "design", RequiredLevel: 10, Importance: 1},
	})
	require.Len(t, gaps, 2)
	assert.Equal(t, "design", gaps[0].Skill)
	assert.Equal(t, SeverityMinor, gaps[0].Severity)
}

func TestSkillGaps_NoneWhenMet(t *testing.T) {
	gaps := SkillGaps(map[string]float64{"x": 90}, []Requirement{{Skill: "x", RequiredLevel: 90}})
	assert.NotNil(t, gaps)
	assert.Empty(t, gaps)
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, SeverityCritical, SeverityFor(40))
	assert.Equal(t, SeverityModerate, SeverityFor(39.9))
	assert.Equal(t, SeverityModerate, SeverityFor(20))
	assert.Equal(t, SeverityMinor, SeverityFor(19.99))
}

func TestPersonalityFit(t *testing.T) {
	traits := map[string]float64{"openness": 70, "conscientiousness": 50}
	profile := map[string]float64{"openness": 80, "conscientiousness": 70, "extraversion": 40}
	// distances 10, 20 and |50 (neutral) - 40| = 10
	assert.InDelta(t, 86.67, PersonalityFit(traits, profile), 0.001)

	assert.Equal(t, 100.0, PersonalityFit(traits, nil))
	assert.Equal(t, 0.0, PersonalityFit(map[string]float64{"a": 0}, map[string]float64{"a": 100}))
	assert.Equal(t, 100.0, PersonalityFit(map[string]float64{"openness": 65}, map[string]float64{"Openness": 65}))
}
