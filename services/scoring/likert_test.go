package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLikert(t *testing.T) {
	tests := []struct {
		name     string
		avg      float64
		scaleMax int
		want     float64
	}{
		{"floor", 1, 5, 0},
		{"ceiling", 5, 5, 100},
		{"midpoint", 3, 5, 50},
		{"agree", 4, 5, 75},
		{"fractional", 2.5, 5, 37.5},
		{"seven point scale", 4, 7, 50},
		{"above scale clamps", 6, 5, 100},
		{"below scale clamps", 0.5, 5, 0},
		{"degenerate scale", 3, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeLikert(tt.avg, tt.scaleMax), 0.0001)
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelNovice},
		{39.99, LevelNovice},
		{40, LevelIntermediate},
		{59.99, LevelIntermediate},
		{60, LevelProficient},
		{79.99, LevelProficient},
		{80, LevelExpert},
		{100, LevelExpert},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.score), "score %.2f", tt.score)
	}
}

func TestAggregateCategories(t *testing.T) {
	responses := []Response{
		{Category: "Investigative", Value: 5},
		{Category: "investigative", Value: 4},
		{Category: "artistic", Value: 2},
		{Category: "artistic", Value: 5, ReverseScored: true},
		{Category: "Social ", Value: 3},
		{Category: "  ", Value: 5},
	}

	got := AggregateCategories(responses, 5)
	require.Len(t, got, 3)

	assert.Equal(t, "investigative", got[0].Category)
	assert.InDelta(t, 4.5, got[0].Average, 0.001)
	assert.InDelta(t, 87.5, got[0].Score, 0.001)
	assert.Equal(t, LevelExpert, got[0].Level)
	assert.Equal(t, 2, got[0].Responses)

	assert.Equal(t, "social", got[1].Category)
	assert.InDelta(t, 50, got[1].Score, 0.001)
	assert.Equal(t, LevelIntermediate, got[1].Level)

	// reverse-scored 5 counts as 1, so artistic averages 1.5
	assert.Equal(t, "artistic", got[2].Category)
	assert.InDelta(t, 1.5, got[2].Average, 0.001)
	assert.InDelta(t, 12.5, got[2].Score, 0.001)
	assert.Equal(t, LevelNovice, got[2].Level)
}

func TestAggregateCategories_TiesSortByName(t *testing.T) {
	got := AggregateCategories([]Response{
		{Category: "teamwork", Value: 4},
		{Category: "communication", Value: 4},
	}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "communication", got[0].Category)
	assert.Equal(t, "teamwork", got[1].Category)
}

func TestAggregateCategories_Empty(t *testing.T) {
	assert.Empty(t, AggregateCategories(nil, 5))
}

func TestScoreMapAndKey(t *testing.T) {
	assert.Equal(t, "problem_solving", Key("Problem Solving"))
	assert.Equal(t, "data_analysis", Key(" Data-Analysis "))

	m := ScoreMap([]CategoryScore{{Category: "Problem Solving", Score: 42}})
	assert.Equal(t, 42.0, m["problem_solving"])
}
