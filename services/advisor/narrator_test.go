package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() Input {
	return Input{
		Name:        "Ada",
		HollandCode: "IRC",
		Matches: []scoring.Match{
			{
				Rank: 1, Title: "Data Scientist", Composite: 82.4, Label: scoring.FitExcellent,
				Gaps: []scoring.SkillGap{{Skill: "data_analysis", Gap: 25, Severity: scoring.SeverityModerate}},
			},
			{Rank: 2, Title: "Software Developer", Composite: 77.6, Label: scoring.FitStrong},
		},
		Path: &scoring.LearningPath{TotalWeeks: 14},
	}
}

func TestTemplateNarrator(t *testing.T) {
	text, err := TemplateNarrator{}.Narrate(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Contains(t, text, "Ada's interest profile is IRC")
	assert.Contains(t, text, "analysing problems")
	assert.Contains(t, text, "Data Scientist is the closest match with a composite score of 82 (excellent).")
	assert.Contains(t, text, "Software Developer follows at 78.")
	assert.Contains(t, text, "The biggest gap is data analysis, about 25 points")
	assert.Contains(t, text, "roughly 14 weeks")
}

func TestTemplateNarrator_NoGapsOrMatches(t *testing.T) {
	in := sampleInput()
	in.Matches = in.Matches[1:]
	text, err := TemplateNarrator{}.Narrate(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, text, "already meet")

	in.Matches = nil
	in.Name = ""
	text, err = TemplateNarrator{}.Narrate(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, text, "Your interest profile is IRC")
	assert.Contains(t, text, "No careers")
}

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestGeminiNarrator(t *testing.T) {
	gen := &fakeGenerator{reply: "Keep exploring data work."}
	n := newGeminiNarrator(gen, nil)

	text, err := n.Narrate(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "Keep exploring data work.", text)
	assert.Contains(t, gen.prompt, "Holland code: IRC")
	assert.Contains(t, gen.prompt, "1. Data Scientist: 82.4")
	assert.Contains(t, gen.prompt, "- data analysis: 25 below required (moderate)")
	assert.Contains(t, gen.prompt, "Learning path length: 14 weeks")
}

func TestGeminiNarrator_FallsBackToTemplate(t *testing.T) {
	n := newGeminiNarrator(&fakeGenerator{err: errors.New("quota exceeded")}, nil)

	text, err := n.Narrate(context.Background(), sampleInput())
	require.NoError(t, err)
	want, _ := TemplateNarrator{}.Narrate(context.Background(), sampleInput())
	assert.Equal(t, want, text)
}

func TestNewGeminiNarrator_RequiresKey(t *testing.T) {
	_, err := NewGeminiNarrator(context.Background(), "  ", "", nil)
	assert.Error(t, err)
}
