package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemPrompt = `You are a career counselor writing for a student.
Write one paragraph of at most 120 words. Be concrete and encouraging.
Only use the facts you are given. Do not invent careers, scores or courses.`

// generator produces text for a prompt
type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiNarrator asks Gemini for the narrative and falls back to the template when the
// call fails or returns nothing
type GeminiNarrator struct {
	gen      generator
	fallback TemplateNarrator
	log      *zap.Logger
}

// NewGeminiNarrator creates a narrator backed by the Gemini API
func NewGeminiNarrator(ctx context.Context, apiKey, model string, log *zap.Logger) (*GeminiNarrator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return newGeminiNarrator(&geminiClient{client: client, model: model}, log), nil
}

func newGeminiNarrator(gen generator, log *zap.Logger) *GeminiNarrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiNarrator{gen: gen, log: log}
}

// Narrate implements Narrator
func (n *GeminiNarrator) Narrate(ctx context.Context, in Input) (string, error) {
	text, err := n.gen.GenerateContent(ctx, buildPrompt(in))
	if err != nil {
		n.log.Warn("gemini narrative failed, using template", zap.Error(err))
		return n.fallback.Narrate(ctx, in)
	}
	return text, nil
}

func buildPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student: %s\n", in.Name)
	fmt.Fprintf(&b, "Holland code: %s\n", in.HollandCode)
	b.WriteString("Top career matches (composite / interests / skills / personality):\n")
	for i, m := range in.Matches {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s: %.1f / %.1f / %.1f / %.1f (%s)\n",
			m.Rank, m.Title, m.Composite, m.InterestFit, m.SkillsFit, m.PersonalityFit, m.Label)
	}
	if len(in.Matches) > 0 && len(in.Matches[0].Gaps) > 0 {
		b.WriteString("Skill gaps for the best match:\n")
		for _, g := range in.Matches[0].Gaps {
			fmt.Fprintf(&b, "- %s: %.0f below required (%s)\n", humanize(g.Skill), g.Gap, g.Severity)
		}
	}
	if in.Path != nil && in.Path.TotalWeeks > 0 {
		fmt.Fprintf(&b, "Learning path length: %d weeks\n", in.Path.TotalWeeks)
	}
	return b.String()
}

type geminiClient struct {
	client *genai.Client
	model  string
}

func (g *geminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 400,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := strings.TrimSpace(resp.Text())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}
