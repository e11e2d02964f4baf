// Package advisor writes the counselor narrative that accompanies a career-fit report.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilchouksey/career-compass-api/services/scoring"
)

// Input is what a narrative is written from
type Input struct {
	Name        string
	HollandCode string
	Matches     []scoring.Match
	Path        *scoring.LearningPath // learning path of the best match, may be nil
}

// Narrator turns an analysis into a short paragraph of advice
type Narrator interface {
	Narrate(ctx context.Context, in Input) (string, error)
}

var interestPhrases = map[string]string{
	"realistic":     "hands-on, practical work",
	"investigative": "analysing problems and finding out how things work",
	"artistic":      "creating and expressing ideas",
	"social":        "helping and teaching people",
	"enterprising":  "leading and persuading others",
	"conventional":  "organising information and following clear processes",
}

// TemplateNarrator writes a deterministic narrative without any external service
type TemplateNarrator struct{}

// Narrate implements Narrator
func (TemplateNarrator) Narrate(_ context.Context, in Input) (string, error) {
	var b strings.Builder

	owner := "Your"
	if name := strings.TrimSpace(in.Name); name != "" {
		owner = name + "'s"
	}

	if in.HollandCode != "" {
		fmt.Fprintf(&b, "%s interest profile is %s", owner, in.HollandCode)
		if phrase := interestPhrases[scoring.CategoryForLetter(in.HollandCode[0])]; phrase != "" {
			fmt.Fprintf(&b, ", with the strongest pull towards %s", phrase)
		}
		b.WriteString(". ")
	}

	if len(in.Matches) == 0 {
		b.WriteString("No careers are in the catalog yet, so there is nothing to compare against.")
		return b.String(), nil
	}

	best := in.Matches[0]
	fmt.Fprintf(&b, "%s is the closest match with a composite score of %.0f (%s).",
		best.Title, best.Composite, strings.ToLower(string(best.Label)))
	if len(in.Matches) > 1 {
		fmt.Fprintf(&b, " %s follows at %.0f.", in.Matches[1].Title, in.Matches[1].Composite)
	}

	if len(best.Gaps) == 0 {
		b.WriteString(" Your current skills already meet what this career asks for.")
		return b.String(), nil
	}

	gap := best.Gaps[0]
	fmt.Fprintf(&b, " The biggest gap is %s, about %.0f points below the expected level.",
		humanize(gap.Skill), gap.Gap)
	if in.Path != nil && in.Path.TotalWeeks > 0 {
		fmt.Fprintf(&b, " The suggested learning path takes roughly %d weeks.", in.Path.TotalWeeks)
	}
	return b.String(), nil
}

func humanize(skill string) string {
	return strings.ReplaceAll(skill, "_", " ")
}
