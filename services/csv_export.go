package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sahilchouksey/career-compass-api/model"
)

// ExportCSV writes a report as CSV: one block of category scores per dimension, a blank
// line, then the ranked career matches
func ExportCSV(w io.Writer, report *CareerFitReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"dimension", "category", "average", "score", "level"}); err != nil {
		return err
	}
	dimensions := []struct {
		name    string
		results []model.CategoryResult
	}{
		{"interests", report.Interests},
		{"skills", report.Skills},
		{"personality", report.Personality},
	}
	for _, d := range dimensions {
		for _, r := range d.results {
			if err := cw.Write([]string{d.name, r.Category, formatScore(r.Average), formatScore(r.Score), r.Level}); err != nil {
				return err
			}
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}

	if err := cw.Write([]string{
		"rank", "career", "holland_code", "interest_fit", "skills_fit",
		"personality_fit", "composite", "relative_score", "label",
	}); err != nil {
		return err
	}
	for _, m := range report.Matches {
		if err := cw.Write([]string{
			strconv.Itoa(m.Rank),
			m.Title,
			m.HollandCode,
			formatScore(m.InterestFit),
			formatScore(m.SkillsFit),
			formatScore(m.PersonalityFit),
			formatScore(m.Composite),
			formatScore(m.RelativeScore),
			string(m.Label),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
