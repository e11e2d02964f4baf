// Package scoring holds the pure arithmetic of the career-fit analysis: Likert
// aggregation, RIASEC interest fit, skill coverage and gaps, personality distance,
// weighted composites, ranking and learning-path assembly. Nothing here touches the
// database; services feed it plain values.
package scoring

import (
	"math"
	"sort"
	"strings"
)

// Level is the qualitative bucket of a normalized 0..100 score
type Level string

const (
	LevelNovice       Level = "Novice"
	LevelIntermediate Level = "Intermediate"
	LevelProficient   Level = "Proficient"
	LevelExpert       Level = "Expert"
)

// Level thresholds (inclusive lower bounds)
const (
	ExpertThreshold       = 80.0
	ProficientThreshold   = 60.0
	IntermediateThreshold = 40.0
)

// Response is one answered Likert item
type Response struct {
	Category      string
	Value         int
	ReverseScored bool
}

// CategoryScore is the aggregated result of all responses in one category
type CategoryScore struct {
	Category  string  `json:"category"`
	Average   float64 `json:"average"`
	Score     float64 `json:"score"`
	Level     Level   `json:"level"`
	Responses int     `json:"responses"`
}

// NormalizeLikert maps an average on a 1..scaleMax scale onto 0..100.
func NormalizeLikert(avg float64, scaleMax int) float64 {
	if scaleMax <= 1 {
		return 0
	}
	return clamp((avg-1)/float64(scaleMax-1)*100, 0, 100)
}

// LevelFor buckets a 0..100 score.
func LevelFor(score float64) Level {
	switch {
	case score >= ExpertThreshold:
		return LevelExpert
	case score >= ProficientThreshold:
		return LevelProficient
	case score >= IntermediateThreshold:
		return LevelIntermediate
	default:
		return LevelNovice
	}
}

// AggregateCategories groups responses by category, averages them and normalizes each
// average. Reverse-scored items are flipped before averaging. Results are sorted by
// score descending, then by category name.
func AggregateCategories(responses []Response, scaleMax int) []CategoryScore {
	type acc struct {
		sum   int
		count int
	}
	groups := make(map[string]*acc)
	for _, r := range responses {
		key := Key(r.Category)
		if key == "" {
			continue
		}
		v := r.Value
		if r.ReverseScored {
			v = scaleMax + 1 - v
		}
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
		}
		g.sum += v
		g.count++
	}

	out := make([]CategoryScore, 0, len(groups))
	for cat, g := range groups {
		avg := float64(g.sum) / float64(g.count)
		score := round2(NormalizeLikert(avg, scaleMax))
		out = append(out, CategoryScore{
			Category:  cat,
			Average:   round2(avg),
			Score:     score,
			Level:     LevelFor(score),
			Responses: g.count,
		})
	}
	sortCategoryScores(out)
	return out
}

// ScoreMap indexes category scores by normalized category key.
func ScoreMap(scores []CategoryScore) map[string]float64 {
	m := make(map[string]float64, len(scores))
	for _, s := range scores {
		m[Key(s.Category)] = s.Score
	}
	return m
}

// Key normalizes a category or skill name so "Problem Solving" and "problem_solving" match.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

func sortCategoryScores(scores []CategoryScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Category < scores[j].Category
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
