package scoring

import "sort"

// FitLabel is the qualitative bucket of a composite score
type FitLabel string

const (
	FitExcellent FitLabel = "Excellent"
	FitStrong    FitLabel = "Strong"
	FitModerate  FitLabel = "Moderate"
	FitWeak      FitLabel = "Weak"
)

// Weights blends the three assessment dimensions into a composite score
type Weights struct {
	Interests   float64 `json:"interests"`
	Skills      float64 `json:"skills"`
	Personality float64 `json:"personality"`
}

// DefaultWeights favours interests, then skills, then personality.
func DefaultWeights() Weights {
	return Weights{Interests: 0.40, Skills: 0.35, Personality: 0.25}
}

// Normalize scales the weights to sum to 1. Negative weights count as 0; if nothing
// positive remains the defaults are returned.
func (w Weights) Normalize() Weights {
	if w.Interests < 0 {
		w.Interests = 0
	}
	if w.Skills < 0 {
		w.Skills = 0
	}
	if w.Personality < 0 {
		w.Personality = 0
	}
	sum := w.Interests + w.Skills + w.Personality
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Interests:   w.Interests / sum,
		Skills:      w.Skills / sum,
		Personality: w.Personality / sum,
	}
}

// Composite blends the three fit scores with normalized weights.
func Composite(w Weights, interest, skills, personality float64) float64 {
	n := w.Normalize()
	return round2(n.Interests*interest + n.Skills*skills + n.Personality*personality)
}

// LabelFor buckets a composite score.
func LabelFor(score float64) FitLabel {
	switch {
	case score >= 80:
		return FitExcellent
	case score >= 65:
		return FitStrong
	case score >= 50:
		return FitModerate
	default:
		return FitWeak
	}
}

// Match is the fit of one user against one career
type Match struct {
	CareerID       uint       `json:"career_id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	HollandCode    string     `json:"holland_code"`
	InterestFit    float64    `json:"interest_fit"`
	SkillsFit      float64    `json:"skills_fit"`
	PersonalityFit float64    `json:"personality_fit"`
	Composite      float64    `json:"composite"`
	RelativeScore  float64    `json:"relative_score"`
	Label          FitLabel   `json:"label"`
	Rank           int        `json:"rank"`
	Gaps           []SkillGap `json:"gaps"`
}

// RankCareers orders matches by composite descending (title breaks ties), assigns ranks,
// min-max normalizes the composites of the whole set into RelativeScore, then keeps the
// first n (n <= 0 keeps all). The input slice is not modified.
func RankCareers(matches []Match, n int) []Match {
	ranked := make([]Match, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].Title < ranked[j].Title
	})

	if len(ranked) > 0 {
		hi := ranked[0].Composite
		lo := ranked[len(ranked)-1].Composite
		for i := range ranked {
			ranked[i].Rank = i + 1
			if hi == lo {
				ranked[i].RelativeScore = 100
				continue
			}
			ranked[i].RelativeScore = round2((ranked[i].Composite - lo) / (hi - lo) * 100)
		}
	}

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
