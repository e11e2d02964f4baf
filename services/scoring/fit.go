package scoring

import (
	"sort"
)

// Severity classifies how far a user is below a career's required skill level
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// Gap thresholds (inclusive lower bounds, in score points)
const (
	CriticalGap = 40.0
	ModerateGap = 20.0
)

// neutralTrait stands in for a personality trait the user was not assessed on
const neutralTrait = 50.0

// Requirement is a career's expectation for one skill category
type Requirement struct {
	Skill         string  `json:"skill"`
	RequiredLevel float64 `json:"required_level"`
	Importance    int     `json:"importance"`
}

// SkillGap describes a skill where the user is below the required level
type SkillGap struct {
	Skill        string   `json:"skill"`
	Current      float64  `json:"current"`
	Required     float64  `json:"required"`
	Gap          float64  `json:"gap"`
	Importance   int      `json:"importance"`
	Severity     Severity `json:"severity"`
	CurrentLevel Level    `json:"current_level"`
}

// SkillsFit is the importance-weighted coverage of a career's requirements, 0..100.
// Coverage of one requirement is min(user/required, 1); a requirement of 0 is always
// covered and a skill the user was not assessed on counts as 0. No requirements fit 100.
func SkillsFit(userSkills map[string]float64, reqs []Requirement) float64 {
	if len(reqs) == 0 {
		return 100
	}
	var sum, weights float64
	for _, r := range reqs {
		w := float64(importance(r.Importance))
		coverage := 1.0
		if r.RequiredLevel > 0 {
			coverage = clamp(userSkills[Key(r.Skill)]/r.RequiredLevel, 0, 1)
		}
		sum += w * coverage
		weights += w
	}
	return round2(sum / weights * 100)
}

// SkillGaps lists the requirements the user falls short of, most pressing first:
// ordered by importance × gap descending, then by skill name.
func SkillGaps(userSkills map[string]float64, reqs []Requirement) []SkillGap {
	gaps := make([]SkillGap, 0)
	for _, r := range reqs {
		current := userSkills[Key(r.Skill)]
		gap := r.RequiredLevel - current
		if gap <= 0 {
			continue
		}
		gaps = append(gaps, SkillGap{
			Skill:        Key(r.Skill),
			Current:      round2(current),
			Required:     round2(r.RequiredLevel),
			Gap:          round2(gap),
			Importance:   importance(r.Importance),
			Severity:     SeverityFor(gap),
			CurrentLevel: LevelFor(current),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		pi := float64(gaps[i].Importance) * gaps[i].Gap
		pj := float64(gaps[j].Importance) * gaps[j].Gap
		if pi != pj {
			return pi > pj
		}
		return gaps[i].Skill < gaps[j].Skill
	})
	return gaps
}

// SeverityFor buckets a positive gap.
func SeverityFor(gap float64) Severity {
	switch {
	case gap >= CriticalGap:
		return SeverityCritical
	case gap >= ModerateGap:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// PersonalityFit is 100 minus the mean absolute distance between the user's trait scores
// and the career's ideal profile. Traits the user lacks are taken as the neutral midpoint.
// An empty profile fits 100.
func PersonalityFit(traits map[string]float64, profile map[string]float64) float64 {
	if len(profile) == 0 {
		return 100
	}
	var dist float64
	for trait, ideal := range profile {
		v, ok := traits[Key(trait)]
		if !ok {
			v = neutralTrait
		}
		d := v - ideal
		if d < 0 {
			d = -d
		}
		dist += d
	}
	return round2(clamp(100-dist/float64(len(profile)), 0, 100))
}

func importance(i int) int {
	if i < 1 {
		return 1
	}
	if i > 3 {
		return 3
	}
	return i
}
