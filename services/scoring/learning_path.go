package scoring

import "sort"

// Learning path phases, in the order they are presented
const (
	PhaseFoundation  = "Foundation"
	PhaseDevelopment = "Development"
	PhaseRefinement  = "Refinement"
)

// coursesPerGap caps how many courses are suggested for a single skill gap
const coursesPerGap = 2

var courseLevelRank = map[string]int{
	"beginner":     0,
	"intermediate": 1,
	"advanced":     2,
}

// CourseOption is a course the learning path may recommend
type CourseOption struct {
	ID            uint     `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Provider      string   `json:"provider,omitempty"`
	Level         string   `json:"level"`
	Skills        []string `json:"skills"`
	DurationWeeks int      `json:"duration_weeks"`
	URL           string   `json:"url,omitempty"`
}

// LearningStep pairs one skill gap with the courses that address it
type LearningStep struct {
	Skill    string         `json:"skill"`
	Severity Severity       `json:"severity"`
	Gap      float64        `json:"gap"`
	Courses  []CourseOption `json:"courses"`
}

// LearningPhase groups steps of the same severity
type LearningPhase struct {
	Name  string         `json:"name"`
	Steps []LearningStep `json:"steps"`
}

// LearningPath is the ordered plan for closing a career's skill gaps
type LearningPath struct {
	Career     string          `json:"career"`
	Phases     []LearningPhase `json:"phases"`
	TotalWeeks int             `json:"total_weeks"`
	Uncovered  []string        `json:"uncovered"` // gaps no course teaches
}

// TargetCourseLevel maps the user's current proficiency to the course level to start at.
func TargetCourseLevel(l Level) string {
	switch l {
	case LevelNovice:
		return "beginner"
	case LevelIntermediate:
		return "intermediate"
	default:
		return "advanced"
	}
}

// BuildLearningPath turns skill gaps into phases of course recommendations. Critical gaps
// form the Foundation phase, moderate ones Development and minor ones Refinement. Each gap
// gets up to two courses teaching the skill, closest to the user's target level first,
// then shortest, then by title. A course is never recommended twice.
func BuildLearningPath(career string, gaps []SkillGap, courses []CourseOption) LearningPath {
	path := LearningPath{Career: career, Phases: []LearningPhase{}, Uncovered: []string{}}
	used := make(map[string]bool)
	byPhase := map[string][]LearningStep{}

	for _, gap := range gaps {
		target := courseLevelRank[TargetCourseLevel(gap.CurrentLevel)]
		candidates := make([]CourseOption, 0)
		for _, c := range courses {
			if used[c.Slug] || !teaches(c, gap.Skill) {
				continue
			}
			candidates = append(candidates, c)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			di := levelDistance(candidates[i].Level, target)
			dj := levelDistance(candidates[j].Level, target)
			if di != dj {
				return di < dj
			}
			if candidates[i].DurationWeeks != candidates[j].DurationWeeks {
				return candidates[i].DurationWeeks < candidates[j].DurationWeeks
			}
			return candidates[i].Title < candidates[j].Title
		})
		if len(candidates) > coursesPerGap {
			candidates = candidates[:coursesPerGap]
		}
		if len(candidates) == 0 {
			path.Uncovered = append(path.Uncovered, gap.Skill)
		}
		for _, c := range candidates {
			used[c.Slug] = true
			path.TotalWeeks += c.DurationWeeks
		}

		phase := phaseFor(gap.Severity)
		byPhase[phase] = append(byPhase[phase], LearningStep{
			Skill:    gap.Skill,
			Severity: gap.Severity,
			Gap:      gap.Gap,
			Courses:  candidates,
		})
	}

	for _, name := range []string{PhaseFoundation, PhaseDevelopment, PhaseRefinement} {
		if steps := byPhase[name]; len(steps) > 0 {
			path.Phases = append(path.Phases, LearningPhase{Name: name, Steps: steps})
		}
	}
	return path
}

func phaseFor(s Severity) string {
	switch s {
	case SeverityCritical:
		return PhaseFoundation
	case SeverityModerate:
		return PhaseDevelopment
	default:
		return PhaseRefinement
	}
}

func teaches(c CourseOption, skill string) bool {
	for _, s := range c.Skills {
		if Key(s) == skill {
			return true
		}
	}
	return false
}

func levelDistance(level string, target int) int {
	r, ok := courseLevelRank[level]
	if !ok {
		r = 0
	}
	d := r - target
	if d < 0 {
		d = -d
	}
	return d
}
