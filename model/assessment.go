package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment type slugs. The career-fit analysis needs a completed attempt of each.
const (
	AssessmentRIASEC      = "riasec"
	AssessmentSkills      = "skills"
	AssessmentPersonality = "personality"
)

// RequiredAssessments lists the assessments every career-fit analysis depends on, in report order
var RequiredAssessments = []string{AssessmentRIASEC, AssessmentSkills, AssessmentPersonality}

// AttemptStatus represents the lifecycle state of an assessment attempt
type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

// AssessmentType is one questionnaire (RIASEC interests, skills self-rating, personality)
type AssessmentType struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ScaleMax    int            `gorm:"default:5;not null" json:"scale_max"` // Likert 1..ScaleMax
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Questions []AssessmentQuestion `gorm:"foreignKey:AssessmentTypeID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// AssessmentQuestion is a single Likert item belonging to a category of its type
type AssessmentQuestion struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AssessmentTypeID uint      `gorm:"not null;index" json:"assessment_type_id"`
	Category         string    `gorm:"type:varchar(64);not null;index" json:"category"` // e.g. "investigative", "communication"
	Text             string    `gorm:"type:text;not null" json:"text"`
	Position         int       `gorm:"not null;default:0" json:"position"`
	ReverseScored    bool      `gorm:"default:false" json:"reverse_scored"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CategoryResult is the stored, normalized outcome for one category of a completed attempt
type CategoryResult struct {
	Category  string  `json:"category"`
	Average   float64 `json:"average"`
	Score     float64 `json:"score"` // 0..100
	Level     string  `json:"level"`
	Responses int     `json:"responses"`
}

// UserAssessmentAttempt is one sitting of an assessment by a user
type UserAssessmentAttempt struct {
	ID               uint                                `gorm:"primaryKey" json:"id"`
	UserID           uint                                `gorm:"not null;index;uniqueIndex:idx_attempt_open,where:status = 'in_progress' AND deleted_at IS NULL" json:"user_id"`
	AssessmentTypeID uint                                `gorm:"not null;index;uniqueIndex:idx_attempt_open" json:"assessment_type_id"`
	Status           AttemptStatus                       `gorm:"type:varchar(20);not null;default:'in_progress';index" json:"status"`
	StartedAt        time.Time                           `gorm:"not null" json:"started_at"`
	CompletedAt      *time.Time                          `json:"completed_at,omitempty"`
	CategoryScores   datatypes.JSONSlice[CategoryResult] `json:"category_scores,omitempty"`
	CreatedAt        time.Time                           `json:"created_at"`
	UpdatedAt        time.Time                           `json:"updated_at"`
	DeletedAt        gorm.DeletedAt                      `gorm:"index" json:"-"`

	// Relationships
	AssessmentType AssessmentType           `gorm:"foreignKey:AssessmentTypeID" json:"assessment_type,omitempty"`
	Responses      []UserAssessmentResponse `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
}

// UserAssessmentResponse is the answer to one question within an attempt
type UserAssessmentResponse struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AttemptID  uint      `gorm:"not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	Value      int       `gorm:"not null" json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
