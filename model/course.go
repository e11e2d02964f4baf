package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course levels, ordered from entry to advanced
const (
	CourseBeginner     = "beginner"
	CourseIntermediate = "intermediate"
	CourseAdvanced     = "advanced"
)

// Course is a learning offering (university module, MOOC, bootcamp) that teaches one or more skills
type Course struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"-"`
	UniversityID  *uint                       `gorm:"index" json:"university_id,omitempty"`
	Slug          string                      `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Title         string                      `gorm:"not null" json:"title"`
	Provider      string                      `gorm:"type:varchar(120)" json:"provider"`
	Description   string                      `gorm:"type:text" json:"description"`
	Skills        datatypes.JSONSlice[string] `json:"skills"` // skill categories this course develops
	Level         string                      `gorm:"type:varchar(20);default:'beginner'" json:"level"`
	DurationWeeks int                         `gorm:"default:4" json:"duration_weeks"`
	URL           string                      `gorm:"type:varchar(255)" json:"url"`
	IsActive      bool                        `gorm:"default:true" json:"is_active"`

	// Relationships
	University *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
}
