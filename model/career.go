package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SkillRequirement is the minimum proficiency (0..100) a career expects in one skill category
type SkillRequirement struct {
	Skill         string  `json:"skill"`
	RequiredLevel float64 `json:"required_level"`
	Importance    int     `json:"importance"` // 1 (nice to have) .. 3 (essential)
}

// Career is a catalog entry the career-fit analysis ranks users against
type Career struct {
	ID                 uint                                   `gorm:"primaryKey" json:"id"`
	Slug               string                                 `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Title              string                                 `gorm:"not null" json:"title"`
	Description        string                                 `gorm:"type:text" json:"description"`
	HollandCode        string                                 `gorm:"type:varchar(3);not null;index" json:"holland_code"` // e.g. "IRC"
	SkillRequirements  datatypes.JSONSlice[SkillRequirement]  `json:"skill_requirements"`
	PersonalityProfile datatypes.JSONType[map[string]float64] `json:"personality_profile"` // trait -> ideal 0..100
	EducationLevel     string                                 `gorm:"type:varchar(50)" json:"education_level"`
	MedianSalary       int                                    `json:"median_salary"`
	GrowthOutlook      string                                 `gorm:"type:varchar(20)" json:"growth_outlook"` // declining, stable, growing, booming
	Tags               datatypes.JSONSlice[string]            `json:"tags"`
	IsActive           bool                                   `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time                              `json:"created_at"`
	UpdatedAt          time.Time                              `json:"updated_at"`
	DeletedAt          gorm.DeletedAt                         `gorm:"index" json:"-"`
}
