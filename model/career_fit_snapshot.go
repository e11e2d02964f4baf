package model

import (
	"time"

	"gorm.io/datatypes"
)

// SnapshotMatch is the compact form of a ranked career kept in a snapshot
type SnapshotMatch struct {
	Slug      string  `json:"slug"`
	Composite float64 `json:"composite"`
	Label     string  `json:"label"`
}

// CareerFitSnapshot records each freshly computed career-fit analysis for a user
type CareerFitSnapshot struct {
	ID                uint                               `gorm:"primaryKey" json:"id"`
	UserID            uint                               `gorm:"not null;index" json:"user_id"`
	HollandCode       string                             `gorm:"type:varchar(3)" json:"holland_code"`
	WeightInterests   float64                            `json:"weight_interests"`
	WeightSkills      float64                            `json:"weight_skills"`
	WeightPersonality float64                            `json:"weight_personality"`
	TopMatches        datatypes.JSONSlice[SnapshotMatch] `json:"top_matches"`
	ComputedAt        time.Time                          `gorm:"not null;index" json:"computed_at"`
	CreatedAt         time.Time                          `json:"created_at"`
}
