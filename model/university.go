package model

import (
	"time"

	"gorm.io/gorm"
)

// University represents an educational institution
type University struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Slug       string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Name       string         `gorm:"not null" json:"name"`
	LocationID *uint          `gorm:"index" json:"location_id,omitempty"`
	Website    string         `gorm:"type:varchar(255)" json:"website"`
	Ranking    int            `json:"ranking,omitempty"`
	Status     string         `gorm:"type:varchar(20);default:'published'" json:"status"` // draft, published, archived
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Courses []Course `gorm:"foreignKey:UniversityID" json:"courses,omitempty"`
}
