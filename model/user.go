package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"type:varchar(20);default:'student'" json:"role"` // student, counselor, admin
	GradeLevel   string         `gorm:"type:varchar(50)" json:"grade_level,omitempty"`
	TokenVersion int            `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	Attempts       []UserAssessmentAttempt `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsStaff reports whether the user may read other users' results
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleCounselor
}
