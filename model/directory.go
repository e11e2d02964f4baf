package model

import (
	"time"

	"gorm.io/gorm"
)

// Publication statuses shared by directory listings
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Location is a city/region that listings can be attached to
type Location struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	City      string         `gorm:"not null" json:"city"`
	Region    string         `json:"region"`
	Country   string         `gorm:"not null" json:"country"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Company is an employer listing
type Company struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Industry    string         `json:"industry"`
	LocationID  *uint          `gorm:"index" json:"location_id,omitempty"`
	Website     string         `json:"website"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(20);default:'published'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Competition is a hackathon, olympiad or contest listing
type Competition struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	Organizer   string         `json:"organizer"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(20);default:'published'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarketplaceItem is a user-posted listing (books, equipment, services)
type MarketplaceItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	SellerID    uint           `gorm:"not null;index" json:"seller_id"`
	Title       string         `gorm:"not null" json:"title"`
	PriceCents  int64          `json:"price_cents"`
	Condition   string         `gorm:"type:varchar(20)" json:"condition"` // new, used
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(20);default:'published'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Seller User `gorm:"foreignKey:SellerID" json:"-"`
}

// BlogPost is an editorial article
type BlogPost struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Title       string         `gorm:"not null" json:"title"`
	Body        string         `gorm:"type:text" json:"body"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	Status      string         `gorm:"type:varchar(20);default:'draft'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

// Resource is a curated external resource (guide, video, tool)
type Resource struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Title     string         `gorm:"not null" json:"title"`
	Kind      string         `gorm:"type:varchar(20)" json:"kind"` // article, video, tool
	URL       string         `gorm:"type:varchar(255);not null" json:"url"`
	CareerID  *uint          `gorm:"index" json:"career_id,omitempty"`
	Status    string         `gorm:"type:varchar(20);default:'published'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Link is a community-shared link
type Link struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"not null" json:"title"`
	URL       string         `gorm:"type:varchar(255);not null" json:"url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Comments []LinkComment `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// LinkComment is a comment on a shared link
type LinkComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    uint      `gorm:"not null;index" json:"link_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlumniAssociation is an alumni network attached to a university
type AlumniAssociation struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Slug         string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	UniversityID uint           `gorm:"not null;index" json:"university_id"`
	Name         string         `gorm:"not null" json:"name"`
	ContactEmail string         `json:"contact_email"`
	Status       string         `gorm:"type:varchar(20);default:'published'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	University University `gorm:"foreignKey:UniversityID" json:"-"`
}
