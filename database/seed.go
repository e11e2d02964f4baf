package database

import (
	"fmt"
	"os"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/auth"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, log: log}
}

// SeedAll runs all seed functions. Each step skips itself when its table already has rows.
func (s *Seeder) SeedAll() error {
	s.log.Info("starting database seeding")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedUniversities(); err != nil {
		return fmt.Errorf("failed to seed universities: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedCareers(); err != nil {
		return fmt.Errorf("failed to seed careers: %w", err)
	}

	if err := s.SeedAssessments(); err != nil {
		return fmt.Errorf("failed to seed assessments: %w", err)
	}

	s.log.Info("database seeding completed")
	return nil
}

// SeedAdminUser creates the admin account from ADMIN_EMAIL and ADMIN_PASSWORD
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info("admin user already exists, skipping")
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		s.log.Warn("ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	s.log.Info("created admin user", zap.String("email", admin.Email))
	return nil
}

// SeedUniversities creates sample locations and universities
func (s *Seeder) SeedUniversities() error {
	var count int64
	if err := s.db.Model(&model.University{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info("universities already exist, skipping")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		locations := seedLocations()
		if err := tx.Create(&locations).Error; err != nil {
			return err
		}

		universities := seedUniversities()
		for i := range universities {
			if i < len(locations) {
				universities[i].LocationID = &locations[i].ID
			}
		}
		if err := tx.Create(&universities).Error; err != nil {
			return err
		}

		s.log.Info("created universities", zap.Int("count", len(universities)), zap.Int("locations", len(locations)))
		return nil
	})
}

// SeedCourses creates the course catalog learning paths draw from
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info("courses already exist, skipping")
		return nil
	}

	var universities []model.University
	if err := s.db.Find(&universities).Error; err != nil {
		return err
	}
	bySlug := make(map[string]uint, len(universities))
	for _, u := range universities {
		bySlug[u.Slug] = u.ID
	}

	courses := make([]model.Course, 0, len(courseCatalog))
	for _, c := range courseCatalog {
		course := model.Course{
			Slug:          c.slug,
			Title:         c.title,
			Provider:      c.provider,
			Level:         c.level,
			Skills:        c.skills,
			DurationWeeks: c.weeks,
			IsActive:      true,
		}
		if id, ok := bySlug[c.university]; ok {
			universityID := id
			course.UniversityID = &universityID
		}
		courses = append(courses, course)
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	s.log.Info("created courses", zap.Int("count", len(courses)))
	return nil
}

// SeedCareers creates the career catalog
func (s *Seeder) SeedCareers() error {
	var count int64
	if err := s.db.Model(&model.Career{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info("careers already exist, skipping")
		return nil
	}

	careers := seedCareers()
	if err := s.db.Create(&careers).Error; err != nil {
		return err
	}

	s.log.Info("created careers", zap.Int("count", len(careers)))
	return nil
}

// SeedAssessments creates the three assessment types with their questions
func (s *Seeder) SeedAssessments() error {
	var count int64
	if err := s.db.Model(&model.AssessmentType{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.log.Info("assessment types already exist, skipping")
		return nil
	}

	types := seedAssessmentTypes()
	if err := s.db.Create(&types).Error; err != nil {
		return err
	}

	questions := 0
	for _, t := range types {
		questions += len(t.Questions)
	}
	s.log.Info("created assessment types", zap.Int("count", len(types)), zap.Int("questions", questions))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB, log *zap.Logger) error {
	seeder := NewSeeder(db, log)
	return seeder.SeedAll()
}
