package course

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"gorm.io/gorm"
)

var courseLevels = map[string]bool{
	model.CourseBeginner:     true,
	model.CourseIntermediate: true,
	model.CourseAdvanced:     true,
}

// CourseHandler serves the course catalog that learning paths draw from
type CourseHandler struct {
	db *gorm.DB
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

// ListCourses handles GET /api/v1/courses
//
// Query: search (title, provider), skill, level, university (slug), page, limit.
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.WithContext(c.Context()).Model(&model.Course{}).Where("courses.is_active = ?", true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(courses.title) LIKE ? OR LOWER(courses.provider) LIKE ?", term, term)
	}

	if level := strings.ToLower(c.Query("level")); level != "" {
		if !courseLevels[level] {
			return response.ValidationError(c, map[string]string{
				"level": "level must be one of beginner, intermediate, advanced",
			})
		}
		query = query.Where("courses.level = ?", level)
	}

	if university := c.Query("university"); university != "" {
		query = query.Joins("JOIN universities ON universities.id = courses.university_id").
			Where("universities.slug = ?", university)
	}

	var courses []model.Course
	if err := query.Preload("University").Order("courses.title ASC").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	// skills is a JSON column, filtered here so the query stays portable across drivers
	if skill := strings.ToLower(strings.TrimSpace(c.Query("skill"))); skill != "" {
		filtered := courses[:0]
		for _, course := range courses {
			if teaches(course, skill) {
				filtered = append(filtered, course)
			}
		}
		courses = filtered
	}

	total := int64(len(courses))
	start := (page - 1) * limit
	if start > len(courses) {
		start = len(courses)
	}
	end := start + limit
	if end > len(courses) {
		end = len(courses)
	}

	return response.Paginated(c, courses[start:end], response.CalculatePagination(page, limit, total))
}

// GetCourse handles GET /api/v1/courses/:slug
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	var course model.Course
	err := h.db.WithContext(c.Context()).
		Preload("University").
		Where("slug = ? AND is_active = ?", c.Params("slug"), true).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Course not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

func teaches(course model.Course, skill string) bool {
	for _, s := range course.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
