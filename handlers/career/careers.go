package career

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
	"github.com/sahilchouksey/career-compass-api/utils/response"
	"gorm.io/gorm"
)

// CareerHandler serves the read side of the career catalog
type CareerHandler struct {
	db *gorm.DB
}

// NewCareerHandler creates a new career handler
func NewCareerHandler(db *gorm.DB) *CareerHandler {
	return &CareerHandler{db: db}
}

// ListCareers handles GET /api/v1/careers
//
// Query: search (title, description), holland (one or more RIASEC letters the career code
// must contain), outlook, page, limit.
func (h *CareerHandler) ListCareers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.WithContext(c.Context()).Model(&model.Career{}).Where("is_active = ?", true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	if letters := strings.ToUpper(strings.TrimSpace(c.Query("holland"))); letters != "" {
		for i := 0; i < len(letters); i++ {
			l := letters[i]
			if scoring.CategoryForLetter(l) == "" {
				return response.ValidationError(c, map[string]string{
					"holland": "holland must only contain the letters R, I, A, S, E, C",
				})
			}
			query = query.Where("holland_code LIKE ?", "%"+string(l)+"%")
		}
	}

	if outlook := c.Query("outlook"); outlook != "" {
		query = query.Where("growth_outlook = ?", outlook)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count careers")
	}

	var careers []model.Career
	if err := query.Order("title ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&careers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch careers")
	}

	return response.Paginated(c, careers, response.CalculatePagination(page, limit, total))
}

// GetCareer handles GET /api/v1/careers/:slug
func (h *CareerHandler) GetCareer(c *fiber.Ctx) error {
	var career model.Career
	err := h.db.WithContext(c.Context()).
		Where("slug = ? AND is_active = ?", c.Params("slug"), true).
		First(&career).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Career not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch career")
	}

	return response.Success(c, career)
}
