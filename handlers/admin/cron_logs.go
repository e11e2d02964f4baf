package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/sahilchouksey/career-compass-api/utils/response"
)

// ListCronLogs returns recent maintenance job runs, newest first
// GET /admin/cron-logs?job=&status=&page=&limit=
func ListCronLogs(c *fiber.Ctx, store database.Storage) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := store.DB().WithContext(c.Context()).Model(&model.CronJobLog{})
	if job := c.Query("job"); job != "" {
		query = query.Where("job_name = ?", job)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count cron logs")
	}

	var logs []model.CronJobLog
	if err := query.Order("started_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch cron logs")
	}

	return response.Paginated(c, logs, response.CalculatePagination(page, limit, total))
}
