package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/sahilchouksey/career-compass-api/utils/response"
)

// MakeHTTPHandleFunc adapts a handler that needs the database store to a fiber handler
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.InternalServerError(c, err.Error())
		}
		return nil
	}
}
