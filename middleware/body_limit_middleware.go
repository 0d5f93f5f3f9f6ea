package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	apimodels "huntflow-sync/models/api"
)

// WithBodyLimit отклоняет запрос по заголовку Content-Length до чтения тела
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength == "" || contentLength == "0" {
			return c.Next()
		}
		size, err := strconv.ParseInt(contentLength, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректный заголовок Content-Length"))
		}
		if size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(
				apimodels.NewError(fmt.Sprintf("размер запроса превышает допустимый: %d байт", limit)))
		}
		return c.Next()
	}
}
