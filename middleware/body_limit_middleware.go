package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	apimodels "job-requisition-backend/models/api"
)

// WithBodyLimit отклоняет запросы с телом больше limit байт.
// Подписи приходят в заявке как data URI, поэтому лимит задается в конфиге.
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}
		size := int64(len(c.Body()))
		if contentLength := c.Get(fiber.HeaderContentLength); contentLength != "" {
			declared, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && declared > size {
				size = declared
			}
		}
		if size > limit {
			log.WithField("path", c.Path()).
				WithField("size", size).
				Warn("превышен размер тела запроса")
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("размер запроса превышает допустимый: %d байт", limit)))
		}
		return c.Next()
	}
}
