package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	ftm := getFuncTagMap(cfg, os.Getpid())
	return func(c *fiber.Ctx) error {
		id := requestID(c)
		c.Locals(RequestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)

		d := &data{start: time.Now()}
		d.err = c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return d.err
		}

		var entry *log.Entry
		if cfg.Logger == nil {
			entry = log.WithFields(getLogrusFields(ftm, c, d))
		} else {
			entry = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		}
		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error(getMessage(c))
		case status >= fiber.StatusMultipleChoices:
			entry.Warn(getMessage(c))
		default:
			entry.Info(getMessage(c))
		}
		return d.err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}
