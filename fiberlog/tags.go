package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid       = "pid"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagIP        = "ip"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagQuery     = "query"
	TagUA        = "user_agent"
	TagError     = "error"
	RequestID    = "request_id"
	RequestIDKey = "requestid"
)

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	start time.Time
	end   time.Time
	err   error
}

func getFuncTagMap(cfg Config, pid int) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return pid
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagQuery: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagUA: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return truncate(string(c.Body()), cfg.MaxBodyLen)
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			contentType := string(c.Response().Header.ContentType())
			for _, skip := range cfg.SkipBodyTypes {
				if strings.HasPrefix(contentType, skip) {
					return ""
				}
			}
			return truncate(string(c.Response().Body()), cfg.MaxBodyLen)
		},
		TagError: func(c *fiber.Ctx, d *data) interface{} {
			if d.err == nil {
				return ""
			}
			return d.err.Error()
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			requestID, _ := c.Locals(RequestIDKey).(string)
			return requestID
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// requestID из заголовка X-Request-ID, либо новый
func requestID(c *fiber.Ctx) string {
	if id := c.Get(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return uuid.NewString()
}

func truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
