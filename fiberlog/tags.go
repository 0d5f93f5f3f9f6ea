package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid     = "pid"
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagQuery   = "query"
	TagError   = "error"
)

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
	err   error
}

var funcTags = map[string]FuncTag{
	TagPid: func(_ *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Path()
	},
	TagIP: func(c *fiber.Ctx, _ *data) interface{} {
		return c.IP()
	},
	TagQuery: func(c *fiber.Ctx, _ *data) interface{} {
		return string(c.Request().URI().QueryString())
	},
	TagError: func(_ *fiber.Ctx, d *data) interface{} {
		if d.err == nil {
			return ""
		}
		return d.err.Error()
	},
}

// getFuncTagMap неизвестные теги пропускаются
func getFuncTagMap(cfg Config) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
