package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields пустые строковые значения не попадают в лог
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

// New middleware логирования запросов api через logrus
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions || (cfg.Skip != nil && cfg.Skip(c.Path())) {
			return c.Next()
		}
		// данные запроса локальны, middleware обслуживает запросы параллельно
		d := &data{
			pid:   pid,
			start: time.Now(),
		}
		d.err = c.Next()
		d.end = time.Now()

		entry := log.NewEntry(log.StandardLogger())
		if cfg.Logger != nil {
			entry = log.NewEntry(cfg.Logger)
		}
		entry = entry.WithFields(getLogrusFields(ftm, c, d))
		if c.Response().StatusCode() >= fiber.StatusBadRequest || d.err != nil {
			entry.Warn("запрос api")
		} else {
			entry.Info("запрос api")
		}
		return d.err
	}
}
