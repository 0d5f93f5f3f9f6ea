package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки middleware логирования запросов
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// Skip запросы, которые не логируются (health, swagger)
	Skip func(path string) bool
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}
