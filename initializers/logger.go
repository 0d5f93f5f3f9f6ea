package initializers

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"huntflow-sync/fiberlog"
)

func newJSONFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func InitLogger() *fiberlog.Config {
	log.SetFormatter(newJSONFormatter())
	log.SetLevel(log.InfoLevel)

	logger := log.New()
	logger.SetFormatter(newJSONFormatter())
	logger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagQuery,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagIP,
			fiberlog.TagError,
		},
		Skip: func(path string) bool {
			return strings.HasPrefix(path, "/swagger")
		},
	}
}
