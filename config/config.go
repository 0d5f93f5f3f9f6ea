package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"JWT_SECRET"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"huntflow-sync" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"" env:"SMTP_FROM"`
	}
	HuntFlow struct {
		Host          string `default:"https://api.huntflow.ru" env:"HUNTFLOW_HOST"`
		Token         string `default:"" env:"HUNTFLOW_TOKEN"`
		AccountID     int    `default:"0" env:"HUNTFLOW_ACCOUNT_ID"`
		TimeoutSec    int    `default:"30" env:"HUNTFLOW_TIMEOUT_SEC"`
		OpenedOnly    *bool  `default:"true" env:"HUNTFLOW_OPENED_ONLY"`
		PageRule      string `default:"total_as_pages" env:"HUNTFLOW_PAGE_RULE"` // total_as_pages / total_as_items
		AuthType      string `default:"NATIVE" env:"HUNTFLOW_AUTH_TYPE"`
		AccountSource int    `default:"0" env:"HUNTFLOW_ACCOUNT_SOURCE"`
		NewStatusID   int    `default:"1" env:"HUNTFLOW_NEW_STATUS_ID"`
	}
	Workers struct {
		Enabled           *bool  `default:"true" env:"WORKERS_ENABLED"`
		CatalogPeriodMin  int    `default:"60" env:"WORKERS_CATALOG_PERIOD_MIN"`
		ReferralPeriodMin int    `default:"5" env:"WORKERS_REFERRAL_PERIOD_MIN"`
		LockTTLMin        int    `default:"30" env:"WORKERS_LOCK_TTL_MIN"`
		LockPrefix        string `default:"huntflow-sync" env:"WORKERS_LOCK_PREFIX"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"huntflow-snapshots" env:"S3_BUCKET_NAME"`
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Nats struct {
		URL     string `default:"" env:"NATS_URL"`
		Subject string `default:"huntflow.referral.status" env:"NATS_SUBJECT"`
	}
	Telemetry struct {
		CollectorURL string `default:"" env:"OTEL_COLLECTOR_URL"`
		ServiceName  string `default:"huntflow-sync" env:"OTEL_SERVICE_NAME"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
