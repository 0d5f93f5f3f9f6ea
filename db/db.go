package db

import (
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type ConnConfig struct {
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
}

func (c ConnConfig) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", c.Host, c.Port, c.User, c.Name, c.Password)
}

func Connect(cfg ConnConfig) error {
	if DB != nil {
		return nil
	}
	gormLogger := logger.Interface(gorm_logrus.New())
	if cfg.DebugMode {
		gormLogger = gormLogger.LogMode(logger.Info)
	}
	conn, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	// воркеры синхронизации работают последовательно, большой пул не нужен
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if cfg.DebugMode {
		conn = conn.Debug()
	}
	DB = conn
	if cfg.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.Info("Сервис успешно подключен к БД")
	return nil
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
