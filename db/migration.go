package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "huntflow-sync/models/db"
)

func AutoMigrateDB() error {
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return errors.Wrap(err, "ошибка создания расширения uuid-ossp")
	}
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Vacancy{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Vacancy")
	}
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Referral{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Referral")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
