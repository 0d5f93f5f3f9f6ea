package departmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "huntflow-sync/models/db"
)

type Provider interface {
	ReplaceAll(list []dbmodels.Department) error
	List() (list []dbmodels.Department, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

const batchSize = 500

type impl struct {
	db *gorm.DB
}

// ReplaceAll полностью заменяет структуру: truncate + вставка
func (i impl) ReplaceAll(list []dbmodels.Department) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec("TRUNCATE TABLE " + dbmodels.Department{}.TableName()).Error
		if err != nil {
			return errors.Wrap(err, "ошибка очистки таблицы подразделений")
		}
		if len(list) == 0 {
			return nil
		}
		err = tx.CreateInBatches(&list, batchSize).Error
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения подразделений")
		}
		return nil
	})
}

func (i impl) List() (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.
		Order("_lft").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
