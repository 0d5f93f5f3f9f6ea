package vacancystore

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"huntflow-sync/models"
	dbmodels "huntflow-sync/models/db"
)

type Provider interface {
	ExistingHuntflowIDs(ids []int) (found []int, err error)
	CreateBatch(list []dbmodels.Vacancy) error
	ListWithHuntflowID() (list []dbmodels.Vacancy, err error)
	UpdateState(huntflowID int, state string) error
	ListPublished() (list []dbmodels.Vacancy, err error)
	SetPublished(id string, published bool) error
}

var ErrNotFound = errors.New("вакансия не найдена")

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

const batchSize = 200

type impl struct {
	db *gorm.DB
}

func (i impl) ExistingHuntflowIDs(ids []int) (found []int, err error) {
	found = []int{}
	if len(ids) == 0 {
		return found, nil
	}
	err = i.db.
		Model(&dbmodels.Vacancy{}).
		Where("huntflow_id = ANY(?)", pq.Array(ids)).
		Pluck("huntflow_id", &found).
		Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (i impl) CreateBatch(list []dbmodels.Vacancy) error {
	if len(list) == 0 {
		return nil
	}
	err := i.db.
		CreateInBatches(&list, batchSize).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения вакансий")
	}
	return nil
}

func (i impl) ListWithHuntflowID() (list []dbmodels.Vacancy, err error) {
	list = []dbmodels.Vacancy{}
	err = i.db.
		Where("huntflow_id is not null").
		Where("huntflow_id <> 0").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateState(huntflowID int, state string) error {
	tx := i.db.
		Model(&dbmodels.Vacancy{}).
		Where("huntflow_id = ?", huntflowID).
		Update("state", state)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (i impl) ListPublished() (list []dbmodels.Vacancy, err error) {
	list = []dbmodels.Vacancy{}
	err = i.db.
		Where("published = ?", true).
		Where("state = ?", models.VacancyStateOpen).
		Order("created desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetPublished(id string, published bool) error {
	tx := i.db.
		Model(&dbmodels.Vacancy{}).
		Where("id = ?", id).
		Update("published", published)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
