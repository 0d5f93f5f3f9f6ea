package vacancyhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"huntflow-sync/db"
	vacancystore "huntflow-sync/lib/vacancy/store"
	vacancyapimodels "huntflow-sync/models/api/vacancy"
)

// Provider вакансии, загруженные из HuntFlow
type Provider interface {
	ListPublished() (list []vacancyapimodels.VacancyView, err error)
	SetPublished(id string, published bool) error
}

var ErrNotFound = errors.New("вакансия не найдена")

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: vacancystore.NewInstance(db.DB),
	}
}

type impl struct {
	store vacancystore.Provider
}

// ListPublished опубликованные открытые вакансии, новые первыми
func (i impl) ListPublished() (list []vacancyapimodels.VacancyView, err error) {
	recList, err := i.store.ListPublished()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка вакансий")
	}
	list = make([]vacancyapimodels.VacancyView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, vacancyapimodels.VacancyConvert(rec))
	}
	return list, nil
}

// SetPublished импорт из HuntFlow не публикует вакансии, на портал их выводит администратор
func (i impl) SetPublished(id string, published bool) error {
	err := i.store.SetPublished(id, published)
	if err != nil {
		if errors.Is(err, vacancystore.ErrNotFound) {
			return ErrNotFound
		}
		return errors.Wrap(err, "ошибка изменения публикации вакансии")
	}
	log.
		WithField("vacancy_id", id).
		WithField("published", published).
		Info("публикация вакансии изменена")
	return nil
}
