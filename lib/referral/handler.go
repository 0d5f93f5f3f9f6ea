package referralhandler

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"huntflow-sync/db"
	xlsexport "huntflow-sync/lib/export/xls"
	referralstore "huntflow-sync/lib/referral/store"
	referralapimodels "huntflow-sync/models/api/referral"
	dbmodels "huntflow-sync/models/db"
)

// Provider рекомендации сотрудников, ожидающие отправки в HuntFlow или уже отправленные
type Provider interface {
	Create(data referralapimodels.ReferralData) (id string, err error)
	GetByID(id string) (item referralapimodels.ReferralView, err error)
	List(filter referralapimodels.ReferralFilter) (list []referralapimodels.ReferralView, err error)
	Export(filter referralapimodels.ReferralFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:    referralstore.NewInstance(db.DB),
		exporter: xlsexport.Instance,
	}
}

type impl struct {
	store    referralstore.Provider
	exporter xlsexport.Provider
}

var ErrNotFound = errors.New("рекомендация не найдена")

func (i impl) getLogger() *log.Entry {
	return log.WithField("section", "referral")
}

func (i impl) Create(data referralapimodels.ReferralData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Referral{
		FriendFirstName:   data.FriendFirstName,
		FriendLastName:    data.FriendLastName,
		FriendPhone:       data.FriendPhone,
		FriendEmail:       data.FriendEmail,
		ProfileName:       data.ProfileName,
		ProfileEmail:      data.ProfileEmail,
		ProfilePhone:      data.ProfilePhone,
		HuntflowVacancyID: data.HuntflowVacancyID,
		// ключ постоянен для всех попыток отправки этой рекомендации
		SubmissionKey: uuid.NewString(),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения рекомендации")
	}
	i.getLogger().
		WithField("referral_id", id).
		WithField("huntflow_vacancy_id", data.HuntflowVacancyID).
		Info("рекомендация создана")
	return id, nil
}

func (i impl) GetByID(id string) (item referralapimodels.ReferralView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, errors.Wrap(err, "ошибка получения рекомендации")
	}
	if rec == nil {
		return item, ErrNotFound
	}
	return referralapimodels.ReferralConvert(*rec), nil
}

func (i impl) List(filter referralapimodels.ReferralFilter) (list []referralapimodels.ReferralView, err error) {
	recList, err := i.list(filter)
	if err != nil {
		return nil, err
	}
	list = make([]referralapimodels.ReferralView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, referralapimodels.ReferralConvert(rec))
	}
	return list, nil
}

func (i impl) Export(filter referralapimodels.ReferralFilter) (*bytes.Buffer, error) {
	recList, err := i.list(filter)
	if err != nil {
		return nil, err
	}
	return i.exporter.ExportReferralList(recList)
}

func (i impl) list(filter referralapimodels.ReferralFilter) ([]dbmodels.Referral, error) {
	recList, err := i.store.List(dbmodels.ReferralFilter{
		Submitted: filter.Submitted,
		Search:    filter.Search,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка рекомендаций")
	}
	return recList, nil
}
