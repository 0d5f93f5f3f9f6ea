package referralstore

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "huntflow-sync/models/db"
)

type Provider interface {
	Create(rec dbmodels.Referral) (id string, err error)
	GetByID(id string) (rec *dbmodels.Referral, err error)
	List(filter dbmodels.ReferralFilter) (list []dbmodels.Referral, err error)
	// NextUnsubmitted самая старая рекомендация, ещё не отправленная в HuntFlow
	NextUnsubmitted() (rec *dbmodels.Referral, err error)
	RegisterAttempt(id string, at time.Time) error
	SetApplicantID(id string, applicantID int, at time.Time) error
	// NextAwaitingLink самая старая отправленная рекомендация без привязки к вакансии
	NextAwaitingLink() (rec *dbmodels.Referral, err error)
	// ListTracked рекомендации, привязанные к вакансии, статус которых отслеживается
	ListTracked() (list []dbmodels.Referral, err error)
	UpdateStatusByApplicant(applicantID, status int, statusName string) error
	MarkLinked(applicantID, status int, statusName string, at time.Time) error
	ListByApplicantID(applicantID int) (list []dbmodels.Referral, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Referral) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Referral, error) {
	rec := dbmodels.Referral{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dbmodels.ReferralFilter) (list []dbmodels.Referral, err error) {
	list = []dbmodels.Referral{}
	tx := i.db.Model(&dbmodels.Referral{})
	if filter.Submitted != nil {
		if *filter.Submitted {
			tx = tx.Where("applicant_id is not null")
		} else {
			tx = tx.Where("applicant_id is null")
		}
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(CONCAT(friend_last_name,' ', friend_first_name)) like ? or LOWER(profile_name) like ? or friend_email like ?",
			searchValue, searchValue, searchValue)
	}
	err = tx.Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) NextUnsubmitted() (*dbmodels.Referral, error) {
	return i.first(i.db.
		Where("applicant_id is null").
		Order("created_at"))
}

func (i impl) RegisterAttempt(id string, at time.Time) error {
	return i.update(i.db.Where("id = ?", id), map[string]interface{}{
		"submit_attempts": gorm.Expr("submit_attempts + 1"),
		"last_attempt_at": at,
	})
}

func (i impl) SetApplicantID(id string, applicantID int, at time.Time) error {
	// applicant_id is null: отправленная рекомендация не перезаписывается
	return i.update(i.db.Where("id = ?", id).Where("applicant_id is null"), map[string]interface{}{
		"applicant_id": applicantID,
		"submitted_at": at,
	})
}

func (i impl) NextAwaitingLink() (*dbmodels.Referral, error) {
	return i.first(i.db.
		Where("applicant_id is not null").
		Where("status is null").
		Order("submitted_at"))
}

func (i impl) ListTracked() (list []dbmodels.Referral, err error) {
	list = []dbmodels.Referral{}
	err = i.db.
		Where("applicant_id is not null").
		Where("status is not null").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateStatusByApplicant(applicantID, status int, statusName string) error {
	return i.update(i.db.Where("applicant_id = ?", applicantID), map[string]interface{}{
		"status":      status,
		"status_name": statusName,
	})
}

func (i impl) MarkLinked(applicantID, status int, statusName string, at time.Time) error {
	return i.update(i.db.Where("applicant_id = ?", applicantID), map[string]interface{}{
		"status":      status,
		"status_name": statusName,
		"linked_at":   at,
	})
}

func (i impl) ListByApplicantID(applicantID int) (list []dbmodels.Referral, err error) {
	list = []dbmodels.Referral{}
	err = i.db.
		Where("applicant_id = ?", applicantID).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) first(tx *gorm.DB) (*dbmodels.Referral, error) {
	rec := dbmodels.Referral{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) update(tx *gorm.DB, updMap map[string]interface{}) error {
	tx = tx.
		Model(&dbmodels.Referral{}).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}
