package referralapimodels

import (
	"time"

	"github.com/pkg/errors"
	dbmodels "huntflow-sync/models/db"
)

// ReferralData рекомендация кандидата сотрудником
type ReferralData struct {
	FriendFirstName   string `json:"friend_first_name"`
	FriendLastName    string `json:"friend_last_name"`
	FriendPhone       string `json:"friend_phone"`
	FriendEmail       string `json:"friend_email"`
	ProfileName       string `json:"profile_name"`  // фио сотрудника
	ProfileEmail      string `json:"profile_email"` // на эту почту придут уведомления о статусе
	ProfilePhone      string `json:"profile_phone"`
	HuntflowVacancyID int    `json:"huntflow_vacancy_id"`
}

func (r ReferralData) Validate() error {
	if r.FriendFirstName == "" && r.FriendLastName == "" {
		return errors.New("не указано имя кандидата")
	}
	if r.FriendPhone == "" && r.FriendEmail == "" {
		return errors.New("не указаны контакты кандидата")
	}
	if r.ProfileEmail == "" {
		return errors.New("не указана почта сотрудника")
	}
	if r.HuntflowVacancyID <= 0 {
		return errors.New("не указана вакансия")
	}
	return nil
}

type ReferralView struct {
	ReferralData
	ID          string     `json:"id"`
	ApplicantID *int       `json:"applicant_id"` // ид кандидата в HuntFlow
	Status      *int       `json:"status"`
	StatusName  string     `json:"status_name"`
	CreatedAt   time.Time  `json:"created_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

func ReferralConvert(rec dbmodels.Referral) ReferralView {
	return ReferralView{
		ReferralData: ReferralData{
			FriendFirstName:   rec.FriendFirstName,
			FriendLastName:    rec.FriendLastName,
			FriendPhone:       rec.FriendPhone,
			FriendEmail:       rec.FriendEmail,
			ProfileName:       rec.ProfileName,
			ProfileEmail:      rec.ProfileEmail,
			ProfilePhone:      rec.ProfilePhone,
			HuntflowVacancyID: rec.HuntflowVacancyID,
		},
		ID:          rec.ID,
		ApplicantID: rec.ApplicantID,
		Status:      rec.Status,
		StatusName:  rec.StatusName,
		CreatedAt:   rec.CreatedAt,
		SubmittedAt: rec.SubmittedAt,
	}
}

type ReferralFilter struct {
	Submitted *bool  `json:"submitted"` // true - отправленные в HuntFlow, false - ожидающие отправки
	Search    string `json:"search"`
}
