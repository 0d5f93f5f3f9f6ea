package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

// Referral рекомендация кандидата сотрудником ("пригласи друга")
type Referral struct {
	BaseModel
	FriendFirstName   string `gorm:"type:varchar(255)"`
	FriendLastName    string `gorm:"type:varchar(255)"`
	FriendPhone       string `gorm:"type:varchar(255)"`
	FriendEmail       string `gorm:"type:varchar(255)"`
	ProfileName       string `gorm:"type:varchar(255)"` // сотрудник, который рекомендовал
	ProfileEmail      string `gorm:"type:varchar(255)"`
	ProfilePhone      string `gorm:"type:varchar(255)"`
	HuntflowVacancyID int
	ApplicantID       *int `gorm:"index"` // ид кандидата в HuntFlow, заполняется после отправки
	Status            *int
	StatusName        string `gorm:"type:varchar(255)"`
	SubmissionKey     string `gorm:"type:varchar(36)"`
	SubmitAttempts    int
	LastAttemptAt     *time.Time
	SubmittedAt       *time.Time
	LinkedAt          *time.Time
}

func (Referral) TableName() string {
	return "recommend_friends"
}

func (r Referral) Validate() error {
	if r.FriendFirstName == "" && r.FriendLastName == "" {
		return errors.New("не указано имя кандидата")
	}
	if r.FriendPhone == "" && r.FriendEmail == "" {
		return errors.New("не указаны контакты кандидата")
	}
	if r.ProfileEmail == "" {
		return errors.New("не указана почта сотрудника")
	}
	if r.HuntflowVacancyID == 0 {
		return errors.New("не указана вакансия")
	}
	return nil
}

func (r Referral) GetFriendFIO() string {
	if r.FriendLastName == "" {
		return r.FriendFirstName
	}
	if r.FriendFirstName == "" {
		return r.FriendLastName
	}
	return r.FriendLastName + " " + r.FriendFirstName
}

type ReferralFilter struct {
	Submitted *bool  `json:"submitted"`
	Search    string `json:"search"`
}
