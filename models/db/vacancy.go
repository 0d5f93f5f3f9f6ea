package dbmodels

import (
	"time"
)

// Vacancy вакансия, загруженная из HuntFlow
type Vacancy struct {
	BaseModel
	HuntflowID       int    `gorm:"uniqueIndex"`
	Name             string `gorm:"type:varchar(255)"`
	Department       string `gorm:"type:varchar(255)"`
	Money            string `gorm:"type:varchar(255)"`
	Published        bool
	ApplicantsToHire int
	DepartmentID     *int   `gorm:"index"`
	State            string `gorm:"type:varchar(50)"`
	Created          time.Time
}
