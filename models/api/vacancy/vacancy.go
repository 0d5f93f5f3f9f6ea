package vacancyapimodels

import (
	"time"

	dbmodels "huntflow-sync/models/db"
)

type VacancyView struct {
	ID               string    `json:"id"`
	HuntflowID       int       `json:"huntflow_id"`        // ид вакансии в HuntFlow
	Name             string    `json:"name"`               // название вакансии
	Department       string    `json:"department"`         // компания/подразделение из HuntFlow
	DepartmentID     *int      `json:"department_id"`      // ид подразделения оргструктуры
	Money            string    `json:"money"`              // зарплата
	ApplicantsToHire int       `json:"applicants_to_hire"` // кол-во открытых позиций
	State            string    `json:"state"`
	Published        bool      `json:"published"`
	Created          time.Time `json:"created"`
}

type PublishData struct {
	Published bool `json:"published"`
}

func VacancyConvert(rec dbmodels.Vacancy) VacancyView {
	return VacancyView{
		ID:               rec.ID,
		HuntflowID:       rec.HuntflowID,
		Name:             rec.Name,
		Department:       rec.Department,
		DepartmentID:     rec.DepartmentID,
		Money:            rec.Money,
		ApplicantsToHire: rec.ApplicantsToHire,
		State:            rec.State,
		Published:        rec.Published,
		Created:          rec.Created,
	}
}
