package hfapimodels

import (
	"time"
)

// VacancyPage страница списка вакансий.
// Total в ответе HuntFlow используется как количество страниц, а не записей
type VacancyPage struct {
	Items []Vacancy `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Count int       `json:"count"`
}

type Vacancy struct {
	ID               int    `json:"id"`
	Position         string `json:"position"`
	Company          string `json:"company"`
	Money            string `json:"money"`
	ApplicantsToHire *int   `json:"applicants_to_hire"`
	AccountDivision  *int   `json:"account_division"`
	State            string `json:"state"`
	Created          string `json:"created"`
}

func (v Vacancy) HasDivision() bool {
	return v.AccountDivision != nil && *v.AccountDivision != 0
}

func (v Vacancy) GetApplicantsToHire() int {
	if v.ApplicantsToHire == nil {
		return 1
	}
	return *v.ApplicantsToHire
}

// GetCreated дата создания вакансии в HuntFlow, при ошибке разбора - нулевое время
func (v Vacancy) GetCreated() time.Time {
	if v.Created == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700", "2006-01-02 15:04:05"} {
		t, err := time.Parse(layout, v.Created)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}
