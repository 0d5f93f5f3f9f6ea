package hfapimodels

type ApplicantRequest struct {
	LastName  string              `json:"last_name"`
	FirstName string              `json:"first_name"`
	Phone     string              `json:"phone"`
	Email     string              `json:"email"`
	Externals []ApplicantExternal `json:"externals"`
}

type ApplicantExternal struct {
	AuthType      string `json:"auth_type"`
	AccountSource int    `json:"account_source"`
}

type ApplicantResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ApplicantVacancyRequest struct {
	Vacancy int    `json:"vacancy"`
	Status  int    `json:"status"`
	Comment string `json:"comment"`
}

type ApplicantVacancyResponse struct {
	ID      int `json:"id"`
	Vacancy int `json:"vacancy"`
	Status  int `json:"status"`
}

// ApplicantLog история изменений кандидата, первая запись - самая свежая
type ApplicantLog struct {
	Items []ApplicantLogItem `json:"items"`
}

type ApplicantLogItem struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Status  *int   `json:"status"`
	Vacancy *int   `json:"vacancy"`
	Created string `json:"created"`
}

// CurrentStatus статус из первой записи истории, ok=false если данных нет
func (l ApplicantLog) CurrentStatus() (status int, ok bool) {
	if len(l.Items) == 0 || l.Items[0].Status == nil {
		return 0, false
	}
	return *l.Items[0].Status, true
}
