package models

import "fmt"

type ReferralStatus struct {
	ID   int
	Name string
}

// ReferralStatuses этапы подбора в HuntFlow, по которым отправляются уведомления рекомендателю
var ReferralStatuses = []ReferralStatus{
	{ID: 1, Name: "Новый"},
	{ID: 2, Name: "Отправлено письмо"},
	{ID: 3, Name: "Интервью с HR"},
	{ID: 4, Name: "Интервью с заказчиком"},
	{ID: 5, Name: "Выставлен оффер"},
	{ID: 6, Name: "Вышел на работу"},
	{ID: 7, Name: "Отказ"},
}

// GetReferralStatusName возвращает название статуса, ok=false если статус не найден в справочнике
func GetReferralStatusName(id int) (name string, ok bool) {
	for _, status := range ReferralStatuses {
		if status.ID == id {
			return status.Name, true
		}
	}
	return fmt.Sprintf("Статус %v", id), false
}

type VacancyState string

const (
	VacancyStateOpen   VacancyState = "OPEN"
	VacancyStateClosed VacancyState = "CLOSED"
)
