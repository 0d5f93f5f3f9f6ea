package huntflowhandler

import (
	"github.com/pkg/errors"
	hfapimodels "huntflow-sync/models/api/huntflow"
)

// PageRule определяет номер последней страницы списка вакансий по первой странице
type PageRule func(first hfapimodels.VacancyPage) (lastPage int)

const (
	PageRuleTotalAsPages = "total_as_pages"
	PageRuleTotalAsItems = "total_as_items"
)

// TotalAsPages поле total трактуется как количество страниц
func TotalAsPages(first hfapimodels.VacancyPage) int {
	return first.Total
}

// TotalAsItems поле total трактуется как количество записей, размер страницы из count
func TotalAsItems(first hfapimodels.VacancyPage) int {
	perPage := first.Count
	if perPage <= 0 {
		perPage = len(first.Items)
	}
	if perPage <= 0 {
		return 1
	}
	return (first.Total + perPage - 1) / perPage
}

func GetPageRule(name string) (PageRule, error) {
	switch name {
	case "", PageRuleTotalAsPages:
		return TotalAsPages, nil
	case PageRuleTotalAsItems:
		return TotalAsItems, nil
	}
	return nil, errors.Errorf("неизвестное правило пагинации: %v", name)
}
