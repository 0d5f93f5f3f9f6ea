package departmentprovider

import (
	"huntflow-sync/db"
	departmentstore "huntflow-sync/lib/dicts/department/store"
	dbmodels "huntflow-sync/models/db"
)

type Provider interface {
	List() (list []dbmodels.Department, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store departmentstore.Provider
}

// List подразделения в порядке обхода дерева
func (i impl) List() (list []dbmodels.Department, err error) {
	return i.store.List()
}
