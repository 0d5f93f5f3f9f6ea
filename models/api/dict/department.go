package dictapimodels

import (
	dbmodels "huntflow-sync/models/db"
)

type DepartmentView struct {
	ID       int    `json:"id"`
	ParentID *int   `json:"parent_id"`
	Name     string `json:"name"`
	Lft      int    `json:"lft"`
	Rgt      int    `json:"rgt"`
	Deep     int    `json:"deep"`
	Active   bool   `json:"active"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:       rec.ID,
		ParentID: rec.ParentID,
		Name:     rec.Name,
		Lft:      rec.Lft,
		Rgt:      rec.Rgt,
		Deep:     rec.Deep,
		Active:   rec.Active,
	}
}

type DepartmentTreeItem struct {
	DepartmentView
	SubUnits []DepartmentTreeItem `json:"sub_units"`
}

// DepartmentTree собирает дерево из списка, упорядоченного по _lft
func DepartmentTree(list []dbmodels.Department) []DepartmentTreeItem {
	result, _ := buildTree(list, 0, 0)
	return result
}

// buildTree узлы с _lft внутри (lft, rgt) родителя - его потомки; rgt=0 - уровень корней
func buildTree(list []dbmodels.Department, idx, rgt int) ([]DepartmentTreeItem, int) {
	items := []DepartmentTreeItem{}
	for idx < len(list) {
		rec := list[idx]
		if rgt != 0 && rec.Lft >= rgt {
			break
		}
		item := DepartmentTreeItem{DepartmentView: DepartmentConvert(rec)}
		item.SubUnits, idx = buildTree(list, idx+1, rec.Rgt)
		items = append(items, item)
	}
	return items, idx
}
