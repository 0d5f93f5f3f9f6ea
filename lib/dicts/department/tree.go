package departmentprovider

import (
	"sort"

	dbmodels "huntflow-sync/models/db"
)

// FixTree пересчитывает границы nested set (_lft/_rgt) по ссылкам на родителя.
// Узлы без родителя или с родителем вне списка считаются корнями,
// соседние узлы упорядочиваются по order, затем по id
func FixTree(list []dbmodels.Department) []dbmodels.Department {
	if len(list) == 0 {
		return list
	}
	index := make(map[int]int, len(list))
	for idx, item := range list {
		index[item.ID] = idx
	}
	children := map[int][]int{}
	roots := []int{}
	for idx, item := range list {
		if item.ParentID != nil {
			if _, ok := index[*item.ParentID]; ok && *item.ParentID != item.ID {
				children[*item.ParentID] = append(children[*item.ParentID], idx)
				continue
			}
		}
		roots = append(roots, idx)
	}
	byOrder := func(ids []int) {
		sort.SliceStable(ids, func(a, b int) bool {
			left, right := list[ids[a]], list[ids[b]]
			if left.Order != right.Order {
				return left.Order < right.Order
			}
			return left.ID < right.ID
		})
	}
	byOrder(roots)
	for _, ids := range children {
		byOrder(ids)
	}

	visited := make([]bool, len(list))
	bound := 1
	var walk func(idx int)
	walk = func(idx int) {
		visited[idx] = true
		list[idx].Lft = bound
		bound++
		for _, child := range children[list[idx].ID] {
			if !visited[child] {
				walk(child)
			}
		}
		list[idx].Rgt = bound
		bound++
	}
	for _, idx := range roots {
		walk(idx)
	}
	// узлы в цикле родителей недостижимы из корней, выносим их в корень
	for idx := range list {
		if !visited[idx] {
			list[idx].ParentID = nil
			walk(idx)
		}
	}
	return list
}
