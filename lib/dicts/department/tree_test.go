package departmentprovider

import (
	"testing"

	"github.com/stretchr/testify/require"
	dbmodels "huntflow-sync/models/db"
)

func intPtr(v int) *int {
	return &v
}

func TestFixTree(t *testing.T) {
	t.Run(`root with two children check`, func(t *testing.T) {
		list := []dbmodels.Department{
			{ID: 3, ParentID: intPtr(1), Order: 2, Lft: 1, Rgt: 1},
			{ID: 1, Lft: 1, Rgt: 1},
			{ID: 2, ParentID: intPtr(1), Order: 1, Lft: 1, Rgt: 1},
		}
		list = FixTree(list)
		bounds := map[int][2]int{}
		for _, item := range list {
			bounds[item.ID] = [2]int{item.Lft, item.Rgt}
		}
		require.Equal(t, [2]int{1, 6}, bounds[1])
		require.Equal(t, [2]int{2, 3}, bounds[2])
		require.Equal(t, [2]int{4, 5}, bounds[3])
	})

	t.Run(`orphan becomes root check`, func(t *testing.T) {
		list := FixTree([]dbmodels.Department{
			{ID: 1},
			{ID: 5, ParentID: intPtr(100)},
		})
		require.Equal(t, 1, list[0].Lft)
		require.Equal(t, 2, list[0].Rgt)
		require.Equal(t, 3, list[1].Lft)
		require.Equal(t, 4, list[1].Rgt)
	})

	t.Run(`parent cycle check`, func(t *testing.T) {
		list := FixTree([]dbmodels.Department{
			{ID: 1, ParentID: intPtr(2)},
			{ID: 2, ParentID: intPtr(1)},
		})
		require.Nil(t, list[0].ParentID)
		require.Equal(t, 1, list[0].Lft)
		require.Equal(t, 4, list[0].Rgt)
		require.Equal(t, 2, list[1].Lft)
		require.Equal(t, 3, list[1].Rgt)
	})

	t.Run(`same input same bounds check`, func(t *testing.T) {
		build := func() []dbmodels.Department {
			return []dbmodels.Department{
				{ID: 10},
				{ID: 11, ParentID: intPtr(10)},
				{ID: 12, ParentID: intPtr(11)},
				{ID: 13, ParentID: intPtr(10)},
			}
		}
		require.Equal(t, FixTree(build()), FixTree(build()))
	})
}
