package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferralStatuses(t *testing.T) {
	t.Run(`known status check`, func(t *testing.T) {
		name, ok := GetReferralStatusName(3)
		require.True(t, ok)
		require.Equal(t, "Интервью с HR", name)
	})

	t.Run(`unknown status check`, func(t *testing.T) {
		name, ok := GetReferralStatusName(42)
		require.False(t, ok)
		require.Equal(t, "Статус 42", name)
	})
}
