package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run(`not configured check`, func(t *testing.T) {
		require.Nil(t, Connect("", "", "", "", "", true))
		require.Nil(t, Instance.SendEMail("hr@example.com", "тема", "текст"))
	})

	t.Run(`buildMessage headers check`, func(t *testing.T) {
		msg := buildMessage("noreply@example.com", "hr@example.com", "Статус изменён", "Привет")
		require.True(t, strings.HasPrefix(msg, "From: noreply@example.com\r\nTo: hr@example.com\r\nSubject: Статус изменён\r\n"))
		require.True(t, strings.HasSuffix(msg, "\r\n\r\nПривет\r\n"))
	})
}
