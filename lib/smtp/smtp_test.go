package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run(`not configured client skips sending`, func(t *testing.T) {
		require.Nil(t, Connect("", "", "", "", "", true))
		require.Nil(t, Instance.SendEMail("john@mail.com", "Сброс пароля", "link"))
	})
	t.Run(`host without port`, func(t *testing.T) {
		require.NotNil(t, Connect("user", "pass", "smtp.mail.com", "", "", true))
	})
	t.Run(`message headers`, func(t *testing.T) {
		msg := buildMessage("noreply@collab.dev", "john@mail.com", "Сброс пароля", "body")
		require.True(t, strings.HasPrefix(msg, "From: noreply@collab.dev\r\n"))
		require.Contains(t, msg, "To: john@mail.com\r\n")
		require.Contains(t, msg, "Subject: Collab - Сброс пароля\r\n")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\nbody\r\n"))
	})
}
