package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
}

func Connect(user, password, host, port, from string, tlsEnabled bool) error {
	if from == "" {
		from = user
	}
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.
		WithField("recipient", to).
		WithField("subject", subject)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	if to == "" {
		return errors.New("не указан адрес получателя")
	}
	sendTo := []string{to}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(i.from, to, subject, message))

	addr := i.host + ":" + i.port
	if i.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, i.from, sendTo, body)
	} else {
		err = smtp.SendMail(addr, auth, i.from, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return errors.Wrap(err, "ошибка отправки письма")
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s\r\n",
		from, to, subject, message)
}
