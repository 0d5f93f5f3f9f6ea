package initializers

import (
	log "github.com/sirupsen/logrus"
	"huntflow-sync/config"
	"huntflow-sync/lib/notify"
	"huntflow-sync/lib/smtp"
)

func InitSmtp() {
	err := smtp.Connect(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, config.Conf.Smtp.From, *config.Conf.Smtp.TLSEnabled)
	if err != nil {
		panic(err.Error())
	}
}

// InitNotify письма рекомендателям и события в NATS, NATS не обязателен
func InitNotify() {
	publisher, err := notify.NewNatsPublisher(config.Conf.Nats.URL)
	if err != nil {
		log.WithError(err).Error("Ошибка подключения к NATS, события о смене статуса не публикуются")
		publisher = nil
	}
	notify.NewHandler(publisher, config.Conf.Nats.Subject)
}
