package notify

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"huntflow-sync/lib/smtp"
	dbmodels "huntflow-sync/models/db"
)

// Provider уведомление рекомендателя об изменении статуса кандидата
type Provider interface {
	StatusChanged(ctx context.Context, rec dbmodels.Referral) error
}

// Publisher публикация события во внешнюю шину
type Publisher interface {
	Publish(subject string, data []byte) error
}

var Instance Provider

func NewHandler(publisher Publisher, subject string) {
	Instance = impl{
		mail:      smtp.Instance,
		publisher: publisher,
		subject:   subject,
	}
}

// NewNatsPublisher пустой url - события не публикуются
func NewNatsPublisher(url string) (Publisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := nats.Connect(url, nats.Name("huntflow-sync"))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подключения к NATS")
	}
	return conn, nil
}

type impl struct {
	mail      smtp.Provider
	publisher Publisher
	subject   string
}

type StatusChangedEvent struct {
	ReferralID  string `json:"referral_id"`
	ApplicantID int    `json:"applicant_id"`
	Status      int    `json:"status"`
	StatusName  string `json:"status_name"`
}

func (i impl) StatusChanged(ctx context.Context, rec dbmodels.Referral) error {
	logger := log.
		WithField("referral_id", rec.ID).
		WithField("status_name", rec.StatusName)
	if rec.ProfileEmail == "" {
		return errors.New("у рекомендателя не указана почта")
	}
	err := i.mail.SendEMail(rec.ProfileEmail, getStatusChangedSubject(rec), getStatusChangedMessage(rec))
	if err != nil {
		return err
	}
	if i.publisher != nil {
		i.publish(logger, rec)
	}
	logger.Info("рекомендатель уведомлён об изменении статуса")
	return nil
}

// publish ошибка публикации события не отменяет отправленное письмо
func (i impl) publish(logger *log.Entry, rec dbmodels.Referral) {
	event := StatusChangedEvent{
		ReferralID: rec.ID,
		StatusName: rec.StatusName,
	}
	if rec.ApplicantID != nil {
		event.ApplicantID = *rec.ApplicantID
	}
	if rec.Status != nil {
		event.Status = *rec.Status
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.WithError(err).Error("ошибка сериализации события")
		return
	}
	if err = i.publisher.Publish(i.subject, data); err != nil {
		logger.WithError(err).Error("ошибка публикации события в NATS")
	}
}
