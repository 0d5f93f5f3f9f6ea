package xlsexport

import (
	"bytes"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "huntflow-sync/models/db"
)

type Provider interface {
	ExportReferralList(list []dbmodels.Referral) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var referralHeaders = []string{"Кандидат", "Контакты", "Рекомендатель", "Контакты рекомендателя", "Вакансия HuntFlow", "Кандидат HuntFlow", "Статус", "Дата рекомендации", "Дата отправки"}

const referralSheet = "Рекомендации"

func (i impl) ExportReferralList(list []dbmodels.Referral) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, referralHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	rows := make([][]interface{}, 0, len(list))
	for _, item := range list {
		rows = append(rows, referralRow(item))
	}
	_, err = writeRows(f, sheet, row, rows, len(referralHeaders))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	if err = f.SetSheetName(sheet, referralSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	return f.WriteToBuffer()
}

func referralRow(item dbmodels.Referral) []interface{} {
	values := []interface{}{
		item.GetFriendFIO(),
		joinNotEmpty(item.FriendPhone, item.FriendEmail),
		item.ProfileName,
		joinNotEmpty(item.ProfilePhone, item.ProfileEmail),
		item.HuntflowVacancyID,
		nil,
		item.StatusName,
		formatDate(item.CreatedAt),
		nil,
	}
	if item.ApplicantID != nil {
		values[5] = *item.ApplicantID
	}
	if item.SubmittedAt != nil {
		values[8] = formatDate(*item.SubmittedAt)
	}
	return values
}

func joinNotEmpty(values ...string) string {
	result := []string{}
	for _, value := range values {
		if value != "" {
			result = append(result, value)
		}
	}
	return strings.Join(result, "\n")
}

func formatDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}
