package notify

import (
	"fmt"

	dbmodels "huntflow-sync/models/db"
)

func getStatusChangedSubject(rec dbmodels.Referral) string {
	return fmt.Sprintf("Рекомендованный кандидат %v: %v", rec.GetFriendFIO(), rec.StatusName)
}

func getStatusChangedMessage(rec dbmodels.Referral) string {
	greeting := "Здравствуйте!"
	if rec.ProfileName != "" {
		greeting = fmt.Sprintf("Здравствуйте, %v!", rec.ProfileName)
	}
	return fmt.Sprintf("%v\r\n\r\nСтатус рекомендованного вами кандидата %v изменился: %v.\r\n\r\nСпасибо за рекомендацию!",
		greeting, rec.GetFriendFIO(), rec.StatusName)
}
