package huntflowhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"huntflow-sync/db"
	departmentprovider "huntflow-sync/lib/dicts/department"
	departmentstore "huntflow-sync/lib/dicts/department/store"
	hfclient "huntflow-sync/lib/huntflow/client"
	"huntflow-sync/lib/notify"
	referralstore "huntflow-sync/lib/referral/store"
	"huntflow-sync/lib/snapshot"
	"huntflow-sync/lib/utils/helpers"
	vacancystore "huntflow-sync/lib/vacancy/store"
	"huntflow-sync/models"
	hfapimodels "huntflow-sync/models/api/huntflow"
	dbmodels "huntflow-sync/models/db"
)

// Provider синхронизация данных между HuntFlow и локальной БД.
// Каждый этап независим и возвращает итог, ошибки по отдельным записям не прерывают этап
type Provider interface {
	FetchVacancies(ctx context.Context) []hfapimodels.Vacancy
	ImportVacancies(ctx context.Context) StageResult
	ImportStructure(ctx context.Context) StageResult
	RefreshVacancyStates(ctx context.Context) StageResult
	SubmitApplicant(ctx context.Context) StageResult
	LinkApplicant(ctx context.Context) StageResult
	PollStatuses(ctx context.Context) StageResult
	GetVacancy(ctx context.Context, huntflowID int) VacancyLookup
	RunStage(ctx context.Context, stage Stage) StageResult
}

var Instance Provider

type Config struct {
	OpenedOnly    bool
	PageRule      PageRule
	AuthType      string
	AccountSource int
	NewStatusID   int
}

func NewHandler(cfg Config) {
	Instance = newInstance(
		cfg,
		hfclient.Instance,
		vacancystore.NewInstance(db.DB),
		departmentstore.NewInstance(db.DB),
		referralstore.NewInstance(db.DB),
		notify.Instance,
		snapshot.Instance,
	)
}

func newInstance(cfg Config,
	client hfclient.Provider,
	vacancyStore vacancystore.Provider,
	departmentStore departmentstore.Provider,
	referralStore referralstore.Provider,
	notifier notify.Provider,
	snapshots snapshot.Provider) *impl {
	if cfg.PageRule == nil {
		cfg.PageRule = TotalAsPages
	}
	if snapshots == nil {
		snapshots = snapshot.Nop{}
	}
	return &impl{
		cfg:             cfg,
		client:          client,
		vacancyStore:    vacancyStore,
		departmentStore: departmentStore,
		referralStore:   referralStore,
		notifier:        notifier,
		snapshots:       snapshots,
		now:             time.Now,
	}
}

type impl struct {
	cfg             Config
	client          hfclient.Provider
	vacancyStore    vacancystore.Provider
	departmentStore departmentstore.Provider
	referralStore   referralstore.Provider
	notifier        notify.Provider
	snapshots       snapshot.Provider
	now             func() time.Time
}

// VacancyLookup ответ на запрос вакансии по ид HuntFlow
type VacancyLookup struct {
	Success bool                 `json:"success"`
	Data    *hfapimodels.Vacancy `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}

var (
	errEmptyStructure = errors.New("HuntFlow вернул пустую оргструктуру")
	errEmptyApplicant = errors.New("HuntFlow не вернул ид кандидата")
)

func (i *impl) getLogger(stage Stage) *log.Entry {
	return log.
		WithField("integration", "HuntFlow").
		WithField("stage", stage)
}

func (i *impl) RunStage(ctx context.Context, stage Stage) StageResult {
	switch stage {
	case StageStructure:
		return i.ImportStructure(ctx)
	case StageVacancies:
		return i.ImportVacancies(ctx)
	case StageVacancyStates:
		return i.RefreshVacancyStates(ctx)
	case StageApplicants:
		return i.SubmitApplicant(ctx)
	case StageLinks:
		return i.LinkApplicant(ctx)
	case StageStatuses:
		return i.PollStatuses(ctx)
	}
	result := newResult(stage)
	result.fail(i.getLogger(stage), string(stage), errors.New("этап не поддерживается"), "неизвестный этап синхронизации")
	return result
}

func (i *impl) FetchVacancies(ctx context.Context) []hfapimodels.Vacancy {
	result := newResult(StageVacancies)
	return i.fetchVacancies(ctx, i.getLogger(StageVacancies), &result)
}

// fetchVacancies обходит все страницы списка вакансий.
// Ошибка страницы фиксируется в итоге, страница считается пустой и обход продолжается
func (i *impl) fetchVacancies(ctx context.Context, logger *log.Entry, result *StageResult) []hfapimodels.Vacancy {
	items := []hfapimodels.Vacancy{}
	first, err := i.client.ListVacancies(ctx, 1, i.cfg.OpenedOnly)
	if err != nil {
		result.fail(logger, "page 1", err, "ошибка получения страницы вакансий")
		return items
	}
	items = append(items, first.Items...)
	lastPage := i.cfg.PageRule(first)
	for page := 2; page <= lastPage; page++ {
		if helpers.IsContextDone(ctx) {
			result.fail(logger, fmt.Sprintf("page %v", page), ctx.Err(), "загрузка вакансий прервана")
			break
		}
		resp, err := i.client.ListVacancies(ctx, page, i.cfg.OpenedOnly)
		if err != nil {
			result.fail(logger, fmt.Sprintf("page %v", page), err, "ошибка получения страницы вакансий")
			continue
		}
		items = append(items, resp.Items...)
	}
	logger.
		WithField("pages", lastPage).
		WithField("items", len(items)).
		Debug("список вакансий HuntFlow получен")
	return items
}

func (i *impl) ImportVacancies(ctx context.Context) StageResult {
	result := newResult(StageVacancies)
	logger := i.getLogger(StageVacancies)
	defer func() { result.log(logger) }()

	items := i.fetchVacancies(ctx, logger, &result)
	result.Fetched = len(items)
	if len(items) == 0 {
		return result
	}
	i.saveSnapshot(ctx, logger, snapshot.KindVacancies, items)

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	existing, err := i.vacancyStore.ExistingHuntflowIDs(ids)
	if err != nil {
		result.fail(logger, "vacancies", err, "ошибка получения загруженных вакансий")
		return result
	}
	known := make(map[int]bool, len(existing)+len(items))
	for _, id := range existing {
		known[id] = true
	}

	// одно время создания на весь запуск
	now := i.now()
	list := []dbmodels.Vacancy{}
	for _, item := range items {
		if known[item.ID] || !item.HasDivision() {
			result.Skipped++
			continue
		}
		known[item.ID] = true
		list = append(list, toVacancy(item, now))
	}
	err = i.vacancyStore.CreateBatch(list)
	if err != nil {
		result.fail(logger, "vacancies", err, "ошибка сохранения вакансий")
		return result
	}
	result.Inserted = len(list)
	return result
}

func toVacancy(item hfapimodels.Vacancy, now time.Time) dbmodels.Vacancy {
	rec := dbmodels.Vacancy{
		HuntflowID:       item.ID,
		Name:             item.Position,
		Department:       item.Company,
		Money:            item.Money,
		Published:        false, // публикует администратор
		ApplicantsToHire: item.GetApplicantsToHire(),
		DepartmentID:     item.AccountDivision,
		State:            item.State,
		Created:          item.GetCreated(),
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return rec
}

func (i *impl) ImportStructure(ctx context.Context) StageResult {
	result := newResult(StageStructure)
	logger := i.getLogger(StageStructure)
	defer func() { result.log(logger) }()

	resp, err := i.client.GetOrgStructure(ctx)
	if err != nil {
		result.fail(logger, "structure", err, "ошибка получения оргструктуры, текущая структура сохранена")
		return result
	}
	result.Fetched = len(resp.Items)
	if len(resp.Items) == 0 {
		result.fail(logger, "structure", errEmptyStructure, "текущая структура сохранена")
		return result
	}
	i.saveSnapshot(ctx, logger, snapshot.KindStructure, resp)

	list := make([]dbmodels.Department, 0, len(resp.Items))
	for _, item := range resp.Items {
		list = append(list, toDepartment(item))
	}
	list = departmentprovider.FixTree(list)
	err = i.departmentStore.ReplaceAll(list)
	if err != nil {
		result.fail(logger, "structure", err, "ошибка сохранения оргструктуры")
		return result
	}
	result.Inserted = len(list)
	return result
}

func toDepartment(item hfapimodels.Division) dbmodels.Department {
	rec := dbmodels.Department{
		ID:       item.ID,
		ParentID: item.Parent,
		Name:     item.Name,
		Lft:      1,
		Rgt:      1,
		Removed:  item.Removed,
		Active:   item.Active,
		Deep:     item.Deep,
		Order:    item.Order,
	}
	if item.Foreign != nil {
		rec.Foreign = *item.Foreign
	}
	if item.Lft != nil {
		rec.Lft = *item.Lft
	}
	if item.Rgt != nil {
		rec.Rgt = *item.Rgt
	}
	if len(item.Meta) != 0 && string(item.Meta) != "null" {
		rec.Meta = string(item.Meta)
	}
	return rec
}

// saveSnapshot архив не обязателен для синхронизации, ошибка только логируется
func (i *impl) saveSnapshot(ctx context.Context, logger *log.Entry, kind string, payload interface{}) {
	objectName, err := i.snapshots.Save(ctx, kind, payload)
	if err != nil {
		logger.WithError(err).Warn("не удалось сохранить снимок данных HuntFlow")
		return
	}
	if objectName != "" {
		logger.WithField("object", objectName).Info("снимок данных HuntFlow сохранён")
	}
}

func (i *impl) RefreshVacancyStates(ctx context.Context) StageResult {
	result := newResult(StageVacancyStates)
	logger := i.getLogger(StageVacancyStates)
	defer func() { result.log(logger) }()

	list, err := i.vacancyStore.ListWithHuntflowID()
	if err != nil {
		result.fail(logger, "vacancies", err, "ошибка получения списка вакансий")
		return result
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			result.fail(logger, "vacancies", ctx.Err(), "обновление состояний прервано")
			break
		}
		ref := fmt.Sprintf("vacancy %v", rec.HuntflowID)
		remote, err := i.client.GetVacancy(ctx, rec.HuntflowID)
		if err != nil {
			result.fail(logger, ref, err, "ошибка получения вакансии")
			continue
		}
		result.Fetched++
		if remote.State == "" {
			result.Skipped++
			continue
		}
		err = i.vacancyStore.UpdateState(rec.HuntflowID, remote.State)
		if err != nil {
			result.fail(logger, ref, err, "ошибка обновления состояния вакансии")
			continue
		}
		result.Updated++
	}
	return result
}

func (i *impl) SubmitApplicant(ctx context.Context) StageResult {
	result := newResult(StageApplicants)
	logger := i.getLogger(StageApplicants)
	defer func() { result.log(logger) }()

	rec, err := i.referralStore.NextUnsubmitted()
	if err != nil {
		result.fail(logger, "referrals", err, "ошибка получения рекомендации")
		return result
	}
	if rec == nil {
		return result
	}
	result.Fetched = 1
	ref := "referral " + rec.ID
	logger = logger.
		WithField("referral_id", rec.ID).
		WithField("submission_key", rec.SubmissionKey)
	if rec.SubmitAttempts > 0 {
		logger.
			WithField("attempts", rec.SubmitAttempts).
			Warn("повторная отправка кандидата, если прошлый ответ был потерян, в HuntFlow возможен дубликат")
	}
	now := i.now()
	err = i.referralStore.RegisterAttempt(rec.ID, now)
	if err != nil {
		result.fail(logger, ref, err, "ошибка сохранения попытки отправки")
		return result
	}
	resp, err := i.client.SubmitApplicant(ctx, i.applicantRequest(*rec), rec.SubmissionKey)
	if err != nil {
		result.fail(logger, ref, err, "ошибка отправки кандидата в HuntFlow")
		return result
	}
	if resp.ID == 0 {
		result.fail(logger, ref, errEmptyApplicant, "ошибка отправки кандидата в HuntFlow")
		return result
	}
	err = i.referralStore.SetApplicantID(rec.ID, resp.ID, now)
	if err != nil {
		result.fail(logger, ref, err, "ошибка сохранения ид кандидата")
		return result
	}
	logger.WithField("applicant_id", resp.ID).Info("кандидат отправлен в HuntFlow")
	result.Updated = 1
	return result
}

func (i *impl) applicantRequest(rec dbmodels.Referral) hfapimodels.ApplicantRequest {
	return hfapimodels.ApplicantRequest{
		LastName:  rec.FriendLastName,
		FirstName: rec.FriendFirstName,
		Phone:     rec.FriendPhone,
		Email:     rec.FriendEmail,
		Externals: []hfapimodels.ApplicantExternal{
			{
				AuthType:      i.cfg.AuthType,
				AccountSource: i.cfg.AccountSource,
			},
		},
	}
}

func (i *impl) LinkApplicant(ctx context.Context) StageResult {
	result := newResult(StageLinks)
	logger := i.getLogger(StageLinks)
	defer func() { result.log(logger) }()

	rec, err := i.referralStore.NextAwaitingLink()
	if err != nil {
		result.fail(logger, "referrals", err, "ошибка получения рекомендации")
		return result
	}
	if rec == nil || rec.ApplicantID == nil {
		return result
	}
	result.Fetched = 1
	applicantID := *rec.ApplicantID
	ref := fmt.Sprintf("applicant %v", applicantID)
	logger = logger.
		WithField("referral_id", rec.ID).
		WithField("applicant_id", applicantID).
		WithField("huntflow_vacancy_id", rec.HuntflowVacancyID)

	_, err = i.client.LinkApplicantToVacancy(ctx, applicantID, hfapimodels.ApplicantVacancyRequest{
		Vacancy: rec.HuntflowVacancyID,
		Status:  i.cfg.NewStatusID,
		Comment: getReferralComment(*rec),
	})
	if err != nil {
		result.fail(logger, ref, err, "ошибка привязки кандидата к вакансии")
		return result
	}
	statusName, _ := models.GetReferralStatusName(i.cfg.NewStatusID)
	err = i.referralStore.MarkLinked(applicantID, i.cfg.NewStatusID, statusName, i.now())
	if err != nil {
		result.fail(logger, ref, err, "ошибка сохранения статуса кандидата")
		return result
	}
	logger.Info("кандидат привязан к вакансии")
	result.Updated = 1
	return result
}

func getReferralComment(rec dbmodels.Referral) string {
	return fmt.Sprintf("Рекомендовал(а) %v %v %v", rec.ProfileName, rec.ProfileEmail, rec.ProfilePhone)
}

func (i *impl) PollStatuses(ctx context.Context) StageResult {
	result := newResult(StageStatuses)
	logger := i.getLogger(StageStatuses)
	defer func() { result.log(logger) }()

	list, err := i.referralStore.ListTracked()
	if err != nil {
		result.fail(logger, "referrals", err, "ошибка получения отслеживаемых рекомендаций")
		return result
	}
	// несколько рекомендаций одного кандидата опрашиваются один раз
	polled := map[int]bool{}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			result.fail(logger, "referrals", ctx.Err(), "опрос статусов прерван")
			break
		}
		if rec.ApplicantID == nil || polled[*rec.ApplicantID] {
			continue
		}
		applicantID := *rec.ApplicantID
		polled[applicantID] = true
		result.Fetched++
		i.pollApplicant(ctx, logger.WithField("applicant_id", applicantID), applicantID, rec.Status, &result)
	}
	return result
}

func (i *impl) pollApplicant(ctx context.Context, logger *log.Entry, applicantID int, current *int, result *StageResult) {
	ref := fmt.Sprintf("applicant %v", applicantID)
	history, err := i.client.GetApplicantStatusLog(ctx, applicantID)
	if err != nil {
		result.fail(logger, ref, err, "ошибка получения истории кандидата")
		return
	}
	status, ok := history.CurrentStatus()
	if !ok {
		result.Skipped++
		return
	}
	if current != nil && *current == status {
		return
	}
	statusName, known := models.GetReferralStatusName(status)
	if !known {
		logger.WithField("status", status).Warn("статус отсутствует в справочнике")
	}
	err = i.referralStore.UpdateStatusByApplicant(applicantID, status, statusName)
	if err != nil {
		result.fail(logger, ref, err, "ошибка сохранения статуса кандидата")
		return
	}
	result.Updated++
	logger.
		WithField("status", status).
		WithField("status_name", statusName).
		Info("статус кандидата изменён")

	recipients, err := i.referralStore.ListByApplicantID(applicantID)
	if err != nil {
		result.fail(logger, ref, err, "ошибка получения рекомендаций кандидата")
		return
	}
	for _, rec := range recipients {
		err = i.notifier.StatusChanged(ctx, rec)
		if err != nil {
			result.fail(logger.WithField("referral_id", rec.ID), "referral "+rec.ID, err, "ошибка уведомления рекомендателя")
			continue
		}
		result.Notified++
	}
}

func (i *impl) GetVacancy(ctx context.Context, huntflowID int) VacancyLookup {
	vacancy, err := i.client.GetVacancy(ctx, huntflowID)
	if err != nil {
		i.getLogger("").
			WithField("huntflow_vacancy_id", huntflowID).
			WithError(err).
			Error("ошибка получения вакансии HuntFlow")
		return VacancyLookup{Error: err.Error()}
	}
	if vacancy.ID == 0 {
		return VacancyLookup{Error: "вакансия не найдена"}
	}
	return VacancyLookup{
		Success: true,
		Data:    &vacancy,
	}
}
