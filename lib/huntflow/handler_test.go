package huntflowhandler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	hfclient "huntflow-sync/lib/huntflow/client"
	hfapimodels "huntflow-sync/models/api/huntflow"
	dbmodels "huntflow-sync/models/db"
)

func intPtr(v int) *int {
	return &v
}

var errTransport = &hfclient.TransportError{Endpoint: "/account/1/vacancies/", StatusCode: 502, Err: errors.New("bad gateway")}

type clientStub struct {
	pages        map[int]hfapimodels.VacancyPage
	pageErrs     map[int]error
	requested    []int
	structure    hfapimodels.DivisionList
	structureErr error
	vacancies    map[int]hfapimodels.Vacancy
	vacancyErrs  map[int]error
	submitResp   hfapimodels.ApplicantResponse
	submitErr    error
	submitKeys   []string
	submitted    []hfapimodels.ApplicantRequest
	linked       []hfapimodels.ApplicantVacancyRequest
	linkErr      error
	logs         map[int]hfapimodels.ApplicantLog
	logErrs      map[int]error
	logRequests  map[int]int
}

func (c *clientStub) ListVacancies(_ context.Context, page int, _ bool) (hfapimodels.VacancyPage, error) {
	c.requested = append(c.requested, page)
	if err := c.pageErrs[page]; err != nil {
		return hfapimodels.VacancyPage{}, err
	}
	return c.pages[page], nil
}

func (c *clientStub) GetOrgStructure(context.Context) (hfapimodels.DivisionList, error) {
	return c.structure, c.structureErr
}

func (c *clientStub) GetVacancy(_ context.Context, id int) (hfapimodels.Vacancy, error) {
	if err := c.vacancyErrs[id]; err != nil {
		return hfapimodels.Vacancy{}, err
	}
	return c.vacancies[id], nil
}

func (c *clientStub) SubmitApplicant(_ context.Context, request hfapimodels.ApplicantRequest, key string) (hfapimodels.ApplicantResponse, error) {
	c.submitKeys = append(c.submitKeys, key)
	c.submitted = append(c.submitted, request)
	return c.submitResp, c.submitErr
}

func (c *clientStub) LinkApplicantToVacancy(_ context.Context, _ int, request hfapimodels.ApplicantVacancyRequest) (hfapimodels.ApplicantVacancyResponse, error) {
	c.linked = append(c.linked, request)
	return hfapimodels.ApplicantVacancyResponse{}, c.linkErr
}

func (c *clientStub) GetApplicantStatusLog(_ context.Context, applicantID int) (hfapimodels.ApplicantLog, error) {
	if c.logRequests == nil {
		c.logRequests = map[int]int{}
	}
	c.logRequests[applicantID]++
	if err := c.logErrs[applicantID]; err != nil {
		return hfapimodels.ApplicantLog{}, err
	}
	return c.logs[applicantID], nil
}

type vacancyStoreStub struct {
	existing []int
	created  []dbmodels.Vacancy
	local    []dbmodels.Vacancy
	states   map[int]string
}

func (s *vacancyStoreStub) ExistingHuntflowIDs(ids []int) ([]int, error) {
	found := []int{}
	for _, id := range ids {
		for _, existingID := range s.existing {
			if id == existingID {
				found = append(found, id)
			}
		}
	}
	return found, nil
}

func (s *vacancyStoreStub) CreateBatch(list []dbmodels.Vacancy) error {
	s.created = append(s.created, list...)
	for _, rec := range list {
		s.existing = append(s.existing, rec.HuntflowID)
	}
	return nil
}

func (s *vacancyStoreStub) ListWithHuntflowID() ([]dbmodels.Vacancy, error) {
	return s.local, nil
}

func (s *vacancyStoreStub) UpdateState(huntflowID int, state string) error {
	if s.states == nil {
		s.states = map[int]string{}
	}
	s.states[huntflowID] = state
	return nil
}

func (s *vacancyStoreStub) ListPublished() ([]dbmodels.Vacancy, error) {
	return s.created, nil
}

func (s *vacancyStoreStub) SetPublished(string, bool) error {
	return nil
}

type departmentStoreStub struct {
	calls int
	table []dbmodels.Department
}

func (s *departmentStoreStub) ReplaceAll(list []dbmodels.Department) error {
	s.calls++
	s.table = append([]dbmodels.Department{}, list...)
	return nil
}

func (s *departmentStoreStub) List() ([]dbmodels.Department, error) {
	return s.table, nil
}

type referralStoreStub struct {
	list            []*dbmodels.Referral
	setApplicantErr error
	markLinkedErr   error
	updateErrs      map[int]error
}

func (s *referralStoreStub) Create(rec dbmodels.Referral) (string, error) {
	s.list = append(s.list, &rec)
	return rec.ID, nil
}

func (s *referralStoreStub) GetByID(id string) (*dbmodels.Referral, error) {
	for _, rec := range s.list {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *referralStoreStub) List(dbmodels.ReferralFilter) ([]dbmodels.Referral, error) {
	return s.collect(func(*dbmodels.Referral) bool { return true }), nil
}

func (s *referralStoreStub) NextUnsubmitted() (*dbmodels.Referral, error) {
	for _, rec := range s.list {
		if rec.ApplicantID == nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *referralStoreStub) RegisterAttempt(id string, at time.Time) error {
	rec, _ := s.GetByID(id)
	rec.SubmitAttempts++
	rec.LastAttemptAt = &at
	return nil
}

func (s *referralStoreStub) SetApplicantID(id string, applicantID int, at time.Time) error {
	if s.setApplicantErr != nil {
		return s.setApplicantErr
	}
	rec, _ := s.GetByID(id)
	rec.ApplicantID = &applicantID
	rec.SubmittedAt = &at
	return nil
}

func (s *referralStoreStub) NextAwaitingLink() (*dbmodels.Referral, error) {
	for _, rec := range s.list {
		if rec.ApplicantID != nil && rec.Status == nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *referralStoreStub) ListTracked() ([]dbmodels.Referral, error) {
	return s.collect(func(rec *dbmodels.Referral) bool {
		return rec.ApplicantID != nil && rec.Status != nil
	}), nil
}

func (s *referralStoreStub) UpdateStatusByApplicant(applicantID, status int, statusName string) error {
	if err := s.updateErrs[applicantID]; err != nil {
		return err
	}
	for _, rec := range s.list {
		if rec.ApplicantID != nil && *rec.ApplicantID == applicantID {
			rec.Status = intPtr(status)
			rec.StatusName = statusName
		}
	}
	return nil
}

func (s *referralStoreStub) MarkLinked(applicantID, status int, statusName string, at time.Time) error {
	if s.markLinkedErr != nil {
		return s.markLinkedErr
	}
	for _, rec := range s.list {
		if rec.ApplicantID != nil && *rec.ApplicantID == applicantID {
			rec.Status = intPtr(status)
			rec.StatusName = statusName
			rec.LinkedAt = &at
		}
	}
	return nil
}

func (s *referralStoreStub) ListByApplicantID(applicantID int) ([]dbmodels.Referral, error) {
	return s.collect(func(rec *dbmodels.Referral) bool {
		return rec.ApplicantID != nil && *rec.ApplicantID == applicantID
	}), nil
}

func (s *referralStoreStub) collect(filter func(rec *dbmodels.Referral) bool) []dbmodels.Referral {
	result := []dbmodels.Referral{}
	for _, rec := range s.list {
		if filter(rec) {
			result = append(result, *rec)
		}
	}
	return result
}

type notifierStub struct {
	sent []dbmodels.Referral
}

func (n *notifierStub) StatusChanged(_ context.Context, rec dbmodels.Referral) error {
	n.sent = append(n.sent, rec)
	return nil
}

type snapshotStub struct {
	kinds []string
}

func (s *snapshotStub) Save(_ context.Context, kind string, _ interface{}) (string, error) {
	s.kinds = append(s.kinds, kind)
	return kind + "/object.json", nil
}

type testEnv struct {
	handler     *impl
	client      *clientStub
	vacancies   *vacancyStoreStub
	departments *departmentStoreStub
	referrals   *referralStoreStub
	notifier    *notifierStub
	snapshots   *snapshotStub
}

var runTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func getTestEnv(cfg Config) testEnv {
	env := testEnv{
		client:      &clientStub{},
		vacancies:   &vacancyStoreStub{},
		departments: &departmentStoreStub{},
		referrals:   &referralStoreStub{},
		notifier:    &notifierStub{},
		snapshots:   &snapshotStub{},
	}
	env.handler = newInstance(cfg, env.client, env.vacancies, env.departments, env.referrals, env.notifier, env.snapshots)
	env.handler.now = func() time.Time { return runTime }
	return env
}

func vacancy(id int, division *int) hfapimodels.Vacancy {
	return hfapimodels.Vacancy{
		ID:              id,
		Position:        "Вакансия",
		AccountDivision: division,
		State:           "OPEN",
	}
}

func itemIDs(items []hfapimodels.Vacancy) []int {
	ids := []int{}
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestFetchVacancies(t *testing.T) {
	t.Run(`pages concatenated in source order check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10)), vacancy(2, intPtr(10))}, Total: 2},
			2: {Items: []hfapimodels.Vacancy{vacancy(3, intPtr(10))}},
		}
		items := env.handler.FetchVacancies(context.TODO())
		require.Equal(t, []int{1, 2, 3}, itemIDs(items))
		require.Equal(t, []int{1, 2}, env.client.requested)
	})

	t.Run(`failed page does not abort the rest check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10))}, Total: 3},
			3: {Items: []hfapimodels.Vacancy{vacancy(3, intPtr(10))}},
		}
		env.client.pageErrs = map[int]error{2: errTransport}
		result := newResult(StageVacancies)
		items := env.handler.fetchVacancies(context.TODO(), env.handler.getLogger(StageVacancies), &result)
		require.Equal(t, []int{1, 3}, itemIDs(items))
		require.Equal(t, []int{1, 2, 3}, env.client.requested)
		require.Len(t, result.Failures, 1)
		require.Equal(t, "page 2", result.Failures[0].Ref)
	})

	t.Run(`first page failure yields nothing check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.pageErrs = map[int]error{1: errTransport}
		items := env.handler.FetchVacancies(context.TODO())
		require.Empty(t, items)
		require.Equal(t, []int{1}, env.client.requested)
	})

	t.Run(`malformed first page treated as empty check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		// клиент отдаёт пустую страницу, если тело ответа не разобрано
		env.client.pages = map[int]hfapimodels.VacancyPage{}
		items := env.handler.FetchVacancies(context.TODO())
		require.Empty(t, items)
		require.Equal(t, []int{1}, env.client.requested)
	})

	// total в ответе HuntFlow по умолчанию трактуется как количество страниц
	t.Run(`total treated as page count by default check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10))}, Total: 25, Count: 10},
		}
		env.handler.FetchVacancies(context.TODO())
		require.Len(t, env.client.requested, 25)
	})

	t.Run(`total treated as item count check`, func(t *testing.T) {
		env := getTestEnv(Config{PageRule: TotalAsItems})
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10))}, Total: 25, Count: 10},
		}
		env.handler.FetchVacancies(context.TODO())
		require.Equal(t, []int{1, 2, 3}, env.client.requested)
	})
}

func TestImportVacancies(t *testing.T) {
	t.Run(`filter and insert check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.vacancies.existing = []int{2}
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{
				vacancy(1, intPtr(10)),
				vacancy(2, intPtr(10)),
				vacancy(3, nil),
				vacancy(4, intPtr(0)),
				vacancy(5, intPtr(11)),
			}, Total: 1},
		}
		result := env.handler.ImportVacancies(context.TODO())
		require.False(t, result.Failed())
		require.Equal(t, 5, result.Fetched)
		require.Equal(t, 2, result.Inserted)
		require.Equal(t, 3, result.Skipped)
		require.Len(t, env.vacancies.created, 2)
		require.Equal(t, 1, env.vacancies.created[0].HuntflowID)
		require.Equal(t, 5, env.vacancies.created[1].HuntflowID)
		for _, rec := range env.vacancies.created {
			require.Equal(t, runTime, rec.CreatedAt)
			require.NotNil(t, rec.DepartmentID)
			require.False(t, rec.Published)
		}
		require.Equal(t, []string{"vacancies"}, env.snapshots.kinds)
	})

	t.Run(`empty remote state stored as is check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		item := vacancy(1, intPtr(10))
		item.State = ""
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{item}, Total: 1},
		}
		result := env.handler.ImportVacancies(context.TODO())
		require.Equal(t, 1, result.Inserted)
		require.Equal(t, "", env.vacancies.created[0].State)
		require.False(t, env.vacancies.created[0].Published)
	})

	t.Run(`rerun does not duplicate check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10)), vacancy(2, intPtr(10))}, Total: 1},
		}
		first := env.handler.ImportVacancies(context.TODO())
		second := env.handler.ImportVacancies(context.TODO())
		require.Equal(t, 2, first.Inserted)
		require.Equal(t, 0, second.Inserted)
		require.Equal(t, 2, second.Skipped)
		require.Len(t, env.vacancies.created, 2)
	})

	t.Run(`repeated id across pages inserted once check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.pages = map[int]hfapimodels.VacancyPage{
			1: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10))}, Total: 2},
			2: {Items: []hfapimodels.Vacancy{vacancy(1, intPtr(10))}},
		}
		result := env.handler.ImportVacancies(context.TODO())
		require.Equal(t, 1, result.Inserted)
		require.Len(t, env.vacancies.created, 1)
	})
}

func TestImportStructure(t *testing.T) {
	divisions := hfapimodels.DivisionList{Items: []hfapimodels.Division{
		{ID: 1, Name: "Компания", Order: 1},
		{ID: 2, Name: "Разработка", Parent: intPtr(1), Order: 2, Meta: []byte(`{"code":"dev"}`)},
		{ID: 3, Name: "Продажи", Parent: intPtr(1), Order: 1, Meta: []byte(`null`)},
	}}

	t.Run(`full replace check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.structure = divisions
		result := env.handler.ImportStructure(context.TODO())
		require.False(t, result.Failed())
		require.Equal(t, 3, result.Inserted)
		require.Equal(t, 1, env.departments.calls)
		bounds := map[int][2]int{}
		for _, item := range env.departments.table {
			bounds[item.ID] = [2]int{item.Lft, item.Rgt}
		}
		require.Equal(t, [2]int{1, 6}, bounds[1])
		require.Equal(t, [2]int{2, 3}, bounds[3])
		require.Equal(t, [2]int{4, 5}, bounds[2])
		require.Equal(t, `{"code":"dev"}`, env.departments.table[1].Meta)
		require.Equal(t, "", env.departments.table[2].Meta)
		require.Equal(t, []string{"structure"}, env.snapshots.kinds)
	})

	t.Run(`same input gives same table check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.structure = divisions
		env.handler.ImportStructure(context.TODO())
		first := env.departments.table
		env.handler.ImportStructure(context.TODO())
		require.Equal(t, first, env.departments.table)
		require.Equal(t, 2, env.departments.calls)
	})

	t.Run(`transport failure keeps table check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.structureErr = errTransport
		result := env.handler.ImportStructure(context.TODO())
		require.True(t, result.Failed())
		require.Equal(t, 0, env.departments.calls)
		require.Empty(t, env.snapshots.kinds)
	})

	t.Run(`empty structure keeps table check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		result := env.handler.ImportStructure(context.TODO())
		require.True(t, result.Failed())
		require.Equal(t, 0, env.departments.calls)
	})
}

func getReferral(id string) *dbmodels.Referral {
	rec := &dbmodels.Referral{
		FriendFirstName:   "Иван",
		FriendLastName:    "Петров",
		FriendPhone:       "+79990000000",
		FriendEmail:       "ivan@example.com",
		ProfileName:       "Анна Смирнова",
		ProfileEmail:      "anna@example.com",
		ProfilePhone:      "+79991111111",
		HuntflowVacancyID: 44,
		SubmissionKey:     "key-" + id,
	}
	rec.ID = id
	return rec
}

func TestSubmitApplicant(t *testing.T) {
	t.Run(`successful submission check`, func(t *testing.T) {
		env := getTestEnv(Config{AuthType: "NATIVE", AccountSource: 7})
		env.referrals.list = []*dbmodels.Referral{getReferral("r1")}
		env.client.submitResp = hfapimodels.ApplicantResponse{ID: 321}
		result := env.handler.SubmitApplicant(context.TODO())
		require.False(t, result.Failed())
		require.Equal(t, 1, result.Updated)
		rec := env.referrals.list[0]
		require.NotNil(t, rec.ApplicantID)
		require.Equal(t, 321, *rec.ApplicantID)
		require.Equal(t, 1, rec.SubmitAttempts)
		require.Equal(t, []string{"key-r1"}, env.client.submitKeys)
		require.Equal(t, "Петров", env.client.submitted[0].LastName)
		require.Equal(t, "NATIVE", env.client.submitted[0].Externals[0].AuthType)
		require.Equal(t, 7, env.client.submitted[0].Externals[0].AccountSource)
	})

	t.Run(`transport failure leaves referral unsubmitted check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.referrals.list = []*dbmodels.Referral{getReferral("r1")}
		env.client.submitErr = errTransport
		result := env.handler.SubmitApplicant(context.TODO())
		require.True(t, result.Failed())
		rec := env.referrals.list[0]
		require.Nil(t, rec.ApplicantID)
		require.Equal(t, 1, rec.SubmitAttempts)

		// повтор идёт с тем же ключом
		env.handler.SubmitApplicant(context.TODO())
		require.Equal(t, []string{"key-r1", "key-r1"}, env.client.submitKeys)
		require.Equal(t, 2, rec.SubmitAttempts)
	})

	t.Run(`empty response is a failure check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.referrals.list = []*dbmodels.Referral{getReferral("r1")}
		result := env.handler.SubmitApplicant(context.TODO())
		require.True(t, result.Failed())
		require.Nil(t, env.referrals.list[0].ApplicantID)
	})

	t.Run(`store failure after submission check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.referrals.list = []*dbmodels.Referral{getReferral("r1")}
		env.referrals.setApplicantErr = errors.New("db down")
		env.client.submitResp = hfapimodels.ApplicantResponse{ID: 321}
		result := env.handler.SubmitApplicant(context.TODO())
		require.True(t, result.Failed())
		require.Len(t, result.Failures, 1)
		require.Equal(t, "referral r1", result.Failures[0].Ref)
		require.Equal(t, 0, result.Updated)
		require.Nil(t, env.referrals.list[0].ApplicantID)
	})

	t.Run(`nothing to submit check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		result := env.handler.SubmitApplicant(context.TODO())
		require.False(t, result.Failed())
		require.Equal(t, 0, result.Fetched)
		require.Empty(t, env.client.submitKeys)
	})
}

func TestLinkApplicant(t *testing.T) {
	t.Run(`link with comment check`, func(t *testing.T) {
		env := getTestEnv(Config{NewStatusID: 1})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		env.referrals.list = []*dbmodels.Referral{rec}
		result := env.handler.LinkApplicant(context.TODO())
		require.False(t, result.Failed())
		require.Len(t, env.client.linked, 1)
		require.Equal(t, 44, env.client.linked[0].Vacancy)
		require.Equal(t, 1, env.client.linked[0].Status)
		require.Equal(t, "Рекомендовал(а) Анна Смирнова anna@example.com +79991111111", env.client.linked[0].Comment)
		require.NotNil(t, rec.Status)
		require.Equal(t, 1, *rec.Status)
		require.Equal(t, "Новый", rec.StatusName)
		require.NotNil(t, rec.LinkedAt)
	})

	t.Run(`transport failure keeps status empty check`, func(t *testing.T) {
		env := getTestEnv(Config{NewStatusID: 1})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		env.referrals.list = []*dbmodels.Referral{rec}
		env.client.linkErr = errTransport
		result := env.handler.LinkApplicant(context.TODO())
		require.True(t, result.Failed())
		require.Nil(t, rec.Status)
	})

	t.Run(`store failure after link check`, func(t *testing.T) {
		env := getTestEnv(Config{NewStatusID: 1})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		env.referrals.list = []*dbmodels.Referral{rec}
		env.referrals.markLinkedErr = errors.New("db down")
		result := env.handler.LinkApplicant(context.TODO())
		require.True(t, result.Failed())
		require.Len(t, result.Failures, 1)
		require.Equal(t, "applicant 321", result.Failures[0].Ref)
		require.Equal(t, 0, result.Updated)
		require.Len(t, env.client.linked, 1)
		require.Nil(t, rec.Status)
	})
}

func TestPollStatuses(t *testing.T) {
	statusLog := func(status int) hfapimodels.ApplicantLog {
		return hfapimodels.ApplicantLog{Items: []hfapimodels.ApplicantLogItem{
			{ID: 2, Status: intPtr(status)},
			{ID: 1, Status: intPtr(1)},
		}}
	}

	t.Run(`status change sends one notification check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		rec.Status = intPtr(1)
		env.referrals.list = []*dbmodels.Referral{rec}
		env.client.logs = map[int]hfapimodels.ApplicantLog{321: statusLog(3)}

		result := env.handler.PollStatuses(context.TODO())
		require.False(t, result.Failed())
		require.Equal(t, 1, result.Updated)
		require.Equal(t, 1, result.Notified)
		require.Equal(t, 3, *rec.Status)
		require.Equal(t, "Интервью с HR", rec.StatusName)
		require.Len(t, env.notifier.sent, 1)
		require.Equal(t, "Интервью с HR", env.notifier.sent[0].StatusName)

		// повторный опрос без изменений ничего не отправляет
		result = env.handler.PollStatuses(context.TODO())
		require.Equal(t, 0, result.Updated)
		require.Equal(t, 0, result.Notified)
		require.Len(t, env.notifier.sent, 1)
	})

	t.Run(`unknown status name fallback check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		rec.Status = intPtr(1)
		env.referrals.list = []*dbmodels.Referral{rec}
		env.client.logs = map[int]hfapimodels.ApplicantLog{321: statusLog(99)}
		env.handler.PollStatuses(context.TODO())
		require.Equal(t, "Статус 99", rec.StatusName)
	})

	t.Run(`empty log is not a change check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		rec.Status = intPtr(1)
		env.referrals.list = []*dbmodels.Referral{rec}
		result := env.handler.PollStatuses(context.TODO())
		require.Equal(t, 1, result.Skipped)
		require.Equal(t, 1, *rec.Status)
		require.Empty(t, env.notifier.sent)
	})

	t.Run(`failed applicant does not stop polling check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		first := getReferral("r1")
		first.ApplicantID = intPtr(1)
		first.Status = intPtr(1)
		second := getReferral("r2")
		second.ApplicantID = intPtr(2)
		second.Status = intPtr(1)
		env.referrals.list = []*dbmodels.Referral{first, second}
		env.client.logErrs = map[int]error{1: errTransport}
		env.client.logs = map[int]hfapimodels.ApplicantLog{2: statusLog(3)}

		result := env.handler.PollStatuses(context.TODO())
		require.Equal(t, 2, result.Fetched)
		require.Len(t, result.Failures, 1)
		require.Equal(t, "applicant 1", result.Failures[0].Ref)
		require.Equal(t, 1, result.Updated)
		require.Equal(t, 1, result.Notified)
		require.Equal(t, 1, *first.Status)
		require.Equal(t, 3, *second.Status)
		require.Len(t, env.notifier.sent, 1)
		require.Equal(t, "r2", env.notifier.sent[0].ID)
	})

	t.Run(`status store failure skips notification check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		rec := getReferral("r1")
		rec.ApplicantID = intPtr(321)
		rec.Status = intPtr(1)
		env.referrals.list = []*dbmodels.Referral{rec}
		env.referrals.updateErrs = map[int]error{321: errors.New("db down")}
		env.client.logs = map[int]hfapimodels.ApplicantLog{321: statusLog(3)}

		result := env.handler.PollStatuses(context.TODO())
		require.Len(t, result.Failures, 1)
		require.Equal(t, 0, result.Updated)
		require.Empty(t, env.notifier.sent)
	})

	t.Run(`every recipient of the applicant notified check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		first := getReferral("r1")
		first.ApplicantID = intPtr(321)
		first.Status = intPtr(1)
		second := getReferral("r2")
		second.ApplicantID = intPtr(321)
		second.Status = intPtr(1)
		second.ProfileEmail = "oleg@example.com"
		env.referrals.list = []*dbmodels.Referral{first, second}
		env.client.logs = map[int]hfapimodels.ApplicantLog{321: statusLog(5)}

		result := env.handler.PollStatuses(context.TODO())
		require.Equal(t, 2, result.Notified)
		require.Equal(t, 1, env.client.logRequests[321])
		emails := []string{}
		for _, rec := range env.notifier.sent {
			emails = append(emails, rec.ProfileEmail)
		}
		require.Equal(t, "anna@example.com,oleg@example.com", strings.Join(emails, ","))
	})
}

func TestRefreshVacancyStates(t *testing.T) {
	t.Run(`per vacancy fault tolerance check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.vacancies.local = []dbmodels.Vacancy{{HuntflowID: 1}, {HuntflowID: 2}, {HuntflowID: 3}}
		env.client.vacancies = map[int]hfapimodels.Vacancy{
			1: {ID: 1, State: "CLOSED"},
			3: {ID: 3},
		}
		env.client.vacancyErrs = map[int]error{2: errTransport}
		result := env.handler.RefreshVacancyStates(context.TODO())
		require.Len(t, result.Failures, 1)
		require.Equal(t, "vacancy 2", result.Failures[0].Ref)
		require.Equal(t, 1, result.Updated)
		require.Equal(t, 1, result.Skipped)
		require.Equal(t, map[int]string{1: "CLOSED"}, env.vacancies.states)
	})
}

func TestGetVacancy(t *testing.T) {
	t.Run(`failure converted to result check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.vacancyErrs = map[int]error{5: errTransport}
		resp := env.handler.GetVacancy(context.TODO(), 5)
		require.False(t, resp.Success)
		require.NotEmpty(t, resp.Error)
		require.Nil(t, resp.Data)
	})

	t.Run(`success check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		env.client.vacancies = map[int]hfapimodels.Vacancy{5: {ID: 5, Position: "Аналитик"}}
		resp := env.handler.GetVacancy(context.TODO(), 5)
		require.True(t, resp.Success)
		require.Equal(t, "Аналитик", resp.Data.Position)
	})
}

func TestRunStage(t *testing.T) {
	t.Run(`unknown stage check`, func(t *testing.T) {
		env := getTestEnv(Config{})
		result := env.handler.RunStage(context.TODO(), Stage("unknown"))
		require.True(t, result.Failed())
	})

	t.Run(`parse stage check`, func(t *testing.T) {
		stage, err := ParseStage("statuses")
		require.Nil(t, err)
		require.Equal(t, StageStatuses, stage)
		_, err = ParseStage("bad")
		require.NotNil(t, err)
	})
}
