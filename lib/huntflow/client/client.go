package hfclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"huntflow-sync/lib/metrics"
	hfapimodels "huntflow-sync/models/api/huntflow"
)

// Provider клиент api HuntFlow (https://api.huntflow.ru/v1)
type Provider interface {
	ListVacancies(ctx context.Context, page int, openedOnly bool) (hfapimodels.VacancyPage, error)
	GetOrgStructure(ctx context.Context) (hfapimodels.DivisionList, error)
	GetVacancy(ctx context.Context, id int) (hfapimodels.Vacancy, error)
	SubmitApplicant(ctx context.Context, request hfapimodels.ApplicantRequest, idempotencyKey string) (hfapimodels.ApplicantResponse, error)
	LinkApplicantToVacancy(ctx context.Context, applicantID int, request hfapimodels.ApplicantVacancyRequest) (hfapimodels.ApplicantVacancyResponse, error)
	GetApplicantStatusLog(ctx context.Context, applicantID int) (hfapimodels.ApplicantLog, error)
}

var Instance Provider

type Config struct {
	Host       string
	Token      string
	AccountID  int
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    metrics.Collector
}

func NewProvider(cfg Config) {
	Instance = NewInstance(cfg)
}

func NewInstance(cfg Config) Provider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	collector := cfg.Metrics
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &impl{
		host:       strings.TrimSuffix(cfg.Host, "/"),
		token:      cfg.Token,
		accountID:  cfg.AccountID,
		httpClient: httpClient,
		metrics:    collector,
	}
}

// apiPath format подставляет ид в путь запроса, route без ид идёт в метрики и имя span
type apiPath struct {
	format string
	route  string
}

var (
	vacanciesPath    = apiPath{"/account/%v/vacancies/", "/account/{account_id}/vacancies/"}
	vacancyPath      = apiPath{"/account/%v/vacancies/%v", "/account/{account_id}/vacancies/{vacancy_id}"}
	divisionsPath    = apiPath{"/account/%v/all_divisions", "/account/{account_id}/all_divisions"}
	applicantsPath   = apiPath{"/account/%v/applicants/", "/account/{account_id}/applicants/"}
	applicantVacPath = apiPath{"/account/%v/applicants/%v/vacancy", "/account/{account_id}/applicants/{applicant_id}/vacancy"}
	applicantLogPath = apiPath{"/account/%v/applicants/%v/log", "/account/{account_id}/applicants/{applicant_id}/log"}
)

const (
	idempotencyHeader string = "X-Idempotency-Key"
	tracerName        string = "huntflow-sync/hfclient"
)

// ErrDecode ответ не удалось разобрать, вызывающий код получает пустой результат
var ErrDecode = errors.New("ошибка разбора ответа HuntFlow")

// TransportError ошибка сети или ответ с кодом отличным от 2xx
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("запрос в HuntFlow %v завершился с кодом %v: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("запрос в HuntFlow %v не выполнен: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type impl struct {
	host       string
	token      string
	accountID  int
	httpClient *http.Client
	metrics    metrics.Collector
}

type apiRequest struct {
	method   string
	endpoint string // путь без query
	route    string
	query    url.Values
	body     interface{}
	headers  map[string]string
}

func (i impl) ListVacancies(ctx context.Context, page int, openedOnly bool) (hfapimodels.VacancyPage, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	if openedOnly {
		query.Set("opened", "1")
	}
	req := i.newRequest(http.MethodGet, vacanciesPath)
	req.query = query
	logger := i.getLogger(req).WithField("page", page)
	body, err := i.sendRequest(ctx, logger, req)
	if err != nil {
		return hfapimodels.VacancyPage{}, err
	}
	return decodeResponse[hfapimodels.VacancyPage](logger, body), nil
}

func (i impl) GetOrgStructure(ctx context.Context) (hfapimodels.DivisionList, error) {
	req := i.newRequest(http.MethodGet, divisionsPath)
	logger := i.getLogger(req)
	body, err := i.sendRequest(ctx, logger, req)
	if err != nil {
		return hfapimodels.DivisionList{}, err
	}
	return decodeResponse[hfapimodels.DivisionList](logger, body), nil
}

func (i impl) GetVacancy(ctx context.Context, id int) (hfapimodels.Vacancy, error) {
	req := i.newRequest(http.MethodGet, vacancyPath, id)
	logger := i.getLogger(req).WithField("huntflow_vacancy_id", id)
	body, err := i.sendRequest(ctx, logger, req)
	if err != nil {
		return hfapimodels.Vacancy{}, err
	}
	return decodeResponse[hfapimodels.Vacancy](logger, body), nil
}

func (i impl) SubmitApplicant(ctx context.Context, request hfapimodels.ApplicantRequest, idempotencyKey string) (hfapimodels.ApplicantResponse, error) {
	req := i.newRequest(http.MethodPost, applicantsPath)
	req.body = request
	if idempotencyKey != "" {
		req.headers = map[string]string{idempotencyHeader: idempotencyKey}
	}
	logger := i.getLogger(req).WithField("submission_key", idempotencyKey)
	body, err := i.sendRequest(ctx, logger, req)
	if err != nil {
		return hfapimodels.ApplicantResponse{}, err
	}
	return decodeResponse[hfapimodels.ApplicantResponse](logger, body), nil
}

func (i impl) LinkApplicantToVacancy(ctx context.Context, applicantID int, request hfapimodels.ApplicantVacancyRequest) (hfapimodels.ApplicantVacancyResponse, error) {
	req := i.newRequest(http.MethodPost, applicantVacPath, applicantID)
	req.body = request
	logger := i.getLogger(req).
		WithField("applicant_id", applicantID).
		WithField("huntflow_vacancy_id", request.Vacancy)
	body, err := i.sendRequest(ctx, logger, req)
	if err != nil {
		return hfapimodels.ApplicantVacancyResponse{}, err
	}
	return decodeResponse[hfapimodels.ApplicantVacancyResponse](logger, body), nil
}

func (i impl) GetApplicantStatusLog(ctx context.Context, applicantID int) (hfapimodels.ApplicantLog, error) {
	req := i.newRequest(http.MethodGet, applicantLogPath, applicantID)
	logger := i.getLogger(req).WithField("applicant_id", applicantID)
	body, err := i.sendRequest(ctx, logger, req)
	if err != nil {
		return hfapimodels.ApplicantLog{}, err
	}
	return decodeResponse[hfapimodels.ApplicantLog](logger, body), nil
}

func (i impl) newRequest(method string, path apiPath, ids ...interface{}) apiRequest {
	args := append([]interface{}{i.accountID}, ids...)
	return apiRequest{
		method:   method,
		endpoint: fmt.Sprintf(path.format, args...),
		route:    path.route,
	}
}

func (i impl) getLogger(req apiRequest) *log.Entry {
	return log.
		WithField("external_request", i.host+req.endpoint).
		WithField("method", req.method)
}

func (i impl) sendRequest(ctx context.Context, logger *log.Entry, req apiRequest) (responseBody []byte, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "huntflow "+req.method+" "+req.route,
		trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uri := i.host + req.endpoint
	if len(req.query) != 0 {
		uri += "?" + req.query.Encode()
	}
	var bodyReader io.Reader
	if req.body != nil {
		body, err := json.Marshal(req.body)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка сериализации запроса")
		}
		logger = logger.WithField("request_body", string(body))
		bodyReader = bytes.NewBuffer(body)
	}
	r, err := http.NewRequestWithContext(ctx, req.method, uri, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	r.Header.Add("Content-Type", "application/json")
	r.Header.Add("User-Agent", "HuntflowSync/1.0")
	if i.token != "" {
		r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", i.token))
	}
	for k, v := range req.headers {
		r.Header.Add(k, v)
	}

	start := time.Now()
	response, err := i.httpClient.Do(r)
	i.metrics.SetRequestTime(ctx, req.route, metrics.NameAPI, time.Since(start))
	if err != nil {
		i.metrics.SetRequestCode(ctx, req.route, 0, metrics.NameAPI)
		logger.WithError(err).Error("ошибка отправки запроса в HuntFlow")
		return nil, &TransportError{Endpoint: req.endpoint, Err: err}
	}
	defer response.Body.Close()
	i.metrics.SetRequestCode(ctx, req.route, response.StatusCode, metrics.NameAPI)
	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	responseBody, readErr := io.ReadAll(response.Body)
	if response.StatusCode < 200 || response.StatusCode > 299 {
		logger.
			WithField("status_code", response.StatusCode).
			WithField("response_body", string(responseBody)).
			Error("HuntFlow вернул ошибку")
		return nil, &TransportError{
			Endpoint:   req.endpoint,
			StatusCode: response.StatusCode,
			Err:        errors.Errorf("некорректный ответ: %v", http.StatusText(response.StatusCode)),
		}
	}
	if readErr != nil {
		logger.WithError(readErr).Warn("ошибка чтения ответа HuntFlow")
		return nil, nil
	}
	return responseBody, nil
}

// decodeResponse пустой или некорректный ответ превращается в пустой результат
func decodeResponse[T any](logger *log.Entry, body []byte) T {
	var result T
	if len(bytes.TrimSpace(body)) == 0 {
		return result
	}
	if err := json.Unmarshal(body, &result); err != nil {
		logger.
			WithError(errors.Wrap(ErrDecode, err.Error())).
			WithField("response_body", string(body)).
			Warn("ответ HuntFlow не распознан, используется пустой результат")
		var empty T
		return empty
	}
	return result
}
