package metrics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	NameAPI = "huntflow"

	meterName = "huntflow-sync"
)

// Collector учёт запросов во внешнее api: время ответа и код статуса по каждому endpoint
type Collector interface {
	SetRequestTime(ctx context.Context, endpoint, name string, elapsed time.Duration)
	SetRequestCode(ctx context.Context, endpoint string, code int, name string)
}

var Instance Collector = Nop{}

func NewCollector() error {
	c, err := NewInstance(otel.GetMeterProvider())
	if err != nil {
		return err
	}
	Instance = c
	return nil
}

func NewInstance(provider metric.MeterProvider) (Collector, error) {
	meter := provider.Meter(meterName)
	duration, err := meter.Float64Histogram(
		"external_api.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Время выполнения запроса во внешнее api"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания гистограммы времени запроса")
	}
	codes, err := meter.Int64Counter(
		"external_api.request.count",
		metric.WithDescription("Количество запросов во внешнее api по кодам ответа"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания счётчика кодов ответа")
	}
	return &impl{
		duration: duration,
		codes:    codes,
	}, nil
}

type impl struct {
	duration metric.Float64Histogram
	codes    metric.Int64Counter
}

func (i impl) SetRequestTime(ctx context.Context, endpoint, name string, elapsed time.Duration) {
	i.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("api", name),
		attribute.String("endpoint", endpoint),
	))
}

func (i impl) SetRequestCode(ctx context.Context, endpoint string, code int, name string) {
	i.codes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("api", name),
		attribute.String("endpoint", endpoint),
		attribute.Int("status_code", code),
	))
}

type Nop struct{}

func (Nop) SetRequestTime(context.Context, string, string, time.Duration) {}

func (Nop) SetRequestCode(context.Context, string, int, string) {}
