package initializers

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"huntflow-sync/config"
	"huntflow-sync/lib/metrics"
)

// InitTelemetry без адреса коллектора метрики и трейсы не экспортируются
func InitTelemetry(ctx context.Context) (shutdown func()) {
	shutdown = func() {}
	collectorURL := config.Conf.Telemetry.CollectorURL
	if collectorURL != "" {
		var err error
		shutdown, err = initProviders(ctx, config.Conf.Telemetry.ServiceName, collectorURL)
		if err != nil {
			log.WithError(err).Error("Ошибка инициализации OpenTelemetry, экспорт отключен")
			shutdown = func() {}
		}
	}
	if err := metrics.NewCollector(); err != nil {
		log.WithError(err).Error("Ошибка инициализации метрик")
	}
	return shutdown
}

func initProviders(ctx context.Context, serviceName, collectorURL string) (func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания ресурса")
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(collectorURL),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания экспорта трейсов")
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(collectorURL),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, errors.Wrap(err, "ошибка создания экспорта метрик")
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second))),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	log.WithField("collector", collectorURL).Info("OpenTelemetry успешно инициализирован")

	return func() {
		// контекст приложения уже отменён, выгружаем остатки с отдельным таймаутом
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Ошибка остановки экспорта метрик")
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Ошибка остановки экспорта трейсов")
		}
	}, nil
}
