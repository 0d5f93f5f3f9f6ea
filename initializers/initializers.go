package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"huntflow-sync/config"
	"huntflow-sync/fiberlog"
	departmentprovider "huntflow-sync/lib/dicts/department"
	xlsexport "huntflow-sync/lib/export/xls"
	huntflowhandler "huntflow-sync/lib/huntflow"
	hfclient "huntflow-sync/lib/huntflow/client"
	huntflowworker "huntflow-sync/lib/huntflow/worker"
	"huntflow-sync/lib/metrics"
	referralhandler "huntflow-sync/lib/referral"
	vacancyhandler "huntflow-sync/lib/vacancy"
)

var LoggerConfig *fiberlog.Config

// InitAllServices возвращает функцию остановки экспорта телеметрии
func InitAllServices(ctx context.Context) (shutdown func()) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	shutdown = InitTelemetry(ctx)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	InitNotify()
	InitLock(ctx)
	InitHuntFlow()
	departmentprovider.NewHandler()
	vacancyhandler.NewHandler()
	xlsexport.NewHandler()
	referralhandler.NewHandler()
	if *config.Conf.Workers.Enabled {
		go initWorkers(ctx)
	}
	return shutdown
}

func InitHuntFlow() {
	hfclient.NewProvider(hfclient.Config{
		Host:      config.Conf.HuntFlow.Host,
		Token:     config.Conf.HuntFlow.Token,
		AccountID: config.Conf.HuntFlow.AccountID,
		Timeout:   time.Duration(config.Conf.HuntFlow.TimeoutSec) * time.Second,
		Metrics:   metrics.Instance,
	})
	pageRule, err := huntflowhandler.GetPageRule(config.Conf.HuntFlow.PageRule)
	if err != nil {
		panic(err.Error())
	}
	huntflowhandler.NewHandler(huntflowhandler.Config{
		OpenedOnly:    *config.Conf.HuntFlow.OpenedOnly,
		PageRule:      pageRule,
		AuthType:      config.Conf.HuntFlow.AuthType,
		AccountSource: config.Conf.HuntFlow.AccountSource,
		NewStatusID:   config.Conf.HuntFlow.NewStatusID,
	})
	if config.Conf.HuntFlow.Token == "" || config.Conf.HuntFlow.AccountID == 0 {
		log.Warn("Не заданы токен или ид организации HuntFlow, запросы будут отклонены")
	}
}

func initWorkers(ctx context.Context) {
	// Задача синхронизации с HuntFlow: справочники и вакансии, рекомендации и статусы кандидатов
	huntflowworker.StartWorker(ctx, huntflowworker.Config{
		CatalogPeriod:  time.Duration(config.Conf.Workers.CatalogPeriodMin) * time.Minute,
		ReferralPeriod: time.Duration(config.Conf.Workers.ReferralPeriodMin) * time.Minute,
		LockTTL:        time.Duration(config.Conf.Workers.LockTTLMin) * time.Minute,
	})
}
