package huntflowworker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	huntflowhandler "huntflow-sync/lib/huntflow"
	baseworker "huntflow-sync/lib/utils/base-worker"
	"huntflow-sync/lib/utils/helpers"
	"huntflow-sync/lib/utils/lock"
)

const (
	catalogWorkerName  = "HuntFlowCatalogJob"
	referralWorkerName = "HuntFlowReferralJob"
	// рекомендаций, отправляемых и привязываемых за один запуск
	maxReferralsPerRun = 50
)

var (
	CatalogStages = []huntflowhandler.Stage{
		huntflowhandler.StageStructure,
		huntflowhandler.StageVacancies,
		huntflowhandler.StageVacancyStates,
	}
	ReferralStages = []huntflowhandler.Stage{
		huntflowhandler.StageApplicants,
		huntflowhandler.StageLinks,
		huntflowhandler.StageStatuses,
	}
)

type Config struct {
	CatalogPeriod  time.Duration
	ReferralPeriod time.Duration
	LockTTL        time.Duration
}

func StartWorker(ctx context.Context, cfg Config) {
	i := impl{
		handler: huntflowhandler.Instance,
		locker:  lock.Instance,
		lockTTL: cfg.LockTTL,
	}
	catalog := baseworker.NewInstance(catalogWorkerName, 10*time.Second, cfg.CatalogPeriod)
	referral := baseworker.NewInstance(referralWorkerName, 30*time.Second, cfg.ReferralPeriod)
	go catalog.Run(ctx, i.syncCatalog)
	go referral.Run(ctx, i.syncReferrals)
}

type impl struct {
	handler huntflowhandler.Provider
	locker  lock.Locker
	lockTTL time.Duration
}

func (i impl) getLogger(workerName string) *log.Entry {
	return log.
		WithField("integration", "HuntFlow").
		WithField("worker_name", workerName)
}

func (i impl) syncCatalog(ctx context.Context) {
	logger := i.getLogger(catalogWorkerName)
	for _, stage := range CatalogStages {
		if helpers.IsContextDone(ctx) {
			return
		}
		_, _, err := RunLocked(ctx, i.locker, i.handler, stage, i.lockTTL)
		if err != nil {
			logger.WithField("stage", stage).WithError(err).Error("ошибка запуска этапа синхронизации")
		}
	}
}

// syncReferrals отправка и привязка берут по одной рекомендации, повторяем пока есть работа
func (i impl) syncReferrals(ctx context.Context) {
	logger := i.getLogger(referralWorkerName)
	for _, stage := range ReferralStages {
		for n := 0; n < maxReferralsPerRun; n++ {
			if helpers.IsContextDone(ctx) {
				return
			}
			result, ran, err := RunLocked(ctx, i.locker, i.handler, stage, i.lockTTL)
			if err != nil {
				logger.WithField("stage", stage).WithError(err).Error("ошибка запуска этапа синхронизации")
				break
			}
			if !ran || stage == huntflowhandler.StageStatuses || result.Fetched == 0 || result.Failed() {
				break
			}
		}
	}
}

// RunLocked запускает этап, если этот же этап не выполняется в другом месте.
// ran=false - этап уже выполняется и пропущен
func RunLocked(ctx context.Context, locker lock.Locker, handler huntflowhandler.Provider, stage huntflowhandler.Stage, ttl time.Duration) (result huntflowhandler.StageResult, ran bool, err error) {
	ran, err = locker.TryRun(ctx, "stage:"+string(stage), ttl, func() error {
		result = handler.RunStage(ctx, stage)
		return nil
	})
	if err != nil {
		return result, false, err
	}
	if !ran {
		log.
			WithField("integration", "HuntFlow").
			WithField("stage", stage).
			Info("этап уже выполняется, запуск пропущен")
	}
	return result, ran, nil
}
