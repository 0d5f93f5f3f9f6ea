package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

// BaseImpl периодический запуск задачи до завершения контекста
type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		// проверяем не завершён ли ещё контекст и выходим, если завершён
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-time.After(period):
			logger.Info("Задача запущена")
			start := time.Now()
			i.runJob(ctx, jobFunc)
			logger.
				WithField("elapsed", time.Since(start).String()).
				Info("Задача выполнена")
		}
		period = i.runInterval
	}
}

// runJob паника в задаче не останавливает воркер, следующий запуск пройдёт по расписанию
func (i BaseImpl) runJob(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	jobFunc(ctx)
}
