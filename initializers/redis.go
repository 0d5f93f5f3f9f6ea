package initializers

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"huntflow-sync/config"
	"huntflow-sync/lib/utils/lock"
)

// InitLock без redis блокировка этапов действует только внутри процесса
func InitLock(ctx context.Context) {
	if config.Conf.Redis.Addr == "" {
		lock.Instance = lock.NewLocal()
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Error("Ошибка подключения к redis, используется локальная блокировка")
		lock.Instance = lock.NewLocal()
		return
	}
	lock.Instance = lock.NewRedis(client, config.Conf.Workers.LockPrefix)
	log.Info("Блокировка этапов синхронизации через redis")
}
