package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Locker не даёт одной и той же задаче выполняться параллельно.
// TryRun возвращает ran=false, если задача с таким ключом уже выполняется
type Locker interface {
	TryRun(ctx context.Context, key string, ttl time.Duration, safeCode func() error) (ran bool, err error)
}

var Instance Locker = NewLocal()

var (
	lockMap sync.Map
)

type local struct{}

// NewLocal блокировка в пределах процесса
func NewLocal() Locker {
	return local{}
}

func (local) TryRun(ctx context.Context, key string, _ time.Duration, safeCode func() error) (bool, error) {
	if _, loaded := lockMap.LoadOrStore(key, true); loaded {
		return false, nil
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}

type redisLock struct {
	client *redis.Client
	prefix string
}

// NewRedis блокировка между экземплярами сервиса
func NewRedis(client *redis.Client, prefix string) Locker {
	return redisLock{
		client: client,
		prefix: prefix,
	}
}

// снимаем блокировку только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (r redisLock) TryRun(ctx context.Context, key string, ttl time.Duration, safeCode func() error) (bool, error) {
	lockKey := r.prefix + ":" + key
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "ошибка получения блокировки в redis")
	}
	if !ok {
		return false, nil
	}
	defer func() {
		// контекст задачи мог быть отменён, снимаем блокировку независимо от него
		_ = releaseScript.Run(context.Background(), r.client, []string{lockKey}, token).Err()
	}()
	return true, safeCode()
}
