package repository

import (
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const shiftLockPrefix = "schedule:shift:lock:"

// 只删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisShiftLocker 同一张课程表同时只允许一个调课在执行
type RedisShiftLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisShiftLocker(client *redis.Client, ttl time.Duration) *RedisShiftLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisShiftLocker{Client: client, TTL: ttl}
}

func (l *RedisShiftLocker) Acquire(ctx context.Context, table string) (func(), error) {
	key := shiftLockPrefix + table
	token := uuid.New().String()

	ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrShiftInProgress
	}

	return func() { l.release(key, token) }, nil
}

// release 释放失败时锁会在 TTL 后自动过期，只记日志
func (l *RedisShiftLocker) release(key, token string) {
	deleted, err := releaseScript.Run(context.Background(), l.Client, []string{key}, token).Int64()
	if err != nil {
		logger.Log.Warn("release shift lock failed", zap.String("key", key), zap.Error(err))
		return
	}
	if deleted == 0 {
		logger.Log.Warn("shift lock expired before release", zap.String("key", key))
	}
}

// NoopShiftLocker 未启用 Redis 时使用
type NoopShiftLocker struct{}

func (NoopShiftLocker) Acquire(ctx context.Context, table string) (func(), error) {
	return func() {}, nil
}
