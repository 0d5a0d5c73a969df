package redissvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	runLockKey   = "catalog-sync:run-lock"
	lastRunKey   = "catalog-sync:last-run"
	lastRunField = "status"
	lastRunAt    = "at"
)

// RedisService coordinates sync runs across replicas: a SETNX lock keeps two
// instances from fetching the same feed at once, and the last-run hash gives
// operators something to look at.
type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

// AcquireRunLock takes the global run lock for at most ttl. Returns false
// when another instance holds it.
func (s *RedisService) AcquireRunLock(ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(s.ctx, runLockKey, "1", ttl).Result()
}

func (s *RedisService) ReleaseRunLock() error {
	return s.rdb.Del(s.ctx, runLockKey).Err()
}

// RecordRun stores the outcome of the latest run.
func (s *RedisService) RecordRun(status string, at time.Time) error {
	return s.rdb.HSet(s.ctx, lastRunKey, map[string]any{
		lastRunField: status,
		lastRunAt:    at.Format(time.RFC3339),
	}).Err()
}

// LastRun reads the latest recorded run outcome.
func (s *RedisService) LastRun() (map[string]string, error) {
	return s.rdb.HGetAll(s.ctx, lastRunKey).Result()
}
