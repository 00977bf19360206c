package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// releaseLockScript deletes the key only while it still holds our token, so
// a lock that expired and was taken by another instance is left alone.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const LockKeyPrefix = "lock:"

// LockService is a Redis SetNX lock used to keep periodic jobs single-instance.
type LockService interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, name, token string) error
}

type lockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewLockService(redisClient *redis.Client, log *logrus.Logger) LockService {
	return &lockService{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *lockService) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, string, error) {
	token := uuid.NewString()
	acquired, err := s.redisClient.SetNX(ctx, LockKeyPrefix+name, token, ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire lock %s: %+v", name, err)
		return false, "", fmt.Errorf("acquire lock %s: %w", name, err)
	}
	if !acquired {
		s.log.Debugf("Lock %s held by another instance", name)
		return false, "", nil
	}
	return true, token, nil
}

func (s *lockService) Unlock(ctx context.Context, name, token string) error {
	released, err := releaseLockScript.Run(ctx, s.redisClient, []string{LockKeyPrefix + name}, token).Int()
	if err != nil {
		s.log.Warnf("Failed to release lock %s: %+v", name, err)
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	if released == 0 {
		s.log.Debugf("Lock %s expired before release", name)
	}
	return nil
}
