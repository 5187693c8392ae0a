package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const lockKey = "brewpos:scheduler:lock"

// locker is the redis surface the tick lock needs.
type locker interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseIfHeld(ctx context.Context, key, value string) error
}

// tickLock serializes ticks across worker replicas. Each acquisition uses a
// fresh owner token so a worker never releases a lock it lost to TTL expiry.
type tickLock struct {
	redis locker
	ttl   time.Duration
}

func newTickLock(redis locker, ttl time.Duration) *tickLock {
	return &tickLock{redis: redis, ttl: ttl}
}

// acquire attempts to claim the tick. On success it returns a release
// function the caller must invoke when the tick finishes.
func (l *tickLock) acquire(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.redis.SetNX(ctx, lockKey, token, l.ttl)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		_ = l.redis.ReleaseIfHeld(context.WithoutCancel(ctx), lockKey, token)
	}
	return release, true, nil
}
