package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SlotLocker serializes booking creation per (provider, date). The lock is
// the guarantee against concurrent double-booking: the transaction's
// count-then-insert only checks committed state, so two unserialized
// writers inserting different documents would both commit. Keep the TTL
// comfortably above the transaction's worst-case latency.
type SlotLocker interface {
	// Lock acquires the key and returns a release func, or ErrSlotConflict
	// when the key stays held past the retry budget.
	Lock(ctx context.Context, key string) (func(), error)
}

// RedisSlotLocker implements SlotLocker with SET NX PX.
type RedisSlotLocker struct {
	Client *redis.Client
	TTL    time.Duration
}

const (
	lockRetries    = 10
	lockRetryDelay = 50 * time.Millisecond
)

func (l *RedisSlotLocker) Lock(ctx context.Context, key string) (func(), error) {
	ttl := l.TTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	token := uuid.New().String()

	for attempt := 0; attempt < lockRetries; attempt++ {
		ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				// Only the holder may release; compare the token first.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				val, err := l.Client.Get(releaseCtx, key).Result()
				if err == nil && val == token {
					l.Client.Del(releaseCtx, key)
				}
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return nil, ErrSlotConflict
}

// LockKey builds the per-(provider, date) creation lock key.
func LockKey(providerID, date string) string {
	return "booking-lock:" + providerID + ":" + date
}
