// Package runlock provides the mutual-exclusion guarantee the sync
// engine requires: at most one full pass active at a time, with no
// queuing of overlapping triggers.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another run currently holds the lock.
var ErrHeld = errors.New("sync run already in progress")

// releaseScript deletes the lock only if the caller still owns it, so
// a run that outlives the TTL cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(client *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{client: client, key: key, ttl: ttl}
}

// Acquire takes the lock and returns an owner token for Release.
// Returns ErrHeld when a run is already active. The TTL bounds how
// long a crashed run can block its successors.
func (l *Lock) Acquire(ctx context.Context) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquiring run lock: %w", err)
	}
	if !ok {
		return "", ErrHeld
	}
	return token, nil
}

// Release frees the lock if the token still owns it.
func (l *Lock) Release(ctx context.Context, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
		return fmt.Errorf("releasing run lock: %w", err)
	}
	return nil
}
