package repositories

import (
	"CarePulse/database"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	lockTTL       = 10 * time.Second
	lockRetries   = 3
	lockRetryWait = 2 * time.Second
)

// acquireLock takes a short-lived Redis lock for a write path, retrying a
// few times before giving up. The returned release function is safe to
// defer; release failures are logged, not returned.
func acquireLock(ctx context.Context, key string) (func(), error) {
	lockValue := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < lockRetries; i++ {
		locked, err = database.NewLock(ctx, key, lockValue, lockTTL)
		if err == nil && locked {
			break
		}
		if i < lockRetries-1 {
			time.Sleep(lockRetryWait)
		}
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}

	release := func() {
		if err := database.ReleaseLock(ctx, key, lockValue); err != nil {
			log.Printf("Failed to release lock %s: %v", key, err)
		}
	}
	return release, nil
}
