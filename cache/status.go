package cache

import (
	"context"
	"fmt"
	"time"

	"fileHasher/database"
	"fileHasher/models"
)

const (
	statusKeyPrefix = "hash:task:status:"
	statusTTL       = 10 * time.Minute
)

// StatusCache mirrors task status transitions into Redis so operators and
// sidecar tooling can observe task state without hitting the service. The
// in-process registry stays authoritative; the mirror is write-through only.
type StatusCache struct {
	cache *database.Cache
}

func NewStatusCache(cache *database.Cache) *StatusCache {
	return &StatusCache{cache: cache}
}

func (sc *StatusCache) Set(ctx context.Context, taskID string, status models.TaskStatus) error {
	key := fmt.Sprintf("%s%s", statusKeyPrefix, taskID)
	return sc.cache.Set(ctx, key, string(status), statusTTL)
}
