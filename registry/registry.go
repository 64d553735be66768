package registry

import (
	"context"
	"errors"

	"fileHasher/models"
)

var ErrTaskNotFound = errors.New("task not found")

// Registry is the process-wide store of batch task records. Records live
// until process exit; there is no eviction.
type Registry interface {
	// Create assigns the task a fresh unique id, stamps its creation time
	// and makes it visible to lookups.
	Create(ctx context.Context, task *models.Task) (string, error)
	Get(ctx context.Context, id string) (*models.Task, error)
}
