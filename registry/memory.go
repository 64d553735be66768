package registry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fileHasher/models"
)

// MemoryRegistry keeps all task records in an id-keyed map. The map lock
// guards insertion and lookup only; each record carries its own lock, so an
// executor writing progress into one record never contends with lookups of
// another.
type MemoryRegistry struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		tasks: make(map[string]*models.Task),
	}
}

func (r *MemoryRegistry) Create(_ context.Context, task *models.Task) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	for _, exists := r.tasks[id]; exists; _, exists = r.tasks[id] {
		id = uuid.New().String()
	}

	task.ID = id
	task.CreatedAt = time.Now().UTC()
	r.tasks[id] = task

	return id, nil
}

func (r *MemoryRegistry) Get(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
