package app

import (
	"sync"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

// TaskStore is the process-wide mapping from task id to task record. It is
// constructed once at startup and passed to handlers and workers explicitly.
//
// Concurrency contract: each record has a single writer (its own worker),
// going through Update, and any number of concurrent readers going through
// Get. Get returns a copy taken under the read lock and Update applies the
// whole mutation under the write lock, so a poller always observes a record
// that was valid at some instant - never a half-applied update.
//
// Records are never evicted; for this low-traffic, frequently-restarted
// deployment the map living for the process lifetime is an accepted tradeoff.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewTaskStore creates an empty task store
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*domain.Task),
	}
}

// Create allocates a new queued task and inserts it. The task is retrievable
// immediately, before any worker has started.
func (s *TaskStore) Create(url string, platform domain.Platform) *domain.Task {
	task := domain.NewTask(url, platform)

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	return task
}

// Get returns a snapshot copy of the task with the given id.
func (s *TaskStore) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return *task, true
}

// Update applies the mutator to the task under the write lock. Only the
// record's owning worker calls this.
func (s *TaskStore) Update(id string, mutate func(*domain.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[id]; ok {
		mutate(task)
	}
}

// Len returns the number of tracked tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
