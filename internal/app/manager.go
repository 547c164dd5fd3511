package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/domain"
	"github.com/wassimajzoub/saveclip/internal/infrastructure"
)

// Manager owns the task store and drives download workers. Submissions are
// non-blocking: each accepted URL gets its own goroutine, and a semaphore
// bounds how many of those may be downloading at once. A task waiting for a
// slot still reports status queued.
type Manager struct {
	store     *TaskStore
	extractor domain.Extractor
	config    *domain.DownloadConfig
	notifier  *infrastructure.NotificationService
	logger    *zap.Logger
	sem       chan struct{}
	baseCtx   context.Context
	workerWg  sync.WaitGroup
}

// NewManager creates a new download manager
func NewManager(
	store *TaskStore,
	extractor domain.Extractor,
	config *domain.DownloadConfig,
	notifier *infrastructure.NotificationService,
	logger *zap.Logger,
) *Manager {
	limit := config.MaxConcurrent
	if limit < 1 {
		limit = 1
	}
	return &Manager{
		store:     store,
		extractor: extractor,
		config:    config,
		notifier:  notifier,
		logger:    logger,
		sem:       make(chan struct{}, limit),
		baseCtx:   context.Background(),
	}
}

// SetBaseContext sets the context handed to workers. Intended to be set at
// process startup so graceful shutdown can abandon in-flight downloads.
func (m *Manager) SetBaseContext(ctx context.Context) {
	m.baseCtx = ctx
}

// Submit validates and classifies a raw URL, creates a task and spawns its
// worker. It returns the queued task immediately; download failures surface
// asynchronously on the record, never here.
func (m *Manager) Submit(rawURL string) (domain.Task, error) {
	url := domain.NormalizeURL(rawURL)
	if err := domain.ValidateURL(url); err != nil {
		return domain.Task{}, err
	}
	platform := domain.DetectPlatform(url)

	task := m.store.Create(url, platform)

	// Snapshot before the worker exists: once the goroutine is spawned the
	// record belongs to it, and reading the shared pointer here would race
	// with its updates.
	snapshot := *task

	m.logger.Info("Download submitted",
		zap.String("id", task.ID),
		zap.String("url", url),
		zap.String("platform", string(platform)))

	m.workerWg.Add(1)
	go func(id, url string) {
		defer m.workerWg.Done()

		// Acquire a download slot here rather than in Submit so the
		// request path never blocks on the concurrency bound.
		select {
		case m.sem <- struct{}{}:
			defer func() { <-m.sem }()
		case <-m.baseCtx.Done():
			return
		}

		m.runDownload(m.baseCtx, id, url)
	}(snapshot.ID, snapshot.URL)

	return snapshot, nil
}

// Get returns a snapshot of the task with the given id.
func (m *Manager) Get(id string) (domain.Task, bool) {
	return m.store.Get(id)
}

// TaskCount returns the number of tracked tasks.
func (m *Manager) TaskCount() int {
	return m.store.Len()
}

// ActiveCount returns how many workers currently hold a download slot.
func (m *Manager) ActiveCount() int {
	return len(m.sem)
}

// Wait blocks until all in-flight workers finish or the context is done.
// Returns true if all workers finished.
func (m *Manager) Wait(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		m.workerWg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
