package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

// Sweeper deletes downloaded artifacts once they outlive the retention
// window. It runs for the lifetime of the process, independent of task state:
// a file is evicted whether or not the client ever fetched it.
type Sweeper struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration
	logger   *zap.Logger
	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	loopWg   sync.WaitGroup
}

// NewSweeper creates a retention sweeper for the given storage directory
func NewSweeper(dir string, config *domain.RetentionConfig, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		dir:      dir,
		interval: config.Interval,
		maxAge:   config.MaxAge,
		logger:   logger,
	}
}

// Start launches the sweep loop.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sweeper already running")
	}
	s.running = true
	// Stop closes stopChan; a fresh one lets a stopped sweeper restart.
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	s.logger.Info("Retention sweeper started",
		zap.String("dir", s.dir),
		zap.Duration("interval", s.interval),
		zap.Duration("max_age", s.maxAge))

	s.loopWg.Add(1)
	go s.loop(ctx, stop)

	return nil
}

// Stop terminates the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("sweeper not running")
	}
	s.running = false
	stop := s.stopChan
	s.mu.Unlock()

	close(stop)
	s.loopWg.Wait()

	s.logger.Info("Retention sweeper stopped")
	return nil
}

// IsRunning returns whether the sweep loop is active
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) loop(ctx context.Context, stop <-chan struct{}) {
	defer s.loopWg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce scans the storage directory and deletes every file whose last
// modification is older than the retention window. Deletion is best-effort:
// a file that disappears or cannot be removed is skipped, never an error.
// Exported so tests can trigger a scan synchronously.
func (s *Sweeper) SweepOnce() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to scan storage directory", zap.Error(err))
		}
		return
	}

	cutoff := time.Now().Add(-s.maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			continue
		}
		s.logger.Info("Evicted expired artifact",
			zap.String("file", entry.Name()),
			zap.Time("mod_time", info.ModTime()))
	}
}
