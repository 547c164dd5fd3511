package app

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

// runDownload drives one task from queued to a terminal state. It is the
// record's single writer; pollers read concurrently through the store.
func (m *Manager) runDownload(ctx context.Context, id, url string) {
	m.store.Update(id, func(t *domain.Task) {
		t.MarkDownloading()
	})

	// Metadata first: a failure here is handled exactly like a download
	// failure.
	info, err := m.extractor.FetchMetadata(ctx, url)
	if err != nil {
		m.failTask(id, url, err)
		return
	}
	m.store.Update(id, func(t *domain.Task) {
		t.SetMetadata(info)
	})

	if err := os.MkdirAll(m.config.Dir, 0755); err != nil {
		m.failTask(id, url, fmt.Errorf("failed to create download directory: %w", err))
		return
	}

	outputTemplate := filepath.Join(m.config.Dir, m.outputPattern(id))
	if err := m.extractor.Download(ctx, url, outputTemplate, m.progressFunc(id)); err != nil {
		m.failTask(id, url, err)
		return
	}

	// The extractor claimed success; the artifact on disk is the source of
	// truth for the final filename and size.
	filename, size, found := m.findArtifact(id)
	if !found {
		m.logger.Warn("Extractor reported success but no artifact found",
			zap.String("id", id),
			zap.String("url", url))
		m.store.Update(id, func(t *domain.Task) {
			t.MarkError(msgFileMissing)
		})
		return
	}

	m.store.Update(id, func(t *domain.Task) {
		t.MarkComplete(filename, size)
	})

	m.logger.Info("Download complete",
		zap.String("id", id),
		zap.String("filename", filename),
		zap.Int64("filesize", size))

	if m.notifier != nil {
		m.notifier.NotifyDownloadComplete(filename)
	}
}

// outputPattern builds the artifact name template: the task id as a
// disambiguating prefix, the media title truncated to fit filesystem name
// limits, and the container extension.
func (m *Manager) outputPattern(id string) string {
	return fmt.Sprintf("%s_%%(title).%ds.%%(ext)s", id, m.config.TitleMaxLen)
}

// progressFunc returns the per-tick progress callback for a task. Percentages
// are rounded to one decimal; an unknown total maps to the indeterminate
// sentinel; the terminal finished tick forces 100 since remux time is not
// reflected in byte accounting.
func (m *Manager) progressFunc(id string) domain.ProgressFunc {
	return func(downloaded, total int64, finished bool) {
		pct := domain.ProgressIndeterminate
		switch {
		case finished:
			pct = 100
		case total > 0:
			pct = math.Round(float64(downloaded)/float64(total)*1000) / 10
		}
		m.store.Update(id, func(t *domain.Task) {
			if t.Status != domain.StatusDownloading {
				return
			}
			// Progress never regresses, but losing the size estimate
			// mid-transfer legitimately resets it to indeterminate.
			if pct != domain.ProgressIndeterminate && pct < t.Progress {
				return
			}
			t.Progress = pct
		})
	}
}

// findArtifact scans the storage directory for a file owned by the task.
// Ownership is a name-prefix relation, so this is a plain prefix scan.
func (m *Manager) findArtifact(id string) (string, int64, bool) {
	entries, err := os.ReadDir(m.config.Dir)
	if err != nil {
		return "", 0, false
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), id+"_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		return entry.Name(), info.Size(), true
	}
	return "", 0, false
}

// ArtifactPath resolves a stored filename inside the storage directory.
func (m *Manager) ArtifactPath(filename string) string {
	return filepath.Join(m.config.Dir, filename)
}

// failTask classifies the failure and moves the task to its terminal error
// state. Nothing propagates: a failed task never crashes the process.
func (m *Manager) failTask(id, url string, err error) {
	msg := classifyDownloadError(err)

	m.logger.Warn("Download failed",
		zap.String("id", id),
		zap.String("url", url),
		zap.String("reason", msg),
		zap.Error(err))

	m.store.Update(id, func(t *domain.Task) {
		t.MarkError(msg)
	})

	if m.notifier != nil {
		m.notifier.NotifyDownloadFailed(url, msg)
	}
}
