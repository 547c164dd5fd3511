package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current status of a download task
type TaskStatus string

const (
	StatusQueued      TaskStatus = "queued"
	StatusDownloading TaskStatus = "downloading"
	StatusComplete    TaskStatus = "complete"
	StatusError       TaskStatus = "error"
)

// ProgressIndeterminate is reported when the total size of a transfer is
// unknown. It is distinct from 0%, which means "not started yet".
const ProgressIndeterminate float64 = -1

// Task represents one user-initiated download and its tracked lifecycle.
// A task is mutated only by its owning worker; everyone else reads snapshots
// through the store.
type Task struct {
	ID        string     `json:"task_id"`
	URL       string     `json:"url"`
	Platform  Platform   `json:"platform"`
	Status    TaskStatus `json:"status"`
	Progress  float64    `json:"progress"`
	Title     string     `json:"title"`
	Thumbnail string     `json:"thumbnail"`
	Duration  float64    `json:"duration"`
	Uploader  string     `json:"uploader"`
	Filename  string     `json:"filename,omitempty"`
	Filesize  int64      `json:"filesize,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewTask creates a new queued task for the given URL.
// The id is an 8-character token cut from a UUID; short enough to prefix
// artifact filenames with, random enough that collisions are negligible for
// the lifetime of a single process.
func NewTask(url string, platform Platform) *Task {
	return &Task{
		ID:        uuid.NewString()[:8],
		URL:       url,
		Platform:  platform,
		Status:    StatusQueued,
		Progress:  0,
		CreatedAt: time.Now(),
	}
}

// MarkDownloading transitions the task into the downloading state.
func (t *Task) MarkDownloading() {
	t.Status = StatusDownloading
	t.Progress = 0
}

// MarkComplete records the artifact and transitions to the terminal
// complete state.
func (t *Task) MarkComplete(filename string, filesize int64) {
	t.Status = StatusComplete
	t.Filename = filename
	t.Filesize = filesize
	t.Progress = 100
}

// MarkError transitions to the terminal error state with a user-facing
// message.
func (t *Task) MarkError(msg string) {
	t.Status = StatusError
	t.Error = msg
}

// IsTerminal reports whether the task reached a final state.
func (t *Task) IsTerminal() bool {
	return t.Status == StatusComplete || t.Status == StatusError
}

// SetMetadata populates the fields extracted before the download starts.
func (t *Task) SetMetadata(info *MediaInfo) {
	if info == nil {
		return
	}
	t.Title = info.Title
	t.Thumbnail = info.Thumbnail
	t.Duration = info.Duration
	t.Uploader = info.Uploader
}
