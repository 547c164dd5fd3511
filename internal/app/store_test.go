package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

func TestTaskStore_CreateAndGet(t *testing.T) {
	store := NewTaskStore()

	task := store.Create("https://www.tiktok.com/@user/video/123", domain.PlatformTikTok)
	require.NotNil(t, task)

	// A new task is retrievable immediately, before any worker has started.
	got, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusQueued, got.Status)
	assert.Equal(t, float64(0), got.Progress)
	assert.Equal(t, "https://www.tiktok.com/@user/video/123", got.URL)
	assert.Equal(t, domain.PlatformTikTok, got.Platform)
}

func TestTaskStore_GetUnknown(t *testing.T) {
	store := NewTaskStore()

	_, ok := store.Get("nonexistent")
	assert.False(t, ok)
}

func TestTaskStore_GetReturnsSnapshot(t *testing.T) {
	store := NewTaskStore()
	task := store.Create("https://tiktok.com/@u/video/1", domain.PlatformTikTok)

	snapshot, ok := store.Get(task.ID)
	require.True(t, ok)

	// Mutating the snapshot must not leak into the store.
	snapshot.Status = domain.StatusError
	snapshot.Error = "tampered"

	fresh, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusQueued, fresh.Status)
	assert.Empty(t, fresh.Error)
}

func TestTaskStore_Update(t *testing.T) {
	store := NewTaskStore()
	task := store.Create("https://tiktok.com/@u/video/1", domain.PlatformTikTok)

	store.Update(task.ID, func(t *domain.Task) {
		t.MarkDownloading()
		t.Progress = 42.5
	})

	got, ok := store.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDownloading, got.Status)
	assert.Equal(t, 42.5, got.Progress)
}

func TestTaskStore_UpdateUnknownIsNoop(t *testing.T) {
	store := NewTaskStore()

	assert.NotPanics(t, func() {
		store.Update("nonexistent", func(t *domain.Task) {
			t.MarkError("should never run")
		})
	})
}

func TestTaskStore_AtomicUpdates(t *testing.T) {
	// A poller must never observe a status/field combination that was not
	// written as a unit: no complete without filename, no error without
	// message, no downloading with a filename.
	store := NewTaskStore()
	task := store.Create("https://tiktok.com/@u/video/1", domain.PlatformTikTok)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			store.Update(task.ID, func(t *domain.Task) {
				t.Status = domain.StatusDownloading
				t.Filename = ""
				t.Progress = float64(i % 101)
			})
			store.Update(task.ID, func(t *domain.Task) {
				t.MarkComplete("file.mp4", 1)
			})
		}
	}()

	for i := 0; i < 1000; i++ {
		got, ok := store.Get(task.ID)
		require.True(t, ok)
		if got.Status == domain.StatusComplete {
			assert.NotEmpty(t, got.Filename)
			assert.Equal(t, float64(100), got.Progress)
		} else {
			assert.Empty(t, got.Filename)
		}
	}
	<-done
}

func TestTaskStore_ConcurrentCreate(t *testing.T) {
	store := NewTaskStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Create("https://tiktok.com/@u/video/1", domain.PlatformTikTok)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}
