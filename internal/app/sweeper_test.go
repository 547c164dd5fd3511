package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wassimajzoub/saveclip/internal/domain"
)

func newTestSweeper(t *testing.T) (*Sweeper, string) {
	t.Helper()
	dir := t.TempDir()
	config := &domain.RetentionConfig{
		Interval: 5 * time.Minute,
		MaxAge:   30 * time.Minute,
	}
	return NewSweeper(dir, config, zap.NewNop()), dir
}

func writeAgedFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	old := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, old, old))
	return path
}

func TestSweeper_DeletesExpiredFiles(t *testing.T) {
	sweeper, dir := newTestSweeper(t)

	expired := writeAgedFile(t, dir, "aaaa1111_old.mp4", time.Hour)
	fresh := writeAgedFile(t, dir, "bbbb2222_new.mp4", time.Minute)

	sweeper.SweepOnce()

	_, err := os.Stat(expired)
	assert.True(t, os.IsNotExist(err), "expired file should be deleted")

	_, err = os.Stat(fresh)
	assert.NoError(t, err, "fresh file should survive")
}

func TestSweeper_MeasuresFromModTime(t *testing.T) {
	sweeper, dir := newTestSweeper(t)

	// Just inside the window: survives this sweep.
	path := writeAgedFile(t, dir, "cccc3333_edge.mp4", 29*time.Minute)
	sweeper.SweepOnce()
	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Push it past the window: swept on the next cycle.
	old := time.Now().Add(-31 * time.Minute)
	require.NoError(t, os.Chtimes(path, old, old))
	sweeper.SweepOnce()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSweeper_SkipsDirectories(t *testing.T) {
	sweeper, dir := newTestSweeper(t)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(sub, old, old))

	sweeper.SweepOnce()

	_, err := os.Stat(sub)
	assert.NoError(t, err)
}

func TestSweeper_MissingDirIsNotFatal(t *testing.T) {
	config := &domain.RetentionConfig{Interval: time.Minute, MaxAge: time.Minute}
	sweeper := NewSweeper(filepath.Join(t.TempDir(), "does-not-exist"), config, zap.NewNop())

	assert.NotPanics(t, sweeper.SweepOnce)
}

func TestSweeper_StartStop(t *testing.T) {
	sweeper, _ := newTestSweeper(t)

	require.NoError(t, sweeper.Start(context.Background()))
	assert.True(t, sweeper.IsRunning())

	// Double start is rejected.
	assert.Error(t, sweeper.Start(context.Background()))

	require.NoError(t, sweeper.Stop())
	assert.False(t, sweeper.IsRunning())

	// Double stop is rejected.
	assert.Error(t, sweeper.Stop())
}

func TestSweeper_Restart(t *testing.T) {
	sweeper, dir := newTestSweeper(t)
	sweeper.interval = 10 * time.Millisecond

	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Stop())

	// A stopped sweeper can be started again, and the second loop must
	// actually tick rather than exit on the channel the first Stop closed.
	require.NoError(t, sweeper.Start(context.Background()))
	assert.True(t, sweeper.IsRunning())

	expired := writeAgedFile(t, dir, "dddd4444_stale.mp4", time.Hour)
	assert.Eventually(t, func() bool {
		_, err := os.Stat(expired)
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond, "restarted loop should still sweep")

	require.NoError(t, sweeper.Stop())
	assert.False(t, sweeper.IsRunning())
}
