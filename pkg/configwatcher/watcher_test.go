package configwatcher

import (
	"context"
	"exam_prep_backend/internal/config"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: \"s3\"\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var count atomic.Int64
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			count.Store(int64(cfg.Assessment.DefaultCount))
		})
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: \"s3\"\nassessment:\n  default_count: 25\n"), 0644))

	assert.Eventually(t, func() bool { return count.Load() == 25 }, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
