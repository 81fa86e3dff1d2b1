package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, exclude func(string) bool) <-chan []string {
	t.Helper()
	batches := make(chan []string, 8)

	w, err := New([]string{dir}, exclude, func(ctx context.Context, changed []string) error {
		batches <- changed
		return nil
	})
	require.NoError(t, err)
	w.Delay = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild triggered")
		return nil
	}
}

func TestWatcher_RebuildsOnPHPChange(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, nil)

	target := filepath.Join(dir, "UserAPI.php")
	require.NoError(t, os.WriteFile(target, []byte("<?php\n"), 0644))

	changed := waitBatch(t, batches)
	assert.Contains(t, changed, target)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Marker.PHP"), []byte("<?php\n"), 0644))

	changed := waitBatch(t, batches)
	for _, path := range changed {
		assert.True(t, strings.EqualFold(filepath.Ext(path), ".php"), path)
	}
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, nil)

	sub := filepath.Join(dir, "Shop")
	require.NoError(t, os.Mkdir(sub, 0755))

	// the new directory is registered asynchronously
	target := filepath.Join(sub, "CartAPI.php")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		require.NoError(t, os.WriteFile(target, []byte("<?php\n"), 0644))
		select {
		case changed := <-batches:
			assert.Contains(t, changed, target)
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
	t.Fatal("no rebuild for file in new directory")
}

func TestWatcher_SkipsExcludedDirectories(t *testing.T) {
	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	require.NoError(t, os.Mkdir(vendor, 0755))

	batches := startWatcher(t, dir, func(path string) bool {
		return strings.Contains(filepath.ToSlash(path), "/vendor")
	})

	require.NoError(t, os.WriteFile(filepath.Join(vendor, "Lib.php"), []byte("<?php\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "API.php"), []byte("<?php\n"), 0644))

	changed := waitBatch(t, batches)
	assert.Equal(t, []string{filepath.Join(dir, "API.php")}, changed)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, nil, nil)
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "a.php", describe([]string{"/x/a.php"}))
	assert.Equal(t, "a.php and 2 more", describe([]string{"/x/a.php", "/x/b.php", "/y/c.php"}))
}
