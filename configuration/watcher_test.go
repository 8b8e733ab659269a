package configuration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "config.toml", scenarioTOML)
	r, err := NewResolver(path)
	require.NoError(t, err)

	w, err := NewWatcher(r, path, 20*time.Millisecond)
	require.NoError(t, err)

	reloaded := make(chan error, 4)
	w.OnReload = func(err error) { reloaded <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("[firefox.swipe.up]\n3 = \"ctrl+n\"\n"), 0644))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("configuration was not reloaded")
	}

	got, _ := r.Resolve("swipe.up.3", "firefox")
	assert.Equal(t, "ctrl+n", got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcher_RequiresPath(t *testing.T) {
	_, err := NewWatcher(NewStaticResolver(nil), "", 0)
	assert.Error(t, err)
}
