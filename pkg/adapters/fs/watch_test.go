package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formpost/pkg/adapters/fs"
	"github.com/aretw0/formpost/pkg/core"
)

func waitEvent(t *testing.T, events <-chan core.Event, id int64) core.Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-events:
			require.True(t, ok, "event channel closed")
			if e.ID == id {
				return e
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event on record %d", id)
		}
	}
}

func TestStore_Watch(t *testing.T) {
	store, path := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx, "")
	require.NoError(t, err)
	assert.True(t, store.State().(fs.StoreState).WatcherActive)

	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, store.Create(context.Background(), core.Record{ID: 12, Title: "x"}))

	e := waitEvent(t, events, 12)
	assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStore_WatchInvalidPattern(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Watch(context.Background(), "[")
	assert.Error(t, err)
}
