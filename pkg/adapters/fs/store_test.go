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
	"github.com/aretw0/formpost/pkg/git"
)

// setupStore creates an initialized store in a temp dir.
func setupStore(t *testing.T, opts ...func(*fs.Config)) (*fs.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records")
	cfg := fs.Config{Path: path, AutoInit: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := fs.NewStore(cfg)
	require.NoError(t, store.Initialize(context.Background()))
	return store, path
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		_, path := setupStore(t)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		store := fs.NewStore(fs.Config{Path: filepath.Join(t.TempDir(), "nope"), MustExist: true})
		assert.Error(t, store.Initialize(context.Background()))
	})

	t.Run("Inits Git Repo when Versioned", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		_, path := setupStore(t, func(c *fs.Config) { c.Versioned = true })

		_, err := os.Stat(filepath.Join(path, ".git"))
		assert.NoError(t, err)

		ignore, err := os.ReadFile(filepath.Join(path, ".gitignore"))
		require.NoError(t, err)
		assert.Contains(t, string(ignore), ".formpost/")
	})
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_CreateGet(t *testing.T) {
	store, path := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, core.Record{ID: 42, Type: "post", Title: "Hello", Body: "World"}))

	_, err := os.Stat(filepath.Join(path, "42.md"))
	require.NoError(t, err)

	r, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, core.Record{ID: 42, Type: "post", Title: "Hello", Body: "World"}, r)
}

func TestStore_CreateInvalidID(t *testing.T) {
	store, _ := setupStore(t)
	err := store.Create(context.Background(), core.Record{ID: 0})
	assert.ErrorIs(t, err, core.ErrInvalidRecordID)
}

func TestStore_UpdatePartial(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, core.Record{ID: 3, Type: "post", Title: "Old", Body: "Old body"}))

	var p core.Patch
	p.ID = 3
	p.SetTitle("New")
	require.NoError(t, store.Update(ctx, p))

	r, err := store.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "New", r.Title)
	assert.Equal(t, "Old body", r.Body, "unset attributes must not change")
	assert.Equal(t, "post", r.Type)
}

func TestStore_UpdateMissingCreates(t *testing.T) {
	store, path := setupStore(t)
	ctx := context.Background()

	var p core.Patch
	p.ID = 9
	p.SetBody("x")
	require.NoError(t, store.Update(ctx, p))

	_, err := os.Stat(filepath.Join(path, "9.md"))
	require.NoError(t, err)

	r, err := store.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, core.Record{ID: 9, Body: "x"}, r)
}

func TestStore_UpdateInvalidID(t *testing.T) {
	store, _ := setupStore(t)

	var p core.Patch
	p.SetTitle("x")
	assert.ErrorIs(t, store.Update(context.Background(), p), core.ErrInvalidRecordID)
}

func TestStore_ReadOnly(t *testing.T) {
	_, path := setupStore(t)
	ro := fs.NewStore(fs.Config{Path: path, ReadOnly: true})
	require.NoError(t, ro.Initialize(context.Background()))

	var p core.Patch
	p.ID = 1
	p.SetTitle("x")
	assert.ErrorIs(t, ro.Update(context.Background(), p), core.ErrReadOnly)
	assert.ErrorIs(t, ro.SaveFields(context.Background(), 1, core.NewSubmission(core.Field{Key: "a", Value: "b"})), core.ErrReadOnly)
}

func TestStore_SaveFields(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	t.Run("creates missing record", func(t *testing.T) {
		sub := core.NewSubmission(core.Field{Key: "color", Value: "blue"})
		require.NoError(t, store.SaveFields(ctx, 5, sub))

		fields, err := store.Fields(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"color": "blue"}, fields)
	})

	t.Run("merges with existing fields and keeps attributes", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, core.Record{ID: 6, Title: "T", Body: "B"}))
		require.NoError(t, store.SaveFields(ctx, 6, core.NewSubmission(core.Field{Key: "a", Value: "1"})))
		require.NoError(t, store.SaveFields(ctx, 6, core.NewSubmission(core.Field{Key: "b", Value: "2"})))

		fields, err := store.Fields(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, fields)

		r, err := store.Get(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, "T", r.Title)
		assert.Equal(t, "B", r.Body)
	})

	t.Run("empty submission writes nothing", func(t *testing.T) {
		require.NoError(t, store.SaveFields(ctx, 77, core.NewSubmission()))
		_, err := store.Get(ctx, 77)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestStore_List(t *testing.T) {
	store, path := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, core.Record{ID: 10, Title: "ten"}))
	require.NoError(t, store.Create(ctx, core.Record{ID: 2, Title: "two"}))
	require.NoError(t, os.WriteFile(filepath.Join(path, "notes.md"), []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "3.txt"), []byte("ignored"), 0644))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, int64(10), records[1].ID)
}

func TestStore_VersionedCommit(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}
	store, path := setupStore(t, func(c *fs.Config) { c.Versioned = true })

	ctx := core.WithChangeReason(context.Background(), "form submission")
	require.NoError(t, store.Create(context.Background(), core.Record{ID: 1, Title: "a"}))

	var p core.Patch
	p.ID = 1
	p.SetTitle("b")
	require.NoError(t, store.Update(ctx, p))

	log, err := git.NewClient(path, "", nil).Log(2)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Contains(t, log[0], "form submission")
	assert.Contains(t, log[1], "create record 1")
}

func TestStore_State(t *testing.T) {
	store, path := setupStore(t)

	before := store.State().(fs.StoreState)
	assert.Equal(t, path, before.Path)
	assert.Nil(t, before.LastWrite)

	require.NoError(t, store.Create(context.Background(), core.Record{ID: 1}))

	after := store.State().(fs.StoreState)
	assert.Equal(t, 1, after.Writes)
	require.NotNil(t, after.LastWrite)
	assert.WithinDuration(t, time.Now(), *after.LastWrite, time.Minute)
	assert.Equal(t, "store", store.ComponentType())
}
