package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactiverse/core/internal/domain/entities"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) (*FileStore[record], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	return NewFileStore[record](path, nil), path
}

func TestFileStore_LoadAll_CreatesMissingFile(t *testing.T) {
	store, path := newTestStore(t)

	got, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStore_LoadAll_CorruptFileFailsLoudly(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "a",`), 0o644))

	_, err := store.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrCorruptStore)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id": "a",`, string(data), "corrupt content must not be overwritten")
}

func TestFileStore_Append_FailsOnCorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	err := store.Append(context.Background(), record{ID: "1"})
	assert.ErrorIs(t, err, entities.ErrCorruptStore)
}

func TestFileStore_EmptyFileIsEmptyArray(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	got, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_AppendAndLoad(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, record{ID: "1", Name: "one"}))
	require.NoError(t, store.Append(ctx, record{ID: "2", Name: "two"}))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"id\": \"1\"")

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_AppendUnless(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	sameName := func(name string) func(*record) bool {
		return func(r *record) bool { return r.Name == name }
	}

	ok, err := store.AppendUnless(ctx, sameName("a"), record{ID: "1", Name: "a"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AppendUnless(ctx, sameName("a"), record{ID: "2", Name: "a"})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFileStore_UpdateOne(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveAll(ctx, []record{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}))

	found, err := store.UpdateOne(ctx,
		func(r *record) bool { return r.ID == "2" },
		func(r *record) { r.Name = "deux" },
	)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", got[0].Name)
	assert.Equal(t, "deux", got[1].Name)

	before, err := os.Stat(path)
	require.NoError(t, err)

	found, err = store.UpdateOne(ctx,
		func(r *record) bool { return r.ID == "missing" },
		func(r *record) { r.Name = "x" },
	)
	require.NoError(t, err)
	assert.False(t, found)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "file must not be rewritten when nothing matched")
}

func TestFileStore_Upsert(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	byID := func(r *record) bool { return r.ID == "1" }

	replaced, err := store.Upsert(ctx, byID, record{ID: "1", Name: "first"})
	require.NoError(t, err)
	assert.False(t, replaced)

	replaced, err = store.Upsert(ctx, byID, record{ID: "1", Name: "second"})
	require.NoError(t, err)
	assert.True(t, replaced)

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1", Name: "second"}}, got)
}

func TestFileStore_DeleteWhere(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveAll(ctx, []record{{ID: "1"}, {ID: "2"}, {ID: "3"}}))

	removed, err := store.DeleteWhere(ctx, func(r *record) bool { return r.ID != "2" })
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "2"}}, got)

	removed, err = store.DeleteWhere(ctx, func(r *record) bool { return r.ID == "nope" })
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFileStore_FindAndFilter(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveAll(ctx, []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "a"}}))

	r, found, err := store.Find(ctx, func(r *record) bool { return r.Name == "a" })
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "1", r.ID)

	_, found, err = store.Find(ctx, func(r *record) bool { return r.Name == "z" })
	require.NoError(t, err)
	assert.False(t, found)

	got, err := store.Filter(ctx, func(r *record) bool { return r.Name == "a" })
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "1", Name: "a"}, {ID: "3", Name: "a"}}, got)
}

func TestFileStore_ConcurrentAppendsAreSerialized(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append(ctx, record{ID: fmt.Sprintf("r-%d", i)}))
		}(i)
	}
	wg.Wait()

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, writers)
}

func TestFileStore_ObserverSeesOperations(t *testing.T) {
	var ops []string
	path := filepath.Join(t.TempDir(), "observed.json")
	store := NewFileStore[record](path, func(file, op string, err error) {
		assert.Equal(t, "observed.json", file)
		ops = append(ops, op)
	})
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, record{ID: "1"}))
	_, err := store.LoadAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{OpAppend, OpLoad}, ops)
}

func TestFileStore_CanceledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Append(ctx, record{ID: "1"})
	assert.ErrorIs(t, err, context.Canceled)
}
