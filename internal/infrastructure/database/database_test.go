package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/config"
)

func storeConfig(dir string) config.StoreConfig {
	return config.StoreConfig{
		Dir:         dir,
		UsersFile:   "users.json",
		AdminsFile:  "admin.json",
		DesignsFile: "designs.json",
		PagesFile:   "pages.json",
	}
}

func TestDB_InitAndStatus(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	db, err := New(storeConfig(dir), nil)
	require.NoError(t, err)

	for _, st := range db.Status(ctx) {
		assert.False(t, st.Exists, st.File)
	}

	require.NoError(t, db.Init(ctx))
	require.NoError(t, db.Users.Append(ctx, entities.User{ID: "user-1", Email: "a@x.com"}))

	statuses := db.Status(ctx)
	require.Len(t, statuses, 4)
	for _, st := range statuses {
		assert.True(t, st.Exists, st.File)
		assert.Empty(t, st.Error, st.File)
	}
	assert.Equal(t, 1, statuses[0].Records)

	assert.NoError(t, db.Ping())
	assert.NoError(t, db.HealthCheck(ctx))
}

func TestDB_HealthCheckReportsCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "designs.json"), []byte("[{"), 0o644))

	db, err := New(storeConfig(dir), nil)
	require.NoError(t, err)

	err = db.HealthCheck(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "designs.json")

	info := db.GetConnectionInfo(ctx)
	assert.Equal(t, dir, info["dir"])
}
