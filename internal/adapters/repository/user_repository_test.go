package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactiverse/core/internal/domain/entities"
)

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	repo := NewUserRepository(NewFileStore[entities.User](path, nil))

	ada := &entities.User{ID: "user-1", Name: "Ada", Email: "ada@x.com", Password: "secret1"}
	require.NoError(t, repo.Create(ctx, ada))

	err := repo.Create(ctx, &entities.User{ID: "user-2", Name: "Imposter", Email: "ada@x.com", Password: "x"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, ada, got)

	updated, err := repo.Update(ctx, "user-1", func(u *entities.User) {
		u.Name = "Ada L."
		u.ID = "hijacked"
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", updated.ID)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "secret1", updated.Password)

	_, err = repo.Update(ctx, "user-404", func(u *entities.User) {})
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	_, err = repo.GetByID(ctx, "user-404")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	require.NoError(t, repo.Delete(ctx, "user-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "user-1"), entities.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepository_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	repo := NewUserRepository(NewFileStore[entities.User](path, nil))

	require.NoError(t, repo.Create(ctx, &entities.User{
		ID:        "user-1",
		Name:      "Ada",
		Email:     "ada@x.com",
		Password:  "secret1",
		AvatarURL: "https://placehold.co/100x100.png?text=A",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "user-1",
		"name": "Ada",
		"email": "ada@x.com",
		"password": "secret1",
		"avatarUrl": "https://placehold.co/100x100.png?text=A"
	}]`, string(data))
}

func TestDesignRepository_ListBySubmitterAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewDesignRepository(NewFileStore[entities.Design](filepath.Join(t.TempDir(), "designs.json"), nil))

	for _, d := range []*entities.Design{
		{ID: "design-1", Title: "Card", SubmittedByUserID: "user-1", Tags: []string{"card"}},
		{ID: "design-2", Title: "Nav", SubmittedByUserID: "user-2", Tags: []string{"nav"}},
		{ID: "design-3", Title: "Modal", SubmittedByUserID: "user-1", Tags: []string{"modal"}},
	} {
		require.NoError(t, repo.Create(ctx, d))
	}

	mine, err := repo.ListBySubmitter(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "design-1", mine[0].ID)
	assert.Equal(t, "design-3", mine[1].ID)

	require.NoError(t, repo.Delete(ctx, "design-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "design-1"), entities.ErrDesignNotFound)

	_, err = repo.GetByID(ctx, "design-1")
	assert.ErrorIs(t, err, entities.ErrDesignNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdminRepository_UniqueUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(NewFileStore[entities.AdminUser](filepath.Join(t.TempDir(), "admin.json"), nil))

	require.NoError(t, repo.Create(ctx, &entities.AdminUser{ID: "admin-1", Username: "root", Password: "pw"}))
	assert.ErrorIs(t, repo.Create(ctx, &entities.AdminUser{ID: "admin-2", Username: "root", Password: "pw"}), entities.ErrUsernameTaken)

	got, err := repo.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", got.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, entities.ErrAdminNotFound)
}

func TestPageRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewPageRepository(NewFileStore[entities.PageContent](filepath.Join(t.TempDir(), "pages.json"), nil))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, &entities.PageContent{Slug: "terms", Title: "Terms", Body: "v1", UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &entities.PageContent{Slug: "about", Title: "About", Body: "hi", UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &entities.PageContent{Slug: "terms", Title: "Terms", Body: "v2", UpdatedAt: now}))

	page, err := repo.Get(ctx, "terms")
	require.NoError(t, err)
	assert.Equal(t, "v2", page.Body)

	pages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "about", pages[0].Slug)

	_, err = repo.Get(ctx, "privacy")
	assert.ErrorIs(t, err, entities.ErrPageNotFound)
}
