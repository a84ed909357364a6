package repository

import (
	"context"
	"fmt"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface over users.json
type UserRepositoryImpl struct {
	store *FileStore[entities.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *FileStore[entities.User]) ports.UserRepository {
	return &UserRepositoryImpl{store: store}
}

// Create appends the user unless the email is already registered.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	appended, err := r.store.AppendUnless(ctx, func(u *entities.User) bool { return u.Email == user.Email }, *user)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if !appended {
		return entities.ErrEmailTaken
	}
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user, found, err := r.store.Find(ctx, func(u *entities.User) bool { return u.ID == id })
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if !found {
		return nil, entities.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, found, err := r.store.Find(ctx, func(u *entities.User) bool { return u.Email == email })
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if !found {
		return nil, entities.ErrUserNotFound
	}
	return &user, nil
}

// Update applies patch to the stored record. The id is restored after the
// patch runs so callers cannot re-key a user.
func (r *UserRepositoryImpl) Update(ctx context.Context, id string, patch func(*entities.User)) (*entities.User, error) {
	var updated entities.User
	found, err := r.store.UpdateOne(ctx,
		func(u *entities.User) bool { return u.ID == id },
		func(u *entities.User) {
			patch(u)
			u.ID = id
			updated = *u
		},
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if !found {
		return nil, entities.ErrUserNotFound
	}
	return &updated, nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) error {
	removed, err := r.store.DeleteWhere(ctx, func(u *entities.User) bool { return u.ID == id })
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if removed == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*entities.User, error) {
	users, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]*entities.User, len(users))
	for i := range users {
		out[i] = &users[i]
	}
	return out, nil
}
