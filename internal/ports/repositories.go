package ports

import (
	"context"
	"time"

	"github.com/reactiverse/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id string, patch func(*entities.User)) (*entities.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.User, error)
}

// AdminRepository defines the interface for administrator accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *entities.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error)
	List(ctx context.Context) ([]*entities.AdminUser, error)
}

// DesignRepository defines the interface for design data operations
type DesignRepository interface {
	Create(ctx context.Context, design *entities.Design) error
	GetByID(ctx context.Context, id string) (*entities.Design, error)
	List(ctx context.Context) ([]*entities.Design, error)
	ListBySubmitter(ctx context.Context, userID string) ([]*entities.Design, error)
	Delete(ctx context.Context, id string) error
}

// PageRepository defines the interface for CMS page content
type PageRepository interface {
	Get(ctx context.Context, slug string) (*entities.PageContent, error)
	Upsert(ctx context.Context, page *entities.PageContent) error
	List(ctx context.Context) ([]*entities.PageContent, error)
}

// ViewCache holds rendered read views that mutations revalidate.
type ViewCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	Close() error
}

// PasswordHasher turns passwords into their stored form and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
	Scheme() string
}

// Cache keys for revalidated views
const (
	ViewAllDesigns = "designs:all"
)

// ViewUserDesigns is the cache key of a submitter's own design list.
func ViewUserDesigns(userID string) string {
	return "designs:user:" + userID
}

// ViewDesign is the cache key of a single design page.
func ViewDesign(id string) string {
	return "designs:id:" + id
}

// ViewUserProfile is the cache key of a user's public profile.
func ViewUserProfile(userID string) string {
	return "users:" + userID
}
