package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/ports"
)

// AdminRepositoryImpl implements the AdminRepository interface over admin.json
type AdminRepositoryImpl struct {
	store *FileStore[entities.AdminUser]
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(store *FileStore[entities.AdminUser]) ports.AdminRepository {
	return &AdminRepositoryImpl{store: store}
}

func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *entities.AdminUser) error {
	appended, err := r.store.AppendUnless(ctx, func(a *entities.AdminUser) bool { return a.Username == admin.Username }, *admin)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	if !appended {
		return entities.ErrUsernameTaken
	}
	return nil
}

func (r *AdminRepositoryImpl) GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error) {
	admin, found, err := r.store.Find(ctx, func(a *entities.AdminUser) bool { return a.Username == username })
	if err != nil {
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	if !found {
		return nil, entities.ErrAdminNotFound
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) List(ctx context.Context) ([]*entities.AdminUser, error) {
	admins, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}

	out := make([]*entities.AdminUser, len(admins))
	for i := range admins {
		out[i] = &admins[i]
	}
	return out, nil
}

// DesignRepositoryImpl implements the DesignRepository interface over designs.json
type DesignRepositoryImpl struct {
	store *FileStore[entities.Design]
}

// NewDesignRepository creates a new design repository
func NewDesignRepository(store *FileStore[entities.Design]) ports.DesignRepository {
	return &DesignRepositoryImpl{store: store}
}

func (r *DesignRepositoryImpl) Create(ctx context.Context, design *entities.Design) error {
	if err := r.store.Append(ctx, *design); err != nil {
		return fmt.Errorf("create design: %w", err)
	}
	return nil
}

func (r *DesignRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Design, error) {
	design, found, err := r.store.Find(ctx, func(d *entities.Design) bool { return d.ID == id })
	if err != nil {
		return nil, fmt.Errorf("get design by id: %w", err)
	}
	if !found {
		return nil, entities.ErrDesignNotFound
	}
	return &design, nil
}

func (r *DesignRepositoryImpl) List(ctx context.Context) ([]*entities.Design, error) {
	designs, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	return designPointers(designs), nil
}

func (r *DesignRepositoryImpl) ListBySubmitter(ctx context.Context, userID string) ([]*entities.Design, error) {
	designs, err := r.store.Filter(ctx, func(d *entities.Design) bool { return d.SubmittedByUserID == userID })
	if err != nil {
		return nil, fmt.Errorf("list designs by submitter: %w", err)
	}
	return designPointers(designs), nil
}

func (r *DesignRepositoryImpl) Delete(ctx context.Context, id string) error {
	removed, err := r.store.DeleteWhere(ctx, func(d *entities.Design) bool { return d.ID == id })
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if removed == 0 {
		return entities.ErrDesignNotFound
	}
	return nil
}

func designPointers(designs []entities.Design) []*entities.Design {
	out := make([]*entities.Design, len(designs))
	for i := range designs {
		out[i] = &designs[i]
	}
	return out
}

// PageRepositoryImpl implements the PageRepository interface over pages.json
type PageRepositoryImpl struct {
	store *FileStore[entities.PageContent]
}

// NewPageRepository creates a new page repository
func NewPageRepository(store *FileStore[entities.PageContent]) ports.PageRepository {
	return &PageRepositoryImpl{store: store}
}

func (r *PageRepositoryImpl) Get(ctx context.Context, slug string) (*entities.PageContent, error) {
	page, found, err := r.store.Find(ctx, func(p *entities.PageContent) bool { return p.Slug == slug })
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	if !found {
		return nil, entities.ErrPageNotFound
	}
	return &page, nil
}

// Upsert replaces the page with the same slug or appends a new one.
func (r *PageRepositoryImpl) Upsert(ctx context.Context, page *entities.PageContent) error {
	_, err := r.store.Upsert(ctx, func(p *entities.PageContent) bool { return p.Slug == page.Slug }, *page)
	if err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}

func (r *PageRepositoryImpl) List(ctx context.Context) ([]*entities.PageContent, error) {
	pages, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })

	out := make([]*entities.PageContent, len(pages))
	for i := range pages {
		out[i] = &pages[i]
	}
	return out, nil
}
