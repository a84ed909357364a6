package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/infrastructure/validation"
	"github.com/reactiverse/core/internal/ports"
)

// MsgPageUpdated is returned after a CMS page save
const MsgPageUpdated = "Page updated successfully!"

func pageViewKey(slug string) string {
	return "pages:" + slug
}

// PageService manages the static pages edited from the admin CMS
type PageService struct {
	pageRepo  ports.PageRepository
	validator *validation.Validator
	views     *views
	logger    *logger.Logger
	now       func() time.Time
}

// NewPageService creates a new page service
func NewPageService(pageRepo ports.PageRepository, validator *validation.Validator, cache ports.ViewCache, cacheTTL time.Duration, logger *logger.Logger) *PageService {
	log := logger.WithComponent("pages")
	return &PageService{
		pageRepo:  pageRepo,
		validator: validator,
		views:     newViews(cache, cacheTTL, log),
		logger:    log,
		now:       time.Now,
	}
}

// GetPage returns the page for slug or entities.ErrPageNotFound
func (s *PageService) GetPage(ctx context.Context, slug string) (*entities.PageContent, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	var cached entities.PageContent
	hit, gen := s.views.load(ctx, pageViewKey(slug), &cached)
	if hit {
		return &cached, nil
	}

	page, err := s.pageRepo.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.views.store(ctx, pageViewKey(slug), page, gen)
	return page, nil
}

// ListPages returns every stored page ordered by slug
func (s *PageService) ListPages(ctx context.Context) ([]*entities.PageContent, error) {
	pages, err := s.pageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// UpdatePage creates or replaces the page identified by its slug
func (s *PageService) UpdatePage(ctx context.Context, req ports.UpdatePageRequest) *ports.ActionResult {
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	req.Title = strings.TrimSpace(req.Title)
	if res := checkRequest(s.validator, s.logger, "update_page", req); res != nil {
		return res
	}

	page := &entities.PageContent{
		Slug:      req.Slug,
		Title:     req.Title,
		Body:      req.Body,
		UpdatedAt: s.now().UTC(),
	}

	if err := s.pageRepo.Upsert(ctx, page); err != nil {
		return storageFailure(s.logger, "update_page", err, "slug", req.Slug)
	}

	s.views.revalidate(ctx, pageViewKey(page.Slug))
	s.logger.Infow("Page updated", "slug", page.Slug)

	res := ports.Succeeded(MsgPageUpdated)
	res.Page = page
	return res
}
