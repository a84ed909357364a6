package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/infrastructure/validation"
	"github.com/reactiverse/core/internal/ports"
)

// Design action messages
const (
	MsgDesignSubmitted = "Design submitted successfully!"
	MsgDesignDeleted   = "Design deleted successfully!"
)

// DesignService handles design submission and the marketplace listings
type DesignService struct {
	designRepo ports.DesignRepository
	userRepo   ports.UserRepository
	validator  *validation.Validator
	views      *views
	logger     *logger.Logger
	clock      *idClock
}

// NewDesignService creates a new design service
func NewDesignService(designRepo ports.DesignRepository, userRepo ports.UserRepository, validator *validation.Validator, cache ports.ViewCache, cacheTTL time.Duration, logger *logger.Logger) *DesignService {
	log := logger.WithComponent("designs")
	return &DesignService{
		designRepo: designRepo,
		userRepo:   userRepo,
		validator:  validator,
		views:      newViews(cache, cacheTTL, log),
		logger:     log,
		clock:      newIDClock(),
	}
}

// SubmitDesign publishes a design for the submitting user. The user's public
// profile is copied into the design as its designer.
func (s *DesignService) SubmitDesign(ctx context.Context, req ports.SubmitDesignRequest) *ports.ActionResult {
	req.Tags = cleanTags(req.Tags)
	if res := checkRequest(s.validator, s.logger, "submit_design", req); res != nil {
		return res
	}

	user, err := s.userRepo.GetByID(ctx, req.SubmittedByUserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgUserNotFound)
		}
		return storageFailure(s.logger, "submit_design", err, "user_id", req.SubmittedByUserID)
	}

	price := 0.0
	if req.Price != nil {
		price = entities.NormalizePrice(*req.Price)
	}

	design := &entities.Design{
		ID:          entities.NewDesignID(s.clock.next()),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Code: entities.DesignCode{
			HTML: req.HTML,
			CSS:  req.CSS,
			JS:   req.JS,
		},
		Designer:          user.Public(),
		Tags:              req.Tags,
		Price:             price,
		SubmittedByUserID: user.ID,
	}

	if err := s.designRepo.Create(ctx, design); err != nil {
		return storageFailure(s.logger, "submit_design", err, "user_id", user.ID)
	}

	s.views.revalidate(ctx, ports.ViewAllDesigns, ports.ViewUserDesigns(user.ID))
	s.logger.LogUserAction(user.ID, "submit_design", map[string]interface{}{"design_id": design.ID})

	res := ports.Succeeded(MsgDesignSubmitted)
	res.Design = design
	return res
}

// GetAllDesigns returns every design in insertion order
func (s *DesignService) GetAllDesigns(ctx context.Context) ([]*entities.Design, error) {
	var cached []*entities.Design
	hit, gen := s.views.load(ctx, ports.ViewAllDesigns, &cached)
	if hit {
		return cached, nil
	}

	designs, err := s.designRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}

	s.views.store(ctx, ports.ViewAllDesigns, designs, gen)
	return designs, nil
}

// GetDesignByID returns a single design or entities.ErrDesignNotFound
func (s *DesignService) GetDesignByID(ctx context.Context, id string) (*entities.Design, error) {
	var cached entities.Design
	hit, gen := s.views.load(ctx, ports.ViewDesign(id), &cached)
	if hit {
		return &cached, nil
	}

	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.views.store(ctx, ports.ViewDesign(id), design, gen)
	return design, nil
}

// GetDesignsByUser returns the designs a user submitted
func (s *DesignService) GetDesignsByUser(ctx context.Context, userID string) ([]*entities.Design, error) {
	key := ports.ViewUserDesigns(userID)

	var cached []*entities.Design
	hit, gen := s.views.load(ctx, key, &cached)
	if hit {
		return cached, nil
	}

	designs, err := s.designRepo.ListBySubmitter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs for user %s: %w", userID, err)
	}

	s.views.store(ctx, key, designs, gen)
	return designs, nil
}

// DeleteDesign removes a design when requested by its submitter or an admin
func (s *DesignService) DeleteDesign(ctx context.Context, req ports.DeleteDesignRequest) *ports.ActionResult {
	if res := checkRequest(s.validator, s.logger, "delete_design", req); res != nil {
		return res
	}

	design, err := s.designRepo.GetByID(ctx, req.DesignID)
	if err != nil {
		if errors.Is(err, entities.ErrDesignNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgDesignNotFound)
		}
		return storageFailure(s.logger, "delete_design", err, "design_id", req.DesignID)
	}

	if !design.CanBeDeletedBy(req.UserID, req.Role) {
		s.logger.LogSecurityEvent("design_delete_forbidden", req.UserID, "", map[string]interface{}{"design_id": design.ID})
		return ports.Failed(ports.OutcomeForbidden, ports.MsgForbidden)
	}

	if err := s.designRepo.Delete(ctx, design.ID); err != nil {
		if errors.Is(err, entities.ErrDesignNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgDesignNotFound)
		}
		return storageFailure(s.logger, "delete_design", err, "design_id", design.ID)
	}

	s.views.revalidate(ctx,
		ports.ViewAllDesigns,
		ports.ViewUserDesigns(design.SubmittedByUserID),
		ports.ViewDesign(design.ID),
	)
	s.logger.LogUserAction(req.UserID, "delete_design", map[string]interface{}{
		"design_id": design.ID,
		"role":      string(req.Role),
	})

	return ports.Succeeded(MsgDesignDeleted)
}

// cleanTags trims tags and drops blanks. It returns nil when nothing is left so
// the required rule reports the missing tags.
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
