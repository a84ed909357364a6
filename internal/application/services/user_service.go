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

// User action messages
const (
	MsgProfileUpdated  = "Profile updated successfully!"
	MsgPasswordChanged = "Password changed successfully!"
	MsgUserDeleted     = "User deleted successfully!"
)

// UserService handles profile and account operations
type UserService struct {
	userRepo  ports.UserRepository
	hasher    ports.PasswordHasher
	validator *validation.Validator
	views     *views
	logger    *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, hasher ports.PasswordHasher, validator *validation.Validator, cache ports.ViewCache, cacheTTL time.Duration, logger *logger.Logger) *UserService {
	log := logger.WithComponent("users")
	return &UserService{
		userRepo:  userRepo,
		hasher:    hasher,
		validator: validator,
		views:     newViews(cache, cacheTTL, log),
		logger:    log,
	}
}

// GetProfile returns the public view of a user
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entities.PublicUser, error) {
	var cached entities.PublicUser
	hit, gen := s.views.load(ctx, ports.ViewUserProfile(userID), &cached)
	if hit {
		return &cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	s.views.store(ctx, ports.ViewUserProfile(userID), public, gen)
	return &public, nil
}

// UpdateProfile merges a new name and avatar into the stored user. Email,
// password and id are never touched.
func (s *UserService) UpdateProfile(ctx context.Context, req ports.UpdateProfileRequest) *ports.ActionResult {
	req.Name = strings.TrimSpace(req.Name)
	req.AvatarURL = strings.TrimSpace(req.AvatarURL)
	if res := checkRequest(s.validator, s.logger, "update_profile", req); res != nil {
		return res
	}

	updated, err := s.userRepo.Update(ctx, req.UserID, func(u *entities.User) {
		u.Name = req.Name
		if req.AvatarURL != "" {
			u.AvatarURL = req.AvatarURL
		}
	})
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgUserNotFound)
		}
		return storageFailure(s.logger, "update_profile", err, "user_id", req.UserID)
	}

	s.views.revalidate(ctx, ports.ViewUserProfile(updated.ID))
	s.logger.LogUserAction(updated.ID, "update_profile", nil)

	public := updated.Public()
	res := ports.Succeeded(MsgProfileUpdated)
	res.User = &public
	return res
}

// ChangePassword replaces the stored password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, req ports.ChangePasswordRequest) *ports.ActionResult {
	if res := checkRequest(s.validator, s.logger, "change_password", req); res != nil {
		return res
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgUserNotFound)
		}
		return storageFailure(s.logger, "change_password", err, "user_id", req.UserID)
	}

	if !s.hasher.Compare(user.Password, req.CurrentPassword) {
		s.logger.LogSecurityEvent("password_change_rejected", user.ID, "", nil)
		return ports.FieldFailed(ports.OutcomeValidation, ports.MsgWrongPassword, "currentPassword", ports.MsgWrongPassword)
	}

	stored, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return storageFailure(s.logger, "change_password", err, "user_id", user.ID)
	}

	if _, err := s.userRepo.Update(ctx, user.ID, func(u *entities.User) {
		u.Password = stored
	}); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgUserNotFound)
		}
		return storageFailure(s.logger, "change_password", err, "user_id", user.ID)
	}

	s.logger.LogUserAction(user.ID, "change_password", nil)
	return ports.Succeeded(MsgPasswordChanged)
}

// ListUsers returns every user without credentials
func (s *UserService) ListUsers(ctx context.Context) ([]entities.PublicUser, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]entities.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// DeleteUser removes a user account. Designs they submitted keep their
// designer snapshot.
func (s *UserService) DeleteUser(ctx context.Context, userID string) *ports.ActionResult {
	if strings.TrimSpace(userID) == "" {
		return ports.Invalid(validation.FieldErrors{"userId": {"User ID is required."}})
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return ports.Failed(ports.OutcomeNotFound, ports.MsgUserNotFound)
		}
		return storageFailure(s.logger, "delete_user", err, "user_id", userID)
	}

	s.views.revalidate(ctx, ports.ViewUserProfile(userID))
	s.logger.Infow("User deleted", "user_id", userID)
	return ports.Succeeded(MsgUserDeleted)
}
