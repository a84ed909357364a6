package services

import (
	"context"
	"errors"
	"strings"

	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/infrastructure/validation"
	"github.com/reactiverse/core/internal/ports"
)

// Auth action messages
const (
	MsgSignupSuccess      = "Signup successful!"
	MsgLoginSuccess       = "Login successful!"
	MsgAdminCreateSuccess = "Admin user created successfully!"
	MsgUsernameExists     = "Username already exists."
)

// AuthService handles signup and login for users and administrators
type AuthService struct {
	userRepo  ports.UserRepository
	adminRepo ports.AdminRepository
	hasher    ports.PasswordHasher
	validator *validation.Validator
	logger    *logger.Logger
	clock     *idClock
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, adminRepo ports.AdminRepository, hasher ports.PasswordHasher, validator *validation.Validator, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		hasher:    hasher,
		validator: validator,
		logger:    logger.WithComponent("auth"),
		clock:     newIDClock(),
	}
}

// SignupUser registers a new marketplace user
func (s *AuthService) SignupUser(ctx context.Context, req ports.SignupRequest) *ports.ActionResult {
	req.Name = strings.TrimSpace(req.Name)
	if res := checkRequest(s.validator, s.logger, "signup", req); res != nil {
		return res
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return storageFailure(s.logger, "signup", err)
	}
	if existing != nil {
		s.logger.Infow("Signup rejected, email already registered", "email", req.Email)
		return ports.FieldFailed(ports.OutcomeConflict, ports.MsgEmailExists, "email", ports.MsgEmailExists)
	}

	stored, err := s.hasher.Hash(req.Password)
	if err != nil {
		return storageFailure(s.logger, "signup", err)
	}

	user := &entities.User{
		ID:        entities.NewUserID(s.clock.next()),
		Name:      req.Name,
		Email:     req.Email,
		Password:  stored,
		AvatarURL: entities.PlaceholderAvatar(req.Name),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return ports.FieldFailed(ports.OutcomeConflict, ports.MsgEmailExists, "email", ports.MsgEmailExists)
		}
		return storageFailure(s.logger, "signup", err)
	}

	s.logger.LogUserAction(user.ID, "signup", map[string]interface{}{"email": user.Email})

	public := user.Public()
	res := ports.Succeeded(MsgSignupSuccess)
	res.User = &public
	return res
}

// LoginUser checks a user's email and password
func (s *AuthService) LoginUser(ctx context.Context, req ports.LoginRequest) *ports.ActionResult {
	if res := checkRequest(s.validator, s.logger, "login", req); res != nil {
		return res
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Warnw("Login attempt with unknown email", "email", req.Email)
			return ports.Failed(ports.OutcomeRejected, ports.MsgInvalidUserLogin)
		}
		return storageFailure(s.logger, "login", err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		s.logger.Warnw("Login attempt with invalid password", "user_id", user.ID)
		return ports.Failed(ports.OutcomeRejected, ports.MsgInvalidUserLogin)
	}

	s.logger.Infow("User logged in", "user_id", user.ID)

	public := user.Public()
	res := ports.Succeeded(MsgLoginSuccess)
	res.User = &public
	return res
}

// LoginAdmin checks an administrator's username and password
func (s *AuthService) LoginAdmin(ctx context.Context, req ports.AdminLoginRequest) *ports.ActionResult {
	if res := checkRequest(s.validator, s.logger, "admin_login", req); res != nil {
		return res
	}

	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, entities.ErrAdminNotFound) {
			s.logger.Warnw("Admin login attempt with unknown username", "username", req.Username)
			return ports.Failed(ports.OutcomeRejected, ports.MsgInvalidAdminLogin)
		}
		return storageFailure(s.logger, "admin_login", err)
	}

	if !s.hasher.Compare(admin.Password, req.Password) {
		s.logger.Warnw("Admin login attempt with invalid password", "admin_id", admin.ID)
		return ports.Failed(ports.OutcomeRejected, ports.MsgInvalidAdminLogin)
	}

	s.logger.Infow("Admin logged in", "admin_id", admin.ID)

	public := admin.Public()
	res := ports.Succeeded(MsgLoginSuccess)
	res.AdminUser = &public
	return res
}

// CreateAdmin adds an administrator account
func (s *AuthService) CreateAdmin(ctx context.Context, req ports.CreateAdminRequest) *ports.ActionResult {
	req.Username = strings.TrimSpace(req.Username)
	if res := checkRequest(s.validator, s.logger, "create_admin", req); res != nil {
		return res
	}

	stored, err := s.hasher.Hash(req.Password)
	if err != nil {
		return storageFailure(s.logger, "create_admin", err)
	}

	admin := &entities.AdminUser{
		ID:       entities.NewAdminID(s.clock.next()),
		Username: req.Username,
		Password: stored,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			return ports.FieldFailed(ports.OutcomeConflict, MsgUsernameExists, "username", MsgUsernameExists)
		}
		return storageFailure(s.logger, "create_admin", err)
	}

	s.logger.Infow("Admin user created", "admin_id", admin.ID, "username", admin.Username)

	public := admin.Public()
	res := ports.Succeeded(MsgAdminCreateSuccess)
	res.AdminUser = &public
	return res
}
