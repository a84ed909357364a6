package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reactiverse/core/internal/application/services"
	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/ports"
)

// Context keys set by the auth middleware
const (
	ContextKeySubject = "user"
	ContextKeyRole    = "user_role"
)

const msgInvalidRequest = "Invalid request format"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	logger       *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, tokenService *services.TokenService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.SignupRequest true "Signup data"
// @Success 200 {object} ports.AuthResponse
// @Failure 400 {object} ports.ActionResult
// @Failure 409 {object} ports.ActionResult
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	res := h.authService.SignupUser(c.Request().Context(), req)
	if !res.Success {
		return writeResult(c, res)
	}
	return h.withToken(c, res, res.User.ID, entities.RoleUser)
}

// Login godoc
// @Summary Log a user in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ports.ActionResult
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	res := h.authService.LoginUser(c.Request().Context(), req)
	if !res.Success {
		if res.Outcome == ports.OutcomeRejected {
			h.logger.LogSecurityEvent("login_failed", req.Email, c.RealIP(), nil)
		}
		return writeResult(c, res)
	}
	return h.withToken(c, res, res.User.ID, entities.RoleUser)
}

// AdminLogin godoc
// @Summary Log an administrator in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.AdminLoginRequest true "Credentials"
// @Success 200 {object} ports.AuthResponse
// @Failure 401 {object} ports.ActionResult
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req ports.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	res := h.authService.LoginAdmin(c.Request().Context(), req)
	if !res.Success {
		if res.Outcome == ports.OutcomeRejected {
			h.logger.LogSecurityEvent("admin_login_failed", req.Username, c.RealIP(), nil)
		}
		return writeResult(c, res)
	}
	return h.withToken(c, res, res.AdminUser.ID, entities.RoleAdmin)
}

func (h *AuthHandler) withToken(c echo.Context, res *ports.ActionResult, subject string, role entities.Role) error {
	token, expiresIn, err := h.tokenService.Issue(subject, role)
	if err != nil {
		h.logger.Errorw("Failed to issue session token", "error", err, "subject", subject)
		return writeResult(c, ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure))
	}

	return c.JSON(http.StatusOK, ports.AuthResponse{
		ActionResult: res,
		Token:        token,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	})
}

// UserHandler handles user-related requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser godoc
// @Summary Get the signed in user's profile
// @Tags users
// @Produce json
// @Success 200 {object} entities.PublicUser
// @Failure 404 {object} ports.ActionResult
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID := currentSubject(c)

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return h.lookupFailed(c, err, entities.ErrUserNotFound, ports.MsgUserNotFound, "user_id", userID)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the signed in user's name and avatar
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.UpdateProfileRequest true "Profile data"
// @Success 200 {object} ports.ActionResult
// @Failure 400 {object} ports.ActionResult
// @Failure 404 {object} ports.ActionResult
// @Security BearerAuth
// @Router /users/me/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req ports.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.UserID = currentSubject(c)

	return writeResult(c, h.userService.UpdateProfile(c.Request().Context(), req))
}

// ChangePassword godoc
// @Summary Change the signed in user's password
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ports.ChangePasswordRequest true "Passwords"
// @Success 200 {object} ports.ActionResult
// @Failure 400 {object} ports.ActionResult
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req ports.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	req.UserID = currentSubject(c)

	return writeResult(c, h.userService.ChangePassword(c.Request().Context(), req))
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {array} entities.PublicUser
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List users failed", "error", err)
		return writeResult(c, ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure))
	}

	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete a user account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} ports.ActionResult
// @Failure 404 {object} ports.ActionResult
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	return writeResult(c, h.userService.DeleteUser(c.Request().Context(), c.Param("id")))
}

func (h *UserHandler) lookupFailed(c echo.Context, err, notFound error, msg string, fields ...interface{}) error {
	return lookupFailed(c, h.logger, err, notFound, msg, fields...)
}
