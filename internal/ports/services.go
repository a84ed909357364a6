package ports

import (
	"github.com/reactiverse/core/internal/domain/entities"
)

// FormErrorKey holds general (non-field) errors in ActionResult.Errors.
const FormErrorKey = "_form"

// Action messages shared by services and handlers
const (
	MsgValidationFailed  = "Validation failed. Please check the fields."
	MsgGenericFailure    = "Something went wrong. Please try again."
	MsgUserNotFound      = "User not found."
	MsgDesignNotFound    = "Design not found."
	MsgPageNotFound      = "Page not found."
	MsgInvalidUserLogin  = "Invalid email or password."
	MsgInvalidAdminLogin = "Invalid username or password."
	MsgEmailExists       = "Email already exists."
	MsgPasswordMismatch  = "Passwords do not match."
	MsgWrongPassword     = "Incorrect current password."
	MsgForbidden         = "You are not allowed to do that."
)

// Outcome classifies an action result for transports that map it to a status.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeValidation Outcome = "validation"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeConflict   Outcome = "conflict"
	OutcomeRejected   Outcome = "rejected"
	OutcomeForbidden  Outcome = "forbidden"
	OutcomeStorage    Outcome = "storage"
)

// ActionResult is the envelope every mutation action resolves to.
type ActionResult struct {
	Message   string                    `json:"message"`
	Success   bool                      `json:"success"`
	User      *entities.PublicUser      `json:"user,omitempty"`
	AdminUser *entities.PublicAdminUser `json:"adminUser,omitempty"`
	Design    *entities.Design          `json:"design,omitempty"`
	Page      *entities.PageContent     `json:"page,omitempty"`
	Errors    map[string][]string       `json:"errors,omitempty"`
	Outcome   Outcome                   `json:"-"`
}

// Succeeded builds a successful envelope.
func Succeeded(message string) *ActionResult {
	return &ActionResult{Message: message, Success: true, Outcome: OutcomeOK}
}

// Failed builds an envelope carrying a general error.
func Failed(outcome Outcome, message string) *ActionResult {
	return &ActionResult{
		Message: message,
		Outcome: outcome,
		Errors:  map[string][]string{FormErrorKey: {message}},
	}
}

// FieldFailed builds an envelope carrying a single field error.
func FieldFailed(outcome Outcome, message, field, fieldMessage string) *ActionResult {
	return &ActionResult{
		Message: message,
		Outcome: outcome,
		Errors:  map[string][]string{field: {fieldMessage}},
	}
}

// Invalid builds an envelope from schema validation errors.
func Invalid(errs map[string][]string) *ActionResult {
	return &ActionResult{
		Message: MsgValidationFailed,
		Outcome: OutcomeValidation,
		Errors:  errs,
	}
}

// Request types. Tags serve both form and JSON bodies.

type SignupRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

type SubmitDesignRequest struct {
	Title             string   `json:"title" form:"title" validate:"required,min=3,max=120"`
	Description       string   `json:"description" form:"description" validate:"required,min=10"`
	ImageURL          string   `json:"imageUrl" form:"imageUrl" validate:"required,url"`
	HTML              string   `json:"html" form:"html"`
	CSS               string   `json:"css" form:"css"`
	JS                string   `json:"js" form:"js"`
	Tags              []string `json:"tags" form:"-" validate:"required,min=1,dive,required,max=40"`
	Price             *float64 `json:"price" form:"-" validate:"omitempty,finite,min=0"`
	SubmittedByUserID string   `json:"submittedByUserId" form:"submittedByUserId" validate:"required"`
}

type UpdateProfileRequest struct {
	UserID    string `json:"userId" form:"userId" validate:"required"`
	Name      string `json:"name" form:"name" validate:"required,min=2,max=100"`
	AvatarURL string `json:"avatarUrl" form:"avatarUrl" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	UserID          string `json:"userId" form:"userId" validate:"required"`
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type DeleteDesignRequest struct {
	DesignID string        `json:"designId" form:"designId" validate:"required"`
	UserID   string        `json:"userId" form:"userId"`
	Role     entities.Role `json:"-" form:"-"`
}

type UpdatePageRequest struct {
	Slug  string `json:"slug" form:"slug" validate:"required,min=2,max=60"`
	Title string `json:"title" form:"title" validate:"required,min=2,max=120"`
	Body  string `json:"body" form:"body" validate:"required"`
}

// Claims carried by session tokens
type Claims struct {
	Subject string        `json:"sub"`
	Role    entities.Role `json:"role"`
}

type AuthResponse struct {
	*ActionResult
	Token     string `json:"token,omitempty"`
	TokenType string `json:"tokenType,omitempty"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
