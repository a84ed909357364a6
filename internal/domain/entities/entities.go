package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrDesignNotFound     = errors.New("design not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("incorrect current password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCorruptStore       = errors.New("record store is corrupt")
)

// Role distinguishes marketplace users from CMS administrators in session tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	userIDPrefix   = "user-"
	adminIDPrefix  = "admin-"
	designIDPrefix = "design-"

	avatarPlaceholderURL = "https://placehold.co/100x100.png"
)

// User is the persisted marketplace account. Password is stored as supplied
// by the configured hasher (plain text under the default scheme).
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// PublicUser is a User without credentials. It is what every action returns
// and what a Design embeds as its designer snapshot.
type PublicUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AdminUser is a CMS administrator loaded from admin.json.
type AdminUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// PublicAdminUser is an AdminUser without credentials.
type PublicAdminUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DesignCode holds the snippet sources of a design.
type DesignCode struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// Design is a published UI component. Designer is a copy of the submitter
// taken at submission time and is never refreshed afterwards.
type Design struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ImageURL          string     `json:"imageUrl"`
	Code              DesignCode `json:"code"`
	Designer          PublicUser `json:"designer"`
	Tags              []string   `json:"tags"`
	Price             float64    `json:"price"`
	SubmittedByUserID string     `json:"submittedByUserId"`
}

// PageContent is an editable static page managed from the admin CMS.
type PageContent struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserID returns a timestamp id of the form user-<unix millis>.
func NewUserID(now time.Time) string {
	return fmt.Sprintf("%s%d", userIDPrefix, now.UnixMilli())
}

// NewAdminID returns a timestamp id of the form admin-<unix millis>.
func NewAdminID(now time.Time) string {
	return fmt.Sprintf("%s%d", adminIDPrefix, now.UnixMilli())
}

// NewDesignID returns a timestamp id of the form design-<unix millis>.
func NewDesignID(now time.Time) string {
	return fmt.Sprintf("%s%d", designIDPrefix, now.UnixMilli())
}

// PlaceholderAvatar builds the default avatar URL from the first letter of name.
func PlaceholderAvatar(name string) string {
	initial := "U"
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name)); r != utf8.RuneError {
		initial = strings.ToUpper(string(r))
	}
	return avatarPlaceholderURL + "?text=" + initial
}

// Public strips credentials from the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}

// Public strips credentials from the admin user.
func (a *AdminUser) Public() PublicAdminUser {
	return PublicAdminUser{
		ID:       a.ID,
		Username: a.Username,
	}
}

// IsFree reports whether the design can be viewed without purchase.
func (d *Design) IsFree() bool {
	return d.Price <= 0
}

// CanBeDeletedBy reports whether the given principal may remove the design.
func (d *Design) CanBeDeletedBy(userID string, role Role) bool {
	if role == RoleAdmin {
		return true
	}
	return userID != "" && d.SubmittedByUserID == userID
}

// NormalizePrice coerces negative prices to zero.
func NormalizePrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}

// SplitTags parses a comma separated tag list, trimming blanks and dropping
// empty entries while keeping the original order.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
