package model

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// ParseRole accepts role names case-insensitively and returns the canonical form.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, true
	case "editor":
		return RoleEditor, true
	case "viewer":
		return RoleViewer, true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(role Role) bool {
	_, ok := s[role]
	return ok
}

// AssignableRoles are the roles an admin may grant through account administration.
var AssignableRoles = NewRoleSet(RoleEditor, RoleViewer)

// BootstrapRole is the role of a newly signed-up account given how many
// accounts already exist: the very first account administers the system.
func BootstrapRole(existing int) Role {
	if existing == 0 {
		return RoleAdmin
	}
	return RoleViewer
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated actor reconstructed from a session token.
type Identity struct {
	UserID string
	Role   Role
}

type AuthClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Role   Role   `json:"role"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserSummary struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type UserFilter struct {
	Role *Role
}
