package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

var ErrInvalidRole = errors.New("invalid role: must be Admin or User")

// ParseRole normalizes a raw role string into the closed enumeration.
// Parsing is case-insensitive and trims whitespace; everywhere past this
// boundary roles are compared as typed values only.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	default:
		return "", ErrInvalidRole
	}
}

type Users struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Username     string    `json:"username" gorm:"not null;uniqueIndex:idx_users_workspace_username"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:text;not null;check:role IN ('Admin', 'User')"`
	WorkspaceID  uuid.UUID `json:"workspace_id" gorm:"type:uuid;not null;uniqueIndex:idx_users_workspace_username"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:now()"`
}

type Claims struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	jwt.RegisteredClaims
}

// Principal is the authenticated actor behind a request. Every protected
// operation receives one; its WorkspaceID scopes all reads and writes.
type Principal struct {
	ID          uuid.UUID
	Username    string
	Role        Role
	WorkspaceID uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
