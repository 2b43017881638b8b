package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleParent Role = "parent"
	RoleVendor Role = "vendor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleParent, RoleVendor:
		return true
	}
	return false
}

// Account is the login view of an admin, parent or vendor record.
type Account struct {
	ID           string
	Email        string
	Role         Role
	DisplayName  string
	PasswordHash string
}

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	SessionID   string `json:"session_id"`
	UserID      string `json:"uid"`
	Role        Role   `json:"user_type"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}
