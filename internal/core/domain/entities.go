package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents an account from the shared users table
// (owned by the identity service - Read Only)
type User struct {
	ID        uint
	Username  string
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
}

// IsAdmin reports whether the user may review access requests
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin && u.IsActive
}

// Project represents a catalog entry from the shared projects table
// (owned by the catalog service - Read Only)
// DemoURL and DownloadURL are gated fields, released only through the gateway.
type Project struct {
	ID          uint
	Title       string
	Slug        string
	Description string
	Price       float64
	Currency    string
	DemoURL     string
	DownloadURL string
	IsPublished bool
}

// GatedFields is the projection of a project released only to entitled users
type GatedFields struct {
	DemoURL     string `json:"demo_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}
