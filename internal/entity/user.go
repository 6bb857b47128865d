package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	Password      string     `json:"-"`
	Name          string     `json:"name"`
	AvatarURL     string     `json:"avatar_url"`
	Role          UserRole   `json:"role"`
	ListingLimit  int        `json:"listing_limit"`
	PackageExpiry *time.Time `json:"package_expiry,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
