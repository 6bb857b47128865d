package entity

import "time"

type PackageType string

const (
	PackageTopup        PackageType = "TOPUP"
	PackageSubscription PackageType = "SUBSCRIPTION"
)

// ListingPackage is a purchasable bundle granting listing quota and, for
// subscriptions, a time-limited package expiry. Orders snapshot its fields at
// purchase time; later edits never affect existing orders.
type ListingPackage struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Price        int64       `json:"price"`
	ListingLimit int         `json:"listing_limit"`
	DurationDays int         `json:"duration_days"`
	Type         PackageType `json:"type"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
