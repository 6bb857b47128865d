package entity

import "time"

type PropertyStatus string

const (
	PropertyDraft     PropertyStatus = "draft"
	PropertyPublished PropertyStatus = "published"
	PropertySold      PropertyStatus = "sold"
	PropertyArchived  PropertyStatus = "archived"
)

type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

type Property struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        int64           `json:"price"`
	City         string          `json:"city"`
	Address      string          `json:"address"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	SurfaceArea  int             `json:"surface_area"`
	PropertyType string          `json:"property_type"`
	ListingType  ListingType     `json:"listing_type"`
	Status       PropertyStatus  `json:"status"`
	Views        int64           `json:"views"`
	Images       []PropertyImage `json:"images"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type PropertyImage struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	ImageURL   string `json:"image_url"`
	Position   int    `json:"position"`
}

// PropertyFilter narrows public marketplace searches.
type PropertyFilter struct {
	Keyword      string
	City         string
	PropertyType string
	ListingType  string
	MinPrice     int64
	MaxPrice     int64
	Limit        int
	Offset       int
}
