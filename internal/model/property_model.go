package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyModel struct {
	ID           string               `gorm:"type:uuid;primary_key" json:"id"`
	UserID       string               `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string               `gorm:"type:varchar(255);not null" json:"title"`
	Description  string               `gorm:"type:text" json:"description"`
	Price        int64                `gorm:"not null" json:"price"`
	City         string               `gorm:"type:varchar(100);index" json:"city"`
	Address      string               `gorm:"type:varchar(500)" json:"address"`
	Bedrooms     int                  `gorm:"default:0" json:"bedrooms"`
	Bathrooms    int                  `gorm:"default:0" json:"bathrooms"`
	SurfaceArea  int                  `gorm:"default:0" json:"surface_area"`
	PropertyType string               `gorm:"type:varchar(50);index" json:"property_type"`
	ListingType  string               `gorm:"type:varchar(10);index" json:"listing_type"`
	Status       string               `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Views        int64                `gorm:"default:0" json:"views"`
	Images       []PropertyImageModel `gorm:"foreignKey:PropertyID" json:"images,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (PropertyModel) TableName() string {
	return "properties"
}

func (p *PropertyModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PropertyImageModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID string    `gorm:"type:uuid;not null;index" json:"property_id"`
	ImageURL   string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Position   int       `gorm:"default:0;index" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PropertyImageModel) TableName() string {
	return "property_images"
}

func (pi *PropertyImageModel) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
