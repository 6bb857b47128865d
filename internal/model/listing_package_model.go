package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingPackageModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        int64     `gorm:"not null" json:"price"`
	ListingLimit int       `gorm:"not null" json:"listing_limit"`
	DurationDays int       `gorm:"default:0" json:"duration_days"`
	Type         string    `gorm:"type:varchar(20);not null" json:"type"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ListingPackageModel) TableName() string {
	return "listing_packages"
}

func (p *ListingPackageModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
