package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID string    `gorm:"type:uuid;not null;index" json:"property_id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	Status     string    `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (OfferModel) TableName() string {
	return "offers"
}

func (o *OfferModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

type OfferHistoryModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	OfferID   string    `gorm:"type:uuid;not null;index" json:"offer_id"`
	SenderID  string    `gorm:"type:uuid;not null" json:"sender_id"`
	Action    string    `gorm:"type:varchar(20);not null" json:"action"`
	Price     int64     `gorm:"not null" json:"price"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (OfferHistoryModel) TableName() string {
	return "offer_histories"
}

func (h *OfferHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}
