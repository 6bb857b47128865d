package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderModel struct {
	ID           string               `gorm:"type:uuid;primary_key" json:"id"`
	UserID       string               `gorm:"type:uuid;not null;index" json:"user_id"`
	PackageID    string               `gorm:"type:uuid;not null" json:"package_id"`
	Package      *ListingPackageModel `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Amount       int64                `gorm:"not null" json:"amount"`
	Status       string               `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	SnapToken    string               `gorm:"type:varchar(255)" json:"snap_token,omitempty"`
	SnapURL      string               `gorm:"type:varchar(500)" json:"snap_url,omitempty"`
	PaymentProof string               `gorm:"type:varchar(500)" json:"payment_proof,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
