package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID    string    `gorm:"type:uuid;not null;index" json:"property_id"`
	PropertyTitle string    `gorm:"type:varchar(255);not null" json:"property_title"`
	BuyerID       string    `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID      string    `gorm:"type:uuid;not null;index" json:"seller_id"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Status        string    `gorm:"type:varchar(30);default:'PENDING';index" json:"status"`
	PaymentProof  string    `gorm:"type:varchar(500)" json:"payment_proof,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
