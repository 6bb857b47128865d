package entity

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderChallenge OrderStatus = "CHALLENGE"
	OrderFailed    OrderStatus = "FAILED"
)

type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	PackageID    string          `json:"package_id"`
	Package      *ListingPackage `json:"package,omitempty"`
	Amount       int64           `json:"amount"`
	Status       OrderStatus     `json:"status"`
	SnapToken    string          `json:"snap_token,omitempty"`
	SnapURL      string          `json:"snap_url,omitempty"`
	PaymentProof string          `json:"payment_proof,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
