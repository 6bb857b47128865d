package entity

import "time"

type OfferStatus string

const (
	OfferPending   OfferStatus = "PENDING"
	OfferCountered OfferStatus = "COUNTERED"
	OfferAccepted  OfferStatus = "ACCEPTED"
	OfferRejected  OfferStatus = "REJECTED"
)

// Closed reports whether the offer reached a terminal state. No action may
// move an offer out of ACCEPTED or REJECTED.
func (s OfferStatus) Closed() bool {
	return s == OfferAccepted || s == OfferRejected
}

type OfferAction string

const (
	ActionPropose OfferAction = "PROPOSE"
	ActionCounter OfferAction = "COUNTER"
	ActionAccept  OfferAction = "ACCEPT"
	ActionReject  OfferAction = "REJECT"
)

type Offer struct {
	ID         string      `json:"id"`
	PropertyID string      `json:"property_id"`
	UserID     string      `json:"user_id"` // buyer
	Amount     int64       `json:"amount"`
	Status     OfferStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OfferHistory is the append-only audit trail: one row per action taken on an
// offer, ordered by creation time ascending.
type OfferHistory struct {
	ID           string      `json:"id"`
	OfferID      string      `json:"offer_id"`
	SenderID     string      `json:"sender_id"`
	SenderName   string      `json:"sender_name,omitempty"`
	SenderAvatar string      `json:"sender_avatar,omitempty"`
	Action       OfferAction `json:"action"`
	Price        int64       `json:"price"`
	Message      string      `json:"message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
