package entity

import "time"

type TransactionStatus string

const (
	TransactionPending             TransactionStatus = "PENDING"
	TransactionWaitingVerification TransactionStatus = "WAITING_VERIFICATION"
	TransactionSuccess             TransactionStatus = "SUCCESS"
	TransactionCancelled           TransactionStatus = "CANCELLED"
	TransactionFailed              TransactionStatus = "FAILED"
)

func (s TransactionStatus) Closed() bool {
	return s == TransactionSuccess || s == TransactionCancelled
}

var ValidTransactionStatuses = map[TransactionStatus]bool{
	TransactionPending:             true,
	TransactionWaitingVerification: true,
	TransactionSuccess:             true,
	TransactionCancelled:           true,
	TransactionFailed:              true,
}

// Transaction records an agreed sale, created either by a direct buy or as a
// side effect of an offer reaching ACCEPTED. PropertyTitle is a snapshot taken
// at creation time.
type Transaction struct {
	ID            string            `json:"id"`
	PropertyID    string            `json:"property_id"`
	PropertyTitle string            `json:"property_title"`
	BuyerID       string            `json:"buyer_id"`
	SellerID      string            `json:"seller_id"`
	Amount        int64             `json:"amount"`
	Status        TransactionStatus `json:"status"`
	PaymentProof  string            `json:"payment_proof,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
