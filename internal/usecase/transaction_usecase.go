package usecase

import (
	"errors"
	"fmt"
	"io"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"
	"propmarket/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionClosed   = errors.New("transaction already finalized")
	ErrInvalidTxnStatus    = errors.New("invalid transaction status")
	ErrProofNotPending     = errors.New("payment proof can only be attached to a pending transaction")
)

type TransactionUseCase interface {
	Buy(buyerID, propertyID string) (*entity.Transaction, error)
	AttachProof(buyerID, txnID string, file io.Reader, contentType string) (*entity.Transaction, error)
	UpdateStatus(callerID string, isAdmin bool, txnID string, status entity.TransactionStatus) (*entity.Transaction, error)
	ListPurchases(buyerID string) ([]*entity.Transaction, error)
	ListSales(sellerID string) ([]*entity.Transaction, error)
	ListAll(limit, offset int) ([]*entity.Transaction, error)
}

type transactionUseCase struct {
	txnRepo      persistent.TransactionRepository
	propertyRepo persistent.PropertyRepository
	uploader     Uploader
	logger       *logger.Logger
}

func NewTransactionUseCase(
	txnRepo persistent.TransactionRepository,
	propertyRepo persistent.PropertyRepository,
	uploader Uploader,
	logger *logger.Logger,
) TransactionUseCase {
	return &transactionUseCase{
		txnRepo:      txnRepo,
		propertyRepo: propertyRepo,
		uploader:     uploader,
		logger:       logger,
	}
}

// Buy creates a sale transaction at the listed price, without negotiation.
func (uc *transactionUseCase) Buy(buyerID, propertyID string) (*entity.Transaction, error) {
	property, err := uc.propertyRepo.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if property.Status != entity.PropertyPublished {
		return nil, ErrNotListed
	}
	if property.UserID == buyerID {
		return nil, ErrOwnProperty
	}
	if property.UserID == "" {
		return nil, ErrPropertyUnowned
	}

	txn := &entity.Transaction{
		PropertyID:    property.ID,
		PropertyTitle: property.Title,
		BuyerID:       buyerID,
		SellerID:      property.UserID,
		Amount:        property.Price,
		Status:        entity.TransactionPending,
	}
	if err := uc.txnRepo.Create(txn); err != nil {
		uc.logger.Error("Failed to create transaction: %v", err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return txn, nil
}

// AttachProof lets the buyer attach a transfer proof, moving the transaction
// to WAITING_VERIFICATION. Only valid while the transaction is PENDING.
func (uc *transactionUseCase) AttachProof(buyerID, txnID string, file io.Reader, contentType string) (*entity.Transaction, error) {
	txn, err := uc.getTransaction(txnID)
	if err != nil {
		return nil, err
	}
	if txn.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	if txn.Status != entity.TransactionPending {
		return nil, ErrProofNotPending
	}

	key := fmt.Sprintf("payment-proofs/transactions/%s", txnID)
	proofURL, err := uc.uploader.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload proof for transaction %s: %v", txnID, err)
		return nil, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	if err := uc.txnRepo.UpdateProof(txnID, proofURL, entity.TransactionWaitingVerification); err != nil {
		return nil, fmt.Errorf("failed to save payment proof: %w", err)
	}

	txn.PaymentProof = proofURL
	txn.Status = entity.TransactionWaitingVerification
	return txn, nil
}

// UpdateStatus lets the seller or an admin advance a transaction through
// fulfillment. Finalized transactions are immutable.
func (uc *transactionUseCase) UpdateStatus(callerID string, isAdmin bool, txnID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	if !entity.ValidTransactionStatuses[status] {
		return nil, ErrInvalidTxnStatus
	}

	txn, err := uc.getTransaction(txnID)
	if err != nil {
		return nil, err
	}
	if txn.SellerID != callerID && !isAdmin {
		return nil, ErrForbidden
	}
	if txn.Status.Closed() {
		return nil, ErrTransactionClosed
	}

	if err := uc.txnRepo.UpdateStatus(txnID, status); err != nil {
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	txn.Status = status
	return txn, nil
}

func (uc *transactionUseCase) ListPurchases(buyerID string) ([]*entity.Transaction, error) {
	txns, err := uc.txnRepo.ListByBuyer(buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return txns, nil
}

func (uc *transactionUseCase) ListSales(sellerID string) ([]*entity.Transaction, error) {
	txns, err := uc.txnRepo.ListBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return txns, nil
}

func (uc *transactionUseCase) ListAll(limit, offset int) ([]*entity.Transaction, error) {
	txns, err := uc.txnRepo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (uc *transactionUseCase) getTransaction(txnID string) (*entity.Transaction, error) {
	txn, err := uc.txnRepo.GetByID(txnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return txn, nil
}
