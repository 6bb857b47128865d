package persistent

import (
	"propmarket/internal/entity"
	"propmarket/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	ListByBuyer(buyerID string) ([]*entity.Transaction, error)
	ListBySeller(sellerID string) ([]*entity.Transaction, error)
	List(limit, offset int) ([]*entity.Transaction, error)
	UpdateStatus(id string, status entity.TransactionStatus) error
	UpdateProof(id, proofURL string, status entity.TransactionStatus) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(txn *entity.Transaction) error {
	txnModel := ToTransactionModel(txn)
	if err := r.db.Create(txnModel).Error; err != nil {
		return err
	}
	txn.ID = txnModel.ID
	return nil
}

func (r *transactionRepository) GetByID(id string) (*entity.Transaction, error) {
	var txnModel model.TransactionModel
	if err := r.db.Where("id = ?", id).First(&txnModel).Error; err != nil {
		return nil, err
	}
	return ToTransactionEntity(&txnModel), nil
}

func (r *transactionRepository) ListByBuyer(buyerID string) ([]*entity.Transaction, error) {
	return r.list(r.db.Where("buyer_id = ?", buyerID))
}

func (r *transactionRepository) ListBySeller(sellerID string) ([]*entity.Transaction, error) {
	return r.list(r.db.Where("seller_id = ?", sellerID))
}

func (r *transactionRepository) List(limit, offset int) ([]*entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return r.list(r.db.Limit(limit).Offset(offset))
}

func (r *transactionRepository) UpdateStatus(id string, status entity.TransactionStatus) error {
	return r.db.Model(&model.TransactionModel{}).Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *transactionRepository) UpdateProof(id, proofURL string, status entity.TransactionStatus) error {
	return r.db.Model(&model.TransactionModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_proof": proofURL,
			"status":        string(status),
		}).Error
}

func (r *transactionRepository) list(query *gorm.DB) ([]*entity.Transaction, error) {
	var txnModels []model.TransactionModel
	if err := query.Order("created_at DESC").Find(&txnModels).Error; err != nil {
		return nil, err
	}

	txns := make([]*entity.Transaction, len(txnModels))
	for i := range txnModels {
		txns[i] = ToTransactionEntity(&txnModels[i])
	}
	return txns, nil
}
