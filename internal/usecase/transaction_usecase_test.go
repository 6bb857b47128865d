package usecase

import (
	"strings"
	"testing"

	"propmarket/internal/entity"
	"propmarket/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTransactionUseCase(txnRepo *MockTransactionRepository, propertyRepo *MockPropertyRepository, uploader *MockUploader) TransactionUseCase {
	return NewTransactionUseCase(txnRepo, propertyRepo, uploader, logger.New())
}

func TestBuy_Success(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	propertyRepo := new(MockPropertyRepository)
	uc := newTransactionUseCase(txnRepo, propertyRepo, new(MockUploader))

	propertyRepo.On("GetByID", "prop-1").Return(publishedProperty("seller-1"), nil)
	txnRepo.On("Create", mock.AnythingOfType("*entity.Transaction")).Return(nil)

	txn, err := uc.Buy("buyer-1", "prop-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionPending, txn.Status)
	assert.Equal(t, int64(200000000), txn.Amount)
	assert.Equal(t, "buyer-1", txn.BuyerID)
	assert.Equal(t, "seller-1", txn.SellerID)
}

func TestBuy_Validation(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	propertyRepo := new(MockPropertyRepository)
	uc := newTransactionUseCase(txnRepo, propertyRepo, new(MockUploader))

	propertyRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)
	_, err := uc.Buy("buyer-1", "missing")
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	sold := publishedProperty("seller-1")
	sold.Status = entity.PropertySold
	propertyRepo.On("GetByID", "prop-sold").Return(sold, nil)
	_, err = uc.Buy("buyer-1", "prop-sold")
	assert.ErrorIs(t, err, ErrNotListed)

	propertyRepo.On("GetByID", "prop-own").Return(publishedProperty("buyer-1"), nil)
	_, err = uc.Buy("buyer-1", "prop-own")
	assert.ErrorIs(t, err, ErrOwnProperty)

	propertyRepo.On("GetByID", "prop-orphan").Return(publishedProperty(""), nil)
	_, err = uc.Buy("buyer-1", "prop-orphan")
	assert.ErrorIs(t, err, ErrPropertyUnowned)

	txnRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAttachProof_MovesToWaitingVerification(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	uploader := new(MockUploader)
	uc := newTransactionUseCase(txnRepo, new(MockPropertyRepository), uploader)

	txn := &entity.Transaction{ID: "txn-1", BuyerID: "buyer-1", Status: entity.TransactionPending}
	txnRepo.On("GetByID", "txn-1").Return(txn, nil)
	uploader.On("UploadFile", "payment-proofs/transactions/txn-1", mock.Anything, "image/png").
		Return("https://cdn.example/proof.png", nil)
	txnRepo.On("UpdateProof", "txn-1", "https://cdn.example/proof.png", entity.TransactionWaitingVerification).Return(nil)

	updated, err := uc.AttachProof("buyer-1", "txn-1", strings.NewReader("png"), "image/png")

	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionWaitingVerification, updated.Status)
	assert.Equal(t, "https://cdn.example/proof.png", updated.PaymentProof)
}

func TestAttachProof_OnlyBuyerWhilePending(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	uploader := new(MockUploader)
	uc := newTransactionUseCase(txnRepo, new(MockPropertyRepository), uploader)

	txn := &entity.Transaction{ID: "txn-1", BuyerID: "buyer-1", Status: entity.TransactionPending}
	txnRepo.On("GetByID", "txn-1").Return(txn, nil)

	_, err := uc.AttachProof("seller-1", "txn-1", strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, ErrForbidden)

	verifying := &entity.Transaction{ID: "txn-2", BuyerID: "buyer-1", Status: entity.TransactionWaitingVerification}
	txnRepo.On("GetByID", "txn-2").Return(verifying, nil)

	_, err = uc.AttachProof("buyer-1", "txn-2", strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, ErrProofNotPending)

	uploader.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTransactionStatus_SellerAdvances(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	uc := newTransactionUseCase(txnRepo, new(MockPropertyRepository), new(MockUploader))

	txn := &entity.Transaction{ID: "txn-1", BuyerID: "buyer-1", SellerID: "seller-1", Status: entity.TransactionWaitingVerification}
	txnRepo.On("GetByID", "txn-1").Return(txn, nil)
	txnRepo.On("UpdateStatus", "txn-1", entity.TransactionSuccess).Return(nil)

	updated, err := uc.UpdateStatus("seller-1", false, "txn-1", entity.TransactionSuccess)

	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionSuccess, updated.Status)
}

func TestUpdateTransactionStatus_AdminOverride(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	uc := newTransactionUseCase(txnRepo, new(MockPropertyRepository), new(MockUploader))

	txn := &entity.Transaction{ID: "txn-1", BuyerID: "buyer-1", SellerID: "seller-1", Status: entity.TransactionPending}
	txnRepo.On("GetByID", "txn-1").Return(txn, nil)
	txnRepo.On("UpdateStatus", "txn-1", entity.TransactionCancelled).Return(nil)

	updated, err := uc.UpdateStatus("admin-1", true, "txn-1", entity.TransactionCancelled)

	assert.NoError(t, err)
	assert.Equal(t, entity.TransactionCancelled, updated.Status)
}

func TestUpdateTransactionStatus_Guards(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	uc := newTransactionUseCase(txnRepo, new(MockPropertyRepository), new(MockUploader))

	_, err := uc.UpdateStatus("seller-1", false, "txn-1", entity.TransactionStatus("SHIPPED"))
	assert.ErrorIs(t, err, ErrInvalidTxnStatus)

	txn := &entity.Transaction{ID: "txn-1", BuyerID: "buyer-1", SellerID: "seller-1", Status: entity.TransactionPending}
	txnRepo.On("GetByID", "txn-1").Return(txn, nil)

	_, err = uc.UpdateStatus("buyer-1", false, "txn-1", entity.TransactionSuccess)
	assert.ErrorIs(t, err, ErrForbidden)

	done := &entity.Transaction{ID: "txn-2", SellerID: "seller-1", Status: entity.TransactionSuccess}
	txnRepo.On("GetByID", "txn-2").Return(done, nil)

	_, err = uc.UpdateStatus("seller-1", false, "txn-2", entity.TransactionCancelled)
	assert.ErrorIs(t, err, ErrTransactionClosed)

	txnRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestUpdateTransactionStatus_NotFound(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	uc := newTransactionUseCase(txnRepo, new(MockPropertyRepository), new(MockUploader))

	txnRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.UpdateStatus("seller-1", false, "missing", entity.TransactionSuccess)

	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
