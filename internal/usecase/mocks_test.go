package usecase

import (
	"io"
	"time"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"
	"propmarket/pkg/payment"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of persistent.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *entity.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*entity.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID string) ([]*entity.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(limit, offset int) ([]*entity.Order, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateSnap(orderID, token, url string) error {
	args := m.Called(orderID, token, url)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(orderID string, status entity.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateProof(orderID, proofURL string) error {
	args := m.Called(orderID, proofURL)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPaid(orderID, userID string, limitDelta int, newExpiry *time.Time) (bool, error) {
	args := m.Called(orderID, userID, limitDelta, newExpiry)
	return args.Bool(0), args.Error(1)
}

var _ persistent.OrderRepository = (*MockOrderRepository)(nil)

// MockPackageRepository is a mock implementation of persistent.PackageRepository
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) Create(pkg *entity.ListingPackage) error {
	args := m.Called(pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) GetByID(id string) (*entity.ListingPackage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListingPackage), args.Error(1)
}

func (m *MockPackageRepository) Update(pkg *entity.ListingPackage) error {
	args := m.Called(pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) ListActive() ([]*entity.ListingPackage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ListingPackage), args.Error(1)
}

func (m *MockPackageRepository) List() ([]*entity.ListingPackage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ListingPackage), args.Error(1)
}

var _ persistent.PackageRepository = (*MockPackageRepository)(nil)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(userID, avatarURL string) error {
	args := m.Called(userID, avatarURL)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// MockOfferRepository is a mock implementation of persistent.OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) CreateWithHistory(offer *entity.Offer, history *entity.OfferHistory) error {
	args := m.Called(offer, history)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(id string) (*entity.Offer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByBuyer(userID string) ([]*entity.Offer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListBySeller(sellerID string) ([]*entity.Offer, error) {
	args := m.Called(sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Offer), args.Error(1)
}

func (m *MockOfferRepository) UpdateWithHistory(offer *entity.Offer, history *entity.OfferHistory) (bool, error) {
	args := m.Called(offer, history)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) AcceptWithTransaction(offer *entity.Offer, history *entity.OfferHistory, txn *entity.Transaction) (bool, error) {
	args := m.Called(offer, history, txn)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) GetHistory(offerID string) ([]*entity.OfferHistory, error) {
	args := m.Called(offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OfferHistory), args.Error(1)
}

var _ persistent.OfferRepository = (*MockOfferRepository)(nil)

// MockPropertyRepository is a mock implementation of persistent.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(property *entity.Property) error {
	args := m.Called(property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(id string) (*entity.Property, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(property *entity.Property) error {
	args := m.Called(property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Search(filter entity.PropertyFilter) ([]*entity.Property, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByOwner(userID string) ([]*entity.Property, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountLiveByOwner(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) AddImage(image *entity.PropertyImage) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockPropertyRepository) AddViews(id string, delta int64) error {
	args := m.Called(id, delta)
	return args.Error(0)
}

var _ persistent.PropertyRepository = (*MockPropertyRepository)(nil)

// MockTransactionRepository is a mock implementation of persistent.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(txn *entity.Transaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(id string) (*entity.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByBuyer(buyerID string) ([]*entity.Transaction, error) {
	args := m.Called(buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListBySeller(sellerID string) ([]*entity.Transaction, error) {
	args := m.Called(sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(id string, status entity.TransactionStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateProof(id, proofURL string, status entity.TransactionStatus) error {
	args := m.Called(id, proofURL, status)
	return args.Error(0)
}

var _ persistent.TransactionRepository = (*MockTransactionRepository)(nil)

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateTransaction(orderID string, grossAmount int64, customerName, customerEmail string) (*payment.SnapSession, error) {
	args := m.Called(orderID, grossAmount, customerName, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.SnapSession), args.Error(1)
}

var _ PaymentGateway = (*MockPaymentGateway)(nil)

// MockUploader is a mock implementation of Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

var _ Uploader = (*MockUploader)(nil)

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

var _ EventPublisher = (*MockEventPublisher)(nil)
