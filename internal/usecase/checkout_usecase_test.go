package usecase

import (
	"errors"
	"testing"
	"time"

	"propmarket/internal/entity"
	"propmarket/pkg/logger"
	"propmarket/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const testServerKey = "test-server-key"

func newCheckoutUseCase(
	orderRepo *MockOrderRepository,
	packageRepo *MockPackageRepository,
	userRepo *MockUserRepository,
	gateway *MockPaymentGateway,
	events EventPublisher,
) CheckoutUseCase {
	return NewCheckoutUseCase(orderRepo, packageRepo, userRepo, gateway, new(MockUploader), events, testServerKey, logger.New())
}

func signedNotification(orderID, transactionStatus, fraudStatus string, amount int64) Notification {
	gross := payment.FormatGross(amount)
	return Notification{
		OrderID:           orderID,
		TransactionStatus: transactionStatus,
		FraudStatus:       fraudStatus,
		StatusCode:        "200",
		GrossAmount:       gross,
		SignatureKey:      payment.Signature(orderID, "200", gross, testServerKey),
	}
}

func TestCheckout_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	userRepo := new(MockUserRepository)
	gateway := new(MockPaymentGateway)
	uc := newCheckoutUseCase(orderRepo, packageRepo, userRepo, gateway, nil)

	pkg := &entity.ListingPackage{ID: "pkg-1", Name: "Starter", Price: 5000000, ListingLimit: 3, Type: entity.PackageTopup, IsActive: true}
	user := &entity.User{ID: "user-1", Name: "Alice", Email: "alice@test.com"}

	packageRepo.On("GetByID", "pkg-1").Return(pkg, nil)
	userRepo.On("GetByID", "user-1").Return(user, nil)
	orderRepo.On("Create", mock.AnythingOfType("*entity.Order")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Order).ID = "order-1"
	}).Return(nil)
	gateway.On("CreateTransaction", "order-1", int64(5000000), "Alice", "alice@test.com").
		Return(&payment.SnapSession{Token: "snap-token", RedirectURL: "https://pay.example/order-1"}, nil)
	orderRepo.On("UpdateSnap", "order-1", "snap-token", "https://pay.example/order-1").Return(nil)

	order, err := uc.Checkout("user-1", "pkg-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, int64(5000000), order.Amount)
	assert.Equal(t, "snap-token", order.SnapToken)
	orderRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCheckout_InactivePackage(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	userRepo := new(MockUserRepository)
	gateway := new(MockPaymentGateway)
	uc := newCheckoutUseCase(orderRepo, packageRepo, userRepo, gateway, nil)

	pkg := &entity.ListingPackage{ID: "pkg-1", IsActive: false}
	packageRepo.On("GetByID", "pkg-1").Return(pkg, nil)

	_, err := uc.Checkout("user-1", "pkg-1")

	assert.ErrorIs(t, err, ErrPackageUnavailable)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckout_PackageNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	packageRepo := new(MockPackageRepository)
	userRepo := new(MockUserRepository)
	gateway := new(MockPaymentGateway)
	uc := newCheckoutUseCase(orderRepo, packageRepo, userRepo, gateway, nil)

	packageRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Checkout("user-1", "missing")

	assert.ErrorIs(t, err, ErrPackageUnavailable)
}

func TestHandleNotification_InvalidSignature(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	n := signedNotification("order-1", "settlement", "", 5000000)
	n.SignatureKey = "deadbeef"

	err := uc.HandleNotification(n)

	assert.ErrorIs(t, err, ErrInvalidSignature)
	orderRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestHandleNotification_TamperedFieldsRejected(t *testing.T) {
	uc := newCheckoutUseCase(new(MockOrderRepository), new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	tampered := []func(n *Notification){
		func(n *Notification) { n.OrderID = "order-2" },
		func(n *Notification) { n.StatusCode = "201" },
		func(n *Notification) { n.GrossAmount = "999.00" },
		func(n *Notification) { n.SignatureKey = "" },
	}

	for _, mutate := range tampered {
		n := signedNotification("order-1", "settlement", "", 5000000)
		mutate(&n)
		assert.ErrorIs(t, uc.HandleNotification(n), ErrInvalidSignature)
	}
}

func TestHandleNotification_OrderNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	orderRepo.On("GetByID", "order-1").Return(nil, gorm.ErrRecordNotFound)

	err := uc.HandleNotification(signedNotification("order-1", "settlement", "", 5000000))

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestHandleNotification_DuplicatePaidIsNoOp(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), userRepo, new(MockPaymentGateway), nil)

	order := &entity.Order{
		ID:      "order-1",
		UserID:  "user-1",
		Status:  entity.OrderPaid,
		Package: &entity.ListingPackage{ID: "pkg-1", ListingLimit: 3, Type: entity.PackageTopup},
	}
	orderRepo.On("GetByID", "order-1").Return(order, nil)

	err := uc.HandleNotification(signedNotification("order-1", "settlement", "", 5000000))

	assert.NoError(t, err)
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestHandleNotification_SettlementGrantsQuota(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	events := new(MockEventPublisher)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), userRepo, new(MockPaymentGateway), events)

	order := &entity.Order{
		ID:      "order-1",
		UserID:  "user-1",
		Amount:  5000000,
		Status:  entity.OrderPending,
		Package: &entity.ListingPackage{ID: "pkg-1", ListingLimit: 3, Type: entity.PackageTopup},
	}
	orderRepo.On("GetByID", "order-1").Return(order, nil)
	userRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1"}, nil)
	orderRepo.On("MarkPaid", "order-1", "user-1", 3, (*time.Time)(nil)).Return(true, nil)
	events.On("PublishEvent", "order_paid", mock.Anything).Return(nil)

	err := uc.HandleNotification(signedNotification("order-1", "settlement", "", 5000000))

	assert.NoError(t, err)
	orderRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestHandleNotification_SubscriptionExtendsExpiry(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), userRepo, new(MockPaymentGateway), nil)

	current := time.Now().AddDate(0, 0, 10)
	order := &entity.Order{
		ID:      "order-1",
		UserID:  "user-1",
		Status:  entity.OrderPending,
		Package: &entity.ListingPackage{ID: "pkg-1", ListingLimit: 20, DurationDays: 30, Type: entity.PackageSubscription},
	}
	orderRepo.On("GetByID", "order-1").Return(order, nil)
	userRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", PackageExpiry: &current}, nil)

	var granted *time.Time
	orderRepo.On("MarkPaid", "order-1", "user-1", 20, mock.AnythingOfType("*time.Time")).
		Run(func(args mock.Arguments) {
			granted = args.Get(3).(*time.Time)
		}).Return(true, nil)

	err := uc.HandleNotification(signedNotification("order-1", "settlement", "", 15000000))

	assert.NoError(t, err)
	if assert.NotNil(t, granted) {
		// 10 days left plus 30 purchased: the new expiry stacks on top.
		want := current.AddDate(0, 0, 30)
		assert.WithinDuration(t, want, *granted, time.Second)
	}
}

func TestHandleNotification_ConcurrentPaidDelivery(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	events := new(MockEventPublisher)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), userRepo, new(MockPaymentGateway), events)

	order := &entity.Order{
		ID:      "order-1",
		UserID:  "user-1",
		Status:  entity.OrderPending,
		Package: &entity.ListingPackage{ID: "pkg-1", ListingLimit: 3, Type: entity.PackageTopup},
	}
	orderRepo.On("GetByID", "order-1").Return(order, nil)
	userRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1"}, nil)
	orderRepo.On("MarkPaid", "order-1", "user-1", 3, (*time.Time)(nil)).Return(false, nil)

	err := uc.HandleNotification(signedNotification("order-1", "settlement", "", 5000000))

	assert.NoError(t, err)
	events.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestHandleNotification_NonPaidStatuses(t *testing.T) {
	cases := []struct {
		transactionStatus string
		fraudStatus       string
		want              entity.OrderStatus
	}{
		{"capture", "challenge", entity.OrderChallenge},
		{"cancel", "", entity.OrderFailed},
		{"deny", "", entity.OrderFailed},
		{"expire", "", entity.OrderFailed},
		{"pending", "", entity.OrderPending},
	}

	for _, tc := range cases {
		orderRepo := new(MockOrderRepository)
		uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

		order := &entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderPending}
		orderRepo.On("GetByID", "order-1").Return(order, nil)
		orderRepo.On("UpdateStatus", "order-1", tc.want).Return(nil)

		err := uc.HandleNotification(signedNotification("order-1", tc.transactionStatus, tc.fraudStatus, 5000000))

		assert.NoError(t, err, "status %s/%s", tc.transactionStatus, tc.fraudStatus)
		orderRepo.AssertExpectations(t)
	}
}

func TestHandleNotification_UnknownStatusIgnored(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	order := &entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderPending}
	orderRepo.On("GetByID", "order-1").Return(order, nil)

	err := uc.HandleNotification(signedNotification("order-1", "refund", "", 5000000))

	assert.NoError(t, err)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification_ReplayAfterPaidGrantsOnce(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), userRepo, new(MockPaymentGateway), nil)

	pending := &entity.Order{
		ID:      "order-1",
		UserID:  "user-1",
		Status:  entity.OrderPending,
		Package: &entity.ListingPackage{ID: "pkg-1", ListingLimit: 3, Type: entity.PackageTopup},
	}
	paid := &entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderPaid}

	orderRepo.On("GetByID", "order-1").Return(pending, nil).Once()
	orderRepo.On("GetByID", "order-1").Return(paid, nil).Once()
	userRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1"}, nil)
	orderRepo.On("MarkPaid", "order-1", "user-1", 3, (*time.Time)(nil)).Return(true, nil).Once()

	n := signedNotification("order-1", "settlement", "", 5000000)
	assert.NoError(t, uc.HandleNotification(n))
	assert.NoError(t, uc.HandleNotification(n))

	orderRepo.AssertNumberOfCalls(t, "MarkPaid", 1)
}

func TestUploadPaymentProof_NotOwner(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	orderRepo.On("GetByID", "order-1").Return(&entity.Order{ID: "order-1", UserID: "someone-else"}, nil)

	_, err := uc.UploadPaymentProof("user-1", "order-1", nil, "image/png")

	assert.ErrorIs(t, err, ErrNotOrderOwner)
}

func TestUploadPaymentProof_PaidOrderRejected(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	orderRepo.On("GetByID", "order-1").Return(&entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderPaid}, nil)

	_, err := uc.UploadPaymentProof("user-1", "order-1", nil, "image/png")

	assert.ErrorIs(t, err, ErrOrderAlreadyPaid)
	orderRepo.AssertNotCalled(t, "UpdateProof", mock.Anything, mock.Anything)
}

func TestHandleNotification_RepoError(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	uc := newCheckoutUseCase(orderRepo, new(MockPackageRepository), new(MockUserRepository), new(MockPaymentGateway), nil)

	orderRepo.On("GetByID", "order-1").Return(nil, errors.New("connection refused"))

	err := uc.HandleNotification(signedNotification("order-1", "settlement", "", 5000000))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrOrderNotFound)
}

func TestResolveOrderStatus(t *testing.T) {
	cases := []struct {
		transactionStatus string
		fraudStatus       string
		want              entity.OrderStatus
		ok                bool
	}{
		{"capture", "challenge", entity.OrderChallenge, true},
		{"capture", "accept", entity.OrderPaid, true},
		{"capture", "deny", "", false},
		{"settlement", "", entity.OrderPaid, true},
		{"settlement", "challenge", entity.OrderPaid, true},
		{"cancel", "", entity.OrderFailed, true},
		{"deny", "", entity.OrderFailed, true},
		{"expire", "", entity.OrderFailed, true},
		{"pending", "", entity.OrderPending, true},
		{"refund", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range cases {
		got, ok := ResolveOrderStatus(tc.transactionStatus, tc.fraudStatus)
		assert.Equal(t, tc.ok, ok, "%s/%s", tc.transactionStatus, tc.fraudStatus)
		assert.Equal(t, tc.want, got, "%s/%s", tc.transactionStatus, tc.fraudStatus)
	}
}

func TestNextExpiry_NoCurrentSubscription(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	got := NextExpiry(nil, 30, now)

	assert.Equal(t, now.AddDate(0, 0, 30), got)
}

func TestNextExpiry_ActiveSubscriptionStacks(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	current := now.AddDate(0, 0, 10)

	got := NextExpiry(&current, 30, now)

	assert.Equal(t, current.AddDate(0, 0, 30), got)
}

func TestNextExpiry_LapsedSubscriptionStartsFresh(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lapsed := now.AddDate(0, 0, -5)

	got := NextExpiry(&lapsed, 30, now)

	assert.Equal(t, now.AddDate(0, 0, 30), got)
}
