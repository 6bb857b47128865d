package usecase

import (
	"errors"
	"fmt"
	"io"
	"time"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"
	"propmarket/pkg/logger"
	"propmarket/pkg/payment"

	"gorm.io/gorm"
)

var (
	ErrInvalidSignature   = errors.New("invalid notification signature")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPackageUnavailable = errors.New("package not found or inactive")
	ErrNotOrderOwner      = errors.New("order does not belong to caller")
	ErrOrderAlreadyPaid   = errors.New("order already paid")
)

// Notification is the payment gateway's asynchronous callback payload.
type Notification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// PaymentGateway requests hosted payment pages. Implemented by payment.Client.
type PaymentGateway interface {
	CreateTransaction(orderID string, grossAmount int64, customerName, customerEmail string) (*payment.SnapSession, error)
}

// EventPublisher publishes best-effort marketplace events. Implemented by
// queue.Client; may be nil when the broker is unavailable.
type EventPublisher interface {
	PublishEvent(event string, payload map[string]interface{}) error
}

// Uploader stores files and returns their public URL. Implemented by s3.Client.
type Uploader interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
}

type CheckoutUseCase interface {
	Checkout(userID, packageID string) (*entity.Order, error)
	HandleNotification(n Notification) error
	UploadPaymentProof(userID, orderID string, file io.Reader, contentType string) (*entity.Order, error)
	ListOrders(userID string) ([]*entity.Order, error)
	ListAllOrders(limit, offset int) ([]*entity.Order, error)
}

type checkoutUseCase struct {
	orderRepo   persistent.OrderRepository
	packageRepo persistent.PackageRepository
	userRepo    persistent.UserRepository
	gateway     PaymentGateway
	uploader    Uploader
	events      EventPublisher
	serverKey   string
	logger      *logger.Logger
}

func NewCheckoutUseCase(
	orderRepo persistent.OrderRepository,
	packageRepo persistent.PackageRepository,
	userRepo persistent.UserRepository,
	gateway PaymentGateway,
	uploader Uploader,
	events EventPublisher,
	serverKey string,
	logger *logger.Logger,
) CheckoutUseCase {
	return &checkoutUseCase{
		orderRepo:   orderRepo,
		packageRepo: packageRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		uploader:    uploader,
		events:      events,
		serverKey:   serverKey,
		logger:      logger,
	}
}

// Checkout creates a PENDING order snapshotting the package price, then asks
// the gateway for a hosted payment page. The order survives even if the
// gateway call fails, so the buyer can retry from their order list.
func (uc *checkoutUseCase) Checkout(userID, packageID string) (*entity.Order, error) {
	pkg, err := uc.packageRepo.GetByID(packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageUnavailable
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	if !pkg.IsActive {
		return nil, ErrPackageUnavailable
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	order := &entity.Order{
		UserID:    userID,
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Status:    entity.OrderPending,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		uc.logger.Error("Failed to create order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	session, err := uc.gateway.CreateTransaction(order.ID, order.Amount, user.Name, user.Email)
	if err != nil {
		uc.logger.Error("Failed to create gateway session for order %s: %v", order.ID, err)
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	if err := uc.orderRepo.UpdateSnap(order.ID, session.Token, session.RedirectURL); err != nil {
		uc.logger.Error("Failed to persist snap session for order %s: %v", order.ID, err)
		return nil, fmt.Errorf("failed to save payment session: %w", err)
	}

	order.SnapToken = session.Token
	order.SnapURL = session.RedirectURL
	order.Package = pkg
	return order, nil
}

// HandleNotification reconciles a gateway callback into order and user state.
// It is idempotent: replays of an already-PAID order are acknowledged without
// any further mutation.
func (uc *checkoutUseCase) HandleNotification(n Notification) error {
	if !payment.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, uc.serverKey, n.SignatureKey) {
		return ErrInvalidSignature
	}

	order, err := uc.orderRepo.GetByID(n.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	if order.Status == entity.OrderPaid {
		uc.logger.Info("Duplicate notification for paid order %s, ignoring", order.ID)
		return nil
	}

	newStatus, ok := ResolveOrderStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		uc.logger.Warn("Unknown transaction_status %q for order %s, leaving order untouched", n.TransactionStatus, order.ID)
		return nil
	}

	if newStatus != entity.OrderPaid {
		if err := uc.orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return nil
	}

	if order.Package == nil {
		return fmt.Errorf("order %s has no package snapshot", order.ID)
	}

	user, err := uc.userRepo.GetByID(order.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	var newExpiry *time.Time
	if order.Package.Type == entity.PackageSubscription {
		expiry := NextExpiry(user.PackageExpiry, order.Package.DurationDays, time.Now())
		newExpiry = &expiry
	}

	applied, err := uc.orderRepo.MarkPaid(order.ID, order.UserID, order.Package.ListingLimit, newExpiry)
	if err != nil {
		return fmt.Errorf("failed to apply paid transition: %w", err)
	}
	if !applied {
		uc.logger.Info("Order %s already paid by concurrent delivery", order.ID)
		return nil
	}

	uc.logger.Info("Order %s paid, granted %d listings to user %s", order.ID, order.Package.ListingLimit, order.UserID)

	if uc.events != nil {
		if err := uc.events.PublishEvent("order_paid", map[string]interface{}{
			"order_id": order.ID,
			"user_id":  order.UserID,
			"amount":   order.Amount,
		}); err != nil {
			uc.logger.Warn("Failed to publish order_paid event: %v", err)
		}
	}

	return nil
}

// UploadPaymentProof stores a manual transfer proof for an order and forces it
// back to PENDING for back-office review.
func (uc *checkoutUseCase) UploadPaymentProof(userID, orderID string, file io.Reader, contentType string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	if order.Status == entity.OrderPaid {
		return nil, ErrOrderAlreadyPaid
	}

	key := fmt.Sprintf("payment-proofs/orders/%s", orderID)
	proofURL, err := uc.uploader.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload payment proof for order %s: %v", orderID, err)
		return nil, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	if err := uc.orderRepo.UpdateProof(orderID, proofURL); err != nil {
		return nil, fmt.Errorf("failed to save payment proof: %w", err)
	}

	order.PaymentProof = proofURL
	order.Status = entity.OrderPending
	return order, nil
}

func (uc *checkoutUseCase) ListOrders(userID string) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (uc *checkoutUseCase) ListAllOrders(limit, offset int) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ResolveOrderStatus maps the gateway's transaction and fraud statuses onto
// the order lifecycle. Unknown statuses report ok=false and leave the order
// unchanged.
func ResolveOrderStatus(transactionStatus, fraudStatus string) (entity.OrderStatus, bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return entity.OrderChallenge, true
		}
		if fraudStatus == "accept" {
			return entity.OrderPaid, true
		}
		return "", false
	case "settlement":
		return entity.OrderPaid, true
	case "cancel", "deny", "expire":
		return entity.OrderFailed, true
	case "pending":
		return entity.OrderPending, true
	default:
		return "", false
	}
}

// NextExpiry extends a subscription from the later of now and the current
// expiry. Renewing early rewards the remaining time; an expired or absent
// subscription starts fresh from now.
func NextExpiry(current *time.Time, durationDays int, now time.Time) time.Time {
	basis := now
	if current != nil && current.After(now) {
		basis = *current
	}
	return basis.AddDate(0, 0, durationDays)
}
