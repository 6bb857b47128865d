package persistent

import (
	"time"

	"propmarket/internal/entity"
	"propmarket/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)
	UpdateSnap(orderID, token, url string) error
	UpdateStatus(orderID string, status entity.OrderStatus) error
	UpdateProof(orderID, proofURL string) error
	MarkPaid(orderID, userID string, limitDelta int, newExpiry *time.Time) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *entity.Order) error {
	orderModel := ToOrderModel(order)
	if err := r.db.Create(orderModel).Error; err != nil {
		return err
	}
	order.ID = orderModel.ID
	return nil
}

func (r *orderRepository) GetByID(id string) (*entity.Order, error) {
	var orderModel model.OrderModel
	err := r.db.Preload("Package").Where("id = ?", id).First(&orderModel).Error
	if err != nil {
		return nil, err
	}
	return ToOrderEntity(&orderModel), nil
}

func (r *orderRepository) ListByUser(userID string) ([]*entity.Order, error) {
	var orderModels []model.OrderModel
	err := r.db.Preload("Package").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return toOrderEntities(orderModels), nil
}

func (r *orderRepository) List(limit, offset int) ([]*entity.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var orderModels []model.OrderModel
	err := r.db.Preload("Package").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&orderModels).Error
	if err != nil {
		return nil, err
	}
	return toOrderEntities(orderModels), nil
}

func (r *orderRepository) UpdateSnap(orderID, token, url string) error {
	return r.db.Model(&model.OrderModel{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{"snap_token": token, "snap_url": url}).Error
}

func (r *orderRepository) UpdateStatus(orderID string, status entity.OrderStatus) error {
	return r.db.Model(&model.OrderModel{}).Where("id = ?", orderID).
		Update("status", string(status)).Error
}

// UpdateProof attaches a manual payment proof and forces the order back to
// PENDING for admin review. Orders that already reached PAID are left alone.
func (r *orderRepository) UpdateProof(orderID, proofURL string) error {
	return r.db.Model(&model.OrderModel{}).
		Where("id = ? AND status <> ?", orderID, string(entity.OrderPaid)).
		Updates(map[string]interface{}{
			"payment_proof": proofURL,
			"status":        string(entity.OrderPending),
		}).Error
}

// MarkPaid flips an order to PAID and grants the buyer's package benefits in
// a single database transaction. The status update is conditional on the
// order not already being PAID, so concurrent duplicate webhook deliveries
// grant benefits at most once. Returns false when another delivery won.
func (r *orderRepository) MarkPaid(orderID, userID string, limitDelta int, newExpiry *time.Time) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.OrderModel{}).
			Where("id = ? AND status <> ?", orderID, string(entity.OrderPaid)).
			Update("status", string(entity.OrderPaid))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		updates := map[string]interface{}{
			"listing_limit": gorm.Expr("listing_limit + ?", limitDelta),
		}
		if newExpiry != nil {
			updates["package_expiry"] = newExpiry
		}
		if err := tx.Model(&model.UserModel{}).Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	return applied, err
}

func toOrderEntities(orderModels []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = ToOrderEntity(&orderModels[i])
	}
	return orders
}
