package persistent

import (
	"propmarket/internal/entity"
	"propmarket/internal/model"

	"gorm.io/gorm"
)

type OfferRepository interface {
	CreateWithHistory(offer *entity.Offer, history *entity.OfferHistory) error
	GetByID(id string) (*entity.Offer, error)
	ListByBuyer(userID string) ([]*entity.Offer, error)
	ListBySeller(sellerID string) ([]*entity.Offer, error)
	UpdateWithHistory(offer *entity.Offer, history *entity.OfferHistory) (bool, error)
	AcceptWithTransaction(offer *entity.Offer, history *entity.OfferHistory, txn *entity.Transaction) (bool, error)
	GetHistory(offerID string) ([]*entity.OfferHistory, error)
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// CreateWithHistory inserts a new offer and its opening history row atomically
// so the audit trail never misses the proposal itself.
func (r *offerRepository) CreateWithHistory(offer *entity.Offer, history *entity.OfferHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		offerModel := ToOfferModel(offer)
		if err := tx.Create(offerModel).Error; err != nil {
			return err
		}
		offer.ID = offerModel.ID

		history.OfferID = offerModel.ID
		return tx.Create(ToOfferHistoryModel(history)).Error
	})
}

func (r *offerRepository) GetByID(id string) (*entity.Offer, error) {
	var offerModel model.OfferModel
	if err := r.db.Where("id = ?", id).First(&offerModel).Error; err != nil {
		return nil, err
	}
	return ToOfferEntity(&offerModel), nil
}

func (r *offerRepository) ListByBuyer(userID string) ([]*entity.Offer, error) {
	var offerModels []model.OfferModel
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&offerModels).Error
	if err != nil {
		return nil, err
	}
	return toOfferEntities(offerModels), nil
}

func (r *offerRepository) ListBySeller(sellerID string) ([]*entity.Offer, error) {
	var offerModels []model.OfferModel
	err := r.db.
		Joins("JOIN properties ON properties.id = offers.property_id").
		Where("properties.user_id = ?", sellerID).
		Order("offers.created_at DESC").
		Find(&offerModels).Error
	if err != nil {
		return nil, err
	}
	return toOfferEntities(offerModels), nil
}

// UpdateWithHistory applies a non-accepting transition (counter, reject) plus
// its history row in one transaction. The offer update is guarded on the
// offer still being open; returns false if a concurrent action closed it.
func (r *offerRepository) UpdateWithHistory(offer *entity.Offer, history *entity.OfferHistory) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.OfferModel{}).
			Where("id = ? AND status NOT IN ?", offer.ID, closedOfferStatuses()).
			Updates(map[string]interface{}{
				"status": string(offer.Status),
				"amount": offer.Amount,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(ToOfferHistoryModel(history)).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// AcceptWithTransaction flips an open offer to ACCEPTED, appends the history
// row and creates the resulting sale transaction, all atomically. Exactly one
// transaction is created per accepted offer even under concurrent actions.
func (r *offerRepository) AcceptWithTransaction(offer *entity.Offer, history *entity.OfferHistory, txn *entity.Transaction) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.OfferModel{}).
			Where("id = ? AND status NOT IN ?", offer.ID, closedOfferStatuses()).
			Update("status", string(entity.OfferAccepted))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(ToOfferHistoryModel(history)).Error; err != nil {
			return err
		}

		txnModel := ToTransactionModel(txn)
		if err := tx.Create(txnModel).Error; err != nil {
			return err
		}
		txn.ID = txnModel.ID

		applied = true
		return nil
	})
	return applied, err
}

// GetHistory returns every action on an offer in chronological order with the
// sender's display name and avatar joined in.
func (r *offerRepository) GetHistory(offerID string) ([]*entity.OfferHistory, error) {
	type historyRow struct {
		model.OfferHistoryModel
		SenderName   string
		SenderAvatar string
	}

	var rows []historyRow
	err := r.db.Model(&model.OfferHistoryModel{}).
		Select("offer_histories.*, users.name AS sender_name, users.avatar_url AS sender_avatar").
		Joins("LEFT JOIN users ON users.id = offer_histories.sender_id").
		Where("offer_histories.offer_id = ?", offerID).
		Order("offer_histories.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]*entity.OfferHistory, len(rows))
	for i := range rows {
		history[i] = &entity.OfferHistory{
			ID:           rows[i].ID,
			OfferID:      rows[i].OfferID,
			SenderID:     rows[i].SenderID,
			SenderName:   rows[i].SenderName,
			SenderAvatar: rows[i].SenderAvatar,
			Action:       entity.OfferAction(rows[i].Action),
			Price:        rows[i].Price,
			Message:      rows[i].Message,
			CreatedAt:    rows[i].CreatedAt,
		}
	}
	return history, nil
}

func closedOfferStatuses() []string {
	return []string{string(entity.OfferAccepted), string(entity.OfferRejected)}
}

func toOfferEntities(offerModels []model.OfferModel) []*entity.Offer {
	offers := make([]*entity.Offer, len(offerModels))
	for i := range offerModels {
		offers[i] = ToOfferEntity(&offerModels[i])
	}
	return offers
}
