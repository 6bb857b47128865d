package usecase

import (
	"errors"
	"fmt"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"
	"propmarket/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrOfferNotFound    = errors.New("offer not found")
	ErrOfferClosed      = errors.New("offer already accepted or rejected")
	ErrAmountRequired   = errors.New("counter offers require an amount")
	ErrInvalidAction    = errors.New("invalid offer action")
	ErrOwnProperty      = errors.New("cannot make an offer on your own property")
	ErrPropertyUnowned  = errors.New("property has no owner; listing requires backfill")
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotListed        = errors.New("property is not published")
)

type OfferUseCase interface {
	CreateOffer(buyerID, propertyID string, amount int64, message string) (*entity.Offer, error)
	Act(callerID, offerID string, action entity.OfferAction, amount int64, message string) (*entity.Offer, error)
	History(callerID, offerID string) ([]*entity.OfferHistory, error)
	ListMyOffers(buyerID string) ([]*entity.Offer, error)
	ListIncomingOffers(sellerID string) ([]*entity.Offer, error)
}

type offerUseCase struct {
	offerRepo    persistent.OfferRepository
	propertyRepo persistent.PropertyRepository
	events       EventPublisher
	logger       *logger.Logger
}

func NewOfferUseCase(
	offerRepo persistent.OfferRepository,
	propertyRepo persistent.PropertyRepository,
	events EventPublisher,
	logger *logger.Logger,
) OfferUseCase {
	return &offerUseCase{
		offerRepo:    offerRepo,
		propertyRepo: propertyRepo,
		events:       events,
		logger:       logger,
	}
}

func (uc *offerUseCase) CreateOffer(buyerID, propertyID string, amount int64, message string) (*entity.Offer, error) {
	if amount <= 0 {
		return nil, ErrAmountRequired
	}

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

	offer := &entity.Offer{
		PropertyID: propertyID,
		UserID:     buyerID,
		Amount:     amount,
		Status:     entity.OfferPending,
	}
	history := &entity.OfferHistory{
		SenderID: buyerID,
		Action:   entity.ActionPropose,
		Price:    amount,
		Message:  message,
	}

	if err := uc.offerRepo.CreateWithHistory(offer, history); err != nil {
		uc.logger.Error("Failed to create offer: %v", err)
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	uc.publishActivity(offer, entity.ActionPropose)
	return offer, nil
}

// Act applies a buyer or seller action to an open offer. ACCEPT and REJECT
// close the offer; COUNTER replaces the offer's amount and keeps it open.
// Every accepted action appends exactly one history row.
func (uc *offerUseCase) Act(callerID, offerID string, action entity.OfferAction, amount int64, message string) (*entity.Offer, error) {
	offer, err := uc.offerRepo.GetByID(offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	property, err := uc.propertyRepo.GetByID(offer.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	// Only the buyer or the property owner may act on an offer.
	if callerID != offer.UserID && callerID != property.UserID {
		return nil, ErrForbidden
	}

	if offer.Status.Closed() {
		return nil, ErrOfferClosed
	}

	switch action {
	case entity.ActionReject:
		offer.Status = entity.OfferRejected
		history := uc.historyRow(offer, callerID, action, offer.Amount, message)
		applied, err := uc.offerRepo.UpdateWithHistory(offer, history)
		if err != nil {
			return nil, fmt.Errorf("failed to reject offer: %w", err)
		}
		if !applied {
			return nil, ErrOfferClosed
		}

	case entity.ActionCounter:
		if amount <= 0 {
			return nil, ErrAmountRequired
		}
		offer.Status = entity.OfferCountered
		offer.Amount = amount
		history := uc.historyRow(offer, callerID, action, amount, message)
		applied, err := uc.offerRepo.UpdateWithHistory(offer, history)
		if err != nil {
			return nil, fmt.Errorf("failed to counter offer: %w", err)
		}
		if !applied {
			return nil, ErrOfferClosed
		}

	case entity.ActionAccept:
		if property.UserID == "" {
			// Legacy rows without an owner cannot produce a valid sale;
			// surface the inconsistency instead of inventing a seller.
			return nil, ErrPropertyUnowned
		}
		offer.Status = entity.OfferAccepted
		history := uc.historyRow(offer, callerID, action, offer.Amount, message)
		txn := &entity.Transaction{
			PropertyID:    property.ID,
			PropertyTitle: property.Title,
			BuyerID:       offer.UserID,
			SellerID:      property.UserID,
			Amount:        offer.Amount,
			Status:        entity.TransactionPending,
		}
		applied, err := uc.offerRepo.AcceptWithTransaction(offer, history, txn)
		if err != nil {
			return nil, fmt.Errorf("failed to accept offer: %w", err)
		}
		if !applied {
			return nil, ErrOfferClosed
		}
		uc.logger.Info("Offer %s accepted, transaction %s created for %d", offer.ID, txn.ID, txn.Amount)

	default:
		return nil, ErrInvalidAction
	}

	uc.publishActivity(offer, action)
	return offer, nil
}

func (uc *offerUseCase) History(callerID, offerID string) ([]*entity.OfferHistory, error) {
	offer, err := uc.offerRepo.GetByID(offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	property, err := uc.propertyRepo.GetByID(offer.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if callerID != offer.UserID && callerID != property.UserID {
		return nil, ErrForbidden
	}

	history, err := uc.offerRepo.GetHistory(offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer history: %w", err)
	}
	return history, nil
}

func (uc *offerUseCase) ListMyOffers(buyerID string) ([]*entity.Offer, error) {
	offers, err := uc.offerRepo.ListByBuyer(buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (uc *offerUseCase) ListIncomingOffers(sellerID string) ([]*entity.Offer, error) {
	offers, err := uc.offerRepo.ListBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (uc *offerUseCase) historyRow(offer *entity.Offer, senderID string, action entity.OfferAction, price int64, message string) *entity.OfferHistory {
	return &entity.OfferHistory{
		OfferID:  offer.ID,
		SenderID: senderID,
		Action:   action,
		Price:    price,
		Message:  message,
	}
}

func (uc *offerUseCase) publishActivity(offer *entity.Offer, action entity.OfferAction) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishEvent("offer_activity", map[string]interface{}{
		"offer_id":    offer.ID,
		"property_id": offer.PropertyID,
		"action":      string(action),
		"status":      string(offer.Status),
	}); err != nil {
		uc.logger.Warn("Failed to publish offer_activity event: %v", err)
	}
}
