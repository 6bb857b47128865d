package http

import (
	"errors"
	"net/http"

	"propmarket/internal/entity"
	"propmarket/internal/usecase"
	"propmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerUseCase usecase.OfferUseCase
	logger       *logger.Logger
}

func NewOfferHandler(offerUseCase usecase.OfferUseCase, logger *logger.Logger) *OfferHandler {
	return &OfferHandler{
		offerUseCase: offerUseCase,
		logger:       logger,
	}
}

type CreateOfferRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,min=1"`
	Message    string `json:"message"`
}

type OfferActionRequest struct {
	Action  string `json:"action" binding:"required,oneof=ACCEPT REJECT COUNTER"`
	Amount  int64  `json:"amount"`
	Message string `json:"message"`
}

// CreateOffer godoc
// @Summary      Make an offer
// @Description  Propose a price for a published property
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateOfferRequest true "Offer details"
// @Success      201  {object}  entity.Offer
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /offers [post]
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerUseCase.CreateOffer(userID, req.PropertyID, req.Amount, req.Message)
	if err != nil {
		h.respondOfferError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// Act godoc
// @Summary      Act on an offer
// @Description  Accept, reject or counter an open offer as buyer or seller
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Offer ID"
// @Param        request body OfferActionRequest true "Action"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /offers/{id}/action [post]
func (h *OfferHandler) Act(c *gin.Context) {
	userID := c.GetString("user_id")
	offerID := c.Param("id")

	var req OfferActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerUseCase.Act(userID, offerID, entity.OfferAction(req.Action), req.Amount, req.Message)
	if err != nil {
		h.respondOfferError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": offer.Status})
}

// History godoc
// @Summary      Offer history
// @Description  Full negotiation trail in chronological order
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Offer ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /offers/{id}/history [get]
func (h *OfferHandler) History(c *gin.Context) {
	userID := c.GetString("user_id")
	offerID := c.Param("id")

	history, err := h.offerUseCase.History(userID, offerID)
	if err != nil {
		h.respondOfferError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history, "count": len(history)})
}

// ListMyOffers godoc
// @Summary      List offers I made
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /offers/my [get]
func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	userID := c.GetString("user_id")

	offers, err := h.offerUseCase.ListMyOffers(userID)
	if err != nil {
		h.logger.Error("Failed to list offers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

// ListIncomingOffers godoc
// @Summary      List offers on my properties
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /offers/incoming [get]
func (h *OfferHandler) ListIncomingOffers(c *gin.Context) {
	userID := c.GetString("user_id")

	offers, err := h.offerUseCase.ListIncomingOffers(userID)
	if err != nil {
		h.logger.Error("Failed to list incoming offers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

func (h *OfferHandler) respondOfferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrOfferNotFound), errors.Is(err, usecase.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrOfferClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrAmountRequired),
		errors.Is(err, usecase.ErrInvalidAction),
		errors.Is(err, usecase.ErrOwnProperty),
		errors.Is(err, usecase.ErrNotListed),
		errors.Is(err, usecase.ErrPropertyUnowned):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Offer operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
