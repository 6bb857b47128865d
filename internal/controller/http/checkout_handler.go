package http

import (
	"errors"
	"net/http"
	"strconv"

	"propmarket/internal/usecase"
	"propmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
	logger          *logger.Logger
}

func NewCheckoutHandler(checkoutUseCase usecase.CheckoutUseCase, logger *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		logger:          logger,
	}
}

type CheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

// Checkout godoc
// @Summary      Purchase a listing package
// @Description  Create an order and return the hosted payment page token
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CheckoutRequest true "Package to purchase"
// @Success      201  {object}  entity.Order
// @Failure      400  {object}  map[string]string
// @Router       /orders/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.checkoutUseCase.Checkout(userID, req.PackageID)
	if err != nil {
		if errors.Is(err, usecase.ErrPackageUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Checkout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Notification godoc
// @Summary      Payment gateway webhook
// @Description  Reconcile an asynchronous payment notification. Idempotent under redelivery.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        notification body usecase.Notification true "Gateway notification"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/notification [post]
func (h *CheckoutHandler) Notification(c *gin.Context) {
	var n usecase.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.checkoutUseCase.HandleNotification(n); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSignature):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Notification handling failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process notification"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// UploadProof godoc
// @Summary      Upload manual payment proof
// @Description  Attach a transfer proof to an order; the order returns to PENDING for review
// @Tags         orders
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Param        proof formData file true "Payment proof"
// @Success      200  {object}  entity.Order
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id}/proof [post]
func (h *CheckoutHandler) UploadProof(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read proof file"})
		return
	}
	defer file.Close()

	order, err := h.checkoutUseCase.UploadPaymentProof(userID, orderID, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNotOrderOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrOrderAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Proof upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders godoc
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /orders [get]
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := h.checkoutUseCase.ListOrders(userID)
	if err != nil {
		h.logger.Error("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// ListAllOrders godoc
// @Summary      List all orders (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/orders [get]
func (h *CheckoutHandler) ListAllOrders(c *gin.Context) {
	limit, offset := pagination(c)

	orders, err := h.checkoutUseCase.ListAllOrders(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func pagination(c *gin.Context) (int, int) {
	limit := 50
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
