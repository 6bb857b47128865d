package http

import (
	"errors"
	"net/http"

	"propmarket/internal/entity"
	"propmarket/internal/usecase"
	"propmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txnUseCase usecase.TransactionUseCase
	logger     *logger.Logger
}

func NewTransactionHandler(txnUseCase usecase.TransactionUseCase, logger *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		txnUseCase: txnUseCase,
		logger:     logger,
	}
}

type BuyRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Buy godoc
// @Summary      Buy a property
// @Description  Create a sale transaction at the listed price
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BuyRequest true "Property to buy"
// @Success      201  {object}  entity.Transaction
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /transactions/buy [post]
func (h *TransactionHandler) Buy(c *gin.Context) {
	userID := c.GetString("user_id")

	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.txnUseCase.Buy(userID, req.PropertyID)
	if err != nil {
		h.respondTxnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// AttachProof godoc
// @Summary      Attach payment proof
// @Description  Buyer uploads a transfer proof; transaction moves to WAITING_VERIFICATION
// @Tags         transactions
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transaction ID"
// @Param        proof formData file true "Payment proof"
// @Success      200  {object}  entity.Transaction
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /transactions/{id}/proof [post]
func (h *TransactionHandler) AttachProof(c *gin.Context) {
	userID := c.GetString("user_id")
	txnID := c.Param("id")

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

	txn, err := h.txnUseCase.AttachProof(userID, txnID, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.respondTxnError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

// UpdateStatus godoc
// @Summary      Update transaction status
// @Description  Seller or admin advances a transaction through fulfillment
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transaction ID"
// @Param        request body UpdateTransactionStatusRequest true "New status"
// @Success      200  {object}  entity.Transaction
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /transactions/{id}/status [patch]
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	isAdmin := c.GetString("user_role") == string(entity.RoleAdmin)
	txnID := c.Param("id")

	var req UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.txnUseCase.UpdateStatus(userID, isAdmin, txnID, entity.TransactionStatus(req.Status))
	if err != nil {
		h.respondTxnError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

// ListPurchases godoc
// @Summary      List my purchases
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /transactions/purchases [get]
func (h *TransactionHandler) ListPurchases(c *gin.Context) {
	userID := c.GetString("user_id")

	txns, err := h.txnUseCase.ListPurchases(userID)
	if err != nil {
		h.logger.Error("Failed to list purchases: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns, "count": len(txns)})
}

// ListSales godoc
// @Summary      List my sales
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /transactions/sales [get]
func (h *TransactionHandler) ListSales(c *gin.Context) {
	userID := c.GetString("user_id")

	txns, err := h.txnUseCase.ListSales(userID)
	if err != nil {
		h.logger.Error("Failed to list sales: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns, "count": len(txns)})
}

// ListAll godoc
// @Summary      List all transactions (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/transactions [get]
func (h *TransactionHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)

	txns, err := h.txnUseCase.ListAll(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns, "count": len(txns)})
}

func (h *TransactionHandler) respondTxnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTransactionNotFound), errors.Is(err, usecase.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrTransactionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidTxnStatus),
		errors.Is(err, usecase.ErrProofNotPending),
		errors.Is(err, usecase.ErrOwnProperty),
		errors.Is(err, usecase.ErrNotListed),
		errors.Is(err, usecase.ErrPropertyUnowned):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Transaction operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
