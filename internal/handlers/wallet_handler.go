package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WalletHandler serves wallet balance, deposit/withdrawal and ledger reads
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet handles GET /users/:id/wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := objectID(c, "id")
	if !ok {
		return
	}
	wallet, err := h.walletService.Wallet(c.Request.Context(), models.OwnerUser, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

type amountRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// Deposit handles POST /users/:id/wallet/deposit
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, ok := objectID(c, "id")
	if !ok {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	wallet, err := h.walletService.Wallet(c.Request.Context(), models.OwnerUser, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.walletService.AddBalance(c.Request.Context(), wallet.ID, req.Amount, models.ContextDeposit, primitive.NilObjectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposited": req.Amount})
}

// Withdraw handles POST /users/:id/wallet/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID, ok := objectID(c, "id")
	if !ok {
		return
	}
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	wallet, err := h.walletService.Wallet(c.Request.Context(), models.OwnerUser, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.walletService.SubtractBalance(c.Request.Context(), wallet.ID, req.Amount, models.ContextWithdrawal, primitive.NilObjectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawn": req.Amount})
}

// GetTransactions handles GET /users/:id/wallet/transactions
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID, ok := objectID(c, "id")
	if !ok {
		return
	}
	wallet, err := h.walletService.Wallet(c.Request.Context(), models.OwnerUser, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	txs, err := h.walletService.Transactions(c.Request.Context(), wallet.ID, intQuery(c, "page", 1), intQuery(c, "limit", 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
