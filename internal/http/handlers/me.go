package handlers

import (
	"net/http"
	"time"

	"tapcoin_webapp/internal/economy"
	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Me returns the current account with energy rolled forward to now and
// the uncollected hourly income.
func (h *Handler) Me(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	account, err := h.TapService.SyncEnergy(ctx, accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}

	resp := accountJSON(account)
	resp["pending_hourly"] = service.PendingHourly(account, time.Now())
	resp["level_up_threshold"] = economy.LevelUpThreshold(account.Level)
	c.JSON(http.StatusOK, resp)
}

// Transactions returns the most recent ledger entries for the account.
func (h *Handler) Transactions(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	txs, err := h.TransactionRepo.GetByAccountID(c.Request.Context(), accountID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
