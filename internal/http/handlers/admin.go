package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) isAdmin(c *gin.Context) bool {
	accountID, ok := getAccountID(c)
	if !ok {
		return false
	}
	account, err := h.AccountRepo.GetByID(c.Request.Context(), accountID)
	if err != nil {
		return false
	}
	for _, id := range h.Cfg.AdminTelegramIDs {
		if id == account.TgID {
			return true
		}
	}
	return false
}

// AdminReset triggers the daily reset by hand. Idempotent per calendar day:
// if the cron already ran, the published combo comes back unchanged.
func (h *Handler) AdminReset(c *gin.Context) {
	if !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	result, err := h.ResetService.Run(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
