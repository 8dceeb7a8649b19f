package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// League reports the account's tier and progress toward the next one.
func (h *Handler) League(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status, err := h.RewardService.League(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load league"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// PromoteLeague advances the account to the next tier if total earnings qualify.
func (h *Handler) PromoteLeague(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.RewardService.PromoteLeague(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrNotEligible) {
			c.JSON(http.StatusConflict, gin.H{"error": "not eligible for promotion"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "promotion failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Leaderboard returns the top accounts by coin balance.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	top, err := h.AccountRepo.GetTopByCoins(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}
