package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tapcoin_webapp/internal/http/middleware"
	"tapcoin_webapp/internal/repository"
	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Cards returns the upgrade catalog with the account's owned levels
// and the cost of the next level for each card.
func (h *Handler) Cards(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cards, err := h.CardService.Catalog(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// UpgradeCard buys the next level of a card.
func (h *Handler) UpgradeCard(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	cardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	result, err := h.CardService.Upgrade(c.Request.Context(), accountID, cardID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient funds"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upgrade failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// CollectEarnings credits the hourly income accrued since the last collect.
func (h *Handler) CollectEarnings(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.CardService.CollectHourly(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "collect failed"})
		return
	}

	middleware.CoinsCredited.WithLabelValues("hourly").Add(float64(result.Collected))
	c.JSON(http.StatusOK, result)
}
