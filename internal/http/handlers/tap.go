package handlers

import (
	"errors"
	"net/http"

	"tapcoin_webapp/internal/http/middleware"
	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type TapRequest struct {
	Taps int64 `json:"taps"`
}

// Tap applies a batch of taps: energy is spent, coins and XP are earned.
func (h *Handler) Tap(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req TapRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	result, err := h.TapService.Tap(c.Request.Context(), accountID, req.Taps)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTaps):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tap count"})
		case errors.Is(err, service.ErrNoEnergy):
			c.JSON(http.StatusConflict, gin.H{"error": "not enough energy"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "tap failed"})
		}
		return
	}

	middleware.TapsProcessed.Add(float64(req.Taps))
	middleware.CoinsCredited.WithLabelValues("tap").Add(float64(result.Gained))
	c.JSON(http.StatusOK, result)
}

// Boost refills energy to max, spending one of the daily boosts.
func (h *Handler) Boost(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.TapService.Boost(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrNoBoosts) {
			c.JSON(http.StatusConflict, gin.H{"error": "no boosts left"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boost failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
