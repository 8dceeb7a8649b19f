package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tapcoin_webapp/internal/economy"
	"tapcoin_webapp/internal/http/middleware"
	"tapcoin_webapp/internal/repository"
	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// DailyStatus reports whether today's streak reward is still claimable.
func (h *Handler) DailyStatus(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	account, err := h.AccountRepo.GetByID(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"streak":        account.Streak,
		"claimed_today": economy.ClaimedToday(account.LastClaimDate, time.Now()),
	})
}

// ClaimDaily claims the streak reward for today.
func (h *Handler) ClaimDaily(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.RewardService.ClaimDaily(c.Request.Context(), accountID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrAlreadyClaimed) {
			c.JSON(http.StatusConflict, gin.H{"error": "already claimed today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claim failed"})
		return
	}

	middleware.CoinsCredited.WithLabelValues("daily").Add(float64(result.Reward))
	c.JSON(http.StatusOK, result)
}

// ComboStatus returns today's combo progress for the account.
func (h *Handler) ComboStatus(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := h.RewardService.ComboStatus(c.Request.Context(), accountID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no combo today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load combo"})
		return
	}

	c.JSON(http.StatusOK, state)
}

// FindComboCard checks one owned card against today's hidden combo.
func (h *Handler) FindComboCard(c *gin.Context) {
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

	state, err := h.RewardService.FindComboCard(c.Request.Context(), accountID, cardID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCardNotOwned):
			c.JSON(http.StatusConflict, gin.H{"error": "card not owned"})
			return
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no combo today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "combo check failed"})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ClaimCombo pays out the combo reward once all cards are found.
func (h *Handler) ClaimCombo(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.RewardService.ClaimCombo(c.Request.Context(), accountID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyClaimed):
			c.JSON(http.StatusConflict, gin.H{"error": "combo already claimed"})
		case errors.Is(err, service.ErrComboIncomplete):
			c.JSON(http.StatusConflict, gin.H{"error": "combo not complete"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no combo today"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "combo claim failed"})
		}
		return
	}

	middleware.CoinsCredited.WithLabelValues("combo").Add(float64(result.Reward))
	c.JSON(http.StatusOK, result)
}
