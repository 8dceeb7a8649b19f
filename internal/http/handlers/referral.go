package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tapcoin_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// Referrals lists the account's invited friends and claim state.
func (h *Handler) Referrals(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	refs, err := h.ReferralRepo.GetByReferrer(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": refs, "count": len(refs)})
}

// ReferralLink returns the personal invite link for the Mini App.
func (h *Handler) ReferralLink(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	link := fmt.Sprintf("https://t.me/%s/%s?startapp=ref_%d",
		h.Cfg.BotUsername, h.Cfg.WebAppShortName, accountID)
	c.JSON(http.StatusOK, gin.H{"link": link})
}

// ClaimReferral pays the referrer's bonus for one invited friend.
func (h *Handler) ClaimReferral(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral id"})
		return
	}

	coins, err := h.ReferralRepo.Claim(c.Request.Context(), referralID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "referral not found"})
		case errors.Is(err, repository.ErrAlreadyClaimed):
			c.JSON(http.StatusConflict, gin.H{"error": "already claimed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claim failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": coins})
}
