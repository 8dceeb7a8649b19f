package handlers

import (
	"net/http"
	"net/url"

	"tapcoin_webapp/internal/domain"
	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	InitData string `json:"init_data"`
}

// Auth verifies Telegram initData, provisions the account on first login
// and returns a JWT for the rest of the API.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if len(req.InitData) > 4096 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "init_data too long"})
		return
	}

	tgUser, ok := service.VerifyIdentity(req.InitData, h.Cfg.BotToken)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or stale telegram data"})
		return
	}

	// start_param carries the referrer on first open via a referral link
	values, _ := url.ParseQuery(req.InitData)
	referrerID := service.ParseStartParam(values)

	ctx := c.Request.Context()
	account, created, err := h.AccountService.GetOrCreate(ctx, tgUser, referrerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}

	token, err := service.GenerateJWT(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"created": created,
		"account": accountJSON(account),
	})
}

func accountJSON(a *domain.Account) gin.H {
	return gin.H{
		"id":                 a.ID,
		"tg_id":              a.TgID,
		"username":           a.Username,
		"first_name":         a.FirstName,
		"photo_url":          a.PhotoURL,
		"coins":              a.Coins,
		"crystals":           a.Crystals,
		"earn_per_tap":       a.EarnPerTap,
		"hourly_rate":        a.HourlyRate,
		"energy":             a.Energy,
		"max_energy":         a.MaxEnergy,
		"energy_regen_level": a.EnergyRegenLevel,
		"level":              a.Level,
		"xp":                 a.XP,
		"league":             a.League,
		"total_earned":       a.TotalEarned,
		"streak":             a.Streak,
		"boosts_left":        a.BoostsLeft,
		"created_at":         a.CreatedAt,
	}
}
