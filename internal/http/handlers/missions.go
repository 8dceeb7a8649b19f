package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tapcoin_webapp/internal/domain"
	"tapcoin_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// Missions lists active missions with the account's completion state.
func (h *Handler) Missions(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	missions, err := h.MissionRepo.GetActiveMissions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load missions"})
		return
	}

	completed, err := h.MissionRepo.GetCompletedIDs(ctx, accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load missions"})
		return
	}

	out := make([]domain.MissionWithStatus, 0, len(missions))
	for _, m := range missions {
		out = append(out, domain.MissionWithStatus{Mission: *m, Completed: completed[m.ID]})
	}

	c.JSON(http.StatusOK, gin.H{"missions": out})
}

// CompleteMission marks a mission done and credits its reward, once.
func (h *Handler) CompleteMission(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	missionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	ctx := c.Request.Context()
	mission, err := h.MissionRepo.GetByID(ctx, missionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}

	coins, err := h.MissionRepo.Complete(ctx, accountID, mission)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyClaimed) {
			c.JSON(http.StatusConflict, gin.H{"error": "mission already completed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission completion failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reward": mission.Reward, "coins": coins})
}
