package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/middleware"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/progress"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/service"
)

type StatsHandler struct {
	progressService *service.ProgressService
}

func NewStatsHandler(progressService *service.ProgressService) *StatsHandler {
	return &StatsHandler{progressService: progressService}
}

func (h *StatsHandler) Today(c *gin.Context) {
	userID := middleware.UserID(c)
	stats, apiErr := h.progressService.Stats(c.Request.Context(), userID, habitIDsQuery(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *StatsHandler) Series(c *gin.Context) {
	userID := middleware.UserID(c)
	rangeKey := c.DefaultQuery("range", progress.RangeAuto)
	view, apiErr := h.progressService.Series(c.Request.Context(), userID, rangeKey, habitIDsQuery(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": view})
}

// habitIDsQuery reads the optional visible-habit filter, a comma-separated
// id list. Empty means every habit.
func habitIDsQuery(c *gin.Context) []string {
	raw := c.Query("habitIds")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
