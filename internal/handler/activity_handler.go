package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/middleware"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/progress"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/service"
)

type ActivityHandler struct {
	activityService *service.ActivityService
	loc             *time.Location
}

func NewActivityHandler(activityService *service.ActivityService, loc *time.Location) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, loc: loc}
}

type logActivityRequest struct {
	ID              string   `json:"id"`
	Kind            string   `json:"kind"`
	HabitID         string   `json:"habitId"`
	Timestamp       string   `json:"timestamp"`
	Amount          *float64 `json:"amount"`
	DurationSeconds int      `json:"durationSeconds"`
}

type updateActivityRequest struct {
	Kind      *string  `json:"kind"`
	Timestamp *string  `json:"timestamp"`
	Amount    *float64 `json:"amount"`
}

func (h *ActivityHandler) Log(c *gin.Context) {
	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	input := service.LogActivityInput{
		ID:              req.ID,
		Kind:            req.Kind,
		HabitID:         req.HabitID,
		Amount:          req.Amount,
		DurationSeconds: req.DurationSeconds,
	}
	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"code": "invalid_timestamp", "message": "timestamp must be RFC 3339"},
			})
			return
		}
		input.Timestamp = &ts
	}

	userID := middleware.UserID(c)
	activity, apiErr := h.activityService.Log(c.Request.Context(), userID, input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	if activity == nil {
		// Same action already in flight; acknowledged without a second write.
		c.JSON(http.StatusAccepted, gin.H{"dropped": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"activity": activity})
}

func (h *ActivityHandler) Update(c *gin.Context) {
	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	input := service.UpdateActivityInput{
		Kind:   req.Kind,
		Amount: req.Amount,
	}
	if req.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"code": "invalid_timestamp", "message": "timestamp must be RFC 3339"},
			})
			return
		}
		input.Timestamp = &ts
	}

	userID := middleware.UserID(c)
	activity, apiErr := h.activityService.Update(c.Request.Context(), userID, c.Param("id"), input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

func (h *ActivityHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.activityService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ActivityHandler) List(c *gin.Context) {
	now := time.Now().In(h.loc)
	window, ok := progress.ResolveRange(c.DefaultQuery("range", progress.Range7d), now, h.loc)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_range", "message": "range must be one of auto, 24h, 7d, 1mo, 1y"},
		})
		return
	}

	userID := middleware.UserID(c)
	activities, apiErr := h.activityService.List(c.Request.Context(), userID, window.From, window.Until)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
