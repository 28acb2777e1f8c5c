package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/middleware"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req service.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	userID := middleware.UserID(c)
	habit, apiErr := h.habitService.Create(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

func (h *HabitHandler) Update(c *gin.Context) {
	var req service.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	userID := middleware.UserID(c)
	habit, apiErr := h.habitService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	habit, apiErr := h.habitService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

func (h *HabitHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	habits, apiErr := h.habitService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.habitService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
