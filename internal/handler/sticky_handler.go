package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/middleware"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/service"
)

type StickyHandler struct {
	stickyService *service.StickyService
	tagService    *service.TagService
}

func NewStickyHandler(stickyService *service.StickyService, tagService *service.TagService) *StickyHandler {
	return &StickyHandler{stickyService: stickyService, tagService: tagService}
}

func (h *StickyHandler) Create(c *gin.Context) {
	var req service.StickyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	userID := middleware.UserID(c)
	sticky, apiErr := h.stickyService.Create(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sticky": sticky})
}

func (h *StickyHandler) Update(c *gin.Context) {
	var req service.StickyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	userID := middleware.UserID(c)
	sticky, apiErr := h.stickyService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sticky": sticky})
}

func (h *StickyHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	stickies, apiErr := h.stickyService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stickies": stickies})
}

func (h *StickyHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.stickyService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StickyHandler) CreateTag(c *gin.Context) {
	var req service.TagInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	userID := middleware.UserID(c)
	tag, apiErr := h.tagService.Create(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

func (h *StickyHandler) UpdateTag(c *gin.Context) {
	var req service.TagInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	userID := middleware.UserID(c)
	tag, apiErr := h.tagService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

func (h *StickyHandler) ListTags(c *gin.Context) {
	userID := middleware.UserID(c)
	tags, apiErr := h.tagService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *StickyHandler) DeleteTag(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.tagService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
