package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type aboutRequest struct {
	Content *string `json:"content"`
}

func (h *Handler) getAbout(c *gin.Context) {
	about, err := h.about.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": about.Content})
}

func (h *Handler) updateAbout(c *gin.Context) {
	var req aboutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == nil {
		badRequest(c, "content is required")
		return
	}

	if _, err := h.about.Update(c.Request.Context(), *req.Content); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "About content updated successfully"})
}
