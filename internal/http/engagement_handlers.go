package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listAllArticles(c *gin.Context) {
	articles, err := h.engagement.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesToResponse(articles, false))
}

func (h *Handler) listMyArticles(c *gin.Context) {
	articles, err := h.engagement.ListLiked(c.Request.Context(), currentClaims(c).Username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesToResponse(articles, false))
}

func (h *Handler) toggleLike(c *gin.Context) {
	id, ok := parseID(c, "article")
	if !ok {
		return
	}

	result, err := h.engagement.ToggleLike(c.Request.Context(), currentClaims(c).Username, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Article unliked successfully"
	if result.Liked {
		message = "Article liked successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"liked":   result.Liked,
		"likes":   result.Likes,
	})
}

func (h *Handler) downloadArticle(c *gin.Context) {
	id, ok := parseID(c, "article")
	if !ok {
		return
	}

	article, obj, err := h.engagement.Download(c.Request.Context(), currentClaims(c).ID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
		"Content-Disposition": attachmentDisposition(article.File),
	})
}

func (h *Handler) isLiked(c *gin.Context) {
	id, ok := parseID(c, "article")
	if !ok {
		return
	}

	liked, err := h.engagement.IsLiked(c.Request.Context(), currentClaims(c).Username, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_liked": liked})
}

func (h *Handler) listActivities(c *gin.Context) {
	activities, err := h.engagement.ListActivities(c.Request.Context(), currentClaims(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ActivityResponse, len(activities))
	for i := range activities {
		resp[i] = activityToResponse(activities[i])
	}
	c.JSON(http.StatusOK, resp)
}
