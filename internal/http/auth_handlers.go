package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"article-hub/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.UserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userToResponse(*user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       user.Role,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

// logout exists for front-end symmetry; tokens are stateless and simply expire.
func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) checkSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"role": currentClaims(c).Role})
}

func (h *Handler) adminPanel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the admin panel"})
}

func (h *Handler) userPanel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the user panel"})
}
