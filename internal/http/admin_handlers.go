package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"article-hub/internal/domain"
	"article-hub/internal/service"
)

// Password is optional on update, where an empty value keeps the current hash.
type userRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

func (r userRequest) input() service.UserInput {
	return service.UserInput{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userToResponse(*user),
	})
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    userToResponse(*user),
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": categoryToResponse(*category),
	})
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": categoryToResponse(*category),
	})
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
