package http

import (
	"time"

	"article-hub/internal/domain"
)

type UserResponse struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ArticleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description"`
	File        string `json:"file,omitempty"`
	Likes       int64  `json:"likes"`
	Downloads   int64  `json:"downloads"`
}

type ActivityResponse struct {
	ID           int64               `json:"id"`
	ArticleID    int64               `json:"article_id"`
	ActivityType domain.ActivityType `json:"activity_type"`
	Timestamp    string              `json:"timestamp"`
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// articleToResponse renders an article; the stored file reference is only
// included for administrators.
func articleToResponse(a domain.Article, withFile bool) ArticleResponse {
	resp := ArticleResponse{
		ID:          a.ID,
		Name:        a.Name,
		Author:      a.Author,
		Category:    a.CategoryLabel(),
		Description: a.Description,
		Likes:       a.Likes,
		Downloads:   a.Downloads,
	}
	if withFile {
		resp.File = a.File
	}
	return resp
}

func articlesToResponse(articles []domain.Article, withFile bool) []ArticleResponse {
	resp := make([]ArticleResponse, len(articles))
	for i := range articles {
		resp[i] = articleToResponse(articles[i], withFile)
	}
	return resp
}

func activityToResponse(a domain.UserActivity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		ArticleID:    a.ArticleID,
		ActivityType: a.Type,
		Timestamp:    a.Timestamp.UTC().Format(time.RFC3339),
	}
}
