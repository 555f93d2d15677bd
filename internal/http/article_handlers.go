package http

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"article-hub/internal/service"
)

func (h *Handler) listArticles(c *gin.Context) {
	articles, err := h.articles.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articlesToResponse(articles, true))
}

func (h *Handler) createArticle(c *gin.Context) {
	upload, closeFile, err := formUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer closeFile()

	article, err := h.articles.Create(c.Request.Context(), articleInput(c), upload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Article created successfully",
		"article": articleToResponse(*article, true),
	})
}

func (h *Handler) updateArticle(c *gin.Context) {
	id, ok := parseID(c, "article")
	if !ok {
		return
	}
	upload, closeFile, err := formUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer closeFile()

	article, err := h.articles.Update(c.Request.Context(), id, articleInput(c), upload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Article updated successfully",
		"article": articleToResponse(*article, true),
	})
}

func (h *Handler) deleteArticle(c *gin.Context) {
	id, ok := parseID(c, "article")
	if !ok {
		return
	}
	if err := h.articles.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// formUpload returns the "file" part of a multipart request, or nil when the
// request carries none. More than one "file" part is rejected. The returned
// func closes the opened part.
func formUpload(c *gin.Context) (*service.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, noop, tooLarge
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, noop, nil
		}
		return nil, noop, invalidForm(err)
	}
	if files := c.Request.MultipartForm.File["file"]; len(files) > 1 {
		return nil, noop, invalidForm(errMultipleFiles)
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, invalidForm(err)
	}
	return &service.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     f,
	}, func() { f.Close() }, nil
}

func articleInput(c *gin.Context) service.ArticleInput {
	return service.ArticleInput{
		Name:        c.PostForm("name"),
		Author:      c.PostForm("author"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
	}
}

var errMultipleFiles = errors.New("exactly one file is allowed")

type formError struct {
	err error
}

func (e *formError) Error() string { return "malformed upload: " + e.err.Error() }

func (e *formError) Unwrap() []error { return []error{service.ErrInvalidInput, e.err} }

func invalidForm(err error) error {
	return &formError{err: err}
}

func attachmentDisposition(name string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
