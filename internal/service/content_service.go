package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"article-hub/internal/domain"
	"article-hub/internal/metrics"
	"article-hub/internal/repository"
	"article-hub/internal/storage"
)

// CategoryService manages categories on behalf of administrators.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	category := &domain.Category{Name: name}
	if _, err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category. A missing category is reported before the name
// is validated, matching article updates.
func (s *categoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if name == category.Name {
		return category, nil
	}
	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// ArticleInput carries the form fields of an article upload. Category is a
// category name, not an id.
type ArticleInput struct {
	Name        string
	Author      string
	Category    string
	Description string
}

// Upload is a file received from the client.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ArticleService covers the administrative article operations.
type ArticleService interface {
	List(ctx context.Context) ([]domain.Article, error)
	Create(ctx context.Context, in ArticleInput, file *Upload) (*domain.Article, error)
	Update(ctx context.Context, id int64, in ArticleInput, file *Upload) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	files      storage.FileStore
}

func NewArticleService(articles repository.ArticleRepository, categories repository.CategoryRepository, files storage.FileStore) ArticleService {
	return &articleService{
		articles:   articles,
		categories: categories,
		files:      files,
	}
}

func (s *articleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.articles.List(ctx)
}

// Create validates the input and resolves the category before anything is
// written, so a rejected request leaves neither a file nor a row behind.
func (s *articleService) Create(ctx context.Context, in ArticleInput, file *Upload) (*domain.Article, error) {
	if file == nil || file.Filename == "" {
		return nil, invalid("no file part in the request")
	}
	if file.Size == 0 {
		return nil, invalid("uploaded file is empty")
	}
	in = normalizeArticleInput(in)
	if err := validateArticleInput(in); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByName(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	ref, err := s.store(ctx, file)
	if err != nil {
		return nil, err
	}

	article := &domain.Article{
		Name:        in.Name,
		Author:      in.Author,
		CategoryID:  &category.ID,
		Description: in.Description,
		File:        ref,
	}
	id, err := s.articles.Create(ctx, article)
	if err != nil {
		s.discard(ctx, ref)
		return nil, err
	}
	return s.articles.Get(ctx, id)
}

func (s *articleService) Update(ctx context.Context, id int64, in ArticleInput, file *Upload) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in = normalizeArticleInput(in)
	if err := validateArticleInput(in); err != nil {
		return nil, err
	}

	category, err := s.categories.GetByName(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	stored := ""
	if file != nil && file.Filename != "" {
		if file.Size == 0 {
			return nil, invalid("uploaded file is empty")
		}
		ref, err := s.store(ctx, file)
		if err != nil {
			return nil, err
		}
		article.File = ref
		stored = ref
	}

	article.Name = in.Name
	article.Author = in.Author
	article.CategoryID = &category.ID
	article.Description = in.Description
	if err := s.articles.Update(ctx, article); err != nil {
		if stored != "" {
			s.discard(ctx, stored)
		}
		return nil, err
	}
	return s.articles.Get(ctx, id)
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	return s.articles.Delete(ctx, id)
}

func (s *articleService) store(ctx context.Context, file *Upload) (string, error) {
	ref, err := s.files.Save(ctx, file.Filename, file.Body)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return "", invalid("file name is invalid")
		}
		return "", fmt.Errorf("store upload: %w", err)
	}
	metrics.Uploads.Inc()
	return ref, nil
}

// discard removes an upload whose article write failed. A file another article
// still references is kept; an overwrite of that file cannot be undone.
func (s *articleService) discard(ctx context.Context, ref string) {
	ctx = context.WithoutCancel(ctx)
	inUse, err := s.articles.HasFile(ctx, ref)
	if err != nil || inUse {
		return
	}
	_ = s.files.Delete(ctx, ref)
}

func normalizeArticleInput(in ArticleInput) ArticleInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func validateArticleInput(in ArticleInput) error {
	switch {
	case in.Name == "":
		return invalid("name is required")
	case in.Category == "":
		return invalid("category is required")
	}
	return nil
}

// AboutService reads and writes the About page.
type AboutService interface {
	Get(ctx context.Context) (*domain.About, error)
	Update(ctx context.Context, content string) (*domain.About, error)
}

type aboutService struct {
	about repository.AboutRepository
}

func NewAboutService(about repository.AboutRepository) AboutService {
	return &aboutService{about: about}
}

func (s *aboutService) Get(ctx context.Context) (*domain.About, error) {
	return s.about.Get(ctx)
}

func (s *aboutService) Update(ctx context.Context, content string) (*domain.About, error) {
	return s.about.Upsert(ctx, content)
}
