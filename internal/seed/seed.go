// Package seed inserts the default accounts, categories and sample articles.
// Every item is looked up before it is created, so running it repeatedly is safe.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"article-hub/internal/domain"
	"article-hub/internal/repository"
	"article-hub/internal/service"
	"article-hub/internal/storage"
)

// Options configuration for the seeder
type Options struct {
	AdminPassword string
	UserPassword  string
}

// Result reports how many records a run inserted.
type Result struct {
	Users      int
	Categories int
	Articles   int
}

type sampleArticle struct {
	name        string
	author      string
	category    string
	description string
	file        string
}

var (
	defaultCategories = []string{"Technology", "Science", "Arts"}

	sampleArticles = []sampleArticle{
		{"Tech Article 1", "admin", "Technology", "An article about technology.", "tech_article_1.pdf"},
		{"Science Article 1", "admin", "Science", "An article about science.", "science_article_1.pdf"},
		{"Arts Article 1", "testuser", "Arts", "An article about arts.", "arts_article_1.pdf"},
	}
)

type Seeder struct {
	users      service.UserService
	categories repository.CategoryRepository
	articles   repository.ArticleRepository
	files      storage.FileStore
	logger     *logrus.Logger
}

func New(users service.UserService, categories repository.CategoryRepository, articles repository.ArticleRepository, files storage.FileStore, logger *logrus.Logger) *Seeder {
	if logger == nil {
		logger = logrus.New()
	}
	return &Seeder{
		users:      users,
		categories: categories,
		articles:   articles,
		files:      files,
		logger:     logger,
	}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	accounts := []service.UserInput{
		{Name: "Admin User", Username: "admin", Email: "admin@example.com", Password: opts.AdminPassword, Role: domain.RoleAdmin},
		{Name: "Test User", Username: "testuser", Email: "testuser@example.com", Password: opts.UserPassword, Role: domain.RoleUser},
	}
	for _, account := range accounts {
		created, err := s.ensureUser(ctx, account)
		if err != nil {
			return res, err
		}
		if created {
			res.Users++
		}
	}

	categoryIDs := make(map[string]int64, len(defaultCategories))
	for _, name := range defaultCategories {
		category, created, err := s.ensureCategory(ctx, name)
		if err != nil {
			return res, err
		}
		categoryIDs[name] = category.ID
		if created {
			res.Categories++
		}
	}

	for _, sample := range sampleArticles {
		created, err := s.ensureArticle(ctx, sample, categoryIDs[sample.category])
		if err != nil {
			return res, err
		}
		if created {
			res.Articles++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"users":      res.Users,
		"categories": res.Categories,
		"articles":   res.Articles,
	}).Info("seed complete")
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, in service.UserInput) (bool, error) {
	_, err := s.users.GetByUsername(ctx, in.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("lookup user %s: %w", in.Username, err)
	}
	if strings.TrimSpace(in.Password) == "" {
		return false, fmt.Errorf("seed password for %s is empty", in.Username)
	}
	if _, err := s.users.Create(ctx, in); err != nil {
		return false, fmt.Errorf("seed user %s: %w", in.Username, err)
	}
	s.logger.Infof("seeded user %s", in.Username)
	return true, nil
}

func (s *Seeder) ensureCategory(ctx context.Context, name string) (*domain.Category, bool, error) {
	category, err := s.categories.GetByName(ctx, name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup category %s: %w", name, err)
	}
	category = &domain.Category{Name: name}
	if _, err := s.categories.Create(ctx, category); err != nil {
		return nil, false, fmt.Errorf("seed category %s: %w", name, err)
	}
	return category, true, nil
}

func (s *Seeder) ensureArticle(ctx context.Context, sample sampleArticle, categoryID int64) (bool, error) {
	_, err := s.articles.GetByName(ctx, sample.name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("lookup article %s: %w", sample.name, err)
	}

	placeholder := fmt.Sprintf("%s\n\n%s\n", sample.name, sample.description)
	ref, err := s.files.Save(ctx, sample.file, strings.NewReader(placeholder))
	if err != nil {
		return false, fmt.Errorf("store sample file %s: %w", sample.file, err)
	}

	article := &domain.Article{
		Name:        sample.name,
		Author:      sample.author,
		CategoryID:  &categoryID,
		Description: sample.description,
		File:        ref,
	}
	if _, err := s.articles.Create(ctx, article); err != nil {
		return false, fmt.Errorf("seed article %s: %w", sample.name, err)
	}
	return true, nil
}
