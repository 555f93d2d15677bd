package service

import (
	"context"
	"errors"
	"fmt"

	"article-hub/internal/domain"
	"article-hub/internal/metrics"
	"article-hub/internal/repository"
	"article-hub/internal/storage"
)

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Liked bool
	Likes int64
}

// EngagementService covers the operations available to every signed-in user.
type EngagementService interface {
	ListAll(ctx context.Context) ([]domain.Article, error)
	ListLiked(ctx context.Context, username string) ([]domain.Article, error)
	ToggleLike(ctx context.Context, username string, articleID int64) (LikeResult, error)
	IsLiked(ctx context.Context, username string, articleID int64) (bool, error)
	Download(ctx context.Context, userID, articleID int64) (*domain.Article, *storage.Object, error)
	ListActivities(ctx context.Context, userID int64) ([]domain.UserActivity, error)
}

type engagementService struct {
	users      repository.UserRepository
	articles   repository.ArticleRepository
	activities repository.ActivityRepository
	files      storage.FileStore
}

func NewEngagementService(
	users repository.UserRepository,
	articles repository.ArticleRepository,
	activities repository.ActivityRepository,
	files storage.FileStore,
) EngagementService {
	return &engagementService{
		users:      users,
		articles:   articles,
		activities: activities,
		files:      files,
	}
}

func (s *engagementService) ListAll(ctx context.Context) ([]domain.Article, error) {
	return s.articles.List(ctx)
}

func (s *engagementService) ListLiked(ctx context.Context, username string) ([]domain.Article, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.articles.ListLikedBy(ctx, user.ID)
}

func (s *engagementService) ToggleLike(ctx context.Context, username string, articleID int64) (LikeResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return LikeResult{}, err
	}

	liked, likes, err := s.activities.ToggleLike(ctx, user.ID, articleID)
	if err != nil {
		return LikeResult{}, err
	}

	action := "unlike"
	if liked {
		action = "like"
	}
	metrics.LikeToggles.WithLabelValues(action).Inc()
	return LikeResult{Liked: liked, Likes: likes}, nil
}

func (s *engagementService) IsLiked(ctx context.Context, username string, articleID int64) (bool, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.activities.HasLike(ctx, user.ID, articleID)
}

// Download opens the article's file before recording anything, so a missing
// file does not inflate the counter. The caller owns the returned object.
func (s *engagementService) Download(ctx context.Context, userID, articleID int64) (*domain.Article, *storage.Object, error) {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.files.Open(ctx, article.File)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("article %d: %w: %v", articleID, ErrFileUnavailable, err)
		}
		return nil, nil, fmt.Errorf("open article file: %w", err)
	}

	downloads, err := s.activities.RecordDownload(ctx, userID, articleID)
	if err != nil {
		obj.Body.Close()
		return nil, nil, err
	}
	article.Downloads = downloads
	metrics.Downloads.Inc()
	return article, obj, nil
}

func (s *engagementService) ListActivities(ctx context.Context, userID int64) ([]domain.UserActivity, error) {
	return s.activities.ListByUser(ctx, userID)
}
