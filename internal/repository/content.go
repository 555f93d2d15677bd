package repository

import (
	"context"

	"article-hub/internal/domain"
)

// CategoryRepository manages article categories.
type CategoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, category *domain.Category) (int64, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// ArticleRepository exposes persistence operations for articles. Reads resolve
// the category name through a join.
type ArticleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, article *domain.Article) (int64, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Article, error)
	GetByName(ctx context.Context, name string) (*domain.Article, error)
	List(ctx context.Context) ([]domain.Article, error)
	ListLikedBy(ctx context.Context, userID int64) ([]domain.Article, error)
	HasFile(ctx context.Context, file string) (bool, error)
}

// ActivityRepository keeps the like/download log consistent with the article counters.
type ActivityRepository interface {
	Init(ctx context.Context) error
	ToggleLike(ctx context.Context, userID, articleID int64) (liked bool, likes int64, err error)
	RecordDownload(ctx context.Context, userID, articleID int64) (downloads int64, err error)
	HasLike(ctx context.Context, userID, articleID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.UserActivity, error)
}

// AboutRepository stores the singleton About record.
type AboutRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context) (*domain.About, error)
	Upsert(ctx context.Context, content string) (*domain.About, error)
}
