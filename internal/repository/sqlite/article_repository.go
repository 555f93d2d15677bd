package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"article-hub/internal/domain"
	"article-hub/internal/repository"
)

const createArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	category_id INTEGER NULL REFERENCES categories(id) ON DELETE SET NULL,
	description TEXT NOT NULL DEFAULT '',
	file TEXT NOT NULL DEFAULT '',
	likes INTEGER NOT NULL DEFAULT 0,
	downloads INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_category_id ON articles(category_id);
`

const selectArticle = `
SELECT a.id, a.name, a.author, a.category_id, COALESCE(c.name, ''), a.description, a.file,
	a.likes, a.downloads, a.created_at, a.updated_at
FROM articles a
LEFT JOIN categories c ON c.id = a.category_id`

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createArticlesTable); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (int64, error) {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO articles (name, author, category_id, description, file, likes, downloads, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.Name,
		article.Author,
		nullInt64(article.CategoryID),
		article.Description,
		article.File,
		article.Likes,
		article.Downloads,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("category for article %q: %w", article.Name, repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("article last insert id: %w", err)
	}
	article.ID = id
	return id, nil
}

// Update rewrites the editable columns. Counters are owned by ActivityRepository
// and are left untouched.
func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	article.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE articles
SET name=?, author=?, category_id=?, description=?, file=?, updated_at=?
WHERE id=?`,
		article.Name,
		article.Author,
		nullInt64(article.CategoryID),
		article.Description,
		article.File,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("category for article %d: %w", article.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("update article: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article %d: %w", article.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("article %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *ArticleRepository) Get(ctx context.Context, id int64) (*domain.Article, error) {
	row := r.db.QueryRowContext(ctx, selectArticle+`
WHERE a.id = ?`, id)
	article, err := scanArticle(row)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("article %d: %w", id, err)
	}
	return article, err
}

func (r *ArticleRepository) GetByName(ctx context.Context, name string) (*domain.Article, error) {
	row := r.db.QueryRowContext(ctx, selectArticle+`
WHERE a.name = ?
ORDER BY a.id ASC
LIMIT 1`, name)
	article, err := scanArticle(row)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("article %q: %w", name, err)
	}
	return article, err
}

func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	return r.query(ctx, selectArticle+`
ORDER BY a.id ASC`)
}

func (r *ArticleRepository) ListLikedBy(ctx context.Context, userID int64) ([]domain.Article, error) {
	return r.query(ctx, selectArticle+`
JOIN user_activities ua ON ua.article_id = a.id
WHERE ua.user_id = ? AND ua.activity_type = ?
ORDER BY ua.timestamp ASC, ua.id ASC`, userID, string(domain.ActivityLike))
}

// HasFile reports whether any article references the stored file.
func (r *ArticleRepository) HasFile(ctx context.Context, file string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE file=?)`, file).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query article file: %w", err)
	}
	return exists, nil
}

func (r *ArticleRepository) query(ctx context.Context, query string, args ...any) ([]domain.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func scanArticle(row interface {
	Scan(dest ...any) error
}) (*domain.Article, error) {
	var (
		article    domain.Article
		categoryID sql.NullInt64
	)
	if err := row.Scan(
		&article.ID,
		&article.Name,
		&article.Author,
		&categoryID,
		&article.CategoryName,
		&article.Description,
		&article.File,
		&article.Likes,
		&article.Downloads,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	if categoryID.Valid {
		id := categoryID.Int64
		article.CategoryID = &id
	}
	return &article, nil
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
