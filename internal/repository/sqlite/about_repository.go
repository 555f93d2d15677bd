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

// the CHECK pins the table to a single row
const createAboutTable = `
CREATE TABLE IF NOT EXISTS about (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	content TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL
);
`

type AboutRepository struct {
	db *sql.DB
}

func NewAboutRepository(db *sql.DB) repository.AboutRepository {
	return &AboutRepository{db: db}
}

func (r *AboutRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAboutTable); err != nil {
		return fmt.Errorf("create about table: %w", err)
	}
	return nil
}

func (r *AboutRepository) Get(ctx context.Context) (*domain.About, error) {
	var about domain.About
	err := r.db.QueryRowContext(ctx, `SELECT id, content, updated_at FROM about WHERE id = 1`).
		Scan(&about.ID, &about.Content, &about.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("about content: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan about: %w", err)
	}
	return &about, nil
}

func (r *AboutRepository) Upsert(ctx context.Context, content string) (*domain.About, error) {
	about := &domain.About{ID: 1, Content: content, UpdatedAt: time.Now().UTC()}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO about (id, content, updated_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET content=excluded.content, updated_at=excluded.updated_at`,
		about.Content,
		about.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert about: %w", err)
	}
	return about, nil
}
