package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"article-hub/internal/domain"
	"article-hub/internal/repository"
)

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
`

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCategoriesTable); err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, category.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("category %q: %w", category.Name, repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category last insert id: %w", err)
	}
	category.ID = id
	return id, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name=? WHERE id=?`, category.Name, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", category.Name, repository.ErrConflict)
		}
		return fmt.Errorf("update category: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %d: %w", category.ID, repository.ErrNotFound)
	}
	return nil
}

// Delete removes the category. Articles keep existing with a NULL category
// (articles.category_id is declared ON DELETE SET NULL).
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id=?`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE name=?`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %q: %w", name, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
