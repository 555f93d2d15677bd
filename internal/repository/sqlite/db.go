package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"article-hub/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	// writers take the database lock at BEGIN so concurrent counter updates queue instead of failing
	dsn := path + "?_txlock=immediate&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}

// Store bundles every repository backed by a single database handle.
type Store struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Articles   repository.ArticleRepository
	Activities repository.ActivityRepository
	About      repository.AboutRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
		Articles:   NewArticleRepository(db),
		Activities: NewActivityRepository(db),
		About:      NewAboutRepository(db),
	}
}

// Init creates all tables in dependency order.
func (s *Store) Init(ctx context.Context) error {
	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"user", s.Users.Init},
		{"category", s.Categories.Init},
		{"article", s.Articles.Init},
		{"activity", s.Activities.Init},
		{"about", s.About.Init},
	}
	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			return fmt.Errorf("init %s repository: %w", step.name, err)
		}
	}
	return nil
}

func constraintCode(err error) int {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	switch code := constraintCode(err); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case code&0xff == sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "UNIQUE")
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	return constraintCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
