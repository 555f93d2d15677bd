package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"article-hub/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "nested", "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func createUser(t *testing.T, store *Store, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
	_, err := store.Users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func createCategory(t *testing.T, store *Store, name string) *domain.Category {
	t.Helper()

	category := &domain.Category{Name: name}
	_, err := store.Categories.Create(context.Background(), category)
	require.NoError(t, err)
	return category
}

func createArticle(t *testing.T, store *Store, name string, category *domain.Category) *domain.Article {
	t.Helper()

	article := &domain.Article{
		Name:        name,
		Author:      "author",
		Description: "description",
		File:        name + ".pdf",
	}
	if category != nil {
		article.CategoryID = &category.ID
	}
	_, err := store.Articles.Create(context.Background(), article)
	require.NoError(t, err)
	return article
}

func TestInitIsRepeatable(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Init(context.Background()))
}
