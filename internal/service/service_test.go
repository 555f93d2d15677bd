package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"article-hub/internal/repository/sqlite"
	"article-hub/internal/storage"
)

type fixture struct {
	store      *sqlite.Store
	files      *storage.LocalStore
	uploadDir  string
	users      UserService
	categories CategoryService
	articles   ArticleService
	engagement EngagementService
	about      AboutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := sqlite.Open(filepath.Join(dir, "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	require.NoError(t, store.Init(context.Background()))

	uploadDir := filepath.Join(dir, "uploads")
	files, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	users := NewUserService(store.Users)
	users.(*userService).cost = bcrypt.MinCost

	return &fixture{
		store:      store,
		files:      files,
		uploadDir:  uploadDir,
		users:      users,
		categories: NewCategoryService(store.Categories),
		articles:   NewArticleService(store.Articles, store.Categories, files),
		engagement: NewEngagementService(store.Users, store.Articles, store.Activities, files),
		about:      NewAboutService(store.About),
	}
}

func upload(name, body string) *Upload {
	return &Upload{Filename: name, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func (f *fixture) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
