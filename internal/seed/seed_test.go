package seed

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-hub/internal/domain"
	"article-hub/internal/repository/sqlite"
	"article-hub/internal/service"
	"article-hub/internal/storage"
)

func newSeeder(t *testing.T) (*Seeder, *sqlite.Store, service.UserService, *storage.LocalStore) {
	t.Helper()
	dir := t.TempDir()

	db, err := sqlite.Open(filepath.Join(dir, "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	require.NoError(t, store.Init(context.Background()))

	files, err := storage.NewLocalStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := service.NewUserService(store.Users)
	return New(users, store.Categories, store.Articles, files, logger), store, users, files
}

var testOptions = Options{AdminPassword: "admin123", UserPassword: "test123"}

func TestRunSeedsDefaults(t *testing.T) {
	seeder, store, users, files := newSeeder(t)
	ctx := context.Background()

	res, err := seeder.Run(ctx, testOptions)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Categories: 3, Articles: 3}, res)

	admin, err := users.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	user, err := users.Authenticate(ctx, "testuser", "test123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	articles, err := store.Articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	for _, article := range articles {
		assert.NotEqual(t, domain.NoCategory, article.CategoryLabel(), article.Name)
		assert.Zero(t, article.Likes)
		assert.Zero(t, article.Downloads)

		obj, err := files.Open(ctx, article.File)
		require.NoError(t, err, article.File)
		obj.Body.Close()
		assert.Positive(t, obj.Size)
	}

	tech, err := store.Articles.GetByName(ctx, "Tech Article 1")
	require.NoError(t, err)
	assert.Equal(t, "Technology", tech.CategoryName)
	assert.Equal(t, "tech_article_1.pdf", tech.File)
}

func TestRunIsIdempotent(t *testing.T) {
	seeder, store, _, _ := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.Run(ctx, testOptions)
	require.NoError(t, err)

	res, err := seeder.Run(ctx, testOptions)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	categories, err := store.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	articles, err := store.Articles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 3)
}

func TestRunKeepsExistingRecords(t *testing.T) {
	seeder, store, users, _ := newSeeder(t)
	ctx := context.Background()

	_, err := users.Create(ctx, service.UserInput{
		Name:     "Someone Else",
		Username: "admin",
		Email:    "someone@example.com",
		Password: "original",
		Role:     domain.RoleUser,
	})
	require.NoError(t, err)
	_, err = store.Categories.Create(ctx, &domain.Category{Name: "Science"})
	require.NoError(t, err)

	res, err := seeder.Run(ctx, testOptions)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 1, Categories: 2, Articles: 3}, res)

	// the existing account is left untouched
	_, err = users.Authenticate(ctx, "admin", "original")
	assert.NoError(t, err)
}

func TestRunRequiresPasswords(t *testing.T) {
	seeder, _, _, _ := newSeeder(t)

	_, err := seeder.Run(context.Background(), Options{AdminPassword: "admin123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testuser")
}
