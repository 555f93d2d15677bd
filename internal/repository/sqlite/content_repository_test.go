package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-hub/internal/domain"
	"article-hub/internal/repository"
)

func TestCategoryRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tech := createCategory(t, store, "Technology")
	createCategory(t, store, "Science")

	_, err := store.Categories.Create(ctx, &domain.Category{Name: "Technology"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := store.Categories.GetByName(ctx, "Technology")
	require.NoError(t, err)
	assert.Equal(t, tech.ID, got.ID)

	tech.Name = "Tech"
	require.NoError(t, store.Categories.Update(ctx, tech))
	got, err = store.Categories.GetByID(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", got.Name)

	tech.Name = "Science"
	assert.ErrorIs(t, store.Categories.Update(ctx, tech), repository.ErrConflict)
	assert.ErrorIs(t, store.Categories.Update(ctx, &domain.Category{ID: 42, Name: "x"}), repository.ErrNotFound)
	assert.ErrorIs(t, store.Categories.Delete(ctx, 42), repository.ErrNotFound)

	_, err = store.Categories.GetByName(ctx, "Technology")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	categories, err := store.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Tech", categories[0].Name)
	assert.Equal(t, "Science", categories[1].Name)
}

func TestArticleRepositoryResolvesCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	science := createCategory(t, store, "Science")
	article := createArticle(t, store, "Physics", science)

	got, err := store.Articles.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science", got.CategoryName)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, science.ID, *got.CategoryID)
	assert.Equal(t, "Physics.pdf", got.File)

	byName, err := store.Articles.GetByName(ctx, "Physics")
	require.NoError(t, err)
	assert.Equal(t, article.ID, byName.ID)

	missing := int64(999)
	_, err = store.Articles.Create(ctx, &domain.Article{Name: "Orphan", CategoryID: &missing})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	articles, err := store.Articles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestArticleRepositoryHasFile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createArticle(t, store, "Paper", nil)

	found, err := store.Articles.HasFile(ctx, "Paper.pdf")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.Articles.HasFile(ctx, "other.pdf")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestArticleRepositoryCategoryDeleteLeavesArticle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	arts := createCategory(t, store, "Arts")
	article := createArticle(t, store, "Painting", arts)

	require.NoError(t, store.Categories.Delete(ctx, arts.ID))

	got, err := store.Articles.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, domain.NoCategory, got.CategoryLabel())
}

func TestArticleRepositoryUpdateKeepsCounters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "alice")
	article := createArticle(t, store, "Draft", nil)
	_, _, err := store.Activities.ToggleLike(ctx, user.ID, article.ID)
	require.NoError(t, err)

	article.Name = "Final"
	article.Likes = 0
	require.NoError(t, store.Articles.Update(ctx, article))

	got, err := store.Articles.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)
	assert.EqualValues(t, 1, got.Likes)

	assert.ErrorIs(t, store.Articles.Update(ctx, &domain.Article{ID: 999, Name: "x"}), repository.ErrNotFound)
}

func TestArticleRepositoryDeleteCascadesActivities(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "alice")
	article := createArticle(t, store, "Gone", nil)
	_, _, err := store.Activities.ToggleLike(ctx, user.ID, article.ID)
	require.NoError(t, err)

	require.NoError(t, store.Articles.Delete(ctx, article.ID))
	assert.ErrorIs(t, store.Articles.Delete(ctx, article.ID), repository.ErrNotFound)

	activities, err := store.Activities.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestAboutRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.About.Get(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.About.Upsert(ctx, "first")
	require.NoError(t, err)
	about, err := store.About.Upsert(ctx, "second")
	require.NoError(t, err)
	assert.EqualValues(t, 1, about.ID)

	got, err := store.About.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)
}
