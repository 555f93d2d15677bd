package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-hub/internal/domain"
	"article-hub/internal/repository"
)

func TestToggleLikeAlternates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, store, "alice")
	article := createArticle(t, store, "Article", nil)

	wantLiked := []bool{true, false, true}
	wantLikes := []int64{1, 0, 1}
	for i := range wantLiked {
		liked, likes, err := store.Activities.ToggleLike(ctx, user.ID, article.ID)
		require.NoError(t, err)
		assert.Equal(t, wantLiked[i], liked, "toggle %d", i+1)
		assert.Equal(t, wantLikes[i], likes, "toggle %d", i+1)

		has, err := store.Activities.HasLike(ctx, user.ID, article.ID)
		require.NoError(t, err)
		assert.Equal(t, wantLiked[i], has)
	}

	activities, err := store.Activities.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, domain.ActivityLike, activities[0].Type)
	assert.Equal(t, article.ID, activities[0].ArticleID)
	assert.False(t, activities[0].Timestamp.IsZero())

	liked, err := store.Articles.ListLikedBy(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, article.ID, liked[0].ID)
}

func TestToggleLikeMissingRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, store, "alice")
	article := createArticle(t, store, "Article", nil)

	_, _, err := store.Activities.ToggleLike(ctx, user.ID, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = store.Activities.ToggleLike(ctx, 999, article.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := store.Articles.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Likes)
}

func TestToggleLikeConcurrentUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	article := createArticle(t, store, "Popular", nil)

	const n = 20
	users := make([]*domain.User, n)
	for i := range users {
		users[i] = createUser(t, store, fmt.Sprintf("user%02d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, user := range users {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, _, err := store.Activities.ToggleLike(ctx, id, article.ID); err != nil {
				errs <- err
			}
		}(user.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.Articles.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, n, got.Likes)

	for _, user := range users {
		has, err := store.Activities.HasLike(ctx, user.ID, article.ID)
		require.NoError(t, err)
		assert.True(t, has, user.Username)
	}
}

func TestRecordDownloadAppends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, store, "alice")
	article := createArticle(t, store, "Article", nil)

	for want := int64(1); want <= 2; want++ {
		downloads, err := store.Activities.RecordDownload(ctx, user.ID, article.ID)
		require.NoError(t, err)
		assert.Equal(t, want, downloads)
	}

	activities, err := store.Activities.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	for _, a := range activities {
		assert.Equal(t, domain.ActivityDownload, a.Type)
	}

	_, err = store.Activities.RecordDownload(ctx, user.ID, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Activities.RecordDownload(ctx, 999, article.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := store.Articles.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Downloads)
}

func newMockActivities(t *testing.T) (repository.ActivityRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewActivityRepository(db), mock
}

func TestToggleLikeRollsBackOnCounterFailure(t *testing.T) {
	repo, mock := newMockActivities(t)

	mock.ExpectBegin()
	mock.ExpectQuery(queryArticleExists).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(queryDeleteLike).WithArgs(int64(3), int64(7), "like").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(queryInsertActivity).WithArgs(int64(3), int64(7), "like", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(queryIncrementLikes).WithArgs(int64(7)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, _, err := repo.ToggleLike(context.Background(), 3, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update like counter")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeUnlikeCommits(t *testing.T) {
	repo, mock := newMockActivities(t)

	mock.ExpectBegin()
	mock.ExpectQuery(queryArticleExists).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec(queryDeleteLike).WithArgs(int64(3), int64(7), "like").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(queryDecrementLikes).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(4))
	mock.ExpectCommit()

	liked, likes, err := repo.ToggleLike(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 4, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordDownloadRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newMockActivities(t)

	mock.ExpectBegin()
	mock.ExpectQuery(queryIncrementDown).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"downloads"}).AddRow(5))
	mock.ExpectExec(queryInsertActivity).WithArgs(int64(3), int64(7), "download", sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := repo.RecordDownload(context.Background(), 3, 7)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
