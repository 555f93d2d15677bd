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

const createActivitiesTable = `
CREATE TABLE IF NOT EXISTS user_activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
	activity_type TEXT NOT NULL CHECK (activity_type IN ('like', 'download')),
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_activities_user_id ON user_activities(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_user_activities_like
	ON user_activities(user_id, article_id) WHERE activity_type = 'like';
`

const (
	queryDeleteLike     = `DELETE FROM user_activities WHERE user_id=? AND article_id=? AND activity_type=?`
	queryInsertActivity = `INSERT INTO user_activities (user_id, article_id, activity_type, timestamp) VALUES (?, ?, ?, ?)`
	queryIncrementLikes = `UPDATE articles SET likes = likes + 1 WHERE id=? RETURNING likes`
	queryDecrementLikes = `UPDATE articles SET likes = MAX(likes - 1, 0) WHERE id=? RETURNING likes`
	queryIncrementDown  = `UPDATE articles SET downloads = downloads + 1 WHERE id=? RETURNING downloads`
	queryArticleExists  = `SELECT 1 FROM articles WHERE id=?`
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createActivitiesTable); err != nil {
		return fmt.Errorf("create user_activities table: %w", err)
	}
	return nil
}

// ToggleLike removes the user's like on the article if present, otherwise adds
// one. The activity row and the counter change commit together.
func (r *ActivityRepository) ToggleLike(ctx context.Context, userID, articleID int64) (bool, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	var one int
	if err := tx.QueryRowContext(ctx, queryArticleExists, articleID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, fmt.Errorf("article %d: %w", articleID, repository.ErrNotFound)
		}
		return false, 0, fmt.Errorf("lookup article: %w", err)
	}

	res, err := tx.ExecContext(ctx, queryDeleteLike, userID, articleID, string(domain.ActivityLike))
	if err != nil {
		return false, 0, fmt.Errorf("delete like: %w", err)
	}
	removed, err := rowsAffected(res)
	if err != nil {
		return false, 0, err
	}

	liked := removed == 0
	counterQuery := queryDecrementLikes
	if liked {
		if _, err := tx.ExecContext(ctx, queryInsertActivity, userID, articleID, string(domain.ActivityLike), time.Now().UTC()); err != nil {
			if isForeignKeyViolation(err) {
				return false, 0, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
			}
			return false, 0, fmt.Errorf("insert like: %w", err)
		}
		counterQuery = queryIncrementLikes
	}

	var likes int64
	if err := tx.QueryRowContext(ctx, counterQuery, articleID).Scan(&likes); err != nil {
		return false, 0, fmt.Errorf("update like counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit tx: %w", err)
	}
	return liked, likes, nil
}

// RecordDownload bumps the download counter and appends a download row.
func (r *ActivityRepository) RecordDownload(ctx context.Context, userID, articleID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	var downloads int64
	if err := tx.QueryRowContext(ctx, queryIncrementDown, articleID).Scan(&downloads); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("article %d: %w", articleID, repository.ErrNotFound)
		}
		return 0, fmt.Errorf("update download counter: %w", err)
	}

	if _, err := tx.ExecContext(ctx, queryInsertActivity, userID, articleID, string(domain.ActivityDownload), time.Now().UTC()); err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert download: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return downloads, nil
}

func (r *ActivityRepository) HasLike(ctx context.Context, userID, articleID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS(
	SELECT 1 FROM user_activities WHERE user_id=? AND article_id=? AND activity_type=?
)`, userID, articleID, string(domain.ActivityLike)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query like: %w", err)
	}
	return exists, nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, article_id, activity_type, timestamp
FROM user_activities
WHERE user_id=?
ORDER BY timestamp ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.UserActivity
	for rows.Next() {
		var (
			a    domain.UserActivity
			kind string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.ArticleID, &kind, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = domain.ActivityType(kind)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
