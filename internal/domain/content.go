package domain

import "time"

// NoCategory is displayed for articles whose category has been removed.
const NoCategory = "No Category"

type ActivityType string

const (
	ActivityLike     ActivityType = "like"
	ActivityDownload ActivityType = "download"
)

type Category struct {
	ID   int64
	Name string
}

// Article is an uploaded document together with its engagement counters.
type Article struct {
	ID           int64
	Name         string
	Author       string
	CategoryID   *int64
	CategoryName string
	Description  string
	File         string
	Likes        int64
	Downloads    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CategoryLabel returns the resolved category name or NoCategory.
func (a Article) CategoryLabel() string {
	if a.CategoryID == nil || a.CategoryName == "" {
		return NoCategory
	}
	return a.CategoryName
}

// UserActivity records a single like or download performed by a user.
type UserActivity struct {
	ID        int64
	UserID    int64
	ArticleID int64
	Type      ActivityType
	Timestamp time.Time
}

// About holds the single free-text page shown by the front-end.
type About struct {
	ID        int64
	Content   string
	UpdatedAt time.Time
}
