package models

import (
	"time"

	"gorm.io/gorm"
)

// Post records an image post that was already published to Instagram so
// the legacy image pipeline never repeats itself.
type Post struct {
	ID          string    `gorm:"primaryKey;size:16" json:"id"` // reddit post id
	Subreddit   string    `gorm:"size:64;index" json:"subreddit"`
	Title       string    `gorm:"size:512" json:"title"`
	URL         string    `gorm:"size:1024" json:"url"`
	Score       int       `json:"score"`
	UpvoteRatio float64   `json:"upvote_ratio"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}

// AlreadyPosted reports whether a reddit post id is in the posts table.
func AlreadyPosted(db *gorm.DB, id string) (bool, error) {
	var count int64
	if err := db.Model(&Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
