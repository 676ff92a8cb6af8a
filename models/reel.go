package models

import (
	"time"
)

// Reel tracks one reel generation job from request to publish. Status
// moves through the orchestrator states plus the queue-side pending
// values the worker sets between steps.
type Reel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReelID     string    `gorm:"size:16;uniqueIndex" json:"reel_id"` // namespaces temp artifacts
	RedditURL  string    `gorm:"size:1024;not null" json:"reddit_url"`
	PostID     string    `gorm:"size:16;index" json:"post_id"`
	Caption    string    `gorm:"type:text" json:"caption,omitempty"`
	OutputPath string    `gorm:"size:1024" json:"output_path,omitempty"`
	MediaID    string    `gorm:"size:64" json:"media_id,omitempty"` // instagram media id once published
	Status     string    `gorm:"default:'pending'" json:"status"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Reel) TableName() string {
	return "reels"
}
