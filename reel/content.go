package reel

import (
	"context"
	"strings"
)

// Content is the narration source extracted from one post.
type Content struct {
	ID       string
	Title    string
	Body     string
	Comments []string
}

// IsEmpty reports whether there is nothing to narrate.
func (c Content) IsEmpty() bool {
	if strings.TrimSpace(c.Title) != "" || strings.TrimSpace(c.Body) != "" {
		return false
	}
	for _, cm := range c.Comments {
		if strings.TrimSpace(cm) != "" {
			return false
		}
	}
	return true
}

// ContentSource fetches narration content for a post URL.
type ContentSource interface {
	FetchPost(ctx context.Context, url string) (Content, error)
}
