package reddit

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/sumerpunjabi/reelbot-api/config"
	"github.com/sumerpunjabi/reelbot-api/reel"
)

const maxComments = 5

// Client wraps the Reddit API for fetching and scanning posts.
type Client struct {
	api *reddit.Client
	top topPoster
}

// topPoster is the slice of the subreddit service the scanner uses,
// split out so scans can be tested without live credentials.
type topPoster interface {
	TopPosts(ctx context.Context, subreddit string, opts *reddit.ListPostOptions) ([]*reddit.Post, *reddit.Response, error)
}

// NewClient builds an authenticated client from the loaded config.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.ValidateReddit(); err != nil {
		return nil, err
	}
	userAgent := cfg.RedditUserAgent
	if cfg.RedditUsername != "" {
		userAgent = fmt.Sprintf("%s (by u/%s)", cfg.RedditUserAgent, cfg.RedditUsername)
	}
	api, err := reddit.NewClient(reddit.Credentials{
		ID:       cfg.RedditClientID,
		Secret:   cfg.RedditClientSecret,
		Username: cfg.RedditUsername,
		Password: cfg.RedditPassword,
	}, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, errors.Wrap(err, "reddit client")
	}
	return &Client{api: api, top: api.Subreddit}, nil
}

var postIDPattern = regexp.MustCompile(`/comments/([a-z0-9]+)`)

// ParsePostID pulls the base36 post id out of a Reddit permalink.
func ParsePostID(url string) (string, error) {
	m := postIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", &reel.ContentError{Source: url, Reason: "not a reddit post URL"}
	}
	return m[1], nil
}

// FetchPost retrieves a post and up to five of its top comments,
// formatted for narration.
func (c *Client) FetchPost(ctx context.Context, url string) (reel.Content, error) {
	id, err := ParsePostID(url)
	if err != nil {
		return reel.Content{}, err
	}

	pc, _, err := c.api.Post.Get(ctx, id)
	if err != nil {
		return reel.Content{}, &reel.ContentError{Source: url, Reason: "fetch failed", Err: err}
	}

	content := reel.Content{
		ID:    pc.Post.ID,
		Title: strings.TrimSpace(pc.Post.Title),
		Body:  strings.TrimSpace(pc.Post.Body),
	}
	for i, cm := range pc.Comments {
		if i >= maxComments {
			break
		}
		body := strings.TrimSpace(cm.Body)
		if body == "" || body == "[deleted]" || body == "[removed]" {
			continue
		}
		content.Comments = append(content.Comments,
			fmt.Sprintf("Comment %d: %s", len(content.Comments)+1, body))
	}

	if content.IsEmpty() {
		return reel.Content{}, &reel.ContentError{Source: url, Reason: "post has no narratable text"}
	}
	return content, nil
}
