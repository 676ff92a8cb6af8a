package reddit

import (
	"context"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// Candidate is a post considered for the next reel or image post.
type Candidate struct {
	ID          string
	Subreddit   string
	Title       string
	URL         string // link target: external article or image for link posts
	Permalink   string // always the reddit comments page
	Score       int
	UpvoteRatio float32
	NSFW        bool
	Stickied    bool
}

// ScanTop pulls today's top posts from each configured subreddit. A
// failing subreddit is logged and skipped; an error is returned only
// when every scan failed.
func (c *Client) ScanTop(ctx context.Context, subreddits []string, limit int) ([]Candidate, error) {
	var out []Candidate
	var lastErr error
	succeeded := 0
	for _, sub := range subreddits {
		posts, _, err := c.top.TopPosts(ctx, sub, &reddit.ListPostOptions{
			ListOptions: reddit.ListOptions{Limit: limit},
			Time:        "day",
		})
		if err != nil {
			log.Printf("Scan of r/%s failed: %v", sub, err)
			lastErr = err
			continue
		}
		succeeded++
		for _, p := range posts {
			out = append(out, Candidate{
				ID:          p.ID,
				Subreddit:   p.SubredditName,
				Title:       p.Title,
				URL:         p.URL,
				Permalink:   absolutePermalink(p.Permalink),
				Score:       p.Score,
				UpvoteRatio: p.UpvoteRatio,
				NSFW:        p.NSFW,
				Stickied:    p.Stickied,
			})
		}
	}
	if succeeded == 0 && lastErr != nil {
		return nil, errors.Wrapf(lastErr, "all %d subreddit scans failed", len(subreddits))
	}
	return out, nil
}

// absolutePermalink turns the API's relative permalink path into a
// fetchable URL.
func absolutePermalink(permalink string) string {
	if permalink == "" || strings.HasPrefix(permalink, "http://") || strings.HasPrefix(permalink, "https://") {
		return permalink
	}
	return "https://www.reddit.com" + permalink
}

// SelectBest picks the highest scoring candidate that is not stickied,
// not already processed, and not NSFW unless allowed. Returns nil when
// nothing qualifies.
func SelectBest(candidates []Candidate, processed map[string]bool, allowNSFW bool) *Candidate {
	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Stickied || processed[c.ID] {
			continue
		}
		if c.NSFW && !allowNSFW {
			continue
		}
		if best == nil || c.Score > best.Score {
			best = c
		}
	}
	return best
}

// IsImageURL reports whether a link target is a still image the legacy
// pipeline can publish. Gifs are excluded.
func IsImageURL(rawURL string) bool {
	u := strings.ToLower(rawURL)
	if strings.HasSuffix(u, ".gif") || strings.HasSuffix(u, ".gifv") {
		return false
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(u, ext) {
			return true
		}
	}
	return strings.HasPrefix(u, "https://i.redd.it/") || strings.HasPrefix(u, "https://i.imgur.com/")
}

// FilterImages keeps only candidates whose link target is a usable
// image.
func FilterImages(candidates []Candidate) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if IsImageURL(c.URL) {
			out = append(out, c)
		}
	}
	return out
}
